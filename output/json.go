package output

import (
	"bufio"
	"io"
	"math"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/tabcat/frame"
)

// JSONFormatter outputs frames as JSON Lines, one object per row with keys
// in column order
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes one JSON object per row. Integers and floats are JSON
// numbers, text is a JSON string and missing values are null. Non-finite
// floats have no JSON number form and are written as strings.
func (j *JSONFormatter) Format(df *frame.DataFrame) error {
	columns := df.Columns()
	keys := make([][]byte, len(columns))
	for i, col := range columns {
		k, err := json.Marshal(col)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	w := bufio.NewWriter(j.writer)
	for _, row := range df.Rows() {
		w.WriteByte('{')
		for i, v := range row.Values() {
			if i > 0 {
				w.WriteByte(',')
			}
			w.Write(keys[i])
			w.WriteByte(':')

			b, err := json.Marshal(jsonValue(v))
			if err != nil {
				return err
			}
			w.Write(b)
		}
		w.WriteString("}\n")
	}
	return w.Flush()
}

// jsonValue maps a frame value onto its natural Go type
func jsonValue(v frame.Value) interface{} {
	switch v.Kind() {
	case frame.KindInteger:
		i, _ := v.Int()
		return i
	case frame.KindFloat:
		f, _ := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return v.String()
		}
		return f
	case frame.KindText:
		s, _ := v.Text()
		return s
	default:
		return nil
	}
}
