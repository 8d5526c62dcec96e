package reader

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/tabcat/frame"
)

// SchemaInfo represents metadata about a single column of a loaded frame.
type SchemaInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	PhysicalType string `json:"physical_type,omitempty"`
	Count        int    `json:"count"`
	Missing      int    `json:"missing"`
}

// FrameSchema reports the resolved kind and the present/missing counts of
// every column
func FrameSchema(df *frame.DataFrame) []SchemaInfo {
	kinds := df.Kinds()
	infos := make([]SchemaInfo, 0, len(kinds))

	for i, name := range df.Columns() {
		s, err := df.Column(name)
		if err != nil {
			continue
		}
		infos = append(infos, SchemaInfo{
			Name:    name,
			Type:    kinds[i].String(),
			Count:   s.Count(),
			Missing: s.Len() - s.Count(),
		})
	}

	return infos
}

// ExtractSchemaInfo loads a parquet file and reports its columns, including
// the physical parquet type of each top-level field.
func ExtractSchemaInfo(path string) ([]SchemaInfo, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = r.Close() }()

	df, err := r.Frame()
	if err != nil {
		return nil, err
	}

	physical := make(map[string]string)
	for _, field := range r.Schema().Fields() {
		physical[field.Name()] = getPhysicalType(field)
	}

	infos := FrameSchema(df)
	for i := range infos {
		infos[i].PhysicalType = physical[infos[i].Name]
	}
	return infos, nil
}

// SchemaFrame lays schema information out as a frame so it can be printed
// with any output formatter
func SchemaFrame(infos []SchemaInfo) (*frame.DataFrame, error) {
	table := frame.NewTable(5)
	for _, info := range infos {
		row := frame.NewRow(
			frame.Text(info.Name),
			frame.Text(info.Type),
			frame.Text(info.PhysicalType),
			frame.Int(int64(info.Count)),
			frame.Int(int64(info.Missing)),
		)
		if err := table.Append(row); err != nil {
			return nil, err
		}
	}
	return frame.New([]string{"name", "type", "physical_type", "count", "missing"}, table)
}

// getPhysicalType returns the physical type name of a Parquet field.
func getPhysicalType(field parquet.Field) string {
	if field.Type() == nil || len(field.Fields()) > 0 {
		return "GROUP"
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}
