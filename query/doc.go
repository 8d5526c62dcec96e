// Package query provides a small SQL-like language over frames.
//
// Supported:
//   - SELECT with column projection, aliases and aggregate functions
//     (count, sum, avg, mean, min, max, median, std, mode)
//   - WHERE with comparisons, IN lists, IS NULL, NOT and AND/OR grouping
//   - GROUP BY
//   - ORDER BY with ASC/DESC
//   - LIMIT and OFFSET
//
// The SELECT ... FROM prefix is optional, so a bare condition is a query:
//
//	q, err := query.Parse("age > 30 AND city IN ('Oslo', 'Lima') LIMIT 10")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := query.Execute(q, df)
//
// Conditions evaluate to a frame.Mask, so they can also be applied directly:
//
//	expr, err := query.ParseFilter("score IS NOT NULL")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	filtered, err := query.ApplyFilter(df, expr)
//
// # Comparison rules
//
// Comparisons follow frame.Value.Compare: integers and floats compare
// numerically, text compares lexically, and a missing value never satisfies
// any comparison, != included. Use IS NULL to select missing values. TRUE and
// FALSE are the text values "true" and "false".
//
// Keywords are case-insensitive. Column names holding spaces or colliding
// with keywords can be written in backquotes: `Unnamed: 0`.
package query
