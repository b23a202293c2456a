// Package csvexport renders filtered views as CSV text.
//
// Every field is double-quoted and embedded quotes are doubled (RFC 4180),
// so values holding commas, quotes or newlines survive a round trip.
package csvexport

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
)

// ContentType is the MIME type of rendered exports.
const ContentType = "text/csv; charset=utf-8"

// Column describes one exported column.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Write writes a header row then one row per record to w.
func Write[T any](w io.Writer, columns []Column[T], rows []T) error {
	bw := bufio.NewWriter(w)

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	if err := writeRecord(bw, headers); err != nil {
		return err
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = col.Value(row)
		}
		if err := writeRecord(bw, record); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Render returns the CSV text for rows.
func Render[T any](columns []Column[T], rows []T) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, columns, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename returns "<name>-<UTC timestamp>.csv".
func Filename(name string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", name, now.UTC().Format("20060102T150405Z"))
}

func writeRecord(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(Quote(f)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

// Quote wraps s in double quotes, doubling any quote it contains.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Int and Money format numeric cells.
func Int(n int) string { return fmt.Sprintf("%d", n) }

func Money(f float64) string { return fmt.Sprintf("%.2f", f) }

// Date formats a cell as YYYY-MM-DD.
func Date(t time.Time) string { return t.Format("2006-01-02") }
