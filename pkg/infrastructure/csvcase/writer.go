// Package csvcase serializes lot-sizing cases into the fixed-schema CSV
// format consumed by the downstream solver:
//
//	section,key,u,v,i,t,value
//
// Index columns that do not apply to a row are left empty. Rows absent from
// the demand section mean zero demand.
package csvcase

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
)

// NoIndex marks an index column as not applicable; it renders as an empty
// cell.
const NoIndex = -1

var header = []string{"section", "key", "u", "v", "i", "t", "value"}

// Writer emits schema rows. The header is written lazily before the first
// row.
type Writer struct {
	csv         *csv.Writer
	wroteHeader bool
}

// NewWriter wraps w in a schema writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

func (w *Writer) writeHeaderIfNeeded() error {
	if w.wroteHeader {
		return nil
	}
	w.wroteHeader = true
	return w.csv.Write(header)
}

func indexCell(v int) string {
	if v < 0 {
		return ""
	}
	return strconv.Itoa(v)
}

// WriteValue writes one row with a numeric value. Values are rendered with
// shopspring/decimal so that fractional parameters (solver gaps, fractional
// amounts) survive the round trip exactly as formatted.
func (w *Writer) WriteValue(section, key string, u, v, i, t int, value float64) error {
	return w.WriteRaw(section, key, u, v, i, t, decimal.NewFromFloat(value).String())
}

// WriteInt writes one row with an integer value.
func (w *Writer) WriteInt(section, key string, u, v, i, t int, value int) error {
	return w.WriteRaw(section, key, u, v, i, t, strconv.Itoa(value))
}

// WriteRaw writes one row with a preformatted value cell.
func (w *Writer) WriteRaw(section, key string, u, v, i, t int, value string) error {
	if err := w.writeHeaderIfNeeded(); err != nil {
		return err
	}
	return w.csv.Write([]string{
		section, key,
		indexCell(u), indexCell(v), indexCell(i), indexCell(t),
		value,
	})
}

// Flush writes buffered rows to the underlying writer and reports any write
// error encountered.
func (w *Writer) Flush() error {
	if err := w.writeHeaderIfNeeded(); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}
