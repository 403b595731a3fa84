package files

import (
	"encoding/csv"
	"io"
)

// newReader returns a csv.Reader for semicolon-delimited rows of varying width.
func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}
