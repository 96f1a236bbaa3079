package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/dshills/codereport/internal/report"
)

// JSONWriter outputs the listed entries as a JSON array.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, l *Listing) error {
	entries := l.Entries
	if entries == nil {
		entries = []report.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling JSON")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "writing JSON")
	}
	_, err = fmt.Fprintln(w)
	return err
}
