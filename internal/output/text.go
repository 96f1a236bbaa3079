package output

import (
	"fmt"
	"io"

	"github.com/dshills/codereport/internal/report"
)

// TextWriter outputs one line per report:
// id, path, range, tag, status and message separated by two spaces.
type TextWriter struct {
	Color bool
}

func (t *TextWriter) Write(w io.Writer, l *Listing) error {
	ew := &errWriter{w: w}
	for _, e := range l.Entries {
		t.writeLine(ew, l, e, true)
	}
	return ew.err
}

// WriteViolations prints reports that fail `codereport check`.
func (t *TextWriter) WriteViolations(w io.Writer, l *Listing) error {
	ew := &errWriter{w: w}
	for _, e := range l.Entries {
		t.writeLine(ew, l, e, false)
	}
	return ew.err
}

func (t *TextWriter) writeLine(ew *errWriter, l *Listing, e report.Entry, withRange bool) {
	tag := paint(t.Color, severityColor(severityOf(l.Config, e.Tag)), e.Tag)
	if withRange {
		ew.printf("%s  %s  %s  %s  %s  %s", e.ID, e.Path, e.Range, tag, e.Status, e.Message)
	} else {
		ew.printf("%s  %s  %s  %s", e.ID, e.Path, tag, e.Message)
	}
	if e.IsOpen() && l.Today != "" && e.Expired(l.Today) {
		ew.printf("  %s", paint(t.Color, ansiRed, "(expired "+*e.ExpiresAt+")"))
	}
	ew.println("")
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
