package output

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/dshills/codereport/internal/config"
	"github.com/dshills/codereport/internal/report"
)

// Listing is a filtered set of reports prepared for rendering.
type Listing struct {
	Version string
	Root    string
	Branch  string
	Today   string
	Config  config.Config
	Entries []report.Entry
}

// Writer writes a listing in a specific format.
type Writer interface {
	Write(w io.Writer, l *Listing) error
}

// Formats lists the names accepted by GetWriter.
var Formats = []string{"text", "json", "markdown", "sarif"}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	case "sarif":
		return &SARIFWriter{}, nil
	default:
		return nil, errors.WithHintf(errors.Newf("unsupported output format: %s", format),
			"supported formats: %v", Formats)
	}
}

// WriteListing writes the listing to outPath, or to stdout when outPath is
// empty. Text written to a terminal is colourised.
func WriteListing(l *Listing, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return errors.Wrap(err, "creating output file")
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
		if tw, ok := writer.(*TextWriter); ok {
			tw.Color = IsTerminal(os.Stdout)
		}
	}

	return writer.Write(w, l)
}

// severityOf returns the configured severity of a tag, defaulting to low for
// unknown or unconfigured tags.
func severityOf(cfg config.Config, tag string) config.Severity {
	t, err := config.ParseTag(tag)
	if err != nil {
		return config.SeverityLow
	}
	sev, err := cfg.SeverityOf(t)
	if err != nil {
		return config.SeverityLow
	}
	return sev
}

func authorLabel(a report.Author) string {
	switch {
	case a.Git != nil && a.Codeowner != nil:
		return *a.Git + " / " + *a.Codeowner
	case a.Git != nil:
		return *a.Git
	case a.Codeowner != nil:
		return *a.Codeowner
	default:
		return "unknown"
	}
}
