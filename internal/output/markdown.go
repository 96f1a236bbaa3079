package output

import (
	"io"
	"sort"
	"strings"

	"github.com/dshills/codereport/internal/config"
	"github.com/dshills/codereport/internal/report"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, l *Listing) error {
	ew := &errWriter{w: w}

	ew.printf("## Code Reports\n\n")

	grouped := groupByTag(l.Entries)
	tags := sortedTags(l.Config, grouped)

	ew.printf("| Tag | Severity | Open | Resolved |\n")
	ew.printf("|-----|----------|------|----------|\n")
	var open, resolved int
	for _, tag := range tags {
		o, r := countStatus(grouped[tag])
		open += o
		resolved += r
		ew.printf("| %s | %s | %d | %d |\n", tag, severityOf(l.Config, tag), o, r)
	}
	ew.printf("| **Total** | | **%d** | **%d** |\n\n", open, resolved)

	if len(l.Entries) == 0 {
		ew.println("No reports. :white_check_mark:")
		return ew.err
	}

	for _, tag := range tags {
		entries := grouped[tag]
		sev := severityOf(l.Config, tag)
		ew.printf("<details>\n<summary>%s %s (%d)</summary>\n\n",
			mdSeverityIcon(sev), strings.ToUpper(tag), len(entries))
		ew.printf("| ID | Location | Status | Author | Message |\n")
		ew.printf("|----|----------|--------|--------|---------|\n")
		for _, e := range entries {
			status := e.Status
			if e.IsOpen() && l.Today != "" && e.Expired(l.Today) {
				status += " (expired)"
			}
			ew.printf("| %s | `%s:%s` | %s | %s | %s |\n",
				e.ID, e.Path, e.Range, status, mdEscape(authorLabel(e.Author)), mdEscape(e.Message))
		}
		ew.printf("\n</details>\n\n")
	}
	return ew.err
}

func groupByTag(entries []report.Entry) map[string][]report.Entry {
	m := make(map[string][]report.Entry)
	for _, e := range entries {
		m[e.Tag] = append(m[e.Tag], e)
	}
	return m
}

// sortedTags orders tags by severity (blocking first), then by name.
func sortedTags(cfg config.Config, grouped map[string][]report.Entry) []string {
	tags := make([]string, 0, len(grouped))
	for tag := range grouped {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		ri := config.SeverityRank(severityOf(cfg, tags[i]))
		rj := config.SeverityRank(severityOf(cfg, tags[j]))
		if ri != rj {
			return ri > rj
		}
		return tags[i] < tags[j]
	})
	return tags
}

func countStatus(entries []report.Entry) (open, resolved int) {
	for _, e := range entries {
		if e.IsOpen() {
			open++
		} else {
			resolved++
		}
	}
	return open, resolved
}

func mdSeverityIcon(s config.Severity) string {
	switch s {
	case config.SeverityBlocking:
		return ":red_circle:"
	case config.SeverityHigh:
		return ":orange_circle:"
	case config.SeverityMedium:
		return ":yellow_circle:"
	default:
		return ":white_circle:"
	}
}

// mdEscape keeps table cells on one line.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

