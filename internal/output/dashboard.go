package output

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/dshills/codereport/internal/config"
	"github.com/dshills/codereport/internal/report"
)

const (
	// heatmapRows caps the heatmap at the most reported paths.
	heatmapRows = 30
	// expiringSoonDays is the window for the "expiring soon" counter.
	expiringSoonDays = 7
)

// Stats are the dashboard counters.
type Stats struct {
	Total        int
	Open         int
	Resolved     int
	Critical     int
	Expired      int
	ExpiringSoon int
}

// TagCount is one bar of the per-tag chart.
type TagCount struct {
	Tag     string
	Slug    string
	Count   int
	Percent int
}

// HeatCell is one path/tag intersection.
type HeatCell struct {
	Count int
	Class string
	Title string
}

// HeatRow is one path of the heatmap.
type HeatRow struct {
	Path  string
	Cells []HeatCell
}

// Dashboard is everything the HTML page renders.
type Dashboard struct {
	Today    string
	Stats    Stats
	Tags     []TagCount
	HeatRows []HeatRow
	Open     []report.Entry
}

// BuildDashboard computes counters and chart data for entries as of today
// (YYYY-MM-DD).
func BuildDashboard(entries []report.Entry, today string) Dashboard {
	d := Dashboard{Today: today, Stats: computeStats(entries, today)}

	tagCounts := make(map[string]int)
	pathCounts := make(map[string]int)
	heat := make(map[string]map[string]int)
	for _, e := range entries {
		tagCounts[e.Tag]++
		pathCounts[e.Path]++
		if heat[e.Path] == nil {
			heat[e.Path] = make(map[string]int)
		}
		heat[e.Path][e.Tag]++
		if e.IsOpen() {
			d.Open = append(d.Open, e)
		}
	}

	tags := byCountDesc(tagCounts)
	maxCount := 1
	if len(tags) > 0 {
		maxCount = tagCounts[tags[0]]
	}
	for _, tag := range tags {
		n := tagCounts[tag]
		d.Tags = append(d.Tags, TagCount{
			Tag:     tag,
			Slug:    tagSlug(tag),
			Count:   n,
			Percent: min(100, n*100/maxCount),
		})
	}

	paths := byCountDesc(pathCounts)
	if len(paths) > heatmapRows {
		paths = paths[:heatmapRows]
	}
	for _, path := range paths {
		row := HeatRow{Path: path}
		for _, tag := range tags {
			row.Cells = append(row.Cells, heatCell(tag, heat[path][tag]))
		}
		d.HeatRows = append(d.HeatRows, row)
	}
	return d
}

func computeStats(entries []report.Entry, today string) Stats {
	s := Stats{Total: len(entries)}
	for _, e := range entries {
		if strings.EqualFold(e.Status, report.StatusOpen) {
			s.Open++
		} else {
			s.Resolved++
		}
		if strings.EqualFold(e.Tag, string(config.TagCritical)) {
			s.Critical++
		}
		if e.ExpiresAt == nil {
			continue
		}
		exp := strings.TrimSpace(*e.ExpiresAt)
		switch {
		case exp == "":
		case exp < today:
			s.Expired++
		default:
			if days, ok := daysBetween(today, exp); ok && days <= expiringSoonDays {
				s.ExpiringSoon++
			}
		}
	}
	return s
}

func daysBetween(from, to string) (int, bool) {
	a, err := time.Parse(report.DateLayout, from)
	if err != nil {
		return 0, false
	}
	b, err := time.Parse(report.DateLayout, to)
	if err != nil {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

// byCountDesc returns keys sorted by count descending, then by name.
func byCountDesc(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func heatCell(tag string, count int) HeatCell {
	if count == 0 {
		return HeatCell{}
	}
	level := "lo"
	switch {
	case count >= 3:
		level = "hi"
	case count >= 2:
		level = "mid"
	}
	return HeatCell{
		Count: count,
		Class: "heat " + level + " " + tagSlug(tag),
		Title: tag + ": " + strconv.Itoa(count),
	}
}

// tagSlug maps a tag to its CSS class. Unknown tags share the todo styling.
func tagSlug(tag string) string {
	t, err := config.ParseTag(tag)
	if err != nil {
		return string(config.TagTodo)
	}
	return string(t)
}

// DashboardPath returns the generated index.html path for a repository root.
func DashboardPath(root string) string {
	return filepath.Join(config.Dir(root), "html", "index.html")
}

// WriteDashboard renders d as a standalone HTML page.
func WriteDashboard(w io.Writer, d Dashboard) error {
	if err := dashboardTmpl.Execute(w, d); err != nil {
		return errors.Wrap(err, "render dashboard")
	}
	return nil
}

// WriteDashboardFile renders d into .codereports/html/index.html and returns
// the written path.
func WriteDashboardFile(root string, d Dashboard) (string, error) {
	path := DashboardPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "create html dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create index.html")
	}
	if err := WriteDashboard(f, d); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "write index.html")
	}
	return path, nil
}
