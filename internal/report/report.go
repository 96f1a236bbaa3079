package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/dshills/codereport/internal/author"
	"github.com/dshills/codereport/internal/config"
)

// Version is the only supported reports file version.
const Version = 1

// FileName is the reports file name inside the metadata directory.
const FileName = "reports.yaml"

const idPrefix = "CR-"

// Report statuses.
const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
)

var (
	// ErrNotFound is returned when no report has the requested id.
	ErrNotFound = errors.New("report not found")
	// ErrUnsupportedVersion is returned for reports files of another version.
	ErrUnsupportedVersion = errors.New("unsupported reports version")
)

// LineRange is an inclusive, 1-based line range.
type LineRange struct {
	Start uint32 `yaml:"start" json:"start"`
	End   uint32 `yaml:"end" json:"end"`
}

func (r LineRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Author records who is responsible for the reported code. Nil means unknown.
type Author struct {
	Git       *string `yaml:"git" json:"git"`
	Codeowner *string `yaml:"codeowner" json:"codeowner"`
}

// AuthorFromResolved converts a resolver result, mapping empty fields to nil.
func AuthorFromResolved(r author.Resolved) Author {
	var a Author
	if r.HasGit() {
		git := r.Git
		a.Git = &git
	}
	if r.HasCodeowner() {
		owner := r.Codeowner
		a.Codeowner = &owner
	}
	return a
}

// Entry is a single report.
type Entry struct {
	ID        string    `yaml:"id" json:"id"`
	Path      string    `yaml:"path" json:"path"`
	Range     LineRange `yaml:"range" json:"range"`
	Tag       string    `yaml:"tag" json:"tag"`
	Message   string    `yaml:"message" json:"message"`
	Author    Author    `yaml:"author" json:"author"`
	CreatedAt string    `yaml:"created_at" json:"created_at"`
	ExpiresAt *string   `yaml:"expires_at" json:"expires_at"`
	Status    string    `yaml:"status" json:"status"`
}

// IsOpen reports whether the entry is still open.
func (e Entry) IsOpen() bool {
	return e.Status == StatusOpen
}

// Expired reports whether the entry's expiry date is before today
// (both formatted as YYYY-MM-DD).
func (e Entry) Expired(today string) bool {
	return e.ExpiresAt != nil && *e.ExpiresAt < today
}

// DateLayout is the format of CreatedAt and ExpiresAt.
const DateLayout = "2006-01-02"

// NewEntry builds an open report created at now. expiresDays, when set,
// determines ExpiresAt.
func NewEntry(id, path string, lines LineRange, tag config.Tag, message string, a Author, now time.Time, expiresDays *int) Entry {
	e := Entry{
		ID:        id,
		Path:      path,
		Range:     lines,
		Tag:       string(tag),
		Message:   message,
		Author:    a,
		CreatedAt: now.Format(DateLayout),
		Status:    StatusOpen,
	}
	if expiresDays != nil {
		exp := now.AddDate(0, 0, *expiresDays).Format(DateLayout)
		e.ExpiresAt = &exp
	}
	return e
}

// Reports is the content of reports.yaml.
type Reports struct {
	Version int     `yaml:"version" json:"version"`
	Entries []Entry `yaml:"entries" json:"entries"`
}

// New returns an empty reports set.
func New() *Reports {
	return &Reports{Version: Version, Entries: []Entry{}}
}

// Path returns the reports file path for a repository root.
func Path(root string) string {
	return filepath.Join(config.Dir(root), FileName)
}

// Load reads reports.yaml. A missing file yields an empty set.
func Load(root string) (*Reports, error) {
	path := Path(root)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, errors.Wrap(err, "read reports")
	}
	var r Reports
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", FileName)
	}
	if r.Version != Version {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "%d (expected %d)", r.Version, Version)
	}
	if r.Entries == nil {
		r.Entries = []Entry{}
	}
	return &r, nil
}

// Save writes reports.yaml atomically via a temporary file and rename.
func Save(root string, r *Reports) error {
	dir := config.Dir(root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create reports directory")
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "serialize reports")
	}
	dest := Path(root)
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "write reports")
	}
	if err := os.Rename(tmp, dest); err != nil {
		return errors.Wrap(err, "rename reports")
	}
	return nil
}

// ParseID extracts the number from an id such as "CR-000042".
func ParseID(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, idPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// FormatID renders n as a report id.
func FormatID(n int) string {
	return fmt.Sprintf("%s%06d", idPrefix, n)
}

// MaxID returns the highest numeric id in use, or 0.
func (r *Reports) MaxID() int {
	highest := 0
	for _, e := range r.Entries {
		if n, ok := ParseID(e.ID); ok && n > highest {
			highest = n
		}
	}
	return highest
}

// NextID returns the id for the next report.
func (r *Reports) NextID() string {
	return FormatID(r.MaxID() + 1)
}

// Add appends e.
func (r *Reports) Add(e Entry) {
	r.Entries = append(r.Entries, e)
}

// Delete removes the report with id.
func (r *Reports) Delete(id string) error {
	for i, e := range r.Entries {
		if e.ID == id {
			r.Entries = append(r.Entries[:i], r.Entries[i+1:]...)
			return nil
		}
	}
	return errors.Wrapf(ErrNotFound, "%s", id)
}

// Resolve marks the report with id as resolved.
func (r *Reports) Resolve(id string) error {
	for i := range r.Entries {
		if r.Entries[i].ID == id {
			r.Entries[i].Status = StatusResolved
			return nil
		}
	}
	return errors.Wrapf(ErrNotFound, "%s", id)
}

// ByID returns the report with id.
func (r *Reports) ByID(id string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Filter returns entries whose tag and status match, case-insensitively.
// An empty filter matches everything.
func (r *Reports) Filter(tag, status string) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if tag != "" && !strings.EqualFold(e.Tag, tag) {
			continue
		}
		if status != "" && !strings.EqualFold(e.Status, status) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Violations returns open reports that are blocking by severity or expired.
// Reports with unknown or unconfigured tags are skipped.
func (r *Reports) Violations(cfg config.Config, today string) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if !e.IsOpen() {
			continue
		}
		tag, err := config.ParseTag(e.Tag)
		if err != nil {
			continue
		}
		sev, err := cfg.SeverityOf(tag)
		if err != nil {
			continue
		}
		if sev == config.SeverityBlocking || e.Expired(today) {
			out = append(out, e)
		}
	}
	return out
}
