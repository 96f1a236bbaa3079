package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codereport/internal/author"
	"github.com/dshills/codereport/internal/config"
)

func strPtr(s string) *string { return &s }

func sampleEntry(id, tag, status string) Entry {
	return Entry{
		ID:        id,
		Path:      "src/main.go",
		Range:     LineRange{Start: 1, End: 2},
		Tag:       tag,
		Message:   "m",
		CreatedAt: "2026-01-01",
		Status:    status,
	}
}

func TestNextID_Monotonic(t *testing.T) {
	r := New()
	assert.Equal(t, "CR-000001", r.NextID())

	r.Add(sampleEntry("CR-000001", "todo", StatusOpen))
	assert.Equal(t, "CR-000002", r.NextID())

	r.Add(sampleEntry("CR-000041", "todo", StatusOpen))
	r.Add(sampleEntry("bogus", "todo", StatusOpen))
	assert.Equal(t, "CR-000042", r.NextID())

	// Deleting a lower id never lets a higher one be reused.
	require.NoError(t, r.Delete("CR-000001"))
	assert.Equal(t, "CR-000042", r.NextID())
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"CR-000042", 42, true},
		{"CR-1", 1, true},
		{"CR-", 0, false},
		{"XX-000001", 0, false},
		{"CR-abc", 0, false},
	}
	for _, tt := range tests {
		n, ok := ParseID(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, n, tt.in)
	}
}

func TestDeleteResolve(t *testing.T) {
	r := New()
	r.Add(sampleEntry("CR-000001", "todo", StatusOpen))
	r.Add(sampleEntry("CR-000002", "buggy", StatusOpen))

	require.NoError(t, r.Resolve("CR-000002"))
	e, ok := r.ByID("CR-000002")
	require.True(t, ok)
	assert.Equal(t, StatusResolved, e.Status)

	require.NoError(t, r.Delete("CR-000001"))
	_, ok = r.ByID("CR-000001")
	assert.False(t, ok)
	assert.Len(t, r.Entries, 1)

	assert.True(t, errors.Is(r.Delete("CR-000009"), ErrNotFound))
	assert.True(t, errors.Is(r.Resolve("CR-000009"), ErrNotFound))
}

func TestFilter(t *testing.T) {
	r := New()
	r.Add(sampleEntry("CR-000001", "todo", StatusOpen))
	r.Add(sampleEntry("CR-000002", "buggy", StatusOpen))
	r.Add(sampleEntry("CR-000003", "todo", StatusResolved))

	assert.Len(t, r.Filter("", ""), 3)
	assert.Len(t, r.Filter("TODO", ""), 2)
	assert.Len(t, r.Filter("todo", "Open"), 1)
	assert.Len(t, r.Filter("", "resolved"), 1)
	assert.Empty(t, r.Filter("critical", ""))
}

func TestViolations(t *testing.T) {
	cfg := config.Default()
	r := New()

	critical := sampleEntry("CR-000001", "critical", StatusOpen)
	expired := sampleEntry("CR-000002", "buggy", StatusOpen)
	expired.ExpiresAt = strPtr("2026-01-09")
	fresh := sampleEntry("CR-000003", "buggy", StatusOpen)
	fresh.ExpiresAt = strPtr("2026-01-10")
	resolvedCritical := sampleEntry("CR-000004", "critical", StatusResolved)
	unknown := sampleEntry("CR-000005", "nitpick", StatusOpen)
	todo := sampleEntry("CR-000006", "todo", StatusOpen)

	for _, e := range []Entry{critical, expired, fresh, resolvedCritical, unknown, todo} {
		r.Add(e)
	}

	got := r.Violations(cfg, "2026-01-10")
	require.Len(t, got, 2)
	assert.Equal(t, "CR-000001", got[0].ID)
	assert.Equal(t, "CR-000002", got[1].ID)
}

func TestNewEntry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	a := AuthorFromResolved(author.Resolved{Git: "dev@example.com"})

	e := NewEntry("CR-000001", "a.go", LineRange{Start: 3, End: 4}, config.TagBuggy, "leak", a, now, nil)
	assert.Equal(t, "2026-03-01", e.CreatedAt)
	assert.Nil(t, e.ExpiresAt)
	assert.Equal(t, StatusOpen, e.Status)
	assert.Equal(t, "buggy", e.Tag)
	require.NotNil(t, e.Author.Git)
	assert.Equal(t, "dev@example.com", *e.Author.Git)
	assert.Nil(t, e.Author.Codeowner)

	days := 14
	e = NewEntry("CR-000002", "a.go", LineRange{Start: 3, End: 4}, config.TagCritical, "x", Author{}, now, &days)
	require.NotNil(t, e.ExpiresAt)
	assert.Equal(t, "2026-03-15", *e.ExpiresAt)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	root := t.TempDir()
	r := New()
	e := sampleEntry("CR-000001", "buggy", StatusOpen)
	e.Author = Author{Git: strPtr("dev@example.com")}
	e.ExpiresAt = strPtr("2026-04-01")
	r.Add(e)
	r.Add(sampleEntry("CR-000002", "todo", StatusResolved))

	require.NoError(t, Save(root, r))
	_, err := os.Stat(Path(root) + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must be renamed away")

	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, r, loaded)

	data, err := os.ReadFile(Path(root))
	require.NoError(t, err)
	assert.Contains(t, string(data), "codeowner: null")
	assert.Contains(t, string(data), "2026-01-01")
}

func TestLoad_Missing(t *testing.T) {
	r, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Version, r.Version)
	assert.Empty(t, r.Entries)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"bad yaml", "version: [", nil},
		{"wrong version", "version: 7\nentries: []\n", ErrUnsupportedVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			require.NoError(t, os.MkdirAll(filepath.Join(root, ".codereports"), 0o755))
			require.NoError(t, os.WriteFile(Path(root), []byte(tt.content), 0o644))

			_, err := Load(root)
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target))
			}
		})
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in    string
		path  string
		lines LineRange
		ok    bool
	}{
		{"src/foo.go:42-88", "src/foo.go", LineRange{Start: 42, End: 88}, true},
		{"src\\foo.go:1-1", "src/foo.go", LineRange{Start: 1, End: 1}, true},
		{"C:\\repo\\a.go:3-4", "C:/repo/a.go", LineRange{Start: 3, End: 4}, true},
		{" a.go : 2 - 5", "a.go", LineRange{Start: 2, End: 5}, true},
		{"a.go", "", LineRange{}, false},
		{":1-2", "", LineRange{}, false},
		{"a.go:12", "", LineRange{}, false},
		{"a.go:x-2", "", LineRange{}, false},
		{"a.go:1-y", "", LineRange{}, false},
		{"a.go:0-2", "", LineRange{}, false},
		{"a.go:5-2", "", LineRange{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			path, lines, err := ParseLocation(tt.in)
			if !tt.ok {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidLocation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.path, path)
			assert.Equal(t, tt.lines, lines)
		})
	}
}

func TestLineRangeString(t *testing.T) {
	assert.Equal(t, "3-9", LineRange{Start: 3, End: 9}.String())
}
