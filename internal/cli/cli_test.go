package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codereport/internal/author"
	"github.com/dshills/codereport/internal/cache"
	"github.com/dshills/codereport/internal/config"
	"github.com/dshills/codereport/internal/gittest"
	"github.com/dshills/codereport/internal/output"
	"github.com/dshills/codereport/internal/report"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)

// initRepo returns an initialised repository with one committed file owned
// by @backend and authored by alice.
func initRepo(t *testing.T) *gittest.Repo {
	t.Helper()
	t.Setenv("CODEREPORT_CONFIG", "")
	r := gittest.Init(t)
	r.Write("CODEOWNERS", "* @all\nsrc/ @backend\n")
	r.Write("src/db.go", "package db\n\nfunc Open() {}\n")
	r.Commit("init", "Alice", "alice@example.com", "CODEOWNERS", "src/db.go")

	var out bytes.Buffer
	require.NoError(t, runInit(r.Root, &out))
	return r
}

func TestAppendGitignoreBlock(t *testing.T) {
	assert.Equal(t, gitignoreBlock, appendGitignoreBlock(""))
	assert.Equal(t, gitignoreBlock, appendGitignoreBlock("\n \n"))
	assert.Equal(t, "bin/\n"+gitignoreBlock, appendGitignoreBlock("bin/\n\n"))
	assert.Equal(t, "bin/\n"+gitignoreBlock, appendGitignoreBlock("bin/"))
}

func TestEnsureGitignore_Idempotent(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".gitignore")
	require.NoError(t, os.WriteFile(path, []byte("node_modules/\n"), 0o644))

	require.NoError(t, ensureGitignore(root))
	require.NoError(t, ensureGitignore(root))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "node_modules/\n"+gitignoreBlock, string(data))
}

func TestEnsureGitignore_ExistingEntry(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".gitignore")
	require.NoError(t, os.WriteFile(path, []byte(".codereports/html/\n"), 0o644))

	require.NoError(t, ensureGitignore(root))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ".codereports/html/\n", string(data))
}

func TestInit(t *testing.T) {
	r := initRepo(t)

	for _, p := range []string{
		config.Path(r.Root),
		filepath.Join(config.Dir(r.Root), schemaFile),
		filepath.Join(r.Root, ".gitignore"),
	} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
	cfg, err := config.Load(r.Root)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	// A second init keeps an edited config.
	require.NoError(t, runConfigSet(r.Root, "todo.expires", "5", &bytes.Buffer{}))
	require.NoError(t, runInit(r.Root, &bytes.Buffer{}))
	cfg, err = config.Load(r.Root)
	require.NoError(t, err)
	days, ok := cfg.ExpiresDays(config.TagTodo)
	require.True(t, ok)
	assert.Equal(t, 5, days)
}

func TestAdd(t *testing.T) {
	r := initRepo(t)

	var out bytes.Buffer
	require.NoError(t, runAdd(r.Root, author.New(), "src/db.go:3-3", "Buggy", "leaks connections", fixedNow, &out))
	assert.Equal(t, "Added CR-000001 src/db.go\n", out.String())

	reports, err := report.Load(r.Root)
	require.NoError(t, err)
	require.Len(t, reports.Entries, 1)
	e := reports.Entries[0]
	assert.Equal(t, "CR-000001", e.ID)
	assert.Equal(t, report.LineRange{Start: 3, End: 3}, e.Range)
	assert.Equal(t, "buggy", e.Tag)
	assert.Equal(t, "2026-03-01", e.CreatedAt)
	require.NotNil(t, e.ExpiresAt)
	assert.Equal(t, "2026-05-30", *e.ExpiresAt)
	require.NotNil(t, e.Author.Git)
	assert.Equal(t, "alice@example.com", *e.Author.Git)
	require.NotNil(t, e.Author.Codeowner)
	assert.Equal(t, "@backend", *e.Author.Codeowner)

	// Blame result was cached against the blob id.
	assert.Equal(t, 1, cache.Load(cache.Path(r.Root)).Len())

	out.Reset()
	require.NoError(t, runAdd(r.Root, author.New(), "src\\db.go:1-1", "todo", "doc", fixedNow, &out))
	assert.Equal(t, "Added CR-000002 src/db.go\n", out.String())
	reports, err = report.Load(r.Root)
	require.NoError(t, err)
	assert.Nil(t, reports.Entries[1].ExpiresAt)
}

func TestAdd_Errors(t *testing.T) {
	r := initRepo(t)

	tests := []struct {
		name     string
		location string
		tag      string
		target   error
	}{
		{"bad location", "src/db.go", "todo", report.ErrInvalidLocation},
		{"unknown tag", "src/db.go:1-1", "nitpick", config.ErrUnknownTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runAdd(r.Root, author.New(), tt.location, tt.tag, "m", fixedNow, &bytes.Buffer{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target))
		})
	}

	require.NoError(t, runConfigSet(r.Root, "refactor.enabled", "false", &bytes.Buffer{}))
	err := runAdd(r.Root, author.New(), "src/db.go:1-1", "refactor", "m", fixedNow, &bytes.Buffer{})
	assert.True(t, errors.Is(err, config.ErrTagDisabled))

	_, statErr := os.Stat(report.Path(r.Root))
	assert.True(t, os.IsNotExist(statErr), "failed adds must not write reports")
}

func TestAdd_NotInitialized(t *testing.T) {
	t.Setenv("CODEREPORT_CONFIG", "")
	r := gittest.Init(t)

	err := runAdd(r.Root, author.New(), "a.go:1-1", "todo", "m", fixedNow, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrNotInitialized))

	var buf bytes.Buffer
	printError(&buf, err)
	assert.Contains(t, buf.String(), "hint: run 'codereport init' first")
}

func TestAdd_UntrackedFileStillRecordsOwner(t *testing.T) {
	r := initRepo(t)
	r.Write("src/new.go", "package db\n")

	require.NoError(t, runAdd(r.Root, author.New(), "src/new.go:1-1", "todo", "m", fixedNow, &bytes.Buffer{}))
	reports, err := report.Load(r.Root)
	require.NoError(t, err)
	e := reports.Entries[0]
	assert.Nil(t, e.Author.Git)
	require.NotNil(t, e.Author.Codeowner)
	assert.Equal(t, "@backend", *e.Author.Codeowner)
}

func TestDeleteResolve(t *testing.T) {
	r := initRepo(t)
	require.NoError(t, runAdd(r.Root, author.New(), "src/db.go:1-1", "todo", "a", fixedNow, &bytes.Buffer{}))
	require.NoError(t, runAdd(r.Root, author.New(), "src/db.go:2-2", "todo", "b", fixedNow, &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, runResolve(r.Root, "CR-000002", &out))
	require.NoError(t, runDelete(r.Root, "CR-000001", &out))
	assert.Equal(t, "Resolved CR-000002\nDeleted CR-000001\n", out.String())

	reports, err := report.Load(r.Root)
	require.NoError(t, err)
	require.Len(t, reports.Entries, 1)
	assert.Equal(t, report.StatusResolved, reports.Entries[0].Status)

	assert.True(t, errors.Is(runDelete(r.Root, "CR-000001", &out), report.ErrNotFound))
	assert.True(t, errors.Is(runResolve(r.Root, "CR-000009", &out), report.ErrNotFound))

	// Ids are never reused after a delete.
	require.NoError(t, runAdd(r.Root, author.New(), "src/db.go:3-3", "todo", "c", fixedNow, &out))
	reports, err = report.Load(r.Root)
	require.NoError(t, err)
	assert.Equal(t, "CR-000003", reports.Entries[1].ID)
}

func TestList_JSONFiltered(t *testing.T) {
	r := initRepo(t)
	require.NoError(t, runAdd(r.Root, author.New(), "src/db.go:1-1", "todo", "a", fixedNow, &bytes.Buffer{}))
	require.NoError(t, runAdd(r.Root, author.New(), "src/db.go:2-2", "critical", "b", fixedNow, &bytes.Buffer{}))

	out := filepath.Join(t.TempDir(), "list.json")
	require.NoError(t, runList(r.Root, "CRITICAL", "open", "json", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var entries []report.Entry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "CR-000002", entries[0].ID)

	assert.Error(t, runList(r.Root, "", "", "yaml", out))
}

func TestNewListing(t *testing.T) {
	r := initRepo(t)
	l := newListing(r.Root, nil)
	assert.NotEmpty(t, l.Branch)
	assert.Equal(t, config.Default(), l.Config)

	// Without a config the defaults are used for display.
	plain := t.TempDir()
	l = newListing(plain, nil)
	assert.Equal(t, config.Default(), l.Config)
	assert.Empty(t, l.Branch)
}

func TestCheck(t *testing.T) {
	r := initRepo(t)
	require.NoError(t, runAdd(r.Root, author.New(), "src/db.go:1-1", "todo", "fine", fixedNow, &bytes.Buffer{}))

	var buf bytes.Buffer
	n, err := runCheck(r.Root, "2026-03-02", &buf, false)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, buf.String())

	require.NoError(t, runAdd(r.Root, author.New(), "src/db.go:2-2", "critical", "sql injection", fixedNow, &bytes.Buffer{}))
	require.NoError(t, runAdd(r.Root, author.New(), "src/db.go:3-3", "buggy", "leak", fixedNow, &bytes.Buffer{}))

	// buggy expires 2026-05-30; only the critical report blocks before then.
	n, err = runCheck(r.Root, "2026-03-02", &buf, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "CR-000002  src/db.go  critical  sql injection")

	buf.Reset()
	n, err = runCheck(r.Root, "2026-06-01", &buf, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, buf.String(), "2 blocking or expired report(s)")

	require.NoError(t, runResolve(r.Root, "CR-000002", &bytes.Buffer{}))
	require.NoError(t, runResolve(r.Root, "CR-000003", &bytes.Buffer{}))
	n, err = runCheck(r.Root, "2026-06-01", &buf, false)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestHTML(t *testing.T) {
	r := initRepo(t)
	require.NoError(t, runAdd(r.Root, author.New(), "src/db.go:1-1", "critical", "<b>bad</b>", fixedNow, &bytes.Buffer{}))

	path, err := runHTML(r.Root, "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, output.DashboardPath(r.Root), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "&lt;b&gt;bad&lt;/b&gt;")
	assert.Contains(t, html, "alice@example.com")
}

func TestWho(t *testing.T) {
	r := initRepo(t)

	var out bytes.Buffer
	require.NoError(t, runWho(r.Root, author.New(), "src/db.go:1-3", false, &out))
	assert.Equal(t, "git:       alice@example.com\ncodeowner: @backend\n", out.String())

	out.Reset()
	require.NoError(t, runWho(r.Root, author.New(), "missing.go:1-1", true, &out))
	var got report.Author
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Nil(t, got.Git)
	require.NotNil(t, got.Codeowner)
	assert.Equal(t, "@all", *got.Codeowner)

	assert.Error(t, runWho(r.Root, author.New(), "src/db.go:0-1", false, &out))
}

func TestCacheShow(t *testing.T) {
	r := initRepo(t)
	require.NoError(t, runAdd(r.Root, author.New(), "src/db.go:1-1", "todo", "a", fixedNow, &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, runCacheShow(r.Root, &out))
	var stats cache.Stats
	require.NoError(t, json.Unmarshal(out.Bytes(), &stats))
	assert.True(t, stats.Exists)
	assert.Equal(t, 1, stats.Entries)
}

func TestConfigShowAndSet(t *testing.T) {
	r := initRepo(t)

	var out bytes.Buffer
	require.NoError(t, runConfigSet(r.Root, "buggy.severity", "blocking", &out))
	assert.Equal(t, "Set buggy.severity = blocking\n", out.String())

	out.Reset()
	require.NoError(t, runConfigShow(r.Root, &out))
	assert.True(t, strings.HasPrefix(out.String(), "# "+config.Path(r.Root)))
	assert.Contains(t, out.String(), "severity: blocking")

	assert.Error(t, runConfigSet(r.Root, "buggy.severity", "urgent", &out))
}

func TestRepoRoot(t *testing.T) {
	r := gittest.Init(t)
	r.Write("a/b/c.txt", "x\n")

	flagDir = filepath.Join(r.Root, "a", "b")
	t.Cleanup(func() { flagDir = "" })

	root, err := repoRoot()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(r.Root)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	flagDir = t.TempDir()
	_, err = repoRoot()
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "--dir")
}
