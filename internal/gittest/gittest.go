// Package gittest builds throwaway git repositories for tests.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a repository initialised in a temporary directory.
type Repo struct {
	t    testing.TB
	Root string
	Git  *git.Repository
}

// Init creates an empty non-bare repository under t.TempDir().
func Init(t testing.TB) *Repo {
	t.Helper()
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	if err != nil {
		t.Fatalf("git init: %v", err)
	}
	return &Repo{t: t, Root: root, Git: repo}
}

// Write creates or replaces a file relative to the worktree root.
func (r *Repo) Write(path, content string) {
	r.t.Helper()
	full := filepath.Join(r.Root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.t.Fatalf("write %s: %v", path, err)
	}
}

// Commit stages paths and commits them as the given author.
func (r *Repo) Commit(msg, name, email string, paths ...string) plumbing.Hash {
	r.t.Helper()
	wt, err := r.Git.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	for _, p := range paths {
		if _, err := wt.Add(p); err != nil {
			r.t.Fatalf("git add %s: %v", p, err)
		}
	}
	sig := &object.Signature{
		Name:  name,
		Email: email,
		When:  time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
	}
	hash, err := wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		r.t.Fatalf("git commit: %v", err)
	}
	return hash
}

// WriteAndCommit writes a single file and commits it.
func (r *Repo) WriteAndCommit(path, content, email string) plumbing.Hash {
	r.t.Helper()
	r.Write(path, content)
	return r.Commit("update "+path, "Test Author", email, path)
}
