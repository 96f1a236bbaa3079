package author

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dshills/codereport/internal/cache"
	"github.com/dshills/codereport/internal/gitctx"
	"github.com/dshills/codereport/internal/owners"
)

// Resolved is the outcome of an author lookup. Either field may be empty.
type Resolved struct {
	Git       string `json:"git,omitempty" yaml:"git"`
	Codeowner string `json:"codeowner,omitempty" yaml:"codeowner"`
}

// HasGit reports whether a version-control identity was found.
func (r Resolved) HasGit() bool { return r.Git != "" }

// HasCodeowner reports whether a CODEOWNERS owner was found.
func (r Resolved) HasCodeowner() bool { return r.Codeowner != "" }

// OpenFunc opens the repository rooted at root.
type OpenFunc func(root string) (Repository, error)

// Resolver resolves authors for line ranges. The zero value is not usable;
// call New.
type Resolver struct {
	log  *zap.SugaredLogger
	open OpenFunc
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for best-effort failures.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithOpener replaces the repository opener. Used to plug in other backends.
func WithOpener(open OpenFunc) Option {
	return func(r *Resolver) {
		if open != nil {
			r.open = open
		}
	}
}

// New returns a Resolver backed by go-git.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		log:  zap.NewNop().Sugar(),
		open: openGit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func openGit(root string) (Repository, error) {
	repo, err := gitctx.Open(root)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// Resolve returns the CODEOWNERS owner of path and the git identity of the
// first line of [start, end]. path is relative to root. Failures degrade to
// empty fields.
func (r *Resolver) Resolve(root, path string, start, end uint32) Resolved {
	path = owners.NormalizePath(path)

	var out Resolved
	if owner, ok := owners.Lookup(root, path); ok {
		out.Codeowner = owner
	}

	repo, err := r.open(root)
	if err != nil {
		r.log.Debugw("repository unavailable", "root", root, "error", err)
		return out
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(path))); err != nil {
		r.log.Debugw("file not found", "path", path, "error", err)
		return out
	}

	cachePath := cache.Path(root)
	store, err := cache.Read(cachePath)
	if err != nil && !os.IsNotExist(err) {
		r.log.Debugw("ignoring unreadable blame cache", "path", cachePath, "error", err)
	}

	identity, ok, changed := resolveIdentity(repo, store, root, path, start, end, r.log)
	if ok {
		out.Git = identity
	}
	if changed {
		if err := store.Persist(cachePath); err != nil {
			r.log.Debugw("failed to persist blame cache", "path", cachePath, "error", err)
		}
	}
	return out
}
