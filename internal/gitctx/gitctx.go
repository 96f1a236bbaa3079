package gitctx

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

var (
	// ErrNotRepository is returned when no repository can be found or opened.
	ErrNotRepository = errors.New("not a git repository")
	// ErrNoHead is returned when the repository has no commit at HEAD.
	ErrNoHead = errors.New("repository has no HEAD commit")
	// ErrBinary is returned when blame is requested for a binary file.
	ErrBinary = errors.New("binary file")
	// ErrLineOutOfRange is returned when the blame window starts past the end of the file.
	ErrLineOutOfRange = errors.New("line out of range")
)

// RepoMeta contains git repository metadata.
type RepoMeta struct {
	Root   string `json:"root"`
	Head   string `json:"head"`
	Branch string `json:"branch"`
}

// Repo is an opened repository.
type Repo struct {
	root string
	repo *git.Repository
}

// FindRoot walks up from dir to the nearest directory containing .git and
// returns the worktree root.
func FindRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "resolving directory")
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "searching for repository from %s", abs), ErrNotRepository)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "bare repositories are not supported"), ErrNotRepository)
	}
	return wt.Filesystem.Root(), nil
}

// Open opens the repository whose worktree root is root.
func Open(root string) (*Repo, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "opening repository at %s", root), ErrNotRepository)
	}
	return &Repo{root: root, repo: repo}, nil
}

// Root returns the worktree root the repository was opened at.
func (r *Repo) Root() string {
	return r.root
}

// HooksDir returns the hooks directory inside the repository's git dir.
func (r *Repo) HooksDir() (string, error) {
	storage, ok := r.repo.Storer.(*filesystem.Storage)
	if !ok {
		return "", errors.New("repository storage has no git directory")
	}
	return filepath.Join(storage.Filesystem().Root(), "hooks"), nil
}

// Meta returns HEAD and branch information. Missing values are left empty.
func (r *Repo) Meta() RepoMeta {
	meta := RepoMeta{Root: r.root}
	ref, err := r.repo.Head()
	if err != nil {
		return meta
	}
	meta.Head = ref.Hash().String()
	if ref.Name().IsBranch() {
		meta.Branch = ref.Name().Short()
	} else {
		meta.Branch = "HEAD"
	}
	return meta
}

func (r *Repo) headCommit() (*object.Commit, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "resolving HEAD"), ErrNoHead)
	}
	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, errors.Wrapf(err, "loading commit %s", ref.Hash())
	}
	return commit, nil
}

// BlobHash returns the blob id of path in the HEAD tree. It reports false
// for files not in HEAD (new or untracked) and when HEAD cannot be resolved.
func (r *Repo) BlobHash(path string) (string, bool) {
	commit, err := r.headCommit()
	if err != nil {
		return "", false
	}
	tree, err := commit.Tree()
	if err != nil {
		return "", false
	}
	entry, err := tree.FindEntry(ToSlash(path))
	if err != nil {
		return "", false
	}
	return entry.Hash.String(), true
}

// BlameLine blames path at HEAD for the window [start, max(end, start)] and
// returns the author email of the first line of the window. go-git has no
// line-window option, so the whole file is blamed and only line start is read.
func (r *Repo) BlameLine(path string, start, end uint32) (string, error) {
	path = ToSlash(path)
	if start < 1 {
		start = 1
	}

	commit, err := r.headCommit()
	if err != nil {
		return "", err
	}
	file, err := commit.File(path)
	if err != nil {
		return "", errors.Wrapf(err, "%s not found at HEAD", path)
	}
	binary, err := file.IsBinary()
	if err != nil {
		return "", errors.Wrapf(err, "inspecting %s", path)
	}
	if binary {
		return "", errors.Wrapf(ErrBinary, "blame %s", path)
	}

	result, err := git.Blame(commit, path)
	if err != nil {
		return "", errors.Wrapf(err, "blame %s", path)
	}
	if int(start) > len(result.Lines) {
		return "", errors.Wrapf(ErrLineOutOfRange, "blame %s: line %d of %d", path, start, len(result.Lines))
	}
	line := result.Lines[start-1]
	if line == nil || line.Author == "" {
		return "", errors.Newf("blame %s: no author for line %d", path, start)
	}
	return line.Author, nil
}

// ToSlash normalizes a repository-relative path to forward slashes.
func ToSlash(path string) string {
	return strings.TrimLeft(strings.ReplaceAll(path, "\\", "/"), "/")
}
