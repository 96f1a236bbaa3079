// Package gitctx reads repository state through go-git.
//
// It locates the repository root, resolves the blob id of a path at HEAD and
// runs blame to attribute a line to its last author. Everything is computed
// in-process; no git binary is required.
package gitctx
