// Package author resolves who is responsible for a range of lines.
//
// [Resolver.Resolve] combines two independent answers: the CODEOWNERS owner of
// the path and the git author of the first line of the range. Neither source
// is required. A missing repository, a missing file, a blame failure or an
// unwritable cache only leaves the corresponding field of [Resolved] empty;
// Resolve never returns an error.
//
// Blame results are cached per (path, range, HEAD blob id) so repeated lookups
// on unchanged files skip blame entirely. Files that are not in HEAD are
// blamed on every call and never cached.
package author
