// Package owners answers "who owns this path" from a CODEOWNERS file.
//
// Only a small, fixed subset of the CODEOWNERS pattern language is supported.
// Each pattern is checked with a closed set of named strategies (see
// [Strategy]) in a fixed order, and among all matching rules the last one in
// file order wins. There is no support for "**" or character classes.
//
// The CODEOWNERS file is looked up in .git/CODEOWNERS first and then at the
// repository root. It is re-read on every call.
package owners
