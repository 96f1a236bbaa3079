package owners

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Rule is a single CODEOWNERS line reduced to its pattern and first owner.
type Rule struct {
	Pattern string
	Owner   string
}

// Strategy names how a pattern matched a path.
type Strategy int

const (
	NoMatch Strategy = iota
	WildcardAll
	Exact
	DirectoryPrefix
	SegmentContainment
)

func (s Strategy) String() string {
	switch s {
	case WildcardAll:
		return "wildcard-all"
	case Exact:
		return "exact"
	case DirectoryPrefix:
		return "directory-prefix"
	case SegmentContainment:
		return "segment-containment"
	default:
		return "none"
	}
}

// anyDepth is a leading pattern segment meaning "at any depth, including the root".
const anyDepth = "*/"

// Candidates returns the CODEOWNERS locations checked for root, in priority order.
func Candidates(root string) []string {
	return []string{
		filepath.Join(root, ".git", "CODEOWNERS"),
		filepath.Join(root, "CODEOWNERS"),
	}
}

// ReadFile returns the content of the first existing CODEOWNERS candidate.
// found is false when neither file exists.
func ReadFile(root string) (content string, found bool, err error) {
	for _, p := range Candidates(root) {
		if _, statErr := os.Stat(p); statErr != nil {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return "", true, errors.Wrapf(err, "reading %s", p)
		}
		return string(data), true, nil
	}
	return "", false, nil
}

// Parse extracts rules from CODEOWNERS content. Blank lines, comments and
// lines without an owner are skipped. File order is preserved.
func Parse(content string) []Rule {
	var rules []Rule
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		rules = append(rules, Rule{Pattern: fields[0], Owner: fields[1]})
	}
	return rules
}

// NormalizePath converts path to forward slashes without a leading slash.
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.TrimLeft(path, "/")
}

// Match reports which strategy, if any, matches pattern against path.
// path must already be normalized.
func Match(pattern, path string) Strategy {
	pattern = strings.TrimLeft(pattern, "/")
	path = strings.TrimLeft(path, "/")
	if pattern == "" {
		return NoMatch
	}
	if pattern == "*" {
		return WildcardAll
	}
	pattern = strings.TrimPrefix(pattern, anyDepth)
	if pattern == "" {
		return NoMatch
	}
	if path == pattern {
		return Exact
	}
	if strings.HasSuffix(pattern, "/") {
		if strings.HasPrefix(path, pattern) || strings.HasPrefix(path, strings.TrimRight(pattern, "/")) {
			return DirectoryPrefix
		}
		if strings.Contains(path, "/"+pattern) {
			return SegmentContainment
		}
		return NoMatch
	}
	if strings.HasPrefix(path, pattern) ||
		strings.HasSuffix(path, pattern) ||
		strings.Contains(path, "/"+pattern) {
		return SegmentContainment
	}
	return NoMatch
}

// OwnerFor applies rules to path with last-match-wins.
func OwnerFor(rules []Rule, path string) (string, bool) {
	path = NormalizePath(path)
	var owner string
	var found bool
	for _, r := range rules {
		if Match(r.Pattern, path) != NoMatch {
			owner = r.Owner
			found = true
		}
	}
	return owner, found
}

// Lookup reads the CODEOWNERS file under root and returns the owner of path.
// A missing or unreadable file yields no owner.
func Lookup(root, path string) (string, bool) {
	content, found, err := ReadFile(root)
	if err != nil || !found {
		return "", false
	}
	return OwnerFor(Parse(content), path)
}
