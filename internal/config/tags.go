package config

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Tag is a report category. Unknown tags are rejected.
type Tag string

const (
	TagTodo     Tag = "todo"
	TagRefactor Tag = "refactor"
	TagBuggy    Tag = "buggy"
	TagCritical Tag = "critical"
)

// AllTags returns every known tag in display order.
func AllTags() []Tag {
	return []Tag{TagTodo, TagRefactor, TagBuggy, TagCritical}
}

// ErrUnknownTag is returned by ParseTag for names outside the fixed tag set.
var ErrUnknownTag = errors.New("unknown tag")

// ParseTag parses a tag name case-insensitively.
func ParseTag(s string) (Tag, error) {
	t := Tag(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllTags() {
		if t == known {
			return t, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownTag, "%q", s)
}

// Severity is how serious an open report of a given tag is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityBlocking Severity = "blocking"
)

// ErrUnknownSeverity is returned by ParseSeverity for unrecognised names.
var ErrUnknownSeverity = errors.New("unknown severity")

// ParseSeverity parses a severity name case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	switch sev {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityBlocking:
		return sev, nil
	}
	return "", errors.Wrapf(ErrUnknownSeverity, "%q", s)
}

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityBlocking:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}
