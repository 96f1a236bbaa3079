package report

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidLocation is returned by ParseLocation for malformed input.
var ErrInvalidLocation = errors.New("invalid location")

// ParseLocation parses "path:start-end". The last colon separates the path,
// so Windows drive letters survive. Backslashes become forward slashes.
func ParseLocation(location string) (string, LineRange, error) {
	colon := strings.LastIndex(location, ":")
	if colon < 0 {
		return "", LineRange{}, errors.Wrap(ErrInvalidLocation, "expected path:start-end")
	}
	path := strings.TrimSpace(location[:colon])
	if path == "" {
		return "", LineRange{}, errors.Wrap(ErrInvalidLocation, "path is empty")
	}
	path = strings.ReplaceAll(path, "\\", "/")

	startS, endS, ok := strings.Cut(location[colon+1:], "-")
	if !ok {
		return "", LineRange{}, errors.Wrap(ErrInvalidLocation, "expected start-end range")
	}
	start, err := strconv.ParseUint(strings.TrimSpace(startS), 10, 32)
	if err != nil {
		return "", LineRange{}, errors.Wrap(ErrInvalidLocation, "invalid start line")
	}
	end, err := strconv.ParseUint(strings.TrimSpace(endS), 10, 32)
	if err != nil {
		return "", LineRange{}, errors.Wrap(ErrInvalidLocation, "invalid end line")
	}
	if start == 0 || end < start {
		return "", LineRange{}, errors.Wrap(ErrInvalidLocation, "invalid range (start >= 1, end >= start)")
	}
	return path, LineRange{Start: uint32(start), End: uint32(end)}, nil
}
