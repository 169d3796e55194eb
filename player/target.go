package player

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"unicode"
)

// streamSchemes are the URL schemes handed to mpv as is.
var streamSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"file":  true,
	"rtsp":  true,
	"rtmp":  true,
}

var (
	errEmptyTarget = errors.New("empty target")
	errFlagTarget  = errors.New("target must not start with '-'")
	errControlChar = errors.New("target contains control characters")
)

// checkTarget normalizes a file path or stream URL and rejects anything mpv could
// read as an option or that it should not open.
func checkTarget(target string) (string, error) {
	target = strings.TrimSpace(target)

	switch {
	case target == "":
		return "", errEmptyTarget
	case strings.HasPrefix(target, "-"):
		return "", errFlagTarget
	case strings.ContainsFunc(target, unicode.IsControl):
		return "", errControlChar
	}

	if !strings.Contains(target, "://") {
		return filepath.Clean(target), nil
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	if !streamSchemes[strings.ToLower(u.Scheme)] {
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}

	return target, nil
}

// cleanTitle flattens a title onto one line for the window title.
func cleanTitle(title string) string {
	title = strings.Map(func(r rune) rune {
		switch {
		case r == 0:
			return -1
		case unicode.IsSpace(r) || unicode.IsControl(r):
			return ' '
		default:
			return r
		}
	}, title)

	return strings.TrimSpace(title)
}
