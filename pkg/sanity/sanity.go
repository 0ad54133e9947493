// SPDX-License-Identifier: Apache-2.0

package sanity

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joomcode/errorx"
)

var (
	ErrInvalidFilename = errorx.IllegalArgument.New("invalid filename")
)

// Security validation patterns for paths
var (
	// shellMetachars contains dangerous shell metacharacters that should be rejected
	shellMetachars = regexp.MustCompile("[;&|$\\x60<>(){}\\[\\]*?~]")

	// validPathChars ensures paths only contain safe characters
	// Allows: alphanumeric, forward slash, dash, underscore, dot
	validPathChars = regexp.MustCompile(`^[a-zA-Z0-9/_.\-]+$`)
)

// Alphanumeric ensures the input string to be ascii alphanumeric
func Alphanumeric(s string) string {
	sb := []byte(s)
	j := 0
	for _, b := range sb {
		if ('a' <= b && b <= 'z') ||
			('A' <= b && b <= 'Z') ||
			('0' <= b && b <= '9') {
			sb[j] = b
			j++
		}
	}
	return string(sb[:j])
}

// Filename sanitizes the input string to be a safe filename.
// It only allows alphanumeric characters, underscore and dash.
// It returns an error if the filename is an empty string after the sanitization.
func Filename(s string) (string, error) {
	sb := []byte(s)
	j := 0
	for _, b := range sb {
		if ('a' <= b && b <= 'z') ||
			('A' <= b && b <= 'Z') ||
			('0' <= b && b <= '9') ||
			b == '_' ||
			b == '-' {
			sb[j] = b
			j++
		}
	}

	if j == 0 {
		return "", ErrInvalidFilename
	}

	return string(sb[:j]), nil
}

// SanitizePath validates and sanitizes the given path according to strict security rules.
//
// Specifically, it:
//  1. Rejects paths containing shell metacharacters (e.g., ; & | $ ` < > ( ) { } [ ] * ? ~).
//  2. Rejects path traversal attempts (e.g., segments like "../", "/..", or paths ending with "..").
//  3. Requires the input path to be absolute.
//  4. Normalizes the path by removing redundant slashes and dot directories (using filepath.Clean).
//
// Returns the sanitized (cleaned) path, or an error if the input is invalid or unsafe.
func SanitizePath(path string) (string, error) {
	if path == "" {
		return "", errorx.IllegalArgument.New("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		return "", errorx.IllegalArgument.New("path must be absolute: %s", path)
	}

	// Check for path traversal patterns BEFORE cleaning
	// This catches patterns like "../", "/..", and paths ending with ".."
	// which could allow escaping the intended directory structure
	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return "", errorx.IllegalArgument.New("path cannot contain '..' segments: %s", path)
		}
	}

	if shellMetachars.MatchString(path) {
		return "", errorx.IllegalArgument.New("path contains shell metacharacters: %s", path)
	}

	if !validPathChars.MatchString(path) {
		return "", errorx.IllegalArgument.New("path contains invalid characters: %s", path)
	}

	return filepath.Clean(path), nil
}

// Contains reports whether v is present in vals.
func Contains[T comparable](v T, vals []T) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}

// ValidateURLOptions controls URL validation behaviour.
type ValidateURLOptions struct {
	// AllowHTTP permits plain http URLs in addition to https.
	AllowHTTP bool
}

// ValidateURL validates that the given string is a well-formed http(s) URL with a host.
func ValidateURL(raw string, opts *ValidateURLOptions) error {
	if raw == "" {
		return errorx.IllegalArgument.New("url cannot be empty")
	}

	if opts == nil {
		opts = &ValidateURLOptions{}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return errorx.IllegalArgument.Wrap(err, "invalid url: %s", raw)
	}

	switch u.Scheme {
	case "https":
	case "http":
		if !opts.AllowHTTP {
			return errorx.IllegalArgument.New("plain http urls are not allowed: %s", raw)
		}
	default:
		return errorx.IllegalArgument.New("unsupported url scheme %q: %s", u.Scheme, raw)
	}

	if u.Host == "" {
		return errorx.IllegalArgument.New("url has no host: %s", raw)
	}

	return nil
}
