package runner

import (
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Compare checks captured output against the expected fixture content.
// The comparison is line-ending and trailing-newline insensitive: CRLF is
// normalized to LF and trailing newlines are ignored, so fixtures behave
// the same across platforms and editors. Returns a line-oriented diff on
// mismatch.
func Compare(expected, actual string) (bool, string) {
	e := normalizeOutput(expected)
	a := normalizeOutput(actual)
	if e == a {
		return true, ""
	}
	return false, cmp.Diff(strings.Split(e, "\n"), strings.Split(a, "\n"))
}

// normalizeOutput converts CRLF to LF and strips trailing newlines.
func normalizeOutput(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimRight(s, "\n")
}
