package runner

import (
	"strings"
	"testing"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected string
		actual   string
		match    bool
	}{
		{"identical", "hello\nworld\n", "hello\nworld\n", true},
		{"empty both", "", "", true},
		{"trailing newline ignored", "hello\n", "hello", true},
		{"multiple trailing newlines ignored", "hello\n\n\n", "hello\n", true},
		{"crlf normalized", "hello\r\nworld\r\n", "hello\nworld\n", true},
		{"content differs", "hello\n", "world\n", false},
		{"extra line", "hello\n", "hello\nworld\n", false},
		{"missing line", "hello\nworld\n", "hello\n", false},
		{"interior whitespace significant", "a b\n", "a  b\n", false},
		{"interior blank line significant", "a\n\nb\n", "a\nb\n", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, diff := Compare(tt.expected, tt.actual)
			if ok != tt.match {
				t.Errorf("Compare() = %v, want %v (diff: %s)", ok, tt.match, diff)
			}
			if !ok && diff == "" {
				t.Error("Compare() mismatch produced empty diff")
			}
			if ok && diff != "" {
				t.Errorf("Compare() match produced diff: %s", diff)
			}
		})
	}
}

func TestCompare_DiffMentionsDivergingLine(t *testing.T) {
	t.Parallel()

	ok, diff := Compare("alpha\nbeta\ngamma\n", "alpha\nBETA\ngamma\n")
	if ok {
		t.Fatal("Compare() = true, want false")
	}
	if !strings.Contains(diff, "beta") || !strings.Contains(diff, "BETA") {
		t.Errorf("diff does not show diverging line:\n%s", diff)
	}
}

func TestNormalizeOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "abc", "abc"},
		{"strip trailing lf", "abc\n", "abc"},
		{"strip trailing crlf", "abc\r\n", "abc"},
		{"interior crlf", "a\r\nb", "a\nb"},
		{"only newlines", "\n\n", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeOutput(tt.input); got != tt.want {
				t.Errorf("normalizeOutput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
