package cli

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short passes through", "Cowboy Bebop", 38, "Cowboy Bebop"},
		{"exactly max passes through", strings.Repeat("a", 38), 38, strings.Repeat("a", 38)},
		{"long ascii cut with ellipsis", strings.Repeat("a", 50), 38, strings.Repeat("a", 35) + "..."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.in, tc.max); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestTruncate_MultiByteTitles(t *testing.T) {
	// 20 kanji is 60 bytes; a byte-based cut would land mid-rune.
	title := strings.Repeat("超", 20)

	got := truncate(title, 10)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if want := strings.Repeat("超", 7) + "..."; got != want {
		t.Fatalf("truncate = %q, want %q", got, want)
	}
	if n := utf8.RuneCountInString(got); n != 10 {
		t.Fatalf("truncated to %d runes, want 10", n)
	}
}
