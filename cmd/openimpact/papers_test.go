// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateKeepsRunesIntact(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a much longer title that gets cut", 10, "a much ..."},
		{"김영희 박철수 이민준 정수빈 한지우", 10, "김영희 박철수..."},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.max)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) = %q is not valid UTF-8", tt.in, tt.max, got)
		}
	}
}

func TestFormatAuthors(t *testing.T) {
	if got := formatAuthors(nil); got != "" {
		t.Errorf("formatAuthors(nil) = %q, want empty", got)
	}
	if got := formatAuthors([]string{"Jane Doe"}); got != "Jane Doe" {
		t.Errorf("formatAuthors = %q", got)
	}

	got := formatAuthors([]string{"김영희 아주아주아주 긴 이름", "박철수"})
	if !strings.HasSuffix(got, " et al.") {
		t.Errorf("formatAuthors = %q, want et al. suffix", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("formatAuthors = %q is not valid UTF-8", got)
	}
}
