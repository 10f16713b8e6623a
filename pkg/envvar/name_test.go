// SPDX-License-Identifier: MPL-2.0

package envvar

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func TestTransliterate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected Name
	}{
		{name: "simple name", input: "verbose", expected: "VERBOSE"},
		{name: "hyphenated", input: "output-file", expected: "OUTPUT_FILE"},
		{name: "underscore kept", input: "output_file", expected: "OUTPUT_FILE"},
		{name: "leading digit", input: "3-count", expected: "__COUNT"},
		{name: "leading underscore", input: "_private", expected: "_PRIVATE"},
		{name: "leading hyphen", input: "-x", expected: "_X"},
		{name: "digits inside", input: "ipv6addr", expected: "IPV6ADDR"},
		{name: "dots and spaces", input: "a.b c", expected: "A_B_C"},
		{name: "non-ascii letter", input: "größe", expected: "GR__E"},
		{name: "single char", input: "v", expected: "V"},
		{name: "single digit", input: "9", expected: "_"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Transliterate(tt.input); got != tt.expected {
				t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// The leading digit is replaced, not prefixed, so the name keeps the
// identifier's length.
func TestTransliterate_LeadingDigitIsReplaced(t *testing.T) {
	t.Parallel()

	const id = "3-count"
	got := Transliterate(id)
	if got != "__COUNT" {
		t.Errorf("Transliterate(%q) = %q, want %q", id, got, "__COUNT")
	}
	if len(got) != len(id) {
		t.Errorf("len(Transliterate(%q)) = %d, want %d", id, len(got), len(id))
	}
}

func TestTransliterate_Properties(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"count", "3-count", "--long", "a b", "MiXeD_case-9", "日本", "x=y", "_", "é",
		"\x00bad", "tab\tsep", "ünïcode-ok",
	}

	for _, in := range inputs {
		got := string(Transliterate(in))

		if utf8.RuneCountInString(got) != utf8.RuneCountInString(in) {
			t.Errorf("Transliterate(%q) = %q: length %d, want %d", in, got, utf8.RuneCountInString(got), utf8.RuneCountInString(in))
		}
		for _, r := range got {
			if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') && r != '_' {
				t.Errorf("Transliterate(%q) = %q: contains %q", in, got, r)
			}
		}

		first, _ := utf8.DecodeRuneInString(in)
		if !isASCIILetter(first) && got[0] != '_' {
			t.Errorf("Transliterate(%q) = %q: first char should be '_'", in, got)
		}
	}
}

func TestName_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  Name
		valid bool
	}{
		{"PATH", true},
		{"lower_is_fine", true},
		{"", false},
		{"A=B", false},
		{"NUL\x00", false},
	}

	for _, tt := range tests {
		ok, errs := tt.name.IsValid()
		if ok != tt.valid {
			t.Errorf("Name(%q).IsValid() = %v, want %v", tt.name, ok, tt.valid)
		}
		if !ok {
			if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidName) {
				t.Errorf("Name(%q).IsValid() errors = %v, want one ErrInvalidName", tt.name, errs)
			}
		}
	}
}
