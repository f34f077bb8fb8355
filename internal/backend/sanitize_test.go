package backend

import (
	"strings"
	"testing"
)

func TestSanitizer_Sanitize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "Ann", want: "Ann"},
		{name: "bold tags", in: "<b>Ann</b>", want: "Ann"},
		{name: "empty tags", in: "<b></b>", want: ""},
		{name: "script element", in: "1 Main St<script>alert(1)</script>", want: "1 Main St"},
		{name: "ampersand stays escaped", in: "Smith & Sons", want: "Smith &amp; Sons"},
		{name: "already escaped text is stable", in: "Smith &amp; Sons", want: "Smith &amp; Sons"},
	}

	s := NewSanitizer()
	for _, tc := range cases {
		if got := s.Sanitize(tc.in); got != tc.want {
			t.Fatalf("%s: Sanitize(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestSanitizer_EncodedMarkupNeverBecomesTags(t *testing.T) {
	s := NewSanitizer()
	inputs := []string{
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"&lt;b&gt;Ann&lt;/b&gt;",
		"&#60;img src=x onerror=alert(1)&#62;",
	}
	for _, in := range inputs {
		got := s.Sanitize(in)
		if strings.ContainsAny(got, "<>") {
			t.Fatalf("Sanitize(%q) = %q still carries markup", in, got)
		}
	}
	if got := s.Sanitize("&lt;b&gt;Ann&lt;/b&gt;"); got != "Ann" {
		t.Fatalf("expected encoded tags stripped, got %q", got)
	}
}
