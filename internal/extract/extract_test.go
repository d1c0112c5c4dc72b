package extract

import (
	"strings"
	"testing"
)

func TestText_StripsTagsAndJoinsWithNewlines(t *testing.T) {
	raw := `<html><head><title>Example</title></head>
<body><h1> Welcome </h1><p>to <b>Example</b></p></body></html>`
	got := Text(raw)
	want := "Example\nWelcome\nto\nExample"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestText_SkipsScriptStyleAndComments(t *testing.T) {
	raw := `<body>
<script>var hidden = "secret";</script>
<style>p { color: red; }</style>
<noscript>enable js</noscript>
<!-- a comment -->
<p>visible</p>
</body>`
	got := Text(raw)
	if got != "visible" {
		t.Fatalf("want only visible text, got %q", got)
	}
	for _, leaked := range []string{"secret", "color", "enable js", "comment"} {
		if strings.Contains(got, leaked) {
			t.Fatalf("non-visible content %q leaked into %q", leaked, got)
		}
	}
}

func TestText_MalformedHTMLDoesNotFail(t *testing.T) {
	raw := `<div><p>unclosed <b>bold <p>second`
	got := Text(raw)
	if !strings.Contains(got, "unclosed") || !strings.Contains(got, "second") {
		t.Fatalf("malformed html lost text: %q", got)
	}
}

func TestText_Deterministic(t *testing.T) {
	raw := `<body><p>alpha</p><p> beta </p></body>`
	a := Text(raw)
	b := Text(raw)
	if a != b {
		t.Fatalf("extraction not deterministic: %q vs %q", a, b)
	}
}

func TestText_EmptyBodyIsValid(t *testing.T) {
	if got := Text(`<body><img src="x.png"></body>`); got != "" {
		t.Fatalf("all-image page should extract to empty string, got %q", got)
	}
}
