package highlighter

import (
	"context"
	"testing"
)

func TestHighlightXML(t *testing.T) {
	h := New()
	l := h.LanguageFor("books.xml")
	if l == nil || l.Name != "XML" {
		t.Fatalf("LanguageFor(.xml) = %v", l)
	}
	if h.LanguageFor("notes.txt") != nil {
		t.Fatal("text files have no grammar")
	}

	src := []byte("<book id=\"b1\">\n    <!-- a\n    b -->\n</book>")
	res, err := h.Highlight(context.Background(), src, l)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		line, col int
		want      string
	}{
		{0, 0, "punctuation.bracket"},
		{0, 1, "tag"},
		{0, 6, "attribute"},
		{0, 10, "string"},
		{1, 4, "comment"},
		{2, 4, "comment"}, // second line of a multi-line comment
		{3, 2, "tag"},
	}
	for _, tt := range tests {
		if got := res.StyleAt(tt.line, tt.col); got != tt.want {
			t.Errorf("StyleAt(%d, %d) = %q, want %q", tt.line, tt.col, got, tt.want)
		}
	}

	// queries are compiled once
	if _, err := h.Highlight(context.Background(), src, l); err != nil || len(h.queries) != 1 {
		t.Fatalf("second Highlight: %v, %d cached queries", err, len(h.queries))
	}
}

func TestHighlightWithoutLanguage(t *testing.T) {
	if _, err := New().Highlight(context.Background(), []byte("x"), nil); err == nil {
		t.Fatal("expected an error")
	}
}
