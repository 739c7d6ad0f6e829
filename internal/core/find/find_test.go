package find

import (
	"reflect"
	"testing"

	"github.com/bethropolis/weave/internal/document"
)

func TestInLines(t *testing.T) {
	re, err := Compile(`o+`)
	if err != nil {
		t.Fatal(err)
	}
	got := InLines(re, []string{"foo boo", "", "héllo"})
	want := []Match{
		{Line: 1, Col: 2, EndCol: 4, Text: "oo"},
		{Line: 1, Col: 6, EndCol: 8, Text: "oo"},
		{Line: 3, Col: 5, EndCol: 6, Text: "o"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("InLines = %+v", got)
	}
	if got[2].Length() != 1 || got[0].String() != "1:2: oo" {
		t.Errorf("Length/String = %d %q", got[2].Length(), got[0].String())
	}
}

func TestInElements(t *testing.T) {
	re, _ := Compile(`\bcat\b`)
	got := InElements(re, []document.TextNode{{ID: "a", Text: "the cat"}, {ID: "b", Text: "concat"}})
	if len(got) != 1 || got[0].ID != "a" || got[0].Col != 5 || got[0].String() != "a:5: cat" {
		t.Fatalf("InElements = %+v", got)
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := Compile(""); err == nil {
		t.Error("empty pattern accepted")
	}
	if _, err := Compile("("); err == nil {
		t.Error("invalid pattern accepted")
	}
}

func TestParseSubstitute(t *testing.T) {
	s, err := ParseSubstitute("/(\\w+)@/$1 at /g")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Global || s.Replacement != "$1 at " || s.Pattern.String() != `(\w+)@` {
		t.Errorf("parsed = %+v", s)
	}
	for _, bad := range []string{"a/b/c", "/x", "//y/", "/x/y/q"} {
		if _, err := ParseSubstitute(bad); err == nil {
			t.Errorf("ParseSubstitute(%q) succeeded", bad)
		}
	}
}

func TestPlan(t *testing.T) {
	s, _ := ParseSubstitute("/a(b?)/<$1>/g")
	got := s.Plan([]string{"abab", "xa", "none"})
	want := []Edit{
		{Line: 2, Col: 2, Length: 1, Text: "<>"},
		{Line: 1, Col: 3, Length: 2, Text: "<b>"},
		{Line: 1, Col: 1, Length: 2, Text: "<b>"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Plan = %+v", got)
	}

	s.Global = false
	if got := s.Plan([]string{"abab"}); len(got) != 1 || got[0].Col != 1 {
		t.Errorf("first-only plan = %+v", got)
	}
}
