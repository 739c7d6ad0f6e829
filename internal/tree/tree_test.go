package tree

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/bethropolis/weave/internal/types"
)

const bookstore = `# log -e insert-before
<?xml version="1.0" encoding="UTF-8"?>
<bookstore id="root">
    <book id="book1" category="COOKING">
        <title id="title1" lang="en">Everyday Italian</title>
        <author id="author1">Giada De Laurentiis</author>
    </book>
    <book id="book2" category="CHILDREN">
        <title id="title2" lang="en">Harry Potter &amp; Co</title>
    </book>
</bookstore>
`

func TestParseMarshalRoundTrip(t *testing.T) {
	tr, header, err := Parse([]byte(bookstore))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := header, "# log -e insert-before"; got != want {
		t.Fatalf("header = %q, want %q", got, want)
	}
	if got, want := tr.Len(), 6; got != want {
		t.Fatalf("indexed %d nodes, want %d", got, want)
	}
	title, ok := tr.Lookup("title2")
	if !ok || title.Text != "Harry Potter & Co" || title.Parent.ID != "book2" {
		t.Fatalf("title2 = %+v", title)
	}
	if v, _ := title.Attrs.Get("lang"); v != "en" {
		t.Fatalf("lang = %q", v)
	}

	if got := string(Marshal(tr, header)); got != bookstore {
		t.Fatalf("Marshal mismatch:\n%s\nwant:\n%s", got, bookstore)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing id", `<a id="x"><b/></a>`},
		{"duplicate id", `<a id="x"><b id="x"/></a>`},
		{"malformed", `<a id="x"><b id="y"></a>`},
		{"empty", ``},
		{"two roots", `<a id="x"/><b id="y"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Parse([]byte(tt.in)); !errors.Is(err, types.ErrStructural) {
				t.Fatalf("Parse(%q) error = %v, want structural", tt.in, err)
			}
		})
	}
}

func TestAttachDetachKeepsIndex(t *testing.T) {
	tr := New()
	a := NewNode("a", "a", "  hi  ", map[string]string{"id": "ignored", "z": "1", "b": "2"})
	if a.Text != "hi" {
		t.Fatalf("text not trimmed: %q", a.Text)
	}
	if got, want := a.Attrs, (Attrs{{"id", "a"}, {"b", "2"}, {"z", "1"}}); !reflect.DeepEqual(got, want) {
		t.Fatalf("attrs = %v, want %v", got, want)
	}
	tr.Attach(tr.Root, 0, a)
	tr.Attach(a, 0, NewNode("b", "b", "", nil))
	tr.Attach(a, 1, NewNode("c", "c", "", nil))

	parent, i := tr.Detach(a)
	if parent != tr.Root || i != 0 {
		t.Fatalf("Detach returned %v, %d", parent.ID, i)
	}
	for _, id := range []string{"a", "b", "c"} {
		if tr.Has(id) {
			t.Fatalf("%s still indexed after detach", id)
		}
	}
	tr.Attach(parent, i, a)
	if got, want := tr.Root.Children[0].IDs(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("IDs = %v, want %v", got, want)
	}
	if tr.Len() != 4 {
		t.Fatalf("Len = %d after reattach", tr.Len())
	}
}

func TestRender(t *testing.T) {
	tr, _, err := Parse([]byte(bookstore))
	if err != nil {
		t.Fatal(err)
	}
	out := Render(tr)
	for _, want := range []string{
		`└── bookstore [id="root"]`,
		`    ├── book [id="book1", category="COOKING"]`,
		`    │   ├── title [id="title1", lang="en"]`,
		`    │   │   └── "Everyday Italian"`,
		`    └── book [id="book2", category="CHILDREN"]`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render missing %q in:\n%s", want, out)
		}
	}
}
