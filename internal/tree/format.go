package tree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/bethropolis/weave/internal/types"
)

// Declaration is the first line of every saved tree file.
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>`

const indentUnit = "    "

// Parse reads a tree file. A first line starting with "#" is returned as the
// header instead of being parsed as markup.
func Parse(data []byte) (t *Tree, header string, err error) {
	header, body := splitHeader(data)

	dec := xml.NewDecoder(bytes.NewReader(body))
	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, header, types.StructuralErrorf("malformed tree file: %v", err)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			n := &Node{Tag: qualified(tok.Name)}
			for _, a := range tok.Attr {
				name := qualified(a.Name)
				n.Attrs = append(n.Attrs, Attr{Name: name, Value: a.Value})
				if name == "id" {
					n.ID = a.Value
				}
			}
			if n.ID == "" {
				return nil, header, types.StructuralErrorf("element <%s> has no id", n.Tag)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, header, types.StructuralErrorf("more than one root element")
				}
				root = n
			} else {
				stack[len(stack)-1].AppendChild(n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			top := stack[len(stack)-1]
			top.Text = NormalizeText(top.Text)
			stack = stack[:len(stack)-1]
		case xml.CharData:
			// Only text ahead of the first child belongs to the element.
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if len(top.Children) == 0 {
					top.Text += string(tok)
				}
			}
		}
	}
	if root == nil {
		return nil, header, types.StructuralErrorf("tree file has no root element")
	}
	t, err = FromRoot(root)
	return t, header, err
}

func splitHeader(data []byte) (string, []byte) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("#")) {
		return "", data
	}
	line, rest, _ := bytes.Cut(trimmed, []byte("\n"))
	return strings.TrimSpace(string(line)), rest
}

func qualified(n xml.Name) string {
	if n.Space != "" {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

// Marshal renders t in the saved form, with header (if any) as the first line.
func Marshal(t *Tree, header string) []byte {
	var b strings.Builder
	if header != "" {
		b.WriteString(header)
		b.WriteByte('\n')
	}
	b.WriteString(Declaration)
	b.WriteByte('\n')
	writeNode(&b, t.Root, 0)
	return []byte(b.String())
}

// MarshalNode renders a single subtree without declaration.
func MarshalNode(n *Node) string {
	var b strings.Builder
	writeNode(&b, n, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func writeNode(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	b.WriteString(indent)
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(escape(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	b.WriteString(escape(n.Text))
	if len(n.Children) > 0 {
		b.WriteByte('\n')
		for _, c := range n.Children {
			writeNode(b, c, depth+1)
		}
		b.WriteString(indent)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteString(">\n")
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
