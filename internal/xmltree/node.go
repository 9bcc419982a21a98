package xmltree

import (
	"fmt"
	"strings"
)

// Attr is a single element attribute. Raw holds the value exactly as it
// appeared in the source document, entity escapes included, so that an
// untouched attribute serializes back byte-for-byte.
type Attr struct {
	Name string
	Raw  string
}

// Node is one element of an attributed XML tree. The text model follows
// lxml/ElementTree: Text is the character data between the open tag and the
// first child, Tail is the character data between this element's close tag
// and the next sibling. In Ableton documents both hold only indentation
// whitespace, but they are preserved verbatim either way.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string
	Tail     string

	// Expanded forces an empty element to serialize as <Tag></Tag> instead
	// of the self-closing form. Set by the parser when the source used an
	// explicit end tag.
	Expanded bool

	parent *Node
}

// New returns a childless element with the given tag.
func New(tag string) *Node {
	return &Node{Tag: tag}
}

// Parent returns the node's parent, or nil for a detached or root node.
func (n *Node) Parent() *Node { return n.parent }

// Depth returns the number of ancestors above n.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Attr returns the unescaped value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			v, err := Unescape(a.Raw)
			if err != nil {
				// Raw came from a parsed document or SetAttr, both of which
				// produce well-formed escapes; fall back to the raw text.
				return a.Raw, true
			}
			return v, true
		}
	}
	return "", false
}

// RawAttr returns the attribute value exactly as stored, escapes included.
func (n *Node) RawAttr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Raw, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, escaping the value. An existing
// attribute keeps its position; a new one is appended.
func (n *Node) SetAttr(name, value string) {
	raw := Escape(value)
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Raw = raw
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Raw: raw})
}

// Find returns the first direct child with the given tag, or nil.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll returns all direct children with the given tag.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Descendants returns every node below n (n itself excluded) with the given
// tag, in document order.
func (n *Node) Descendants(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
		out = append(out, c.Descendants(tag)...)
	}
	return out
}

// Walk visits n and every descendant in document order. A non-nil error from
// fn stops the walk and is returned.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Index returns the position of child among n's children, or -1.
func (n *Node) Index(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// InsertChild inserts child at position i (0 <= i <= len(Children)).
func (n *Node) InsertChild(i int, child *Node) {
	child.parent = n
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = child
}

// AppendChild appends child after the existing children.
func (n *Node) AppendChild(child *Node) {
	child.parent = n
	n.Children = append(n.Children, child)
}

// RemoveChildAt detaches and returns the child at position i.
func (n *Node) RemoveChildAt(i int) *Node {
	child := n.Children[i]
	copy(n.Children[i:], n.Children[i+1:])
	n.Children = n.Children[:len(n.Children)-1]
	child.parent = nil
	return child
}

// RemoveChild detaches the given child. It reports whether the child was
// found.
func (n *Node) RemoveChild(child *Node) bool {
	i := n.Index(child)
	if i < 0 {
		return false
	}
	n.RemoveChildAt(i)
	return true
}

// ReplaceChildAt swaps in child at position i and returns the old node. The
// replacement inherits the old node's tail so surrounding whitespace is
// undisturbed.
func (n *Node) ReplaceChildAt(i int, child *Node) *Node {
	old := n.Children[i]
	child.parent = n
	child.Tail = old.Tail
	n.Children[i] = child
	old.parent = nil
	return old
}

// Clone returns a deep copy of n, detached from any parent.
func (n *Node) Clone() *Node {
	c := &Node{
		Tag:      n.Tag,
		Text:     n.Text,
		Tail:     n.Tail,
		Expanded: n.Expanded,
	}
	if len(n.Attrs) > 0 {
		c.Attrs = make([]Attr, len(n.Attrs))
		copy(c.Attrs, n.Attrs)
	}
	for _, child := range n.Children {
		c.AppendChild(child.Clone())
	}
	return c
}

// Reindent rewrites the whitespace inside n's subtree to Ableton's
// convention: newline plus one tab per depth level, with depth being the
// indentation level of n itself. The node's own Tail is left to the caller,
// since it depends on the insertion position.
func (n *Node) Reindent(depth int) {
	if len(n.Children) == 0 {
		n.Text = ""
		return
	}
	inner := "\n" + strings.Repeat("\t", depth+1)
	n.Text = inner
	for i, c := range n.Children {
		c.Reindent(depth + 1)
		if i == len(n.Children)-1 {
			c.Tail = "\n" + strings.Repeat("\t", depth)
		} else {
			c.Tail = inner
		}
	}
}

// Escape replaces the characters Ableton's writer escapes in attribute
// values.
func Escape(s string) string {
	if !strings.ContainsAny(s, `&<>"`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Unescape resolves the named and numeric character references that occur in
// Ableton documents.
func Unescape(s string) (string, error) {
	if !strings.Contains(s, "&") {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			return "", fmt.Errorf("xmltree: unterminated entity in %q", s)
		}
		ent := s[i+1 : i+end]
		switch {
		case ent == "amp":
			b.WriteByte('&')
		case ent == "lt":
			b.WriteByte('<')
		case ent == "gt":
			b.WriteByte('>')
		case ent == "quot":
			b.WriteByte('"')
		case ent == "apos":
			b.WriteByte('\'')
		case strings.HasPrefix(ent, "#"):
			r, err := parseCharRef(ent[1:])
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		default:
			return "", fmt.Errorf("xmltree: unknown entity &%s;", ent)
		}
		i += end + 1
	}
	return b.String(), nil
}

func parseCharRef(s string) (rune, error) {
	base := 10
	if strings.HasPrefix(s, "x") || strings.HasPrefix(s, "X") {
		base = 16
		s = s[1:]
	}
	var v int64
	for i := 0; i < len(s); i++ {
		d := digitVal(s[i], base)
		if d < 0 {
			return 0, fmt.Errorf("xmltree: bad character reference &#%s;", s)
		}
		v = v*int64(base) + int64(d)
		if v > 0x10FFFF {
			return 0, fmt.Errorf("xmltree: character reference out of range")
		}
	}
	if len(s) == 0 {
		return 0, fmt.Errorf("xmltree: empty character reference")
	}
	return rune(v), nil
}

func digitVal(c byte, base int) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case base == 16 && c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case base == 16 && c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
