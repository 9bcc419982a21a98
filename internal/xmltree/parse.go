package xmltree

import (
	"bytes"
	"fmt"
)

// Parse reads a single-rooted XML document or fragment into a Node tree. An
// optional leading BOM and XML declaration are skipped; everything from the
// root element's open tag to its end tag is captured losslessly. Content
// after the root element must be whitespace.
//
// The parser covers the subset of XML that Ableton's writer produces:
// elements, double-quoted attributes, character data, and entity/character
// references. Comments, CDATA sections, processing instructions inside the
// body, and DTDs are rejected.
func Parse(data []byte) (*Node, error) {
	p := &parser{data: data}
	p.skipBOM()
	p.skipSpace()
	if err := p.skipDeclaration(); err != nil {
		return nil, err
	}
	p.skipSpace()
	root, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.data) {
		return nil, fmt.Errorf("xmltree: trailing content after root element at offset %d", p.pos)
	}
	return root, nil
}

type parser struct {
	data []byte
	pos  int
}

func (p *parser) skipBOM() {
	if bytes.HasPrefix(p.data[p.pos:], []byte{0xEF, 0xBB, 0xBF}) {
		p.pos += 3
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.data) && isSpace(p.data[p.pos]) {
		p.pos++
	}
}

func (p *parser) skipDeclaration() error {
	if !bytes.HasPrefix(p.data[p.pos:], []byte("<?")) {
		return nil
	}
	end := bytes.Index(p.data[p.pos:], []byte("?>"))
	if end < 0 {
		return fmt.Errorf("xmltree: unterminated XML declaration")
	}
	p.pos += end + 2
	return nil
}

func (p *parser) parseElement() (*Node, error) {
	if p.pos >= len(p.data) || p.data[p.pos] != '<' {
		return nil, fmt.Errorf("xmltree: expected element at offset %d", p.pos)
	}
	if bytes.HasPrefix(p.data[p.pos:], []byte("<!")) {
		return nil, fmt.Errorf("xmltree: comments and CDATA are not supported (offset %d)", p.pos)
	}
	p.pos++ // consume '<'

	name, err := p.readName()
	if err != nil {
		return nil, err
	}
	n := &Node{Tag: name}

	for {
		p.skipSpace()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("xmltree: unterminated element <%s>", name)
		}
		switch p.data[p.pos] {
		case '/':
			if !bytes.HasPrefix(p.data[p.pos:], []byte("/>")) {
				return nil, fmt.Errorf("xmltree: malformed tag <%s> at offset %d", name, p.pos)
			}
			p.pos += 2
			return n, nil
		case '>':
			p.pos++
			if err := p.parseContent(n); err != nil {
				return nil, err
			}
			return n, nil
		default:
			attr, err := p.readAttr(name)
			if err != nil {
				return nil, err
			}
			n.Attrs = append(n.Attrs, attr)
		}
	}
}

func (p *parser) parseContent(n *Node) error {
	n.Text = p.readText()
	for {
		if p.pos >= len(p.data) {
			return fmt.Errorf("xmltree: missing end tag for <%s>", n.Tag)
		}
		if bytes.HasPrefix(p.data[p.pos:], []byte("</")) {
			p.pos += 2
			name, err := p.readName()
			if err != nil {
				return err
			}
			if name != n.Tag {
				return fmt.Errorf("xmltree: end tag </%s> does not match <%s>", name, n.Tag)
			}
			p.skipSpace()
			if p.pos >= len(p.data) || p.data[p.pos] != '>' {
				return fmt.Errorf("xmltree: malformed end tag </%s>", name)
			}
			p.pos++
			if len(n.Children) == 0 && n.Text == "" {
				n.Expanded = true
			}
			return nil
		}
		child, err := p.parseElement()
		if err != nil {
			return err
		}
		n.AppendChild(child)
		child.Tail = p.readText()
	}
}

// readText consumes raw character data up to the next '<'. Entity references
// are preserved as written so the data round-trips exactly.
func (p *parser) readText() string {
	start := p.pos
	for p.pos < len(p.data) && p.data[p.pos] != '<' {
		p.pos++
	}
	return string(p.data[start:p.pos])
}

func (p *parser) readName() (string, error) {
	start := p.pos
	for p.pos < len(p.data) && isNameByte(p.data[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("xmltree: expected name at offset %d", start)
	}
	return string(p.data[start:p.pos]), nil
}

func (p *parser) readAttr(elem string) (Attr, error) {
	name, err := p.readName()
	if err != nil {
		return Attr{}, err
	}
	p.skipSpace()
	if p.pos >= len(p.data) || p.data[p.pos] != '=' {
		return Attr{}, fmt.Errorf("xmltree: attribute %s of <%s> has no value", name, elem)
	}
	p.pos++
	p.skipSpace()
	if p.pos >= len(p.data) || p.data[p.pos] != '"' {
		return Attr{}, fmt.Errorf("xmltree: attribute %s of <%s> is not double-quoted", name, elem)
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.data) && p.data[p.pos] != '"' {
		p.pos++
	}
	if p.pos >= len(p.data) {
		return Attr{}, fmt.Errorf("xmltree: unterminated value for attribute %s of <%s>", name, elem)
	}
	raw := string(p.data[start:p.pos])
	p.pos++
	return Attr{Name: name, Raw: raw}, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// isNameByte accepts the tag and attribute name characters Ableton emits,
// including the dot in tags like ControllerTargets.0.
func isNameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.' || c == '-' || c == '_' || c == ':':
		return true
	}
	return false
}
