package xmltree

import "bytes"

// Serialize renders the tree rooted at n back to bytes. For a tree produced
// by Parse and not modified since, the output is byte-identical to the
// parsed region of the input. The root's Tail is not written; trailing bytes
// are the container's concern.
func Serialize(n *Node) []byte {
	var buf bytes.Buffer
	writeNode(&buf, n, true)
	return buf.Bytes()
}

func writeNode(buf *bytes.Buffer, n *Node, root bool) {
	buf.WriteByte('<')
	buf.WriteString(n.Tag)
	for _, a := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(a.Raw)
		buf.WriteByte('"')
	}
	if len(n.Children) == 0 && n.Text == "" && !n.Expanded {
		// Ableton writes empty elements self-closed with a space: <Tag />
		buf.WriteString(" />")
	} else {
		buf.WriteByte('>')
		buf.WriteString(n.Text)
		for _, c := range n.Children {
			writeNode(buf, c, false)
		}
		buf.WriteString("</")
		buf.WriteString(n.Tag)
		buf.WriteByte('>')
	}
	if !root {
		buf.WriteString(n.Tail)
	}
}
