package als

import (
	"strconv"
	"strings"

	"github.com/joshuapare/alskit/internal/xmltree"
	"github.com/joshuapare/alskit/pkg/types"
)

// Ableton encodes most scalar values as a Value attribute on a named child
// element, and list positions as an Id attribute on the entry itself.
const (
	valueAttr = "Value"
	idAttr    = "Id"
)

func expectTag(n *xmltree.Node, tag string) error {
	if n == nil {
		return types.Schemaf("expected <%s>, found nothing", tag)
	}
	if n.Tag != tag {
		return types.Schemaf("expected <%s>, found <%s>", tag, n.Tag)
	}
	return nil
}

func requiredChild(n *xmltree.Node, tag string) (*xmltree.Node, error) {
	c := n.Find(tag)
	if c == nil {
		return nil, types.Schemaf("<%s> has no <%s> child", n.Tag, tag)
	}
	return c, nil
}

func attrString(n *xmltree.Node, name string) (string, error) {
	v, ok := n.Attr(name)
	if !ok {
		return "", types.Schemaf("<%s> has no %s attribute", n.Tag, name)
	}
	return v, nil
}

func attrInt(n *xmltree.Node, name string) (int, error) {
	s, err := attrString(n, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, types.Schemaf("<%s> %s attribute is not an integer: %q", n.Tag, name, s)
	}
	return v, nil
}

func attrFloat(n *xmltree.Node, name string) (float64, error) {
	s, err := attrString(n, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, types.Schemaf("<%s> %s attribute is not a number: %q", n.Tag, name, s)
	}
	return v, nil
}

func attrBool(n *xmltree.Node, name string) (bool, error) {
	s, err := attrString(n, name)
	if err != nil {
		return false, err
	}
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, types.Schemaf("<%s> %s attribute is not a boolean: %q", n.Tag, name, s)
}

func setAttrInt(n *xmltree.Node, name string, v int) {
	n.SetAttr(name, strconv.Itoa(v))
}

func setAttrBool(n *xmltree.Node, name string, v bool) {
	n.SetAttr(name, strconv.FormatBool(v))
}

func setAttrFloat(n *xmltree.Node, name string, v float64) {
	n.SetAttr(name, strconv.FormatFloat(v, 'g', -1, 64))
}

// childValue* read and write the Value attribute of a named child element.

func childValueString(n *xmltree.Node, tag string) (string, error) {
	c, err := requiredChild(n, tag)
	if err != nil {
		return "", err
	}
	return attrString(c, valueAttr)
}

func setChildValueString(n *xmltree.Node, tag, v string) error {
	c, err := requiredChild(n, tag)
	if err != nil {
		return err
	}
	c.SetAttr(valueAttr, v)
	return nil
}

func childValueInt(n *xmltree.Node, tag string) (int, error) {
	c, err := requiredChild(n, tag)
	if err != nil {
		return 0, err
	}
	return attrInt(c, valueAttr)
}

func setChildValueInt(n *xmltree.Node, tag string, v int) error {
	c, err := requiredChild(n, tag)
	if err != nil {
		return err
	}
	setAttrInt(c, valueAttr, v)
	return nil
}

func childValueBool(n *xmltree.Node, tag string) (bool, error) {
	c, err := requiredChild(n, tag)
	if err != nil {
		return false, err
	}
	return attrBool(c, valueAttr)
}

func childValueFloat(n *xmltree.Node, tag string) (float64, error) {
	c, err := requiredChild(n, tag)
	if err != nil {
		return 0, err
	}
	return attrFloat(c, valueAttr)
}

func setChildValueFloat(n *xmltree.Node, tag string, v float64) error {
	c, err := requiredChild(n, tag)
	if err != nil {
		return err
	}
	setAttrFloat(c, valueAttr, v)
	return nil
}

// newValueElement builds a childless <tag Value="..." /> element.
func newValueElement(tag, value string) *xmltree.Node {
	n := xmltree.New(tag)
	n.SetAttr(valueAttr, value)
	return n
}

// insertChildIndented splices child into parent at index and rewrites the
// indentation whitespace of the child subtree and of parent's child list so
// the output stays in Ableton's tab-per-level style.
func insertChildIndented(parent *xmltree.Node, index int, child *xmltree.Node) {
	child.Reindent(parent.Depth() + 1)
	parent.InsertChild(index, child)
	fixChildWhitespace(parent)
}

// removeChildIndented detaches the child at index and repairs the remaining
// whitespace, collapsing parent to a self-closing element when it empties.
func removeChildIndented(parent *xmltree.Node, index int) *xmltree.Node {
	child := parent.RemoveChildAt(index)
	fixChildWhitespace(parent)
	return child
}

func fixChildWhitespace(parent *xmltree.Node) {
	depth := parent.Depth()
	if len(parent.Children) == 0 {
		parent.Text = ""
		parent.Expanded = false
		return
	}
	inner := "\n" + strings.Repeat("\t", depth+1)
	parent.Text = inner
	for i, c := range parent.Children {
		if i == len(parent.Children)-1 {
			c.Tail = "\n" + strings.Repeat("\t", depth)
		} else {
			c.Tail = inner
		}
	}
}
