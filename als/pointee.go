package als

import (
	"strings"

	"github.com/joshuapare/alskit/internal/xmltree"
	"github.com/joshuapare/alskit/pkg/types"
)

const tagPointeeID = "PointeeId"

// isPointeeDefinition reports whether a node defines an automatable target:
// an automation or modulation target, a raw pointee, or a controller-target
// list entry. Each such node carries a document-unique Id.
func isPointeeDefinition(tag string) bool {
	return tag == "AutomationTarget" ||
		tag == "Pointee" ||
		strings.HasPrefix(tag, "ControllerTargets.") ||
		strings.HasSuffix(tag, "ModulationTarget")
}

// remapPointeeIDs walks a batch of incoming subtrees, assigns every pointee
// definition a fresh ID from the document's NextPointeeId counter, and
// rewrites every PointeeId reference in the batch through the old-to-new
// mapping. A reference whose old ID has no definition in the batch is a
// dangling pointee; the batch must be self-contained.
//
// The updated counter is persisted onto the document only after the whole
// remap succeeds, and every fresh ID exceeds every ID the destination has
// ever handed out, so uniqueness holds by construction.
func (s *LiveSet) remapPointeeIDs(batch []*xmltree.Node) error {
	next, err := s.NextPointeeID()
	if err != nil {
		return err
	}
	replacements := make(map[int]int)

	for _, el := range batch {
		err := el.Walk(func(n *xmltree.Node) error {
			if !isPointeeDefinition(n.Tag) {
				return nil
			}
			oldID, err := attrInt(n, idAttr)
			if err != nil {
				return types.Schemaf("pointee tag <%s> has no usable ID: %v", n.Tag, err)
			}
			setAttrInt(n, idAttr, next)
			replacements[oldID] = next
			next++
			return nil
		})
		if err != nil {
			return err
		}
	}

	for _, el := range batch {
		refs := el.Descendants(tagPointeeID)
		if el.Tag == tagPointeeID {
			refs = append([]*xmltree.Node{el}, refs...)
		}
		for _, ref := range refs {
			oldID, err := attrInt(ref, valueAttr)
			if err != nil {
				return err
			}
			newID, ok := replacements[oldID]
			if !ok {
				return types.Referencef("unknown mapping to pointee ID: %d", oldID)
			}
			setAttrInt(ref, valueAttr, newID)
		}
	}

	return s.setNextPointeeID(next)
}
