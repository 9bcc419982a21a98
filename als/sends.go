package als

import (
	"github.com/joshuapare/alskit/internal/xmltree"
	"github.com/joshuapare/alskit/pkg/types"
)

const (
	tagSends           = "Sends"
	tagTrackSendHolder = "TrackSendHolder"
	tagSend            = "Send"
	tagSendsPre        = "SendsPre"
	tagSendPreBool     = "SendPreBool"
)

// minManualValue is the slightly-nonzero value Live writes for zero-valued
// sends; new sends use it to match native behavior.
const minManualValue = "0.0003162277571"

// Sends is a mixer track's ordered send list: one TrackSendHolder per return
// track in the document, each holder's Id equal to its position.
type Sends struct {
	el *xmltree.Node
}

// Element returns the underlying tree node.
func (s *Sends) Element() *xmltree.Node { return s.el }

// Holders returns the send holders in document order. Every child of a
// <Sends> element must be a holder.
func (s *Sends) Holders() ([]*TrackSendHolder, error) {
	out := make([]*TrackSendHolder, 0, len(s.el.Children))
	for _, c := range s.el.Children {
		if c.Tag != tagTrackSendHolder {
			return nil, types.Schemaf("unexpected <%s> inside <%s>", c.Tag, tagSends)
		}
		out = append(out, &TrackSendHolder{el: c})
	}
	return out, nil
}

// Len returns the number of send holders.
func (s *Sends) Len() int { return len(s.el.Children) }

// InsertSend inserts a holder wrapping a copy of send at the given column
// index and renumbers the holders that follow. A holder whose declared ID
// disagrees with its position, or a send list too short to hold the column,
// is an engine fault.
func (s *Sends) InsertSend(index int, send *Send, enabledByUser bool) error {
	if index < 0 || index > len(s.el.Children) {
		return types.Internalf("send list has %d holders, cannot insert at column %d", len(s.el.Children), index)
	}
	holder := xmltree.New(tagTrackSendHolder)
	setAttrInt(holder, idAttr, index)
	holder.AppendChild(send.el.Clone())
	holder.AppendChild(newValueElement("EnabledByUser", formatBool(enabledByUser)))

	insertChildIndented(s.el, index, holder)

	holders, err := s.Holders()
	if err != nil {
		return err
	}
	for i := index + 1; i < len(holders); i++ {
		id, err := holders[i].ID()
		if err != nil {
			return err
		}
		if id != i-1 {
			return types.Internalf("unexpected ID (%d) for track send holder at index %d", id, i)
		}
		holders[i].SetID(i)
	}
	return nil
}

// DeleteSend removes the holder at the given column index and renumbers the
// rest.
func (s *Sends) DeleteSend(index int) error {
	if index < 0 || index >= len(s.el.Children) {
		return types.Rangef("send index out of range: got %d, but there are only %d sends", index, len(s.el.Children))
	}
	if s.el.Children[index].Tag != tagTrackSendHolder {
		return types.Internalf("unexpected child element: <%s>", s.el.Children[index].Tag)
	}
	removeChildIndented(s.el, index)

	holders, err := s.Holders()
	if err != nil {
		return err
	}
	for i := index; i < len(holders); i++ {
		id, err := holders[i].ID()
		if err != nil {
			return err
		}
		if id != i+1 {
			return types.Internalf("unexpected ID (%d) for track send holder at index %d", id, i)
		}
		holders[i].SetID(i)
	}
	return nil
}

// TrackSendHolder is one entry of a send list: the send itself plus the
// enabled-by-user flag, with a positional ID.
type TrackSendHolder struct {
	el *xmltree.Node
}

// Element returns the underlying tree node.
func (h *TrackSendHolder) Element() *xmltree.Node { return h.el }

// ID returns the holder's positional ID.
func (h *TrackSendHolder) ID() (int, error) {
	return attrInt(h.el, idAttr)
}

// SetID rewrites the holder's positional ID.
func (h *TrackSendHolder) SetID(v int) {
	setAttrInt(h.el, idAttr, v)
}

// EnabledByUser reports whether the user enabled this send.
func (h *TrackSendHolder) EnabledByUser() (bool, error) {
	return childValueBool(h.el, "EnabledByUser")
}

// Send returns the held send.
func (h *TrackSendHolder) Send() (*Send, error) {
	n, err := requiredChild(h.el, tagSend)
	if err != nil {
		return nil, err
	}
	return &Send{el: n}, nil
}

// Send is a per-(mixer-track, return-track) signal connection: a manual
// level, a controller range, and automation/modulation pointee targets.
type Send struct {
	el *xmltree.Node
}

// NewSend builds a blank send with the given pointee target IDs. The manual
// value starts at the minimum Live writes for zero-valued sends; adjust it
// with SetManual.
func NewSend(automationTargetID, modulationTargetID int) *Send {
	el := xmltree.New(tagSend)
	el.AppendChild(newValueElement("LomId", "0"))
	el.AppendChild(newValueElement("Manual", minManualValue))

	rng := xmltree.New("MidiControllerRange")
	rng.AppendChild(newValueElement("Min", minManualValue))
	rng.AppendChild(newValueElement("Max", "1"))
	el.AppendChild(rng)

	auto := xmltree.New("AutomationTarget")
	setAttrInt(auto, idAttr, automationTargetID)
	auto.AppendChild(newValueElement("LockEnvelope", "0"))
	el.AppendChild(auto)

	mod := xmltree.New("ModulationTarget")
	setAttrInt(mod, idAttr, modulationTargetID)
	mod.AppendChild(newValueElement("LockEnvelope", "0"))
	el.AppendChild(mod)

	return &Send{el: el}
}

// Element returns the underlying tree node.
func (s *Send) Element() *xmltree.Node { return s.el }

// Manual returns the send's manual level.
func (s *Send) Manual() (float64, error) {
	return childValueFloat(s.el, "Manual")
}

// SetManual rewrites the send's manual level.
func (s *Send) SetManual(v float64) error {
	return setChildValueFloat(s.el, "Manual", v)
}

// MidiControllerRange returns the send's controller range.
func (s *Send) MidiControllerRange() (*MidiControllerRange, error) {
	n, err := requiredChild(s.el, "MidiControllerRange")
	if err != nil {
		return nil, err
	}
	return &MidiControllerRange{el: n}, nil
}

// MidiControllerRange is a min/max pair bounding controller input.
type MidiControllerRange struct {
	el *xmltree.Node
}

// Min returns the range's lower bound.
func (r *MidiControllerRange) Min() (float64, error) {
	return childValueFloat(r.el, "Min")
}

// Max returns the range's upper bound.
func (r *MidiControllerRange) Max() (float64, error) {
	return childValueFloat(r.el, "Max")
}

// SendsPre is the document-wide parallel boolean array marking each return
// track's send point as pre- or post-fader, index-aligned with return track
// position.
type SendsPre struct {
	el *xmltree.Node
}

// Element returns the underlying tree node.
func (p *SendsPre) Element() *xmltree.Node { return p.el }

// Bools returns the entries in document order.
func (p *SendsPre) Bools() ([]*SendPreBool, error) {
	out := make([]*SendPreBool, 0, len(p.el.Children))
	for _, c := range p.el.Children {
		if c.Tag != tagSendPreBool {
			return nil, types.Schemaf("unexpected <%s> inside <%s>", c.Tag, tagSendsPre)
		}
		out = append(out, &SendPreBool{el: c})
	}
	return out, nil
}

// Len returns the number of entries.
func (p *SendsPre) Len() int { return len(p.el.Children) }

// InsertBool inserts an entry at index and renumbers the entries after it.
func (p *SendsPre) InsertBool(index int, value bool) error {
	if index < 0 || index > len(p.el.Children) {
		return types.Internalf("SendsPre has %d entries, cannot insert at column %d", len(p.el.Children), index)
	}
	entry := xmltree.New(tagSendPreBool)
	setAttrInt(entry, idAttr, index)
	setAttrBool(entry, valueAttr, value)
	insertChildIndented(p.el, index, entry)

	bools, err := p.Bools()
	if err != nil {
		return err
	}
	for i := index + 1; i < len(bools); i++ {
		id, err := bools[i].ID()
		if err != nil {
			return err
		}
		if id != i-1 {
			return types.Internalf("unexpected SendPreBool ID at position %d: %d", i, id)
		}
		bools[i].SetID(i)
	}
	return nil
}

// DeleteBool removes the entry at index and renumbers the rest.
func (p *SendsPre) DeleteBool(index int) error {
	if index < 0 || index >= len(p.el.Children) {
		return types.Rangef("SendsPre index out of range: got %d, but there are only %d entries", index, len(p.el.Children))
	}
	removeChildIndented(p.el, index)

	bools, err := p.Bools()
	if err != nil {
		return err
	}
	for i := index; i < len(bools); i++ {
		id, err := bools[i].ID()
		if err != nil {
			return err
		}
		if id != i+1 {
			return types.Internalf("unexpected SendPreBool ID at position %d: %d", i, id)
		}
		bools[i].SetID(i)
	}
	return nil
}

// SendPreBool is one entry of SendsPre.
type SendPreBool struct {
	el *xmltree.Node
}

// ID returns the entry's positional ID.
func (b *SendPreBool) ID() (int, error) {
	return attrInt(b.el, idAttr)
}

// SetID rewrites the entry's positional ID.
func (b *SendPreBool) SetID(v int) {
	setAttrInt(b.el, idAttr, v)
}

// Value reports whether the corresponding return track's send point is
// pre-fader.
func (b *SendPreBool) Value() (bool, error) {
	return attrBool(b.el, valueAttr)
}

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
