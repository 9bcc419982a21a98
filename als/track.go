package als

import (
	"github.com/joshuapare/alskit/internal/xmltree"
	"github.com/joshuapare/alskit/pkg/types"
)

// Track element tags. Audio, Group and Midi tracks are the primary tracks;
// primary and return tracks together are the mixer tracks (they participate
// in the send matrix). The main track has no ID and sits outside <Tracks>.
const (
	TagAudioTrack  = "AudioTrack"
	TagGroupTrack  = "GroupTrack"
	TagMidiTrack   = "MidiTrack"
	TagReturnTrack = "ReturnTrack"
	TagMainTrack   = "MainTrack"
)

// PrimaryTrackTags lists the recognized primary track tags.
var PrimaryTrackTags = []string{TagAudioTrack, TagGroupTrack, TagMidiTrack}

func isPrimaryTrackTag(tag string) bool {
	for _, t := range PrimaryTrackTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Track is the capability set shared by every track kind: a name, a device
// chain, and the linked-track-group marker. Accessor writes mutate the
// underlying tree node in place.
type Track struct {
	el *xmltree.Node
}

// Element returns the track's underlying tree node.
func (t *Track) Element() *xmltree.Node { return t.el }

// Tag returns the track's element tag, which identifies its kind.
func (t *Track) Tag() string { return t.el.Tag }

func (t *Track) nameNode() (*xmltree.Node, error) {
	return requiredChild(t.el, "Name")
}

// EffectiveName returns the name Live displays for the track.
func (t *Track) EffectiveName() (string, error) {
	name, err := t.nameNode()
	if err != nil {
		return "", err
	}
	return childValueString(name, "EffectiveName")
}

// SetEffectiveName updates the displayed track name.
func (t *Track) SetEffectiveName(v string) error {
	name, err := t.nameNode()
	if err != nil {
		return err
	}
	return setChildValueString(name, "EffectiveName", v)
}

// UserName returns the user-assigned track name, which may be empty.
func (t *Track) UserName() (string, error) {
	name, err := t.nameNode()
	if err != nil {
		return "", err
	}
	return childValueString(name, "UserName")
}

// SetUserName updates the user-assigned track name.
func (t *Track) SetUserName(v string) error {
	name, err := t.nameNode()
	if err != nil {
		return err
	}
	return setChildValueString(name, "UserName", v)
}

// IsContentSelectedInDocument reports the track's content-selection flag.
func (t *Track) IsContentSelectedInDocument() (bool, error) {
	return childValueBool(t.el, "IsContentSelectedInDocument")
}

// LinkedTrackGroupID returns the linked-track-group marker; -1 means the
// track is not part of a linked group. Linked groups are not supported by
// the editing engine.
func (t *Track) LinkedTrackGroupID() (int, error) {
	return childValueInt(t.el, "LinkedTrackGroupId")
}

// DeviceChain returns the track's device chain.
func (t *Track) DeviceChain() (*DeviceChain, error) {
	n, err := requiredChild(t.el, tagDeviceChain)
	if err != nil {
		return nil, err
	}
	return &DeviceChain{el: n}, nil
}

// displayName is EffectiveName with error paths flattened, for error
// messages only.
func (t *Track) displayName() string {
	name, err := t.EffectiveName()
	if err != nil {
		return "<unnamed>"
	}
	return name
}

// MixerTrack is a primary or return track: a track with an ID that
// participates in the send matrix.
type MixerTrack struct {
	Track
}

// ID returns the track's document-unique ID.
func (t *MixerTrack) ID() (int, error) {
	return attrInt(t.el, idAttr)
}

// SetID rewrites the track's ID attribute.
func (t *MixerTrack) SetID(v int) {
	setAttrInt(t.el, idAttr, v)
}

// TrackGroupID returns the ID of the enclosing group track, or -1 when the
// track is ungrouped.
func (t *MixerTrack) TrackGroupID() (int, error) {
	return childValueInt(t.el, "TrackGroupId")
}

// SetTrackGroupID rewrites the enclosing-group reference.
func (t *MixerTrack) SetTrackGroupID(v int) error {
	return setChildValueInt(t.el, "TrackGroupId", v)
}

// PrimaryTrack is an audio, group, or MIDI track.
type PrimaryTrack struct {
	MixerTrack
}

// PrimaryTrackFromNode builds a typed view over a primary track element,
// dispatching on the tag.
func PrimaryTrackFromNode(n *xmltree.Node) (*PrimaryTrack, error) {
	if n == nil || !isPrimaryTrackTag(n.Tag) {
		tag := "nil"
		if n != nil {
			tag = n.Tag
		}
		return nil, types.Schemaf("unrecognized primary track tag: %s", tag)
	}
	return &PrimaryTrack{MixerTrack{Track{el: n}}}, nil
}

// ReturnTrack is a mixer track that receives sends. Beyond its element it
// carries derived context: the index of its column in every mixer track's
// send list, and its pre/post flag from the document's SendsPre array. Both
// are recomputed from document position on every enumeration, never stored
// on the element.
type ReturnTrack struct {
	MixerTrack
	sendIndex int
	sendPre   bool
}

// NewReturnTrack builds a typed view over a return track element with the
// given derived context.
func NewReturnTrack(n *xmltree.Node, sendIndex int, sendPre bool) (*ReturnTrack, error) {
	if err := expectTag(n, TagReturnTrack); err != nil {
		return nil, err
	}
	return &ReturnTrack{MixerTrack: MixerTrack{Track{el: n}}, sendIndex: sendIndex, sendPre: sendPre}, nil
}

// SendIndex returns the track's column index in the send matrix of the
// document it was enumerated from.
func (t *ReturnTrack) SendIndex() int { return t.sendIndex }

// SendPre reports whether the track's send point is pre-fader.
func (t *ReturnTrack) SendPre() bool { return t.sendPre }

// MainTrack is the set's single main output track. It has no ID and no send
// columns.
type MainTrack struct {
	Track
}

// NewMainTrack builds a typed view over a main track element.
func NewMainTrack(n *xmltree.Node) (*MainTrack, error) {
	if err := expectTag(n, TagMainTrack); err != nil {
		return nil, err
	}
	return &MainTrack{Track{el: n}}, nil
}
