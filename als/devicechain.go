package als

import (
	"github.com/joshuapare/alskit/internal/xmltree"
)

const tagDeviceChain = "DeviceChain"

// Routing element tags, one of each per device chain.
const (
	TagAudioInputRouting  = "AudioInputRouting"
	TagAudioOutputRouting = "AudioOutputRouting"
	TagMidiInputRouting   = "MidiInputRouting"
	TagMidiOutputRouting  = "MidiOutputRouting"
)

// DeviceChain holds a track's routings and its mixer.
type DeviceChain struct {
	el *xmltree.Node
}

// Element returns the underlying tree node.
func (c *DeviceChain) Element() *xmltree.Node { return c.el }

func (c *DeviceChain) routing(tag string) (*Routing, error) {
	n, err := requiredChild(c.el, tag)
	if err != nil {
		return nil, err
	}
	return &Routing{el: n}, nil
}

// AudioInputRouting returns the chain's audio input routing.
func (c *DeviceChain) AudioInputRouting() (*Routing, error) {
	return c.routing(TagAudioInputRouting)
}

// AudioOutputRouting returns the chain's audio output routing.
func (c *DeviceChain) AudioOutputRouting() (*Routing, error) {
	return c.routing(TagAudioOutputRouting)
}

// MidiInputRouting returns the chain's MIDI input routing.
func (c *DeviceChain) MidiInputRouting() (*Routing, error) {
	return c.routing(TagMidiInputRouting)
}

// MidiOutputRouting returns the chain's MIDI output routing.
func (c *DeviceChain) MidiOutputRouting() (*Routing, error) {
	return c.routing(TagMidiOutputRouting)
}

// Routings returns all four routings in a fixed order.
func (c *DeviceChain) Routings() ([]*Routing, error) {
	tags := []string{TagAudioInputRouting, TagAudioOutputRouting, TagMidiInputRouting, TagMidiOutputRouting}
	out := make([]*Routing, 0, len(tags))
	for _, tag := range tags {
		r, err := c.routing(tag)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Mixer returns the chain's mixer.
func (c *DeviceChain) Mixer() (*Mixer, error) {
	n, err := requiredChild(c.el, tagMixer)
	if err != nil {
		return nil, err
	}
	return &Mixer{el: n}, nil
}

// Routing is a track's audio or MIDI input/output endpoint. The target is a
// string such as "AudioIn/Track.14/TrackOut" or "MidiIn/External.All/-1";
// when it embeds a "Track.<id>" reference, the ID must be rewritten whenever
// the referenced track's ID changes.
type Routing struct {
	el *xmltree.Node
}

// Element returns the underlying tree node.
func (r *Routing) Element() *xmltree.Node { return r.el }

// Target returns the routing's target string.
func (r *Routing) Target() (string, error) {
	return childValueString(r.el, "Target")
}

// SetTarget rewrites the routing's target string.
func (r *Routing) SetTarget(v string) error {
	return setChildValueString(r.el, "Target", v)
}

// UpperDisplayString returns the first display line shown for the routing.
func (r *Routing) UpperDisplayString() (string, error) {
	return childValueString(r.el, "UpperDisplayString")
}

// LowerDisplayString returns the second display line shown for the routing.
func (r *Routing) LowerDisplayString() (string, error) {
	return childValueString(r.el, "LowerDisplayString")
}

const tagMixer = "Mixer"

// Mixer is the per-track mixer strip; the part this package cares about is
// its ordered send list.
type Mixer struct {
	el *xmltree.Node
}

// Element returns the underlying tree node.
func (m *Mixer) Element() *xmltree.Node { return m.el }

// Sends returns the mixer's send list.
func (m *Mixer) Sends() (*Sends, error) {
	n, err := requiredChild(m.el, tagSends)
	if err != nil {
		return nil, err
	}
	return &Sends{el: n}, nil
}

// ViewStateSessionTrackWidth returns the session-view track width. The
// element name carries Ableton's own typo.
func (m *Mixer) ViewStateSessionTrackWidth() (int, error) {
	return childValueInt(m.el, "ViewStateSesstionTrackWidth")
}
