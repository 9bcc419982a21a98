// Package testutil builds small synthetic Live sets for tests: structurally
// faithful gzipped XML documents with tracks, send matrices, routings, and
// pointee wiring, without shipping binary fixtures.
package testutil

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"strconv"

	"github.com/joshuapare/alskit/internal/xmltree"
)

const prolog = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// TrackSpec describes one synthetic track.
type TrackSpec struct {
	Kind          string // "audio", "group", "midi", or "return"
	ID            int
	Name          string
	GroupID       int    // TrackGroupId; -1 when ungrouped
	LinkedGroupID int    // LinkedTrackGroupId; -1 unless testing linked groups
	AudioOut      string // audio output routing target

	// RefPointee overrides the PointeeId written into the track's automation
	// envelope. When nil the envelope references the track's own mixer
	// speaker target, keeping the track self-contained.
	RefPointee *int
}

// Track returns a TrackSpec with the usual defaults.
func Track(kind string, id int, name string) TrackSpec {
	return TrackSpec{
		Kind:          kind,
		ID:            id,
		Name:          name,
		GroupID:       -1,
		LinkedGroupID: -1,
		AudioOut:      "AudioOut/Main",
	}
}

// SetSpec describes one synthetic set.
type SetSpec struct {
	Primaries []TrackSpec
	Returns   []TrackSpec

	// SendsPre supplies the pre/post flag per return track; missing entries
	// default to false.
	SendsPre []bool

	// NextPointeeID overrides the computed counter when positive.
	NextPointeeID int

	// pointee ID allocation state
	next int
}

// SetXML renders the uncompressed document text for the spec.
func SetXML(spec SetSpec) ([]byte, error) {
	if spec.next == 0 {
		spec.next = 100
	}

	liveSet := xmltree.New("LiveSet")

	tracks := xmltree.New("Tracks")
	for _, t := range spec.Primaries {
		if t.Kind == "return" {
			return nil, fmt.Errorf("testutil: return track %q listed as primary", t.Name)
		}
		el, err := spec.trackElement(t, len(spec.Returns))
		if err != nil {
			return nil, err
		}
		tracks.AppendChild(el)
	}
	for _, t := range spec.Returns {
		if t.Kind != "return" {
			return nil, fmt.Errorf("testutil: non-return track %q listed as return", t.Name)
		}
		el, err := spec.trackElement(t, len(spec.Returns))
		if err != nil {
			return nil, err
		}
		tracks.AppendChild(el)
	}
	liveSet.AppendChild(tracks)

	main := spec.mainTrackElement()
	liveSet.AppendChild(main)

	next := spec.next
	if spec.NextPointeeID > 0 {
		next = spec.NextPointeeID
	}
	liveSet.AppendChild(valueEl("NextPointeeId", strconv.Itoa(next)))

	sendsPre := xmltree.New("SendsPre")
	for i := range spec.Returns {
		pre := false
		if i < len(spec.SendsPre) {
			pre = spec.SendsPre[i]
		}
		b := xmltree.New("SendPreBool")
		b.SetAttr("Id", strconv.Itoa(i))
		b.SetAttr("Value", strconv.FormatBool(pre))
		sendsPre.AppendChild(b)
	}
	liveSet.AppendChild(sendsPre)

	root := xmltree.New("Ableton")
	root.SetAttr("MajorVersion", "5")
	root.SetAttr("MinorVersion", "12.0_12049")
	root.SetAttr("SchemaChangeCount", "7")
	root.SetAttr("Creator", "Ableton Live 12.0")
	root.SetAttr("Revision", "5094b92fa547974769f44cf233f1474777d9434a")
	root.AppendChild(liveSet)
	root.Reindent(0)

	var buf bytes.Buffer
	buf.WriteString(prolog)
	buf.Write(xmltree.Serialize(root))
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Set renders the spec and gzips it, ready for als.LoadBytes.
func Set(spec SetSpec) ([]byte, error) {
	xml, err := SetXML(spec)
	if err != nil {
		return nil, err
	}
	return Gzip(xml), nil
}

// Gzip compresses raw document bytes the way Live writes them.
func Gzip(data []byte) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write(data)
	_ = zw.Close()
	return buf.Bytes()
}

func (spec *SetSpec) allocPointee() int {
	id := spec.next
	spec.next++
	return id
}

func (spec *SetSpec) trackElement(t TrackSpec, returnCount int) (*xmltree.Node, error) {
	var tag string
	switch t.Kind {
	case "audio":
		tag = "AudioTrack"
	case "group":
		tag = "GroupTrack"
	case "midi":
		tag = "MidiTrack"
	case "return":
		tag = "ReturnTrack"
	default:
		return nil, fmt.Errorf("testutil: unknown track kind %q", t.Kind)
	}

	el := xmltree.New(tag)
	el.SetAttr("Id", strconv.Itoa(t.ID))
	el.AppendChild(valueEl("LomId", "0"))
	el.AppendChild(valueEl("IsContentSelectedInDocument", "false"))

	name := xmltree.New("Name")
	name.AppendChild(valueEl("EffectiveName", t.Name))
	name.AppendChild(valueEl("UserName", t.Name))
	name.AppendChild(valueEl("Annotation", ""))
	el.AppendChild(name)

	el.AppendChild(valueEl("TrackGroupId", strconv.Itoa(t.GroupID)))
	el.AppendChild(valueEl("LinkedTrackGroupId", strconv.Itoa(t.LinkedGroupID)))

	speakerTarget := spec.allocPointee()
	chain := spec.deviceChain(t, returnCount, speakerTarget)
	el.AppendChild(chain)

	ref := speakerTarget
	if t.RefPointee != nil {
		ref = *t.RefPointee
	}
	el.AppendChild(automationEnvelopes(ref))

	return el, nil
}

func (spec *SetSpec) mainTrackElement() *xmltree.Node {
	el := xmltree.New("MainTrack")
	el.AppendChild(valueEl("LomId", "0"))
	el.AppendChild(valueEl("IsContentSelectedInDocument", "false"))

	name := xmltree.New("Name")
	name.AppendChild(valueEl("EffectiveName", "Main"))
	name.AppendChild(valueEl("UserName", ""))
	name.AppendChild(valueEl("Annotation", ""))
	el.AppendChild(name)

	el.AppendChild(valueEl("LinkedTrackGroupId", "-1"))

	chain := xmltree.New("DeviceChain")
	chain.AppendChild(routing("AudioInputRouting", "AudioIn/External/S0"))
	chain.AppendChild(routing("AudioOutputRouting", "AudioOut/External/S0"))
	chain.AppendChild(routing("MidiInputRouting", "MidiIn/External.All/-1"))
	chain.AppendChild(routing("MidiOutputRouting", "MidiOut/None"))

	mixer := xmltree.New("Mixer")
	mixer.AppendChild(xmltree.New("Sends"))
	mixer.AppendChild(speaker(spec.allocPointee()))
	mixer.AppendChild(valueEl("ViewStateSesstionTrackWidth", "93"))
	chain.AppendChild(mixer)

	el.AppendChild(chain)
	return el
}

func (spec *SetSpec) deviceChain(t TrackSpec, returnCount int, speakerTarget int) *xmltree.Node {
	chain := xmltree.New("DeviceChain")
	chain.AppendChild(routing("AudioInputRouting", "AudioIn/External/S0"))
	chain.AppendChild(routing("AudioOutputRouting", t.AudioOut))
	chain.AppendChild(routing("MidiInputRouting", "MidiIn/External.All/-1"))
	chain.AppendChild(routing("MidiOutputRouting", "MidiOut/None"))

	mixer := xmltree.New("Mixer")
	sends := xmltree.New("Sends")
	for i := 0; i < returnCount; i++ {
		sends.AppendChild(spec.sendHolder(i))
	}
	mixer.AppendChild(sends)
	mixer.AppendChild(speaker(speakerTarget))
	mixer.AppendChild(valueEl("ViewStateSesstionTrackWidth", "93"))
	chain.AppendChild(mixer)

	return chain
}

func (spec *SetSpec) sendHolder(index int) *xmltree.Node {
	holder := xmltree.New("TrackSendHolder")
	holder.SetAttr("Id", strconv.Itoa(index))

	send := xmltree.New("Send")
	send.AppendChild(valueEl("LomId", "0"))
	send.AppendChild(valueEl("Manual", "0.0003162277571"))
	rng := xmltree.New("MidiControllerRange")
	rng.AppendChild(valueEl("Min", "0.0003162277571"))
	rng.AppendChild(valueEl("Max", "1"))
	send.AppendChild(rng)
	send.AppendChild(pointeeTarget("AutomationTarget", spec.allocPointee()))
	send.AppendChild(pointeeTarget("ModulationTarget", spec.allocPointee()))

	holder.AppendChild(send)
	holder.AppendChild(valueEl("EnabledByUser", "false"))
	return holder
}

func routing(tag, target string) *xmltree.Node {
	r := xmltree.New(tag)
	r.AppendChild(valueEl("Target", target))
	r.AppendChild(valueEl("UpperDisplayString", ""))
	r.AppendChild(valueEl("LowerDisplayString", ""))
	r.AppendChild(xmltree.New("MpeSettings"))
	return r
}

func speaker(targetID int) *xmltree.Node {
	sp := xmltree.New("Speaker")
	sp.AppendChild(valueEl("LomId", "0"))
	sp.AppendChild(valueEl("Manual", "true"))
	sp.AppendChild(pointeeTarget("AutomationTarget", targetID))
	return sp
}

func pointeeTarget(tag string, id int) *xmltree.Node {
	n := xmltree.New(tag)
	n.SetAttr("Id", strconv.Itoa(id))
	n.AppendChild(valueEl("LockEnvelope", "0"))
	return n
}

func automationEnvelopes(pointeeID int) *xmltree.Node {
	envs := xmltree.New("AutomationEnvelopes")
	inner := xmltree.New("Envelopes")
	env := xmltree.New("AutomationEnvelope")
	env.SetAttr("Id", "0")
	target := xmltree.New("EnvelopeTarget")
	target.AppendChild(valueEl("PointeeId", strconv.Itoa(pointeeID)))
	env.AppendChild(target)
	inner.AppendChild(env)
	envs.AppendChild(inner)
	return envs
}

func valueEl(tag, value string) *xmltree.Node {
	n := xmltree.New(tag)
	n.SetAttr("Value", value)
	return n
}
