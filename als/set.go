package als

import (
	"bytes"
	"io"

	"github.com/joshuapare/alskit/internal/xmltree"
	"github.com/joshuapare/alskit/pkg/types"
)

// SetTag is the element tag of the Live set object inside the Ableton
// wrapper.
const SetTag = "LiveSet"

const (
	tagTracks        = "Tracks"
	tagNextPointeeID = "NextPointeeId"
)

// LiveSet is a typed view over one Live set document. It owns the tree
// exclusively: every track, device chain, and send enumerated from it aliases
// the set's nodes, and mutating operations assume no concurrent access.
type LiveSet struct {
	doc      *Document
	el       *xmltree.Node
	tracks   *xmltree.Node
	sendsPre *SendsPre
}

// Load parses a gzipped Live set from r.
func Load(r io.Reader) (*LiveSet, error) {
	doc, err := loadDocument(r)
	if err != nil {
		return nil, err
	}
	return newLiveSet(doc)
}

// LoadBytes parses a gzipped Live set from data.
func LoadBytes(data []byte) (*LiveSet, error) {
	return Load(bytes.NewReader(data))
}

func newLiveSet(doc *Document) (*LiveSet, error) {
	el := doc.Element()
	if el.Tag != SetTag {
		return nil, types.Schemaf("invalid element tag name: %q (expected %q)", el.Tag, SetTag)
	}

	tracks, err := requiredChild(el, tagTracks)
	if err != nil {
		return nil, err
	}
	if err := validateTrackOrder(tracks); err != nil {
		return nil, err
	}

	sendsPreNode, err := requiredChild(el, tagSendsPre)
	if err != nil {
		return nil, err
	}
	if _, err := requiredChild(el, tagNextPointeeID); err != nil {
		return nil, err
	}

	return &LiveSet{
		doc:      doc,
		el:       el,
		tracks:   tracks,
		sendsPre: &SendsPre{el: sendsPreNode},
	}, nil
}

// validateTrackOrder checks that every child of <Tracks> is a recognized
// track kind and that no primary track follows a return track.
func validateTrackOrder(tracks *xmltree.Node) error {
	sawReturn := false
	for _, c := range tracks.Children {
		switch {
		case c.Tag == TagReturnTrack:
			sawReturn = true
		case isPrimaryTrackTag(c.Tag):
			if sawReturn {
				return types.Invariantf("set tracks are out of order: %s found after %s", c.Tag, TagReturnTrack)
			}
		default:
			return types.Schemaf("unrecognized track tag: %s", c.Tag)
		}
	}
	return nil
}

// Document returns the underlying container.
func (s *LiveSet) Document() *Document { return s.doc }

// Element returns the <LiveSet> element.
func (s *LiveSet) Element() *xmltree.Node { return s.el }

// Write gzips the set to w; see Document.Write for the formatting contract.
func (s *LiveSet) Write(w io.Writer) error { return s.doc.Write(w) }

// WriteFile writes the set to path.
func (s *LiveSet) WriteFile(path string) error { return s.doc.WriteFile(path) }

// XML renders the uncompressed document text.
func (s *LiveSet) XML() []byte { return s.doc.XML() }

// Clone returns an independent deep copy of the set. Mutating operations are
// not transactional, so callers needing atomicity should mutate a clone and
// swap on success.
func (s *LiveSet) Clone() (*LiveSet, error) {
	root := s.doc.root.Clone()
	return newLiveSet(&Document{root: root, inner: root.Children[0]})
}

// MainTrack returns the set's main track.
func (s *LiveSet) MainTrack() (*MainTrack, error) {
	n, err := requiredChild(s.el, TagMainTrack)
	if err != nil {
		return nil, err
	}
	return NewMainTrack(n)
}

// PrimaryTracks returns the set's primary tracks in document order.
func (s *LiveSet) PrimaryTracks() ([]*PrimaryTrack, error) {
	var out []*PrimaryTrack
	for _, c := range s.tracks.Children {
		if c.Tag == TagReturnTrack {
			continue
		}
		t, err := PrimaryTrackFromNode(c)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// ReturnTracks returns the set's return tracks in document order, each with
// its derived send-matrix context (column index and pre/post flag) computed
// from the current document state.
func (s *LiveSet) ReturnTracks() ([]*ReturnTrack, error) {
	bools, err := s.sendsPre.Bools()
	if err != nil {
		return nil, err
	}
	var out []*ReturnTrack
	for _, c := range s.tracks.Children {
		if c.Tag != TagReturnTrack {
			continue
		}
		index := len(out)
		if index >= len(bools) {
			return nil, types.Schemaf("SendsPre has %d entries for %d or more return tracks", len(bools), index+1)
		}
		pre, err := bools[index].Value()
		if err != nil {
			return nil, err
		}
		t, err := NewReturnTrack(c, index, pre)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// MixerTracks returns every track that participates in the send matrix:
// primary tracks followed by return tracks.
func (s *LiveSet) MixerTracks() ([]*MixerTrack, error) {
	primaries, err := s.PrimaryTracks()
	if err != nil {
		return nil, err
	}
	returns, err := s.ReturnTracks()
	if err != nil {
		return nil, err
	}
	out := make([]*MixerTrack, 0, len(primaries)+len(returns))
	for _, t := range primaries {
		out = append(out, &t.MixerTrack)
	}
	for _, t := range returns {
		out = append(out, &t.MixerTrack)
	}
	return out, nil
}

// NextPointeeID returns the document's pointee-ID allocation counter. The
// counter always strictly exceeds every pointee ID in use.
func (s *LiveSet) NextPointeeID() (int, error) {
	return childValueInt(s.el, tagNextPointeeID)
}

func (s *LiveSet) setNextPointeeID(v int) error {
	return setChildValueInt(s.el, tagNextPointeeID, v)
}

// allocPointeeID hands out the next pointee ID and advances the counter.
func (s *LiveSet) allocPointeeID() (int, error) {
	id, err := s.NextPointeeID()
	if err != nil {
		return 0, err
	}
	if err := s.setNextPointeeID(id + 1); err != nil {
		return 0, err
	}
	return id, nil
}

// SendsPre returns the document-wide pre/post array.
func (s *LiveSet) SendsPre() *SendsPre { return s.sendsPre }
