package als

import (
	"github.com/joshuapare/alskit/internal/xmltree"
	"github.com/joshuapare/alskit/pkg/types"
)

// InsertTracksRequest describes one batch insertion. Track slices may come
// from any set, including a different document; the engine deep-copies them
// before touching anything, so the source set is never aliased or modified.
type InsertTracksRequest struct {
	// PrimaryTracks are inserted at PrimaryIndex among the existing primary
	// tracks.
	PrimaryTracks []*PrimaryTrack
	PrimaryIndex  int

	// ReturnTracks are inserted at ReturnIndex among the existing return
	// tracks. Their send columns and SendsPre entries are created on every
	// mixer track in the document.
	ReturnTracks []*ReturnTrack
	ReturnIndex  int

	// MainTrack, when non-nil, replaces the set's main track in place.
	MainTrack *MainTrack
}

// InsertTracks inserts primary and/or return tracks at the given indices and
// optionally overwrites the main track. All tracks of one request must come
// from the same source set; logical relationships between them (group
// membership, routing, sends, control mappings) are preserved through ID
// remapping.
//
// The operation is not transactional: a failure discovered partway (for
// example a dangling pointee reference) can leave the set partially
// mutated. Callers requiring atomicity should operate on a Clone and discard
// it on failure.
func (s *LiveSet) InsertTracks(req InsertTracksRequest) error {
	curPrimaries, err := s.PrimaryTracks()
	if err != nil {
		return err
	}
	curReturns, err := s.ReturnTracks()
	if err != nil {
		return err
	}

	// Validate indices before any mutation.
	if err := checkIndex("primary tracks", req.PrimaryIndex, len(curPrimaries)); err != nil {
		return err
	}
	if err := checkIndex("return tracks", req.ReturnIndex, len(curReturns)); err != nil {
		return err
	}

	// Deep-copy the incoming tracks; the source document stays untouched.
	primaries := make([]*PrimaryTrack, 0, len(req.PrimaryTracks))
	for _, t := range req.PrimaryTracks {
		cp, err := PrimaryTrackFromNode(t.Element().Clone())
		if err != nil {
			return err
		}
		primaries = append(primaries, cp)
	}
	returns := make([]*ReturnTrack, 0, len(req.ReturnTracks))
	for _, t := range req.ReturnTracks {
		cp, err := NewReturnTrack(t.Element().Clone(), t.SendIndex(), t.SendPre())
		if err != nil {
			return err
		}
		returns = append(returns, cp)
	}
	var main *MainTrack
	if req.MainTrack != nil {
		main, err = NewMainTrack(req.MainTrack.Element().Clone())
		if err != nil {
			return err
		}
	}

	// Batch views for the remap passes.
	mixer := make([]*MixerTrack, 0, len(primaries)+len(returns))
	all := make([]*Track, 0, len(mixer)+1)
	elements := make([]*xmltree.Node, 0, len(mixer)+1)
	for _, t := range primaries {
		mixer = append(mixer, &t.MixerTrack)
		all = append(all, &t.Track)
		elements = append(elements, t.Element())
	}
	for _, t := range returns {
		mixer = append(mixer, &t.MixerTrack)
		all = append(all, &t.Track)
		elements = append(elements, t.Element())
	}
	if main != nil {
		all = append(all, &main.Track)
		elements = append(elements, main.Element())
	}

	if err := s.remapTrackIDs(mixer); err != nil {
		return err
	}
	if err := checkLinkedTrackGroups(all); err != nil {
		return err
	}
	if err := s.remapPointeeIDs(elements); err != nil {
		return err
	}

	// Open a send column (and SendsPre entry) on every mixer track already
	// in the document for each return track being inserted.
	for i := len(returns) - 1; i >= 0; i-- {
		current, err := s.MixerTracks()
		if err != nil {
			return err
		}
		for _, mt := range current {
			sends, err := mixerSends(&mt.Track)
			if err != nil {
				return err
			}
			if err := s.addBlankSend(sends, req.ReturnIndex); err != nil {
				return err
			}
		}
		if err := s.sendsPre.InsertBool(req.ReturnIndex, returns[i].SendPre()); err != nil {
			return err
		}
	}

	// Rebuild each incoming track's send list against the destination's
	// return-track ordering: its current holders are relative to the source
	// document and invalid here. Holders wired to return tracks of this same
	// batch are carried over; every other column gets a fresh blank holder.
	destReturnCount := len(curReturns)
	for _, t := range mixer {
		sends, err := mixerSends(&t.Track)
		if err != nil {
			return err
		}
		holders, err := sends.Holders()
		if err != nil {
			return err
		}

		type carriedSend struct {
			send    *Send
			enabled bool
		}
		carried := make([]carriedSend, 0, len(returns))
		for _, rt := range returns {
			idx := rt.SendIndex()
			if idx < 0 || idx >= len(holders) {
				return types.Referencef(
					"track %q has no send column %d for inserted return track %q",
					t.displayName(), idx, rt.displayName())
			}
			snd, err := holders[idx].Send()
			if err != nil {
				return err
			}
			enabled, err := holders[idx].EnabledByUser()
			if err != nil {
				return err
			}
			carried = append(carried, carriedSend{send: snd, enabled: enabled})
		}

		for sends.Len() > 0 {
			if err := sends.DeleteSend(0); err != nil {
				return err
			}
		}
		for j := 0; j < destReturnCount; j++ {
			if err := s.addBlankSend(sends, 0); err != nil {
				return err
			}
		}
		for i := len(carried) - 1; i >= 0; i-- {
			if err := sends.InsertSend(req.ReturnIndex, carried[i].send, carried[i].enabled); err != nil {
				return err
			}
		}
	}

	// Splice. Return tracks land after every primary track, preserving the
	// order invariant; the offset uses the pre-splice primary count.
	for i := len(primaries) - 1; i >= 0; i-- {
		insertChildIndented(s.tracks, req.PrimaryIndex, primaries[i].Element())
	}
	returnPos := len(curPrimaries) + len(primaries) + req.ReturnIndex
	for i := len(returns) - 1; i >= 0; i-- {
		insertChildIndented(s.tracks, returnPos, returns[i].Element())
	}

	if main != nil {
		existing := s.el.Find(TagMainTrack)
		if existing == nil {
			return types.Schemaf("live set has no main track")
		}
		el := main.Element()
		el.Reindent(s.el.Depth() + 1)
		s.el.ReplaceChildAt(s.el.Index(existing), el)
	}
	return nil
}

// InsertPrimaryTracks inserts primary tracks at the given index.
func (s *LiveSet) InsertPrimaryTracks(tracks []*PrimaryTrack, index int) error {
	return s.InsertTracks(InsertTracksRequest{PrimaryTracks: tracks, PrimaryIndex: index})
}

// InsertReturnTracks inserts return tracks at the given index.
func (s *LiveSet) InsertReturnTracks(tracks []*ReturnTrack, index int) error {
	return s.InsertTracks(InsertTracksRequest{ReturnTracks: tracks, ReturnIndex: index})
}

// SetMainTrack replaces the set's main track with a copy of the given one.
func (s *LiveSet) SetMainTrack(track *MainTrack) error {
	return s.InsertTracks(InsertTracksRequest{MainTrack: track})
}

func checkIndex(name string, index, count int) error {
	if index < 0 {
		return types.Rangef("%s index is negative: %d", name, index)
	}
	if index > count {
		return types.Rangef("%s index out of range: got %d, but there are only %d tracks", name, index, count)
	}
	return nil
}

// mixerSends resolves a track's send list through its device chain.
func mixerSends(t *Track) (*Sends, error) {
	chain, err := t.DeviceChain()
	if err != nil {
		return nil, err
	}
	mx, err := chain.Mixer()
	if err != nil {
		return nil, err
	}
	return mx.Sends()
}

// addBlankSend allocates fresh automation and modulation pointee IDs and
// inserts a blank send holder at the given column.
func (s *LiveSet) addBlankSend(sends *Sends, index int) error {
	autoID, err := s.allocPointeeID()
	if err != nil {
		return err
	}
	modID, err := s.allocPointeeID()
	if err != nil {
		return err
	}
	return sends.InsertSend(index, NewSend(autoID, modID), false)
}
