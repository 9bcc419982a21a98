package als

import (
	"regexp"
	"strconv"

	"github.com/joshuapare/alskit/pkg/types"
)

// trackRefPattern matches track-ID references embedded in routing targets,
// e.g. the "Track.14" in "AudioIn/Track.14/TrackOut". The main track is
// encoded as -1 and never matches.
var trackRefPattern = regexp.MustCompile(`(Track\.)(\d+)`)

// remapTrackIDs assigns fresh document-unique IDs to a batch of incoming
// mixer tracks and rewrites every intra-batch reference to the old IDs:
// TrackGroupId values and Track.<id> occurrences in routing targets. Fresh
// IDs start above the highest ID already present, so collisions with the
// destination are structurally impossible.
//
// Group references must stay inside the batch: a track grouped under a track
// that is not part of the batch is a dangling reference. Return tracks may
// never carry a group ID. Routing references to IDs outside the batch are
// left unchanged; they point at tracks of the destination document.
func (s *LiveSet) remapTrackIDs(incoming []*MixerTrack) error {
	existing, err := s.MixerTracks()
	if err != nil {
		return err
	}
	nextID := 1
	for _, t := range existing {
		id, err := t.ID()
		if err != nil {
			return err
		}
		if id >= nextID {
			nextID = id + 1
		}
	}

	replacements := make(map[int]int, len(incoming))
	for _, t := range incoming {
		oldID, err := t.ID()
		if err != nil {
			return err
		}
		replacements[oldID] = nextID
		t.SetID(nextID)
		nextID++
	}

	for _, t := range incoming {
		groupID, err := t.TrackGroupID()
		if err != nil {
			return err
		}
		if groupID >= 0 {
			if t.Tag() == TagReturnTrack {
				return types.Invariantf("return track %q has a group ID", t.displayName())
			}
			newGroupID, ok := replacements[groupID]
			if !ok {
				return types.Referencef("track %q is in an unrecognized group (%d)", t.displayName(), groupID)
			}
			if err := t.SetTrackGroupID(newGroupID); err != nil {
				return err
			}
		}

		chain, err := t.DeviceChain()
		if err != nil {
			return err
		}
		routings, err := chain.Routings()
		if err != nil {
			return err
		}
		for _, routing := range routings {
			target, err := routing.Target()
			if err != nil {
				return err
			}
			rewritten := rewriteTrackRefs(target, replacements)
			if rewritten != target {
				if err := routing.SetTarget(rewritten); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func rewriteTrackRefs(target string, replacements map[int]int) string {
	return trackRefPattern.ReplaceAllStringFunc(target, func(match string) string {
		sub := trackRefPattern.FindStringSubmatch(match)
		id, err := strconv.Atoi(sub[2])
		if err != nil {
			return match
		}
		newID, ok := replacements[id]
		if !ok {
			return match
		}
		return sub[1] + strconv.Itoa(newID)
	})
}

// checkLinkedTrackGroups rejects any incoming track that is part of a linked
// track group; the engine does not implement them.
func checkLinkedTrackGroups(incoming []*Track) error {
	for _, t := range incoming {
		id, err := t.LinkedTrackGroupID()
		if err != nil {
			return err
		}
		if id != -1 {
			return types.Wrap(types.ErrKindUnsupported, types.ErrUnsupported,
				"track %q is in a linked track group", t.displayName())
		}
	}
	return nil
}
