package als

import (
	"github.com/joshuapare/alskit/pkg/types"
)

// DeletePrimaryTrack removes the primary track at index. Primary tracks have
// no send column, so the send matrix is unaffected.
func (s *LiveSet) DeletePrimaryTrack(index int) error {
	tracks, err := s.PrimaryTracks()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(tracks) {
		return types.Rangef("primary track index out of range: got %d, but there are only %d tracks", index, len(tracks))
	}
	pos := s.tracks.Index(tracks[index].Element())
	if pos < 0 {
		return types.Internalf("primary track %d not found among track elements", index)
	}
	removeChildIndented(s.tracks, pos)
	return nil
}

// DeleteReturnTrack removes the return track at index and its column from
// the send matrix: every mixer track's send list loses the holder at that
// column, SendsPre loses the matching entry, and positional IDs are
// renumbered.
func (s *LiveSet) DeleteReturnTrack(index int) error {
	tracks, err := s.ReturnTracks()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(tracks) {
		return types.Rangef("return track index out of range: got %d, but there are only %d tracks", index, len(tracks))
	}
	pos := s.tracks.Index(tracks[index].Element())
	if pos < 0 {
		return types.Internalf("return track %d not found among track elements", index)
	}
	removeChildIndented(s.tracks, pos)

	remaining, err := s.MixerTracks()
	if err != nil {
		return err
	}
	for _, t := range remaining {
		sends, err := mixerSends(&t.Track)
		if err != nil {
			return err
		}
		if err := sends.DeleteSend(index); err != nil {
			return err
		}
	}
	return s.sendsPre.DeleteBool(index)
}
