package als

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/alskit/internal/testutil"
	"github.com/joshuapare/alskit/internal/xmltree"
	"github.com/joshuapare/alskit/pkg/types"
)

// collectPointeeDefs gathers the ID of every pointee definition in the
// document, in document order.
func collectPointeeDefs(t *testing.T, set *LiveSet) []int {
	t.Helper()
	var ids []int
	err := set.Document().Root().Walk(func(n *xmltree.Node) error {
		if !isPointeeDefinition(n.Tag) {
			return nil
		}
		id, err := attrInt(n, idAttr)
		if err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	require.NoError(t, err)
	return ids
}

func requirePointeeIntegrity(t *testing.T, set *LiveSet) {
	t.Helper()
	next, err := set.NextPointeeID()
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, id := range collectPointeeDefs(t, set) {
		require.False(t, seen[id], "pointee ID %d defined twice", id)
		seen[id] = true
		require.Less(t, id, next, "pointee ID %d not dominated by NextPointeeId %d", id, next)
	}
}

func mixerSendWidths(t *testing.T, set *LiveSet) []int {
	t.Helper()
	mixers, err := set.MixerTracks()
	require.NoError(t, err)
	widths := make([]int, 0, len(mixers))
	for _, m := range mixers {
		sends, err := mixerSends(&m.Track)
		require.NoError(t, err)
		widths = append(widths, sends.Len())
	}
	return widths
}

func TestInsertReturnTrack(t *testing.T) {
	dst := loadSpec(t, basicSpec()) // primaries 1,2 + return 3
	src := loadSpec(t, testutil.SetSpec{
		Returns:  []testutil.TrackSpec{testutil.Track("return", 7, "C-Chorus")},
		SendsPre: []bool{true},
	})
	srcBefore := string(src.XML())

	srcReturns, err := src.ReturnTracks()
	require.NoError(t, err)
	require.NoError(t, dst.InsertReturnTracks(srcReturns, 0))

	// The source document is never touched.
	require.Equal(t, srcBefore, string(src.XML()))

	returns, err := dst.ReturnTracks()
	require.NoError(t, err)
	require.Len(t, returns, 2)

	name, err := returns[0].EffectiveName()
	require.NoError(t, err)
	require.Equal(t, "C-Chorus", name)
	id, err := returns[0].ID()
	require.NoError(t, err)
	require.Equal(t, 4, id) // above the destination's highest (3)
	require.True(t, returns[0].SendPre())

	name, err = returns[1].EffectiveName()
	require.NoError(t, err)
	require.Equal(t, "A-Reverb", name)
	require.Equal(t, 1, returns[1].SendIndex())

	// Every mixer track gained the new column; holder IDs stay positional.
	require.Equal(t, []int{2, 2, 2, 2}, mixerSendWidths(t, dst))
	mixers, err := dst.MixerTracks()
	require.NoError(t, err)
	for _, m := range mixers {
		sends, err := mixerSends(&m.Track)
		require.NoError(t, err)
		require.Equal(t, []int{0, 1}, holderIDs(t, sends))
	}

	require.Equal(t, 2, dst.SendsPre().Len())
	bools, err := dst.SendsPre().Bools()
	require.NoError(t, err)
	first, err := bools[0].Value()
	require.NoError(t, err)
	require.True(t, first)
	second, err := bools[1].Value()
	require.NoError(t, err)
	require.False(t, second)

	requirePointeeIntegrity(t, dst)

	// The mutated document still loads cleanly from its own serialization.
	_, err = LoadBytes(mustGzipXML(t, dst))
	require.NoError(t, err)
}

func TestInsertGroupedPrimaries(t *testing.T) {
	dst := loadSpec(t, basicSpec())

	group := testutil.Track("group", 10, "Drums")
	child := testutil.Track("audio", 11, "Kick")
	child.GroupID = 10
	src := loadSpec(t, testutil.SetSpec{
		Primaries: []testutil.TrackSpec{group, child},
	})

	srcPrimaries, err := src.PrimaryTracks()
	require.NoError(t, err)
	require.NoError(t, dst.InsertPrimaryTracks(srcPrimaries, 1))

	primaries, err := dst.PrimaryTracks()
	require.NoError(t, err)
	names := make([]string, 0, len(primaries))
	for _, p := range primaries {
		n, err := p.EffectiveName()
		require.NoError(t, err)
		names = append(names, n)
	}
	require.Equal(t, []string{"1-Audio", "Drums", "Kick", "2-MIDI"}, names)

	groupID, err := primaries[1].ID()
	require.NoError(t, err)
	require.Equal(t, 4, groupID)
	childGroup, err := primaries[2].TrackGroupID()
	require.NoError(t, err)
	require.Equal(t, groupID, childGroup)

	// Inserted tracks picked up the destination's send-matrix width.
	require.Equal(t, []int{1, 1, 1, 1, 1}, mixerSendWidths(t, dst))

	requirePointeeIntegrity(t, dst)
}

func TestInsertTracksEmptyRequest(t *testing.T) {
	set := loadSpec(t, basicSpec())
	before := string(set.XML())

	require.NoError(t, set.InsertTracks(InsertTracksRequest{}))
	require.Equal(t, before, string(set.XML()))
}

func TestInsertTracksIndexErrors(t *testing.T) {
	src := loadSpec(t, testutil.SetSpec{
		Primaries: []testutil.TrackSpec{testutil.Track("audio", 9, "Pad")},
	})
	srcPrimaries, err := src.PrimaryTracks()
	require.NoError(t, err)

	tests := []struct {
		name string
		req  InsertTracksRequest
	}{
		{
			name: "primary index past end",
			req:  InsertTracksRequest{PrimaryTracks: srcPrimaries, PrimaryIndex: 5},
		},
		{
			name: "negative primary index",
			req:  InsertTracksRequest{PrimaryTracks: srcPrimaries, PrimaryIndex: -1},
		},
		{
			name: "return index past end",
			req:  InsertTracksRequest{ReturnIndex: 3},
		},
		{
			name: "negative return index",
			req:  InsertTracksRequest{ReturnIndex: -2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := loadSpec(t, basicSpec())
			before := string(dst.XML())

			err := dst.InsertTracks(tt.req)
			require.True(t, types.IsKind(err, types.ErrKindRange), "got %v", err)
			// Index validation happens before any mutation.
			require.Equal(t, before, string(dst.XML()))
		})
	}
}

func TestInsertTracksDanglingPointee(t *testing.T) {
	dst := loadSpec(t, basicSpec())

	dangling := 9999
	bad := testutil.Track("audio", 9, "Pad")
	bad.RefPointee = &dangling
	src := loadSpec(t, testutil.SetSpec{
		Primaries: []testutil.TrackSpec{bad},
	})

	srcPrimaries, err := src.PrimaryTracks()
	require.NoError(t, err)
	err = dst.InsertPrimaryTracks(srcPrimaries, 0)
	require.True(t, types.IsKind(err, types.ErrKindReference), "got %v", err)
}

func TestInsertTracksLinkedGroup(t *testing.T) {
	dst := loadSpec(t, basicSpec())

	linked := testutil.Track("audio", 9, "Pad")
	linked.LinkedGroupID = 2
	src := loadSpec(t, testutil.SetSpec{
		Primaries: []testutil.TrackSpec{linked},
	})

	srcPrimaries, err := src.PrimaryTracks()
	require.NoError(t, err)
	err = dst.InsertPrimaryTracks(srcPrimaries, 0)
	require.True(t, types.IsKind(err, types.ErrKindUnsupported), "got %v", err)
}

func TestInsertTracksExternalRoutingUntouched(t *testing.T) {
	dst := loadSpec(t, basicSpec())

	// A routing reference to a track outside the batch points at the
	// destination document and must survive the remap as-is.
	ext := testutil.Track("audio", 9, "Resample")
	ext.AudioOut = "AudioOut/Track.2/TrackOut"
	src := loadSpec(t, testutil.SetSpec{
		Primaries: []testutil.TrackSpec{ext},
	})

	srcPrimaries, err := src.PrimaryTracks()
	require.NoError(t, err)
	require.NoError(t, dst.InsertPrimaryTracks(srcPrimaries, 2))

	primaries, err := dst.PrimaryTracks()
	require.NoError(t, err)
	chain, err := primaries[2].DeviceChain()
	require.NoError(t, err)
	out, err := chain.AudioOutputRouting()
	require.NoError(t, err)
	target, err := out.Target()
	require.NoError(t, err)
	require.Equal(t, "AudioOut/Track.2/TrackOut", target)
}

func TestInsertTracksShortSendList(t *testing.T) {
	// A mixer track carrying fewer holders than the document has return
	// tracks loads fine; inserting a return track into such a set must
	// surface the width mismatch as an internal fault, not a panic.
	dst := loadSpec(t, basicSpec())
	require.NoError(t, primarySends(t, dst, 0).DeleteSend(0))

	src := loadSpec(t, testutil.SetSpec{
		Returns:  []testutil.TrackSpec{testutil.Track("return", 7, "C-Chorus")},
		SendsPre: []bool{false},
	})
	srcReturns, err := src.ReturnTracks()
	require.NoError(t, err)

	err = dst.InsertReturnTracks(srcReturns, 1)
	require.True(t, types.IsKind(err, types.ErrKindInternal), "got %v", err)
}

func TestSetMainTrack(t *testing.T) {
	dst := loadSpec(t, basicSpec())
	src := loadSpec(t, testutil.SetSpec{
		Primaries: []testutil.TrackSpec{testutil.Track("audio", 1, "1-Audio")},
	})

	srcMain, err := src.MainTrack()
	require.NoError(t, err)
	require.NoError(t, srcMain.SetEffectiveName("Template Main"))

	require.NoError(t, dst.SetMainTrack(srcMain))

	main, err := dst.MainTrack()
	require.NoError(t, err)
	name, err := main.EffectiveName()
	require.NoError(t, err)
	require.Equal(t, "Template Main", name)

	requirePointeeIntegrity(t, dst)
	_, err = LoadBytes(mustGzipXML(t, dst))
	require.NoError(t, err)
}

func TestInsertCarriesSendLevels(t *testing.T) {
	// Copy a primary together with the return it sends to: the send wired
	// between them survives, rebuilt at the destination's column for the
	// inserted return.
	src := loadSpec(t, testutil.SetSpec{
		Primaries: []testutil.TrackSpec{testutil.Track("audio", 1, "Wet")},
		Returns:   []testutil.TrackSpec{testutil.Track("return", 2, "A-Reverb")},
		SendsPre:  []bool{false},
	})
	srcPrimaries, err := src.PrimaryTracks()
	require.NoError(t, err)
	srcReturns, err := src.ReturnTracks()
	require.NoError(t, err)

	// Dial in a recognizable level on the source send.
	sends, err := mixerSends(&srcPrimaries[0].Track)
	require.NoError(t, err)
	holders, err := sends.Holders()
	require.NoError(t, err)
	snd, err := holders[0].Send()
	require.NoError(t, err)
	require.NoError(t, snd.SetManual(0.25))

	dst := loadSpec(t, basicSpec()) // one existing return
	require.NoError(t, dst.InsertTracks(InsertTracksRequest{
		PrimaryTracks: srcPrimaries,
		PrimaryIndex:  0,
		ReturnTracks:  srcReturns,
		ReturnIndex:   1,
	}))

	primaries, err := dst.PrimaryTracks()
	require.NoError(t, err)
	name, err := primaries[0].EffectiveName()
	require.NoError(t, err)
	require.Equal(t, "Wet", name)

	// Two columns now: the destination's return at 0, the inserted one at 1.
	require.Equal(t, []int{2, 2, 2, 2, 2}, mixerSendWidths(t, dst))

	sends, err = mixerSends(&primaries[0].Track)
	require.NoError(t, err)
	holders, err = sends.Holders()
	require.NoError(t, err)

	blank, err := holders[0].Send()
	require.NoError(t, err)
	manual, err := blank.Manual()
	require.NoError(t, err)
	require.InDelta(t, 0.0003162277571, manual, 1e-12)

	carried, err := holders[1].Send()
	require.NoError(t, err)
	manual, err = carried.Manual()
	require.NoError(t, err)
	require.InDelta(t, 0.25, manual, 1e-12)

	requirePointeeIntegrity(t, dst)
}
