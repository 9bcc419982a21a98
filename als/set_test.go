package als

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/alskit/internal/testutil"
	"github.com/joshuapare/alskit/pkg/types"
)

func TestSetAccessors(t *testing.T) {
	set := loadSpec(t, testutil.SetSpec{
		Primaries: []testutil.TrackSpec{
			testutil.Track("audio", 1, "1-Audio"),
			testutil.Track("group", 2, "Drums"),
			testutil.Track("midi", 3, "3-MIDI"),
		},
		Returns: []testutil.TrackSpec{
			testutil.Track("return", 4, "A-Reverb"),
			testutil.Track("return", 5, "B-Delay"),
		},
		SendsPre: []bool{true, false},
	})

	primaries, err := set.PrimaryTracks()
	require.NoError(t, err)
	require.Len(t, primaries, 3)
	require.Equal(t, TagGroupTrack, primaries[1].Tag())

	name, err := primaries[0].EffectiveName()
	require.NoError(t, err)
	require.Equal(t, "1-Audio", name)

	id, err := primaries[2].ID()
	require.NoError(t, err)
	require.Equal(t, 3, id)

	returns, err := set.ReturnTracks()
	require.NoError(t, err)
	require.Len(t, returns, 2)
	require.Equal(t, 0, returns[0].SendIndex())
	require.True(t, returns[0].SendPre())
	require.Equal(t, 1, returns[1].SendIndex())
	require.False(t, returns[1].SendPre())

	mixers, err := set.MixerTracks()
	require.NoError(t, err)
	require.Len(t, mixers, 5)

	main, err := set.MainTrack()
	require.NoError(t, err)
	mainName, err := main.EffectiveName()
	require.NoError(t, err)
	require.Equal(t, "Main", mainName)

	next, err := set.NextPointeeID()
	require.NoError(t, err)
	require.Greater(t, next, 100)

	require.Equal(t, 2, set.SendsPre().Len())
}

func TestSetRename(t *testing.T) {
	set := loadSpec(t, basicSpec())

	primaries, err := set.PrimaryTracks()
	require.NoError(t, err)
	require.NoError(t, primaries[0].SetEffectiveName("Kick"))
	require.NoError(t, primaries[0].SetUserName("Kick"))

	reloaded, err := LoadBytes(mustGzipXML(t, set))
	require.NoError(t, err)
	again, err := reloaded.PrimaryTracks()
	require.NoError(t, err)
	name, err := again[0].EffectiveName()
	require.NoError(t, err)
	require.Equal(t, "Kick", name)
}

func mustGzipXML(t *testing.T, set *LiveSet) []byte {
	t.Helper()
	return testutil.Gzip(set.XML())
}

func TestSetSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		kind types.ErrKind
	}{
		{
			name: "wrong inner element",
			xml:  "<Ableton><MidiFile /></Ableton>",
			kind: types.ErrKindSchema,
		},
		{
			name: "missing tracks",
			xml:  "<Ableton><LiveSet><NextPointeeId Value=\"1\" /><SendsPre /></LiveSet></Ableton>",
			kind: types.ErrKindSchema,
		},
		{
			name: "missing sends-pre",
			xml:  "<Ableton><LiveSet><Tracks /><NextPointeeId Value=\"1\" /></LiveSet></Ableton>",
			kind: types.ErrKindSchema,
		},
		{
			name: "missing pointee counter",
			xml:  "<Ableton><LiveSet><Tracks /><SendsPre /></LiveSet></Ableton>",
			kind: types.ErrKindSchema,
		},
		{
			name: "unrecognized track tag",
			xml:  "<Ableton><LiveSet><Tracks><VideoTrack Id=\"1\" /></Tracks><NextPointeeId Value=\"1\" /><SendsPre /></LiveSet></Ableton>",
			kind: types.ErrKindSchema,
		},
		{
			name: "primary after return",
			xml:  "<Ableton><LiveSet><Tracks><ReturnTrack Id=\"1\" /><AudioTrack Id=\"2\" /></Tracks><NextPointeeId Value=\"1\" /><SendsPre /></LiveSet></Ableton>",
			kind: types.ErrKindInvariant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes(testutil.Gzip([]byte(tt.xml)))
			require.Error(t, err)
			require.True(t, types.IsKind(err, tt.kind), "got %v", err)
		})
	}
}

func TestReturnTracksShortSendsPre(t *testing.T) {
	xml := "<Ableton><LiveSet><Tracks><ReturnTrack Id=\"1\" /></Tracks><NextPointeeId Value=\"1\" /><SendsPre /></LiveSet></Ableton>"
	set, err := LoadBytes(testutil.Gzip([]byte(xml)))
	require.NoError(t, err)

	_, err = set.ReturnTracks()
	require.True(t, types.IsKind(err, types.ErrKindSchema), "got %v", err)
}

func TestCloneIndependence(t *testing.T) {
	set := loadSpec(t, basicSpec())
	before := string(set.XML())

	clone, err := set.Clone()
	require.NoError(t, err)

	primaries, err := clone.PrimaryTracks()
	require.NoError(t, err)
	require.NoError(t, primaries[0].SetEffectiveName("Renamed"))
	require.NoError(t, clone.DeletePrimaryTrack(1))

	require.Equal(t, before, string(set.XML()))
	require.NotEqual(t, before, string(clone.XML()))
}
