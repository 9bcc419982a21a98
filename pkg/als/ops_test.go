package als

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/alskit/internal/testutil"
)

func srcSpec() testutil.SetSpec {
	return testutil.SetSpec{
		Primaries: []testutil.TrackSpec{
			testutil.Track("audio", 1, "Synth"),
			testutil.Track("midi", 2, "Keys"),
		},
		Returns: []testutil.TrackSpec{
			testutil.Track("return", 3, "C-Chorus"),
		},
		SendsPre: []bool{true},
	}
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestCopyTracks(t *testing.T) {
	src := writeSet(t, "src.als", srcSpec())
	dst := writeSet(t, "dst.als", demoSpec())
	srcBefore := readFile(t, src)

	err := CopyTracks(src, dst, CopyRequest{
		Primary: []int{0},
		Return:  []int{0},
	}, nil)
	require.NoError(t, err)

	// The source file is read-only to the operation.
	require.Equal(t, srcBefore, readFile(t, src))

	info, err := Info(dst)
	require.NoError(t, err)
	require.Equal(t, 4, info.PrimaryTracks)
	require.Equal(t, 2, info.ReturnTracks)
	require.Equal(t, 2, info.SendColumns)

	tracks, err := ListTracks(dst)
	require.NoError(t, err)
	require.Equal(t, "Synth", tracks[0].Name)
	for _, track := range tracks[:6] {
		require.Equal(t, 2, track.Sends)
	}
}

func TestCopyTracksMainOnly(t *testing.T) {
	src := writeSet(t, "src.als", srcSpec())
	dst := writeSet(t, "dst.als", demoSpec())

	err := CopyTracks(src, dst, CopyRequest{Main: true}, nil)
	require.NoError(t, err)

	info, err := Info(dst)
	require.NoError(t, err)
	require.Equal(t, 3, info.PrimaryTracks)
	require.Equal(t, 1, info.ReturnTracks)
}

func TestCopyTracksDryRun(t *testing.T) {
	src := writeSet(t, "src.als", srcSpec())
	dst := writeSet(t, "dst.als", demoSpec())
	dstBefore := readFile(t, dst)

	err := CopyTracks(src, dst, CopyRequest{Primary: []int{0}}, &OperationOptions{DryRun: true})
	require.NoError(t, err)

	require.Equal(t, dstBefore, readFile(t, dst))
	require.NoFileExists(t, dst+".bak")
}

func TestCopyTracksBackup(t *testing.T) {
	src := writeSet(t, "src.als", srcSpec())
	dst := writeSet(t, "dst.als", demoSpec())
	dstBefore := readFile(t, dst)

	err := CopyTracks(src, dst, CopyRequest{Primary: []int{1}}, &OperationOptions{CreateBackup: true})
	require.NoError(t, err)

	// The backup holds the pre-edit bytes; the set itself was rewritten.
	require.Equal(t, dstBefore, readFile(t, dst+".bak"))
	require.NotEqual(t, dstBefore, readFile(t, dst))
}

func TestCopyTracksFailureLeavesDestination(t *testing.T) {
	src := writeSet(t, "src.als", srcSpec())
	dst := writeSet(t, "dst.als", demoSpec())
	dstBefore := readFile(t, dst)

	tests := []struct {
		name string
		req  CopyRequest
	}{
		{name: "bad primary index", req: CopyRequest{Primary: []int{9}}},
		{name: "bad return index", req: CopyRequest{Return: []int{3}}},
		{name: "bad destination index", req: CopyRequest{Primary: []int{0}, PrimaryIndex: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CopyTracks(src, dst, tt.req, nil)
			require.Error(t, err)
			require.Equal(t, dstBefore, readFile(t, dst))
		})
	}
}

func TestCopyTracksMissingFiles(t *testing.T) {
	dir := t.TempDir()
	existing := writeSet(t, "a.als", srcSpec())

	err := CopyTracks(filepath.Join(dir, "missing.als"), existing, CopyRequest{Primary: []int{0}}, nil)
	require.ErrorContains(t, err, "set file not found")

	err = CopyTracks(existing, filepath.Join(dir, "missing.als"), CopyRequest{Primary: []int{0}}, nil)
	require.ErrorContains(t, err, "set file not found")
}

func TestDeleteTrack(t *testing.T) {
	path := writeSet(t, "set.als", demoSpec())

	require.NoError(t, DeleteTrack(path, KindReturn, 0, nil))

	info, err := Info(path)
	require.NoError(t, err)
	require.Equal(t, 3, info.PrimaryTracks)
	require.Equal(t, 0, info.ReturnTracks)
	require.Equal(t, 0, info.SendColumns)

	require.NoError(t, DeleteTrack(path, KindPrimary, 0, nil))
	tracks, err := ListTracks(path)
	require.NoError(t, err)
	require.Equal(t, "Drums", tracks[0].Name)
}

func TestDeleteTrackUnknownKind(t *testing.T) {
	path := writeSet(t, "set.als", demoSpec())
	err := DeleteTrack(path, TrackKind("video"), 0, nil)
	require.ErrorContains(t, err, "unknown track kind")
}

func TestDeleteTrackDryRun(t *testing.T) {
	path := writeSet(t, "set.als", demoSpec())
	before := readFile(t, path)

	require.NoError(t, DeleteTrack(path, KindPrimary, 0, &OperationOptions{DryRun: true}))
	require.Equal(t, before, readFile(t, path))
}
