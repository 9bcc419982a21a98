package als

// OperationOptions controls file-level operation behavior.
type OperationOptions struct {
	// CreateBackup copies the target file to <path>.bak before rewriting it.
	CreateBackup bool

	// DryRun performs the whole edit in memory, surfacing any errors, but
	// does not write the target file.
	DryRun bool
}

// TrackKind selects a track list for index-based operations.
type TrackKind string

const (
	// KindPrimary addresses the audio/group/MIDI tracks.
	KindPrimary TrackKind = "primary"
	// KindReturn addresses the return tracks.
	KindReturn TrackKind = "return"
)

// CopyRequest selects tracks of a source set and where they land in the
// destination.
type CopyRequest struct {
	// Primary lists source primary-track indices to copy; they are inserted
	// as a contiguous block at PrimaryIndex.
	Primary      []int
	PrimaryIndex int

	// Return lists source return-track indices to copy; they are inserted
	// as a contiguous block at ReturnIndex.
	Return      []int
	ReturnIndex int

	// Main also copies the source's main track over the destination's.
	Main bool
}
