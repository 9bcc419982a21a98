package als

import (
	"fmt"

	"github.com/joshuapare/alskit/als"
)

// CopyTracks copies tracks from the set at srcPath into the set at dstPath.
// The whole edit runs against the destination in memory and the file is
// rewritten only on success, so a failed copy leaves dstPath untouched.
//
// Example:
//
//	err := als.CopyTracks("drums.als", "project.als", als.CopyRequest{
//	    Primary:      []int{0, 1},
//	    PrimaryIndex: 2,
//	    Return:       []int{0},
//	}, &als.OperationOptions{CreateBackup: true})
func CopyTracks(srcPath, dstPath string, req CopyRequest, opts *OperationOptions) error {
	if opts == nil {
		opts = &OperationOptions{}
	}
	if !fileExists(srcPath) {
		return fmt.Errorf("set file not found: %s", srcPath)
	}
	if !fileExists(dstPath) {
		return fmt.Errorf("set file not found: %s", dstPath)
	}

	src, err := als.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source set %s: %w", srcPath, err)
	}
	dst, err := als.Open(dstPath)
	if err != nil {
		return fmt.Errorf("failed to open destination set %s: %w", dstPath, err)
	}

	insert, err := buildInsertRequest(src, req)
	if err != nil {
		return err
	}

	if err := dst.InsertTracks(insert); err != nil {
		return fmt.Errorf("failed to insert tracks into %s: %w", dstPath, err)
	}

	if opts.DryRun {
		return nil
	}
	if opts.CreateBackup {
		backupPath := dstPath + ".bak"
		if err := copyFile(dstPath, backupPath); err != nil {
			return fmt.Errorf("failed to create backup at %s: %w", backupPath, err)
		}
	}
	if err := dst.WriteFile(dstPath); err != nil {
		return fmt.Errorf("failed to write set %s: %w", dstPath, err)
	}
	return nil
}

func buildInsertRequest(src *als.LiveSet, req CopyRequest) (als.InsertTracksRequest, error) {
	var insert als.InsertTracksRequest
	insert.PrimaryIndex = req.PrimaryIndex
	insert.ReturnIndex = req.ReturnIndex

	if len(req.Primary) > 0 {
		primaries, err := src.PrimaryTracks()
		if err != nil {
			return insert, err
		}
		for _, i := range req.Primary {
			if i < 0 || i >= len(primaries) {
				return insert, fmt.Errorf("source has no primary track %d (%d tracks)", i, len(primaries))
			}
			insert.PrimaryTracks = append(insert.PrimaryTracks, primaries[i])
		}
	}
	if len(req.Return) > 0 {
		returns, err := src.ReturnTracks()
		if err != nil {
			return insert, err
		}
		for _, i := range req.Return {
			if i < 0 || i >= len(returns) {
				return insert, fmt.Errorf("source has no return track %d (%d tracks)", i, len(returns))
			}
			insert.ReturnTracks = append(insert.ReturnTracks, returns[i])
		}
	}
	if req.Main {
		main, err := src.MainTrack()
		if err != nil {
			return insert, err
		}
		insert.MainTrack = main
	}
	return insert, nil
}

// DeleteTrack removes the track at index from the named list of the set at
// setPath. Deleting a return track also removes its send column from every
// mixer track and its SendsPre entry. Like CopyTracks, the file is rewritten
// only after the edit succeeds in memory.
//
// Example:
//
//	err := als.DeleteTrack("project.als", als.KindReturn, 0, nil)
func DeleteTrack(setPath string, kind TrackKind, index int, opts *OperationOptions) error {
	if opts == nil {
		opts = &OperationOptions{}
	}
	if !fileExists(setPath) {
		return fmt.Errorf("set file not found: %s", setPath)
	}

	set, err := als.Open(setPath)
	if err != nil {
		return fmt.Errorf("failed to open set %s: %w", setPath, err)
	}

	switch kind {
	case KindPrimary:
		err = set.DeletePrimaryTrack(index)
	case KindReturn:
		err = set.DeleteReturnTrack(index)
	default:
		return fmt.Errorf("unknown track kind %q (want %q or %q)", kind, KindPrimary, KindReturn)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s track %d: %w", kind, index, err)
	}

	if opts.DryRun {
		return nil
	}
	if opts.CreateBackup {
		backupPath := setPath + ".bak"
		if err := copyFile(setPath, backupPath); err != nil {
			return fmt.Errorf("failed to create backup at %s: %w", backupPath, err)
		}
	}
	if err := set.WriteFile(setPath); err != nil {
		return fmt.Errorf("failed to write set %s: %w", setPath, err)
	}
	return nil
}
