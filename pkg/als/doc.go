/*
Package als provides a high-level, path-oriented API for editing Ableton
Live set (.als) files.

# Quick Start

Copy a track from one set into another:

	err := als.CopyTracks("source.als", "project.als", als.CopyRequest{
	    Primary: []int{0},
	}, nil)

# Features

  - Track listing and set inspection
  - Copying primary and return tracks between sets, with automatic
    track-ID, pointee-ID, and routing remapping
  - Send-matrix maintenance when return tracks are added or removed
  - Byte-exact round-trips for unmodified documents
  - Optional backups and dry runs

# Basic Usage

Inspect a set:

	info, err := als.Info("project.als")
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Printf("%d primary, %d return tracks\n", info.PrimaryTracks, info.ReturnTracks)

Delete a return track, keeping a backup:

	err := als.DeleteTrack("project.als", als.KindReturn, 0, &als.OperationOptions{
	    CreateBackup: true,
	})

File-level operations are copy-on-write: the destination file is rewritten
only after the whole edit succeeds in memory, so a failed operation leaves
it untouched. For document-level editing (working with sets already in
memory), use the core package github.com/joshuapare/alskit/als directly;
this package re-exports its main types.
*/
package als
