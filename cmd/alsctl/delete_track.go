package main

import (
	"fmt"
	"strconv"

	"github.com/joshuapare/alskit/pkg/als"
	"github.com/spf13/cobra"
)

var (
	deleteBackup bool
	deleteDryRun bool
)

func init() {
	cmd := newDeleteTrackCmd()
	cmd.Flags().BoolVar(&deleteBackup, "backup", false, "Create a .bak copy of the set before writing")
	cmd.Flags().BoolVar(&deleteDryRun, "dry-run", false, "Run the whole edit in memory without writing the set")
	rootCmd.AddCommand(cmd)
}

func newDeleteTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-track <set> <primary|return> <index>",
		Short: "Delete a track from a set",
		Long: `The delete-track command removes the primary or return track at the
given index. Deleting a return track also removes its send column from
every mixer track and its SendsPre entry.

Example:
  alsctl delete-track project.als primary 2
  alsctl delete-track project.als return 0 --backup`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeleteTrack(args[0], args[1], args[2])
		},
	}
}

func runDeleteTrack(setPath, kind, indexArg string) error {
	index, err := strconv.Atoi(indexArg)
	if err != nil {
		return fmt.Errorf("bad index %q", indexArg)
	}

	printVerbose("Deleting %s track %d from %s\n", kind, index, setPath)

	opts := &als.OperationOptions{CreateBackup: deleteBackup, DryRun: deleteDryRun}
	if err := als.DeleteTrack(setPath, als.TrackKind(kind), index, opts); err != nil {
		return err
	}

	if deleteDryRun {
		printInfo("Dry run: %s track %d would be deleted from %s\n", kind, index, setPath)
	} else {
		printInfo("Deleted %s track %d from %s\n", kind, index, setPath)
	}
	return nil
}
