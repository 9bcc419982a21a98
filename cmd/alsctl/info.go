package main

import (
	"fmt"

	"github.com/joshuapare/alskit/pkg/als"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <set>",
		Short: "Show summary information about a set",
		Long: `The info command prints summary counters for a Live set: creator,
track counts, send-matrix width, and the pointee-ID allocation counter.

Example:
  alsctl info project.als
  alsctl info project.als --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
}

func runInfo(setPath string) error {
	printVerbose("Opening set: %s\n", setPath)

	info, err := als.Info(setPath)
	if err != nil {
		return fmt.Errorf("failed to read set info: %w", err)
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("Set: %s\n", setPath)
	printInfo("  Creator:        %s\n", info.Creator)
	printInfo("  Primary tracks: %d\n", info.PrimaryTracks)
	printInfo("  Return tracks:  %d\n", info.ReturnTracks)
	printInfo("  Send columns:   %d\n", info.SendColumns)
	printInfo("  NextPointeeId:  %d\n", info.NextPointeeID)
	return nil
}
