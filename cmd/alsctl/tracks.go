package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/alskit/pkg/als"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var tracksYAML bool

func init() {
	cmd := newTracksCmd()
	cmd.Flags().BoolVar(&tracksYAML, "yaml", false, "Output in YAML format")
	rootCmd.AddCommand(cmd)
}

func newTracksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tracks <set>",
		Short: "List the tracks in a set",
		Long: `The tracks command lists every track in a Live set: primary tracks,
return tracks, then the main track, with IDs and group membership.

Example:
  alsctl tracks project.als
  alsctl tracks project.als --json
  alsctl tracks project.als --yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTracks(args[0])
		},
	}
}

func runTracks(setPath string) error {
	printVerbose("Opening set: %s\n", setPath)

	tracks, err := als.ListTracks(setPath)
	if err != nil {
		return fmt.Errorf("failed to list tracks: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"set":    setPath,
			"tracks": tracks,
			"count":  len(tracks),
		})
	}
	if tracksYAML {
		return yaml.NewEncoder(os.Stdout).Encode(tracks)
	}

	printInfo("\nTracks in %s:\n", setPath)
	for _, t := range tracks {
		if t.Kind == "main" {
			printInfo("  %-6s      %s\n", t.Kind, t.Name)
			continue
		}
		group := ""
		if t.GroupID >= 0 {
			group = fmt.Sprintf("  (group %d)", t.GroupID)
		}
		printInfo("  %-6s %3d  %s%s\n", t.Kind, t.ID, t.Name, group)
	}
	return nil
}
