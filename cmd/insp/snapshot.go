package main

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/insp/internal/snapshot"
)

var (
	snapshotFile   string
	snapshotFilter filterFlags
	snapshotNoSave bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save and compare citation snapshots",
	Long: `Save a flat JSONL snapshot of an author's citation counts and report the
papers and citations gained or lost since the last one.

The snapshot file defaults to <output_dir>/<author>.snapshot.jsonl.`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <author>",
	Short: "Save the current citation counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotSave,
}

var snapshotDiffCmd = &cobra.Command{
	Use:   "diff <author>",
	Short: "Compare current citation counts with the saved snapshot",
	Long: `Compare current citation counts with the saved snapshot and print one
line per change. When there is no snapshot yet, one is saved. The snapshot is
replaced when anything changed, unless --no-save is given.

Examples:
  insp snapshot diff S.Weinberg.1 --human
  insp snapshot diff S.Weinberg.1 --file weinberg.jsonl --no-save`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshotDiff,
}

func init() {
	snapshotCmd.PersistentFlags().StringVar(&snapshotFile, "file", "", "Snapshot file")
	addFilterFlags(snapshotSaveCmd, &snapshotFilter)
	addFilterFlags(snapshotDiffCmd, &snapshotFilter)
	snapshotDiffCmd.Flags().BoolVar(&snapshotNoSave, "no-save", false, "Do not replace the snapshot")
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotDiffCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// SnapshotDiffResult is the JSON output for the snapshot diff command.
type SnapshotDiffResult struct {
	Path     string        `json:"path"`
	Created  bool          `json:"created"`
	Saved    bool          `json:"saved"`
	Diff     snapshot.Diff `json:"diff"`
	Messages []string      `json:"messages"`
}

// snapshotPath returns --file or the default path for the author argument.
func snapshotPath(arg string) string {
	if snapshotFile != "" {
		return snapshotFile
	}
	name := strings.NewReplacer("/", "_", " ", "_").Replace(strings.TrimSpace(arg))
	return filepath.Join(cfg.OutputDir, name+".snapshot.jsonl")
}

// takeSnapshot loads the author and builds the current snapshot entries.
func takeSnapshot(cmd *cobra.Command, arg string) []snapshot.Entry {
	f, err := snapshotFilter.build(cmd)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()
	a := mustLoadAuthor(ctx, newClient(), arg)
	if a.Len() == 0 {
		exitWithError(ExitNotFound, "no records loaded for %s, snapshot not taken", arg)
	}
	return snapshot.Take(a.ID.Value, a.Records(f), time.Now())
}

func saveSnapshot(path string, entries []snapshot.Entry) {
	if err := snapshot.WriteAll(path, entries); err != nil {
		exitWithError(ExitError, "saving snapshot: %v", err)
	}
	stats.SnapshotTaken(time.Now().Unix())
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	path := snapshotPath(args[0])
	entries := takeSnapshot(cmd, args[0])
	saveSnapshot(path, entries)

	result := StatusResponse{Status: "saved", Paths: []string{path}, Count: len(entries)}
	return output(result, func() {
		outputHuman("Saved %d records to %s\n", len(entries), path)
	})
}

func runSnapshotDiff(cmd *cobra.Command, args []string) error {
	path := snapshotPath(args[0])
	previous, exists, err := snapshot.ReadAll(path)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	current := takeSnapshot(cmd, args[0])

	result := SnapshotDiffResult{Path: path, Messages: []string{}}
	if !exists {
		saveSnapshot(path, current)
		result.Created, result.Saved = true, true
	} else {
		result.Diff = snapshot.Compare(previous, current)
		result.Messages = append(result.Messages, result.Diff.Messages()...)
		if !result.Diff.Empty() && !snapshotNoSave {
			saveSnapshot(path, current)
			result.Saved = true
		}
	}

	return output(result, func() {
		switch {
		case result.Created:
			outputHuman("No snapshot found, saved %d records to %s\n", len(current), path)
		case len(result.Messages) == 0:
			outputHuman("No changes since the last snapshot\n")
		default:
			for _, m := range result.Messages {
				outputHuman("%s\n", m)
			}
			if result.Saved {
				outputHuman("Saved.\n")
			}
		}
	})
}
