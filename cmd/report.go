package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jsphweid/midiparse/bucket"
	"github.com/jsphweid/midiparse/file"
	"github.com/jsphweid/midiparse/model"
	"github.com/jsphweid/midiparse/summary"
	"github.com/jsphweid/midiparse/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <dir>",
	Short: "Summarizes every midi file in a directory",
	Long:  `Parses every .mid/.midi file under a directory and prints one line per file plus totals`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(cmd.OutOrStdout(), args[0])
	},
}

type dirReport struct {
	numFiles    int
	numParsed   int
	numTracks   uint64
	numNotes    uint64
	failedKinds map[model.Kind]int
	otherErrors int
}

func errorKind(err error) (model.Kind, bool) {
	var perr *model.Error
	if errors.As(err, &perr) {
		return perr.Kind, true
	}
	return 0, false
}

func report(w io.Writer, dir string) error {
	paths, err := util.GatherAllMidiPaths(dir, 0)
	if err != nil {
		return err
	}

	fileNums := file.CreateFileNumMap(paths)
	summaries, failures := bucket.ProcessAllMidiFiles(fileNums, logger)

	r := dirReport{numFiles: len(paths), failedKinds: make(map[model.Kind]int)}
	for _, num := range util.SortedKeys(summaries) {
		s := summaries[num]
		r.numParsed += 1
		r.numTracks += uint64(s.NumTracks)
		r.numNotes += uint64(summary.NumNotes(s))
		fmt.Fprintf(w, "%s: format %d, %d tracks, %s resolution %d, %d notes, %d ticks\n",
			s.Name, s.Format, s.NumTracks, s.DivisionType, s.Resolution, summary.NumNotes(s), summary.LongestTrack(s))
	}
	for _, f := range failures {
		if kind, ok := errorKind(f.Err); ok {
			r.failedKinds[kind] += 1
		} else {
			r.otherErrors += 1
		}
		fmt.Fprintf(w, "%s: FAILED: %v\n", filepath.Base(f.Path), f.Err)
	}

	fmt.Fprintf(w, "files: %d, parsed: %d, failed: %d\n", r.numFiles, r.numParsed, len(failures))
	fmt.Fprintf(w, "tracks: %d, notes: %d\n", r.numTracks, r.numNotes)
	for _, kind := range util.SortedKeys(r.failedKinds) {
		fmt.Fprintf(w, "  %s: %d\n", kind.String(), r.failedKinds[kind])
	}
	if r.otherErrors > 0 {
		fmt.Fprintf(w, "  other: %d\n", r.otherErrors)
	}
	return nil
}
