package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/midiparse/crosscheck"
	"github.com/jsphweid/midiparse/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Checks a decoded file against gomidi",
	Long:  `Decodes a midi file and compares track and note counts with gomidi's reading of it`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		f, err := midi.Parse(data, midi.WithLogger(logger))
		if err != nil {
			return err
		}
		r, err := crosscheck.Compare(data, f)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, m := range r.Mismatches {
			fmt.Fprintln(out, m)
		}
		if !r.OK() {
			return fmt.Errorf("%s: %d mismatches", args[0], len(r.Mismatches))
		}
		fmt.Fprintf(out, "%s: ok, %d tracks agree\n", args[0], len(r.Ours))
		return nil
	},
}
