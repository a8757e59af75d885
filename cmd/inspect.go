package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/midiparse/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Prints the header and every event of a midi file",
	Long:  `Prints the header and every event of a midi file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), args[0])
	},
}

func inspect(w io.Writer, path string) error {
	f, err := midi.ReadMidiFile(path, midi.WithLogger(logger))
	if err != nil {
		return err
	}
	fmt.Fprint(w, f.Describe())
	fmt.Fprintf(w, "Content:\n%s", f.Render())
	return nil
}
