package cmd

import (
	"github.com/jsphweid/midiparse/constants"
	"github.com/jsphweid/midiparse/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "midiparse",
	Short: "Standard MIDI File decoder",
	Long:  `Decodes Standard MIDI Files and inspects, reports on, indexes or serves them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "debug, info, warn or error")
}

func Execute() {
	defer func() { _ = logger.Sync() }()
	cobra.CheckErr(rootCmd.Execute())
}
