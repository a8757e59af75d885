package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"

	"github.com/jsphweid/midiparse/bucket"
	"github.com/jsphweid/midiparse/constants"
	"github.com/jsphweid/midiparse/db"
	"github.com/jsphweid/midiparse/file"
	"github.com/jsphweid/midiparse/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var useCatalog bool

func init() {
	indexCmd.Flags().BoolVar(&useCatalog, "catalog", false, "also put every summary in the DynamoDB catalog")
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index [maxNum]",
	Short: "Creates index",
	Long:  `Parses the midi files under MEDIA_PATH and writes their summaries to INDEX_PATH`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 1 {
			arg1, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			maxNum = arg1
		}

		return Index(cmd.Context(), maxNum)
	},
}

// Index builds the on-disk index from MEDIA_PATH.
func Index(ctx context.Context, maxNum int) error {
	mediaDir := constants.GetMediaDir()
	if mediaDir == "" {
		return errors.New("MEDIA_PATH environment variable is not set")
	}
	indexDir := constants.GetIndexDir()
	if err := util.RecreateOutputDir(indexDir); err != nil {
		return err
	}

	paths, err := util.GatherAllMidiPaths(mediaDir, maxNum)
	if err != nil {
		return err
	}
	fileNumMap := file.CreateFileNumMap(paths)
	summaries, failures := bucket.ProcessAllMidiFiles(fileNumMap, logger)

	buckets, err := bucket.WriteAll(indexDir, summaries, bucket.SummariesPerBucket)
	if err != nil {
		return err
	}
	if err := util.CreateBinary(filepath.Join(indexDir, constants.FileNumsFilename), fileNumMap); err != nil {
		return err
	}
	logger.Info("index written",
		zap.String("dir", indexDir),
		zap.Int("files", len(paths)),
		zap.Int("parsed", len(summaries)),
		zap.Int("failed", len(failures)),
		zap.Int("buckets", len(buckets)))

	if !useCatalog {
		return nil
	}
	catalog, err := db.NewFromConfig(constants.GetCatalogEndpoint(), constants.GetCatalogRegion(), constants.GetCatalogTable())
	if err != nil {
		return err
	}
	for _, num := range util.SortedKeys(summaries) {
		if err := catalog.Put(ctx, summaries[num]); err != nil {
			return err
		}
	}
	logger.Info("catalog updated", zap.Int("summaries", len(summaries)))
	return nil
}
