package bucket

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/midiparse/midi"
	"github.com/jsphweid/midiparse/model"
	"github.com/jsphweid/midiparse/summary"
	"github.com/jsphweid/midiparse/util"
	"go.uber.org/zap"
)

const ManifestFilename = "buckets.dat"

// SummariesPerBucket is how many file summaries go in one bucket file.
const SummariesPerBucket = 1024

func ProcessMidiFile(path string, logger *zap.Logger) (model.Summary, error) {
	parsed, err := midi.ReadMidiFile(path, midi.WithLogger(logger))
	if err != nil {
		return model.Summary{}, err
	}
	return summary.Of(filepath.Base(path), parsed), nil
}

// ProcessAllMidiFiles parses every file in m. Files that fail to parse are
// returned as failures rather than stopping the run.
func ProcessAllMidiFiles(m model.FileNumToMidiPath, logger *zap.Logger) (model.FileNumToSummary, []model.Failure) {
	res := make(model.FileNumToSummary)
	var failures []model.Failure

	keys := util.SortedKeys(m)
	for i, num := range keys {
		logger.Debug("processing midi file",
			zap.Int("n", i+1),
			zap.Int("of", len(keys)),
			zap.String("path", m[num]))

		s, err := ProcessMidiFile(m[num], logger)
		if err != nil {
			logger.Warn("skipping midi file", zap.String("path", m[num]), zap.Error(err))
			failures = append(failures, model.Failure{Path: m[num], Err: err})
			continue
		}
		res[num] = s
	}
	return res, failures
}

func writeBucket(dir string, nums []model.FileNum, summaries model.FileNumToSummary) (model.BucketOverview, error) {
	b := model.BucketOverview{
		Filename: uuid.New().String() + ".dat",
		Start:    nums[0],
		End:      nums[len(nums)-1],
	}
	contents := make(model.FileNumToSummary, len(nums))
	for _, num := range nums {
		contents[num] = summaries[num]
	}
	if err := util.CreateBinary(filepath.Join(dir, b.Filename), contents); err != nil {
		return model.BucketOverview{}, err
	}
	return b, nil
}

// WriteAll splits summaries into bucket files under dir, ordered by file
// number, and writes a manifest listing them.
func WriteAll(dir string, summaries model.FileNumToSummary, perBucket int) ([]model.BucketOverview, error) {
	if perBucket <= 0 {
		perBucket = SummariesPerBucket
	}

	var res []model.BucketOverview
	keys := util.SortedKeys(summaries)
	for start := 0; start < len(keys); start += perBucket {
		end := util.Min(start+perBucket, len(keys))
		b, err := writeBucket(dir, keys[start:end], summaries)
		if err != nil {
			return nil, err
		}
		res = append(res, b)
	}

	if err := util.CreateBinary(filepath.Join(dir, ManifestFilename), res); err != nil {
		return nil, err
	}
	return res, nil
}

// LoadAll reads back every bucket listed in dir's manifest.
func LoadAll(dir string) (model.FileNumToSummary, error) {
	buckets, err := util.ReadBinary[[]model.BucketOverview](filepath.Join(dir, ManifestFilename))
	if err != nil {
		return nil, fmt.Errorf("loading bucket manifest: %w", err)
	}

	res := make(model.FileNumToSummary)
	for _, b := range buckets {
		contents, err := util.ReadBinary[model.FileNumToSummary](filepath.Join(dir, b.Filename))
		if err != nil {
			return nil, err
		}
		for num, s := range contents {
			res[num] = s
		}
	}
	return res, nil
}
