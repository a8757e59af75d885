package midi

import (
	"fmt"
	"os"

	"github.com/jsphweid/midiparse/chunk"
	"github.com/jsphweid/midiparse/constants"
	"github.com/jsphweid/midiparse/cursor"
	"github.com/jsphweid/midiparse/event"
	"github.com/jsphweid/midiparse/header"
	"github.com/jsphweid/midiparse/model"
	"go.uber.org/zap"
)

type options struct {
	logger *zap.Logger
}

// Option configures a parse.
type Option func(*options)

// WithLogger makes the parser log its progress at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyDefaultOptions(opts ...Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// Parse decodes a complete Standard MIDI File. Either the whole file is
// decoded or an error is returned; there is no partial result.
func Parse(data []byte, opts ...Option) (*model.MidiFile, error) {
	o := applyDefaultOptions(opts...)
	c := cursor.New(data)

	h, err := header.Decode(c)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("decoded header",
		zap.Uint16("format", h.Format),
		zap.Uint16("trackCount", h.TrackCount),
		zap.Uint16("timeDivision", h.TimeDivision))

	tracks := make([]model.Track, 0, h.TrackCount)
	for i := 0; i < int(h.TrackCount); i++ {
		start := c.Offset()
		ch, err := chunk.Read(c)
		if err != nil {
			return nil, err
		}
		if ch.Tag() != constants.TrackTag {
			return nil, model.NewError(model.InvalidTrackHeader, start,
				fmt.Sprintf("track %d: expected MTrk, found %q", i, ch.Tag()))
		}

		track, err := event.DecodeTrack(ch.Cursor())
		if err != nil {
			return nil, err
		}
		o.logger.Debug("decoded track",
			zap.Int("track", i),
			zap.Uint32("length", ch.Length),
			zap.Int("events", len(track)))
		tracks = append(tracks, track)
	}

	if rest := c.Remaining(); rest > 0 {
		o.logger.Debug("ignoring trailing bytes", zap.Int("bytes", rest))
	}

	return &model.MidiFile{Header: h, Tracks: tracks}, nil
}

// ReadMidiFile reads the file at path and parses it.
func ReadMidiFile(path string, opts ...Option) (*model.MidiFile, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}

	res, err := Parse(dat, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return res, nil
}
