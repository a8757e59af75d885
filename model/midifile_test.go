package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDivisionTypeAndResolution(t *testing.T) {
	cases := []struct {
		division   uint16
		typ        DivisionType
		resolution int
	}{
		{0x0060, Metrical, 96},
		{0x01E0, Metrical, 480},
		{0x7FFF, Metrical, 0x7FFF},
		// -25 fps, 40 ticks per frame
		{0xE728, Timecode, 1000},
		// -30 fps, 80 ticks per frame
		{0xE250, Timecode, 2400},
		// -24 fps, 4 ticks per frame
		{0xE804, Timecode, 96},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("0x%04X", tc.division), func(t *testing.T) {
			f := &MidiFile{Header: Header{TimeDivision: tc.division}}
			assert.Equal(t, tc.typ, f.DivisionType())
			assert.Equal(t, tc.resolution, f.Resolution())
		})
	}
}

func TestFramesPerSecond(t *testing.T) {
	f := &MidiFile{Header: Header{TimeDivision: 0xE728}}
	fps, tpf := f.FramesPerSecond()
	assert.Equal(t, 25, fps)
	assert.Equal(t, 40, tpf)

	fps, tpf = (&MidiFile{Header: Header{TimeDivision: 96}}).FramesPerSecond()
	assert.Zero(t, fps)
	assert.Zero(t, tpf)
}

func TestRenderShowsZeroValues(t *testing.T) {
	f := &MidiFile{Tracks: []Track{{
		ProgramChange{Voice: Voice{}, Value: 0},
		NoteOn{Voice: Voice{Timing: Timing{DeltaTime: 10}}, Note: 0, Velocity: 1},
		Text{Kind: SubtypeMarker, Text: ""},
		KeySignature{Key: 2},
		SysEx{Data: []byte{1}},
	}}}

	assert.Equal(t, "Track 0\n"+
		"(0) programChange [0]\n"+
		"(10) noteOn [0]\n"+
		"(0) marker []\n"+
		"(0) keySignature\n"+
		"(0) sysEx\n", f.Render())
}

func TestDescribe(t *testing.T) {
	f := &MidiFile{Header: Header{Format: 1, TrackCount: 2, TimeDivision: 480}}
	assert.Equal(t, "Header:\n Format: 1\n Resolution: 480\n Tracks: 2\n", f.Describe())
}

func TestErrorKinds(t *testing.T) {
	err := fmt.Errorf("loading: %w", Mismatch(MalformedMetaEvent, 40, "length of setTempo", 3, 2))

	assert := assert.New(t)
	assert.True(errors.Is(err, MalformedMetaEvent))
	assert.False(errors.Is(err, OutOfBounds))
	assert.Equal("loading: midi: malformed meta event at offset 40: length of setTempo (expected 3, got 2)", err.Error())

	var perr *Error
	assert.True(errors.As(err, &perr))
	assert.Equal(40, perr.Offset)
	assert.Equal("kind(99)", Kind(99).String())
}

func TestBPM(t *testing.T) {
	assert.Equal(t, 120.0, SetTempo{MicrosecondsPerBeat: 500000}.BPM())
	assert.Zero(t, SetTempo{}.BPM())
}
