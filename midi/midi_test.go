package midi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/midiparse/fixture"
	"github.com/jsphweid/midiparse/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseStandardExample(t *testing.T) {
	f, err := Parse(fixture.StandardExample())

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.Header{Format: 1, TrackCount: 4, TimeDivision: 96}, f.Header)
	assert.Len(f.Tracks, int(f.Header.TrackCount))
	assert.Equal(model.Metrical, f.DivisionType())
	assert.Equal(96, f.Resolution())

	assert.Equal(model.SetTempo{
		Meta:                model.Meta{Timing: model.Timing{DeltaTime: 0}},
		MicrosecondsPerBeat: 500000,
	}, f.Tracks[0][1])

	// the last track leans on running status throughout
	var notes []model.Subtype
	for _, e := range f.Tracks[3] {
		notes = append(notes, e.Subtype())
	}
	assert.Equal([]model.Subtype{
		model.SubtypeProgramChange,
		model.SubtypeNoteOn,
		model.SubtypeNoteOn,
		model.SubtypeNoteOff,
		model.SubtypeNoteOff,
		model.SubtypeEndOfTrack,
	}, notes)
}

func TestParseRender(t *testing.T) {
	f, err := Parse(fixture.StandardExample())
	assert.NoError(t, err)

	want := "Track 0\n" +
		"(0) timeSignature\n" +
		"(0) setTempo [500000]\n" +
		"(384) endOfTrack\n" +
		"Track 1\n" +
		"(0) programChange [5]\n" +
		"(192) noteOn [76]\n" +
		"(192) noteOff [76]\n" +
		"(0) endOfTrack\n" +
		"Track 2\n" +
		"(0) programChange [46]\n" +
		"(96) noteOn [67]\n" +
		"(288) noteOff [67]\n" +
		"(0) endOfTrack\n" +
		"Track 3\n" +
		"(0) programChange [70]\n" +
		"(0) noteOn [48]\n" +
		"(0) noteOn [60]\n" +
		"(384) noteOff [48]\n" +
		"(0) noteOff [60]\n" +
		"(0) endOfTrack\n"
	assert.Equal(t, want, f.Render())
}

func TestParseGomidiWrittenFile(t *testing.T) {
	song := fixture.Song{
		TicksPerQuarter: 480,
		Names:           []string{"Melody", "Bass"},
		Tracks:          [][]uint8{{60, 62, 64}, {36, 43}},
		NoteTicks:       240,
	}
	data, err := song.Write()
	assert.NoError(t, err)

	f, err := Parse(data)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(uint16(1), f.Header.Format)
	assert.Len(f.Tracks, 2)
	assert.Equal(480, f.Resolution())

	for i, track := range f.Tracks {
		var name string
		var ons []uint8
		for _, e := range track {
			switch ev := e.(type) {
			case model.Text:
				if ev.Kind == model.SubtypeTrackName {
					name = ev.Text
				}
			case model.NoteOn:
				ons = append(ons, ev.Note)
			}
		}
		assert.Equal(song.Names[i], name)
		assert.Equal(song.Tracks[i], ons)
		assert.Equal(model.SubtypeEndOfTrack, track[len(track)-1].Subtype())
	}
}

func TestParseErrors(t *testing.T) {
	example := fixture.StandardExample()
	badTrackTag := fixture.StandardExample()
	copy(badTrackTag[14:], "MTrx")

	cases := []struct {
		name string
		in   []byte
		kind model.Kind
	}{
		{"empty", nil, model.TruncatedChunk},
		{"not midi", []byte("RIFF\x00\x00\x00\x06WAVEfm"), model.InvalidHeader},
		{"format 0 with two tracks", fixture.File(0, 96, []byte{0x00, 0xFF, 0x2F, 0x00}, []byte{0x00, 0xFF, 0x2F, 0x00}), model.InvalidFormat},
		{"bad track tag", badTrackTag, model.InvalidTrackHeader},
		{"missing track", append(fixture.Header(1, 2, 96), fixture.Chunk("MTrk", []byte{0x00, 0xFF, 0x2F, 0x00})...), model.TruncatedChunk},
		{"track two bytes short", example[:len(example)-2], model.TruncatedChunk},
		{"unknown status", fixture.File(0, 96, []byte{0x00, 0xF4}), model.UnknownEventType},
		{"bad tempo", fixture.File(0, 96, []byte{0x00, 0xFF, 0x51, 0x02, 0x00, 0x00}), model.MalformedMetaEvent},
		{"running status first", fixture.File(0, 96, []byte{0x00, 0x40, 0x40}), model.MissingRunningStatus},
		{"long varint", fixture.File(0, 96, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00}), model.MalformedVarInt},
		{"event runs past track", fixture.File(0, 96, []byte{0x00, 0x90, 0x40}), model.OutOfBounds},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Parse(tc.in)
			assert.Nil(t, f)
			assert.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestParseErrorOffsetIsAbsolute(t *testing.T) {
	// header is 14 bytes, track chunk header 8 more, then delta + status
	_, err := Parse(fixture.File(0, 96, []byte{0x00, 0xF4}))

	var perr *model.Error
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, 14+8+1, perr.Offset)
}

func TestParseLogsTracks(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	_, err := Parse(fixture.StandardExample(), WithLogger(zap.New(core)))

	assert.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("decoded header").Len())
	assert.Equal(t, 4, logs.FilterMessage("decoded track").Len())
}

func TestReadMidiFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "example.mid")
	assert.NoError(t, os.WriteFile(path, fixture.StandardExample(), 0644))

	f, err := ReadMidiFile(path)
	assert.NoError(t, err)
	assert.Len(t, f.Tracks, 4)

	_, err = ReadMidiFile(filepath.Join(dir, "missing.mid"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.mid")
	assert.NoError(t, os.WriteFile(bad, []byte("MThd"), 0644))
	_, err = ReadMidiFile(bad)
	assert.ErrorIs(t, err, model.TruncatedChunk)
}
