// Package fixture builds Standard MIDI File byte streams for tests.
package fixture

import (
	"bytes"
	"encoding/binary"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Chunk frames payload as a chunk with the given four letter tag.
func Chunk(tag string, payload []byte) []byte {
	res := make([]byte, 8, 8+len(payload))
	copy(res, tag)
	binary.BigEndian.PutUint32(res[4:], uint32(len(payload)))
	return append(res, payload...)
}

// Header builds a complete MThd chunk.
func Header(format, trackCount, division uint16) []byte {
	payload := make([]byte, 6)
	binary.BigEndian.PutUint16(payload[0:], format)
	binary.BigEndian.PutUint16(payload[2:], trackCount)
	binary.BigEndian.PutUint16(payload[4:], division)
	return Chunk("MThd", payload)
}

// File concatenates a header with one MTrk chunk per track payload.
func File(format, division uint16, tracks ...[]byte) []byte {
	res := Header(format, uint16(len(tracks)), division)
	for _, t := range tracks {
		res = append(res, Chunk("MTrk", t)...)
	}
	return res
}

// StandardExample is the format 1 example file printed in the Standard MIDI
// Files 1.0 document: a tempo map track followed by three music tracks, 96
// ticks per quarter note.
func StandardExample() []byte {
	return File(1, 96,
		[]byte{
			0x00, 0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08,
			0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
			0x83, 0x00, 0xFF, 0x2F, 0x00,
		},
		[]byte{
			0x00, 0xC0, 0x05,
			0x81, 0x40, 0x90, 0x4C, 0x20,
			0x81, 0x40, 0x4C, 0x00,
			0x00, 0xFF, 0x2F, 0x00,
		},
		[]byte{
			0x00, 0xC1, 0x2E,
			0x60, 0x91, 0x43, 0x40,
			0x82, 0x20, 0x43, 0x00,
			0x00, 0xFF, 0x2F, 0x00,
		},
		[]byte{
			0x00, 0xC2, 0x46,
			0x00, 0x92, 0x30, 0x60,
			0x00, 0x3C, 0x60,
			0x83, 0x00, 0x30, 0x00,
			0x00, 0x3C, 0x00,
			0x00, 0xFF, 0x2F, 0x00,
		},
	)
}

// Song describes a file to be written with gomidi: one track per entry in
// Tracks, each playing its notes one after another on channel 0.
type Song struct {
	TicksPerQuarter uint16
	Names           []string
	Tracks          [][]uint8
	NoteTicks       uint32
}

// Write encodes s with gomidi's SMF writer.
func (s Song) Write() ([]byte, error) {
	file := smf.New()
	file.TimeFormat = smf.MetricTicks(s.TicksPerQuarter)

	for i, notes := range s.Tracks {
		var tr smf.Track
		if i < len(s.Names) {
			tr.Add(0, smf.MetaTrackSequenceName(s.Names[i]))
		}
		if i == 0 {
			tr.Add(0, smf.MetaMeter(4, 4))
			tr.Add(0, smf.MetaTempo(120))
		}
		for _, note := range notes {
			tr.Add(0, midi.NoteOn(0, note, 100))
			tr.Add(s.NoteTicks, midi.NoteOff(0, note))
		}
		tr.Close(0)
		if err := file.Add(tr); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
