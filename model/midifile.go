package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Header is the decoded MThd chunk.
type Header struct {
	Format       uint16
	TrackCount   uint16
	TimeDivision uint16
}

// DivisionType says how delta times are to be interpreted.
type DivisionType int

const (
	Metrical DivisionType = iota
	Timecode
)

func (d DivisionType) String() string {
	if d == Timecode {
		return "timecode"
	}
	return "metrical"
}

// Track holds events in file order.
type Track []Event

// MidiFile is the result of a successful parse. Byte payloads of events
// (sysex, sequencer specific, unknown meta) alias the parsed input buffer.
type MidiFile struct {
	Header Header
	Tracks []Track
}

func (m *MidiFile) DivisionType() DivisionType {
	if m.Header.TimeDivision&0x8000 != 0 {
		return Timecode
	}
	return Metrical
}

// FramesPerSecond returns the SMPTE frame rate and ticks per frame of a
// timecode division, or 0, 0 for a metrical one. The frame rate is stored
// as a negative two's complement byte.
func (m *MidiFile) FramesPerSecond() (int, int) {
	if m.DivisionType() != Timecode {
		return 0, 0
	}
	fps := -int(int8(m.Header.TimeDivision >> 8))
	return fps, int(m.Header.TimeDivision & 0xFF)
}

// Resolution is ticks per beat for a metrical division and ticks per
// second for a timecode one.
func (m *MidiFile) Resolution() int {
	if m.DivisionType() == Timecode {
		fps, ticksPerFrame := m.FramesPerSecond()
		return fps * ticksPerFrame
	}
	return int(m.Header.TimeDivision & 0x7FFF)
}

// Describe renders the header block shown above a file's contents.
func (m *MidiFile) Describe() string {
	var b strings.Builder
	b.WriteString("Header:\n")
	fmt.Fprintf(&b, " Format: %d\n", m.Header.Format)
	fmt.Fprintf(&b, " Resolution: %d\n", m.Resolution())
	fmt.Fprintf(&b, " Tracks: %d\n", m.Header.TrackCount)
	return b.String()
}

// Render lists every event of every track for debugging. The output is
// deterministic but is not meant to be parsed back.
func (m *MidiFile) Render() string {
	var b strings.Builder
	for i, track := range m.Tracks {
		fmt.Fprintf(&b, "Track %d\n", i)
		for _, e := range track {
			fmt.Fprintf(&b, "(%d) %s", e.Delta(), e.Subtype())
			if note, ok := Annotation(e); ok {
				fmt.Fprintf(&b, " [%s]", note)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Annotation picks the single most telling field of an event: its text,
// value, note or tempo, in that order of preference.
func Annotation(e Event) (string, bool) {
	switch ev := e.(type) {
	case Text:
		return ev.Text, true
	case NoteAftertouch:
		return strconv.Itoa(int(ev.Value)), true
	case Controller:
		return strconv.Itoa(int(ev.Value)), true
	case ProgramChange:
		return strconv.Itoa(int(ev.Value)), true
	case ChannelAftertouch:
		return strconv.Itoa(int(ev.Value)), true
	case PitchBend:
		return strconv.Itoa(int(ev.Value)), true
	case NoteOn:
		return strconv.Itoa(int(ev.Note)), true
	case NoteOff:
		return strconv.Itoa(int(ev.Note)), true
	case SetTempo:
		return strconv.FormatUint(uint64(ev.MicrosecondsPerBeat), 10), true
	}
	return "", false
}
