package model

// Family is the top-level event class selected by the status byte.
type Family string

const (
	FamilyMeta         Family = "meta"
	FamilySysEx        Family = "sysEx"
	FamilyDividedSysEx Family = "dividedSysEx"
	FamilyChannel      Family = "channel"
)

// Subtype names the concrete kind of an event within its family.
type Subtype string

const (
	SubtypeSequenceNumber    Subtype = "sequenceNumber"
	SubtypeText              Subtype = "text"
	SubtypeCopyrightNotice   Subtype = "copyrightNotice"
	SubtypeTrackName         Subtype = "trackName"
	SubtypeInstrumentName    Subtype = "instrumentName"
	SubtypeLyrics            Subtype = "lyrics"
	SubtypeMarker            Subtype = "marker"
	SubtypeCuePoint          Subtype = "cuePoint"
	SubtypeMIDIChannelPrefix Subtype = "midiChannelPrefix"
	SubtypeEndOfTrack        Subtype = "endOfTrack"
	SubtypeSetTempo          Subtype = "setTempo"
	SubtypeSMPTEOffset       Subtype = "smpteOffset"
	SubtypeTimeSignature     Subtype = "timeSignature"
	SubtypeKeySignature      Subtype = "keySignature"
	SubtypeSequencerSpecific Subtype = "sequencerSpecific"
	SubtypeUnknown           Subtype = "unknown"

	SubtypeSysEx        Subtype = "sysEx"
	SubtypeDividedSysEx Subtype = "dividedSysEx"

	SubtypeNoteOff           Subtype = "noteOff"
	SubtypeNoteOn            Subtype = "noteOn"
	SubtypeNoteAftertouch    Subtype = "noteAftertouch"
	SubtypeController        Subtype = "controller"
	SubtypeProgramChange     Subtype = "programChange"
	SubtypeChannelAftertouch Subtype = "channelAftertouch"
	SubtypePitchBend         Subtype = "pitchBend"
)

// Event is one decoded track event. The set of implementations is closed:
// callers are expected to type switch on the concrete types in this file.
type Event interface {
	Delta() uint32
	Family() Family
	Subtype() Subtype
}

// Timing carries the ticks elapsed since the previous event in the track.
type Timing struct {
	DeltaTime uint32
}

func (t Timing) Delta() uint32 { return t.DeltaTime }

// Meta is embedded by every meta event.
type Meta struct {
	Timing
}

func (Meta) Family() Family { return FamilyMeta }

// Voice is embedded by every channel event.
type Voice struct {
	Timing
	Channel uint8
}

func (Voice) Family() Family { return FamilyChannel }

// SequenceNumber may legally carry no number, in which case HasNumber is false.
type SequenceNumber struct {
	Meta
	Number    uint16
	HasNumber bool
}

func (SequenceNumber) Subtype() Subtype { return SubtypeSequenceNumber }

// Text covers meta types 0x01 through 0x07; Kind says which one.
type Text struct {
	Meta
	Kind Subtype
	Text string
}

func (t Text) Subtype() Subtype { return t.Kind }

type ChannelPrefix struct {
	Meta
	Channel uint8
}

func (ChannelPrefix) Subtype() Subtype { return SubtypeMIDIChannelPrefix }

type EndOfTrack struct {
	Meta
}

func (EndOfTrack) Subtype() Subtype { return SubtypeEndOfTrack }

type SetTempo struct {
	Meta
	MicrosecondsPerBeat uint32
}

func (SetTempo) Subtype() Subtype { return SubtypeSetTempo }

// BPM converts the tempo to beats per minute.
func (t SetTempo) BPM() float64 {
	if t.MicrosecondsPerBeat == 0 {
		return 0
	}
	return 60000000 / float64(t.MicrosecondsPerBeat)
}

type SMPTEOffset struct {
	Meta
	FrameRate uint8
	Hour      uint8
	Minute    uint8
	Second    uint8
	Frame     uint8
	Subframe  uint8
}

func (SMPTEOffset) Subtype() Subtype { return SubtypeSMPTEOffset }

// TimeSignature stores the denominator both as written (a power of two)
// and expanded.
type TimeSignature struct {
	Meta
	Numerator        uint8
	DenominatorPower uint8
	Denominator      uint32
	Metronome        uint8
	ThirtySeconds    uint8
}

func (TimeSignature) Subtype() Subtype { return SubtypeTimeSignature }

// KeySignature: Key is the number of sharps (positive) or flats (negative),
// Scale is 0 for major and 1 for minor.
type KeySignature struct {
	Meta
	Key   int8
	Scale uint8
}

func (KeySignature) Subtype() Subtype { return SubtypeKeySignature }

type SequencerSpecific struct {
	Meta
	Data []byte
}

func (SequencerSpecific) Subtype() Subtype { return SubtypeSequencerSpecific }

// UnknownMeta keeps the payload of a meta type the decoder has no table
// entry for.
type UnknownMeta struct {
	Meta
	Type uint8
	Data []byte
}

func (UnknownMeta) Subtype() Subtype { return SubtypeUnknown }

// SysEx is a system exclusive message. Divided is set for the 0xF7
// escape/continuation form.
type SysEx struct {
	Timing
	Divided bool
	Data    []byte
}

func (s SysEx) Family() Family {
	if s.Divided {
		return FamilyDividedSysEx
	}
	return FamilySysEx
}

func (s SysEx) Subtype() Subtype {
	if s.Divided {
		return SubtypeDividedSysEx
	}
	return SubtypeSysEx
}

type NoteOff struct {
	Voice
	Note     uint8
	Velocity uint8
}

func (NoteOff) Subtype() Subtype { return SubtypeNoteOff }

type NoteOn struct {
	Voice
	Note     uint8
	Velocity uint8
}

func (NoteOn) Subtype() Subtype { return SubtypeNoteOn }

type NoteAftertouch struct {
	Voice
	Note  uint8
	Value uint8
}

func (NoteAftertouch) Subtype() Subtype { return SubtypeNoteAftertouch }

type Controller struct {
	Voice
	Controller uint8
	Value      uint8
}

func (Controller) Subtype() Subtype { return SubtypeController }

type ProgramChange struct {
	Voice
	Value uint8
}

func (ProgramChange) Subtype() Subtype { return SubtypeProgramChange }

type ChannelAftertouch struct {
	Voice
	Value uint8
}

func (ChannelAftertouch) Subtype() Subtype { return SubtypeChannelAftertouch }

// PitchBend holds the raw 14 bit value; 0x2000 is centered.
type PitchBend struct {
	Voice
	Value uint16
}

func (PitchBend) Subtype() Subtype { return SubtypePitchBend }
