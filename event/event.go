package event

import (
	"encoding/binary"
	"fmt"

	"github.com/jsphweid/midiparse/cursor"
	"github.com/jsphweid/midiparse/model"
)

const (
	statusMeta         = 0xFF
	statusSysEx        = 0xF0
	statusDividedSysEx = 0xF7
)

const (
	metaSequenceNumber    = 0x00
	metaChannelPrefix     = 0x20
	metaEndOfTrack        = 0x2F
	metaSetTempo          = 0x51
	metaSMPTEOffset       = 0x54
	metaTimeSignature     = 0x58
	metaKeySignature      = 0x59
	metaSequencerSpecific = 0x7F
)

var textSubtypes = map[uint8]model.Subtype{
	0x01: model.SubtypeText,
	0x02: model.SubtypeCopyrightNotice,
	0x03: model.SubtypeTrackName,
	0x04: model.SubtypeInstrumentName,
	0x05: model.SubtypeLyrics,
	0x06: model.SubtypeMarker,
	0x07: model.SubtypeCuePoint,
}

// payload sizes of the meta types that have one
var metaLengths = map[uint8]uint32{
	metaSequenceNumber: 2,
	metaChannelPrefix:  1,
	metaEndOfTrack:     0,
	metaSetTempo:       3,
	metaSMPTEOffset:    5,
	metaTimeSignature:  4,
	metaKeySignature:   2,
}

var metaNames = map[uint8]model.Subtype{
	metaSequenceNumber: model.SubtypeSequenceNumber,
	metaChannelPrefix:  model.SubtypeMIDIChannelPrefix,
	metaEndOfTrack:     model.SubtypeEndOfTrack,
	metaSetTempo:       model.SubtypeSetTempo,
	metaSMPTEOffset:    model.SubtypeSMPTEOffset,
	metaTimeSignature:  model.SubtypeTimeSignature,
	metaKeySignature:   model.SubtypeKeySignature,
}

// SMPTE frame rates keyed by bits 5-6 of the hour byte
var frameRates = map[uint8]uint8{
	0x00: 24,
	0x20: 25,
	0x40: 29,
	0x60: 30,
}

// Decoder decodes the events of a single track. It holds that track's
// running status, so a new Decoder is needed for every track.
type Decoder struct {
	runningStatus uint8
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// RunningStatus returns the last channel status byte seen, or 0 if there
// has been none.
func (d *Decoder) RunningStatus() uint8 {
	return d.runningStatus
}

// Next decodes the event starting at the cursor.
func (d *Decoder) Next(c *cursor.Cursor) (model.Event, error) {
	delta, err := c.ReadVarInt()
	if err != nil {
		return nil, err
	}
	at := c.Offset()
	status, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	t := model.Timing{DeltaTime: delta}

	if status&0xF0 != 0xF0 {
		return d.readChannel(c, t, status, at)
	}

	switch status {
	case statusMeta:
		return readMeta(c, model.Meta{Timing: t})
	case statusSysEx, statusDividedSysEx:
		length, err := c.ReadVarInt()
		if err != nil {
			return nil, err
		}
		data, err := c.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		return model.SysEx{Timing: t, Divided: status == statusDividedSysEx, Data: data}, nil
	}
	return nil, model.NewError(model.UnknownEventType, at, fmt.Sprintf("status 0x%02X", status))
}

func (d *Decoder) readChannel(c *cursor.Cursor, t model.Timing, status uint8, at int) (model.Event, error) {
	var param1 uint8
	if status&0x80 == 0 {
		// running status: this was the first data byte
		if d.runningStatus == 0 {
			return nil, model.NewError(model.MissingRunningStatus, at,
				fmt.Sprintf("data byte 0x%02X before any status byte", status))
		}
		param1 = status
		status = d.runningStatus
	} else {
		d.runningStatus = status
		var err error
		if param1, err = c.ReadUint8(); err != nil {
			return nil, err
		}
	}

	v := model.Voice{Timing: t, Channel: status & 0x0F}
	switch status >> 4 {
	case 0x8:
		vel, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		return model.NoteOff{Voice: v, Note: param1, Velocity: vel}, nil
	case 0x9:
		vel, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		if vel == 0 {
			return model.NoteOff{Voice: v, Note: param1}, nil
		}
		return model.NoteOn{Voice: v, Note: param1, Velocity: vel}, nil
	case 0xA:
		val, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		return model.NoteAftertouch{Voice: v, Note: param1, Value: val}, nil
	case 0xB:
		val, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		return model.Controller{Voice: v, Controller: param1, Value: val}, nil
	case 0xC:
		return model.ProgramChange{Voice: v, Value: param1}, nil
	case 0xD:
		return model.ChannelAftertouch{Voice: v, Value: param1}, nil
	case 0xE:
		msb, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		return model.PitchBend{Voice: v, Value: uint16(param1) + uint16(msb)<<7}, nil
	}
	return nil, model.NewError(model.UnknownEventType, at, fmt.Sprintf("event kind 0x%X", status>>4))
}

func readMeta(c *cursor.Cursor, m model.Meta) (model.Event, error) {
	typ, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	at := c.Offset()
	length, err := c.ReadVarInt()
	if err != nil {
		return nil, err
	}
	if want, ok := metaLengths[typ]; ok && length != want {
		// a sequence number may be omitted altogether
		if !(typ == metaSequenceNumber && length == 0) {
			return nil, model.Mismatch(model.MalformedMetaEvent, at,
				fmt.Sprintf("length of %s", metaNames[typ]), int64(want), int64(length))
		}
	}
	data, err := c.ReadBytes(int(length))
	if err != nil {
		return nil, err
	}

	if kind, ok := textSubtypes[typ]; ok {
		return model.Text{Meta: m, Kind: kind, Text: string(data)}, nil
	}

	switch typ {
	case metaSequenceNumber:
		if len(data) == 0 {
			return model.SequenceNumber{Meta: m}, nil
		}
		return model.SequenceNumber{Meta: m, Number: binary.BigEndian.Uint16(data), HasNumber: true}, nil
	case metaChannelPrefix:
		return model.ChannelPrefix{Meta: m, Channel: data[0]}, nil
	case metaEndOfTrack:
		return model.EndOfTrack{Meta: m}, nil
	case metaSetTempo:
		us := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
		return model.SetTempo{Meta: m, MicrosecondsPerBeat: us}, nil
	case metaSMPTEOffset:
		return model.SMPTEOffset{
			Meta:      m,
			FrameRate: frameRates[data[0]&0x60],
			Hour:      data[0] & 0x1F,
			Minute:    data[1],
			Second:    data[2],
			Frame:     data[3],
			Subframe:  data[4],
		}, nil
	case metaTimeSignature:
		return model.TimeSignature{
			Meta:             m,
			Numerator:        data[0],
			DenominatorPower: data[1],
			Denominator:      uint32(1) << data[1],
			Metronome:        data[2],
			ThirtySeconds:    data[3],
		}, nil
	case metaKeySignature:
		return model.KeySignature{Meta: m, Key: int8(data[0]), Scale: data[1]}, nil
	case metaSequencerSpecific:
		return model.SequencerSpecific{Meta: m, Data: data}, nil
	}
	return model.UnknownMeta{Meta: m, Type: typ, Data: data}, nil
}

// DecodeTrack decodes events until the cursor is exhausted. Running status
// starts out empty and does not outlive the call.
func DecodeTrack(c *cursor.Cursor) (model.Track, error) {
	d := NewDecoder()
	// about three bytes per event is typical
	track := make(model.Track, 0, c.Remaining()/3)
	for !c.AtEnd() {
		e, err := d.Next(c)
		if err != nil {
			return nil, err
		}
		track = append(track, e)
	}
	return track, nil
}
