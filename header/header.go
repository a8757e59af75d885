package header

import (
	"github.com/jsphweid/midiparse/chunk"
	"github.com/jsphweid/midiparse/constants"
	"github.com/jsphweid/midiparse/cursor"
	"github.com/jsphweid/midiparse/model"
)

// Decode reads the MThd chunk at the cursor.
func Decode(c *cursor.Cursor) (model.Header, error) {
	start := c.Offset()
	ch, err := chunk.Read(c)
	if err != nil {
		return model.Header{}, err
	}
	if ch.Tag() != constants.HeaderTag {
		return model.Header{}, model.NewError(model.InvalidHeader, start, "expected MThd, found "+quoteTag(ch.ID))
	}
	if ch.Length != constants.HeaderDataSize {
		return model.Header{}, model.Mismatch(model.InvalidHeader, start, "header length",
			constants.HeaderDataSize, int64(ch.Length))
	}

	var h model.Header
	data := ch.Cursor()
	// cannot fail: the payload is exactly six bytes
	h.Format, _ = data.ReadUint16()
	h.TrackCount, _ = data.ReadUint16()
	h.TimeDivision, _ = data.ReadUint16()

	if h.Format > 2 {
		return model.Header{}, model.NewError(model.InvalidFormat, ch.Offset, "format must be 0, 1 or 2")
	}
	if h.Format == 0 && h.TrackCount > 1 {
		return model.Header{}, model.Mismatch(model.InvalidFormat, ch.Offset+2, "format 0 may contain only 1 track",
			1, int64(h.TrackCount))
	}
	return h, nil
}

func quoteTag(id [4]byte) string {
	return "\"" + string(id[:]) + "\""
}
