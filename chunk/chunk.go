package chunk

import (
	"errors"

	"github.com/jsphweid/midiparse/constants"
	"github.com/jsphweid/midiparse/cursor"
	"github.com/jsphweid/midiparse/model"
)

type Chunk struct {
	ID     [4]byte
	Length uint32
	Data   []byte

	// Offset is the absolute position of Data[0] in the input.
	Offset int
}

func (c Chunk) Tag() string {
	return string(c.ID[:])
}

// Cursor returns a cursor over the payload that reports absolute offsets.
func (c Chunk) Cursor() *cursor.Cursor {
	return cursor.NewAt(c.Data, c.Offset)
}

// Read reads one tagged, length-prefixed chunk. On success the cursor has
// moved exactly 8 + Length bytes.
func Read(c *cursor.Cursor) (Chunk, error) {
	start := c.Offset()
	if c.Remaining() < constants.ChunkHeaderSize {
		return Chunk{}, model.Mismatch(model.TruncatedChunk, start, "chunk header cut short",
			constants.ChunkHeaderSize, int64(c.Remaining()))
	}

	var res Chunk
	id, err := c.ReadBytes(4)
	if err != nil {
		return Chunk{}, err
	}
	copy(res.ID[:], id)
	res.Length, err = c.ReadUint32()
	if err != nil {
		return Chunk{}, err
	}

	res.Offset = c.Offset()
	res.Data, err = c.ReadBytes(int(res.Length))
	if err != nil {
		var perr *model.Error
		if errors.As(err, &perr) {
			return Chunk{}, model.Mismatch(model.TruncatedChunk, start, res.Tag()+" payload cut short",
				int64(res.Length), perr.Actual)
		}
		return Chunk{}, err
	}
	return res, nil
}
