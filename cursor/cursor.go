package cursor

import (
	"encoding/binary"

	"github.com/jsphweid/midiparse/model"
)

// MaxVarIntBytes is the longest variable-length quantity an SMF may contain.
const MaxVarIntBytes = 4

// Cursor reads forward through a byte buffer it does not own. A read that
// fails leaves the cursor where it was.
type Cursor struct {
	buf    []byte
	offset int
	base   int
}

func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// NewAt returns a cursor over buf whose reported offsets start at base, so
// errors from a nested cursor point into the original input.
func NewAt(buf []byte, base int) *Cursor {
	return &Cursor{buf: buf, base: base}
}

// Offset is the absolute position of the next byte to be read.
func (c *Cursor) Offset() int {
	return c.base + c.offset
}

func (c *Cursor) Remaining() int {
	return len(c.buf) - c.offset
}

func (c *Cursor) AtEnd() bool {
	return c.offset >= len(c.buf)
}

// ReadBytes returns the next n bytes. The slice aliases the buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, model.Mismatch(model.OutOfBounds, c.Offset(), "not enough bytes", int64(n), int64(c.Remaining()))
	}
	b := c.buf[c.offset : c.offset+n : c.offset+n]
	c.offset += n
	return b, nil
}

func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) ReadInt8() (int8, error) {
	v, err := c.ReadUint8()
	return int8(v), err
}

func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *Cursor) ReadUint24() (uint32, error) {
	b, err := c.ReadBytes(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadVarInt reads a MIDI variable-length quantity: big-endian groups of
// seven bits, with the high bit set on every byte but the last.
func (c *Cursor) ReadVarInt() (uint32, error) {
	var v uint32
	for i := 0; i < MaxVarIntBytes; i++ {
		if c.offset+i >= len(c.buf) {
			return 0, model.Mismatch(model.OutOfBounds, c.Offset()+i, "variable-length quantity cut short", 1, 0)
		}
		b := c.buf[c.offset+i]
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			c.offset += i + 1
			return v, nil
		}
	}
	return 0, model.NewError(model.MalformedVarInt, c.Offset(), "no terminating byte within 4 bytes")
}
