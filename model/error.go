package model

import "fmt"

// Kind classifies a decode failure. Every Kind is terminal for the parse
// that produced it.
type Kind int

const (
	OutOfBounds Kind = iota + 1
	TruncatedChunk
	InvalidHeader
	InvalidFormat
	InvalidTrackHeader
	MalformedVarInt
	MalformedMetaEvent
	UnknownEventType
	MissingRunningStatus
)

var kindNames = map[Kind]string{
	OutOfBounds:          "out of bounds",
	TruncatedChunk:       "truncated chunk",
	InvalidHeader:        "invalid header",
	InvalidFormat:        "invalid format",
	InvalidTrackHeader:   "invalid track header",
	MalformedVarInt:      "malformed variable-length quantity",
	MalformedMetaEvent:   "malformed meta event",
	UnknownEventType:     "unknown event type",
	MissingRunningStatus: "missing running status",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error lets a Kind be used as an errors.Is target.
func (k Kind) Error() string {
	return "midi: " + k.String()
}

// Error is the single error value a failed parse returns. Offset is the
// absolute byte offset in the input where the failing read started.
type Error struct {
	Kind     Kind
	Offset   int
	Expected int64
	Actual   int64
	Detail   string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("midi: %s at offset %d", e.Kind.String(), e.Offset)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Expected != e.Actual {
		msg += fmt.Sprintf(" (expected %d, got %d)", e.Expected, e.Actual)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError builds an *Error without expected/actual context.
func NewError(kind Kind, offset int, detail string) *Error {
	return &Error{Kind: kind, Offset: offset, Detail: detail}
}

// Mismatch builds an *Error for a field whose value differed from the one
// required.
func Mismatch(kind Kind, offset int, detail string, expected, actual int64) *Error {
	return &Error{Kind: kind, Offset: offset, Detail: detail, Expected: expected, Actual: actual}
}
