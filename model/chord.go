package model

type Notes = []uint8

// Chord is the set of notes sounding from AbsTicks until the next change.
type Chord struct {
	AbsTicks uint64
	Notes    Notes
}
