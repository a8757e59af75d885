package model

// DefaultMicrosecondsPerBeat is the tempo assumed until a setTempo event
// says otherwise (120 bpm).
const DefaultMicrosecondsPerBeat = 500000

type TrackSummary struct {
	Name         string `json:"name,omitempty"`
	NumEvents    int    `json:"num_events"`
	NumNoteOns   int    `json:"num_note_ons"`
	NumNoteOffs  int    `json:"num_note_offs"`
	NumSysEx     int    `json:"num_sysex"`
	DurationTick uint64 `json:"duration_ticks"`
}

type Summary struct {
	Name                string         `json:"name"`
	Format              uint16         `json:"format"`
	NumTracks           uint16         `json:"num_tracks"`
	DivisionType        string         `json:"division_type"`
	Resolution          int            `json:"resolution"`
	MicrosecondsPerBeat uint32         `json:"microseconds_per_beat"`
	MaxPolyphony        int            `json:"max_polyphony"`
	NumChords           int            `json:"num_chords"`
	Tracks              []TrackSummary `json:"tracks"`
}
