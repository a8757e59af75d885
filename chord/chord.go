package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/midiparse/model"
)

type OnNotes = map[uint8]bool

// CreateChordKey sorts notes in place and joins them, e.g. "60-64-67".
func CreateChordKey(notes []uint8) string {
	sort.Slice(notes, func(i, j int) bool {
		return notes[i] < notes[j]
	})
	var res string
	for i, note := range notes {
		res += fmt.Sprintf("%v", note)
		if i < len(notes)-1 {
			res += "-"
		}
	}
	return res
}

type reducedEvent struct {
	absTicks  uint64
	isNoteOff bool
	note      uint8
}

func getChord(absTicks uint64, pressed OnNotes) model.Chord {
	notes := make(model.Notes, 0, len(pressed))
	for note := range pressed {
		notes = append(notes, note)
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i] < notes[j]
	})
	return model.Chord{AbsTicks: absTicks, Notes: notes}
}

// GetChords merges the note events of all tracks by absolute tick and
// returns the chords of two or more notes, in time order. Channels are
// not distinguished.
func GetChords(f *model.MidiFile) []model.Chord {
	var reducedEvents []reducedEvent
	for _, track := range f.Tracks {
		var absTicks uint64
		for _, e := range track {
			absTicks += uint64(e.Delta())
			switch ev := e.(type) {
			case model.NoteOn:
				reducedEvents = append(reducedEvents, reducedEvent{absTicks: absTicks, note: ev.Note})
			case model.NoteOff:
				reducedEvents = append(reducedEvents, reducedEvent{absTicks: absTicks, isNoteOff: true, note: ev.Note})
			}
		}
	}

	// prioritize smaller offset values then note off
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].absTicks != reducedEvents[j].absTicks {
			return reducedEvents[i].absTicks < reducedEvents[j].absTicks
		}
		return reducedEvents[i].isNoteOff && !reducedEvents[j].isNoteOff
	})

	var chords []model.Chord
	pressed := make(OnNotes)
	for i, evt := range reducedEvents {
		if evt.isNoteOff {
			delete(pressed, evt.note)
		} else {
			pressed[evt.note] = true
		}
		// only the state after the last event at a tick counts
		if i+1 < len(reducedEvents) && reducedEvents[i+1].absTicks == evt.absTicks {
			continue
		}
		if len(pressed) >= 2 {
			chords = append(chords, getChord(evt.absTicks, pressed))
		}
	}
	return chords
}

// MaxPolyphony is the largest number of notes sounding at once.
func MaxPolyphony(f *model.MidiFile) int {
	var res int
	for _, c := range GetChords(f) {
		if len(c.Notes) > res {
			res = len(c.Notes)
		}
	}
	if res == 0 && hasNotes(f) {
		return 1
	}
	return res
}

func hasNotes(f *model.MidiFile) bool {
	for _, track := range f.Tracks {
		for _, e := range track {
			if _, ok := e.(model.NoteOn); ok {
				return true
			}
		}
	}
	return false
}
