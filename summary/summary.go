package summary

import (
	"github.com/jsphweid/midiparse/chord"
	"github.com/jsphweid/midiparse/model"
)

// Of condenses a parsed file into the figures the indexer and the http
// api report.
func Of(name string, f *model.MidiFile) model.Summary {
	s := model.Summary{
		Name:         name,
		Format:       f.Header.Format,
		NumTracks:    f.Header.TrackCount,
		DivisionType: f.DivisionType().String(),
		Resolution:   f.Resolution(),
		Tracks:       make([]model.TrackSummary, 0, len(f.Tracks)),
	}

	for _, track := range f.Tracks {
		ts := model.TrackSummary{NumEvents: len(track)}
		for _, e := range track {
			ts.DurationTick += uint64(e.Delta())
			switch ev := e.(type) {
			case model.NoteOn:
				ts.NumNoteOns += 1
			case model.NoteOff:
				ts.NumNoteOffs += 1
			case model.SysEx:
				ts.NumSysEx += 1
			case model.Text:
				if ev.Kind == model.SubtypeTrackName && ts.Name == "" {
					ts.Name = ev.Text
				}
			case model.SetTempo:
				if s.MicrosecondsPerBeat == 0 {
					s.MicrosecondsPerBeat = ev.MicrosecondsPerBeat
				}
			}
		}
		s.Tracks = append(s.Tracks, ts)
	}

	if s.MicrosecondsPerBeat == 0 {
		s.MicrosecondsPerBeat = model.DefaultMicrosecondsPerBeat
	}
	s.NumChords = len(chord.GetChords(f))
	s.MaxPolyphony = chord.MaxPolyphony(f)
	return s
}

// NumNotes counts note ons across all tracks.
func NumNotes(s model.Summary) int {
	var total int
	for _, t := range s.Tracks {
		total += t.NumNoteOns
	}
	return total
}

// LongestTrack returns the largest track duration in ticks.
func LongestTrack(s model.Summary) uint64 {
	var res uint64
	for _, t := range s.Tracks {
		if t.DurationTick > res {
			res = t.DurationTick
		}
	}
	return res
}
