// Package crosscheck compares a decoded file against gomidi's independent
// reading of the same bytes.
package crosscheck

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jsphweid/midiparse/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

type NoteCounts struct {
	Starts int
	Ends   int
}

type Report struct {
	Ours       []NoteCounts
	Theirs     []NoteCounts
	Mismatches []string
}

func (r Report) OK() bool {
	return len(r.Mismatches) == 0
}

func readGomidi(data []byte) (s *smf.SMF, e error) {
	// gomidi can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("gomidi panicked: %v", r)
		}
	}()

	res, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gomidi: %w", err)
	}
	return res, nil
}

func countOurs(f *model.MidiFile) []NoteCounts {
	res := make([]NoteCounts, len(f.Tracks))
	for i, track := range f.Tracks {
		for _, e := range track {
			switch e.(type) {
			case model.NoteOn:
				res[i].Starts += 1
			case model.NoteOff:
				res[i].Ends += 1
			}
		}
	}
	return res
}

func countTheirs(s *smf.SMF) []NoteCounts {
	res := make([]NoteCounts, len(s.Tracks))
	for i, track := range s.Tracks {
		for _, ev := range track {
			var channel, key, velocity uint8
			switch {
			case ev.Message.GetNoteOn(&channel, &key, &velocity):
				if velocity > 0 {
					res[i].Starts += 1
				} else {
					res[i].Ends += 1
				}
			case ev.Message.GetNoteOff(&channel, &key, &velocity):
				res[i].Ends += 1
			}
		}
	}
	return res
}

// Compare decodes data with gomidi and checks that it agrees with f on the
// number of tracks and on the note starts and ends of every track.
func Compare(data []byte, f *model.MidiFile) (Report, error) {
	if f == nil {
		return Report{}, errors.New("crosscheck: nil file")
	}
	theirs, err := readGomidi(data)
	if err != nil {
		return Report{}, err
	}

	r := Report{Ours: countOurs(f), Theirs: countTheirs(theirs)}
	if len(r.Ours) != len(r.Theirs) {
		r.Mismatches = append(r.Mismatches,
			fmt.Sprintf("track count: %d vs %d", len(r.Ours), len(r.Theirs)))
		return r, nil
	}
	for i := range r.Ours {
		if r.Ours[i] != r.Theirs[i] {
			r.Mismatches = append(r.Mismatches, fmt.Sprintf("track %d notes: %+v vs %+v", i, r.Ours[i], r.Theirs[i]))
		}
	}
	return r, nil
}
