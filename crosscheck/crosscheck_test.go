package crosscheck

import (
	"testing"

	"github.com/jsphweid/midiparse/fixture"
	"github.com/jsphweid/midiparse/midi"
	"github.com/jsphweid/midiparse/model"
	"github.com/stretchr/testify/assert"
)

func TestCompareAgreesOnGomidiFile(t *testing.T) {
	data, err := fixture.Song{
		TicksPerQuarter: 96,
		Names:           []string{"one", "two", "three"},
		Tracks:          [][]uint8{{60, 64, 67}, {48}, {}},
		NoteTicks:       48,
	}.Write()
	assert.NoError(t, err)

	f, err := midi.Parse(data)
	assert.NoError(t, err)

	r, err := Compare(data, f)
	assert.NoError(t, err)
	assert.True(t, r.OK(), "%v", r.Mismatches)
	assert.Equal(t, NoteCounts{Starts: 3, Ends: 3}, r.Ours[0])
}

func TestCompareAgreesOnStandardExample(t *testing.T) {
	data := fixture.StandardExample()
	f, err := midi.Parse(data)
	assert.NoError(t, err)

	r, err := Compare(data, f)
	assert.NoError(t, err)
	assert.True(t, r.OK(), "%v", r.Mismatches)
	assert.Equal(t, []NoteCounts{{}, {1, 1}, {1, 1}, {2, 2}}, r.Ours)
}

func TestCompareReportsMismatch(t *testing.T) {
	data := fixture.StandardExample()
	f, err := midi.Parse(data)
	assert.NoError(t, err)

	doctored := &model.MidiFile{Header: f.Header, Tracks: f.Tracks[:3]}
	r, err := Compare(data, doctored)
	assert.NoError(t, err)
	assert.False(t, r.OK())

	_, err = Compare(data, nil)
	assert.Error(t, err)
}
