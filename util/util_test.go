package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatherAllMidiPaths(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0777))
	for _, name := range []string{"a.mid", "b.MIDI", "notes.txt", "nested/c.mid"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0666))
	}

	all, err := GatherAllMidiPaths(dir, 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.mid"),
		filepath.Join(dir, "b.MIDI"),
		filepath.Join(dir, "nested", "c.mid"),
	}, all)

	some, err := GatherAllMidiPaths(dir, 2)
	assert.NoError(t, err)
	assert.Len(t, some, 2)

	_, err = GatherAllMidiPaths(filepath.Join(dir, "missing"), 0)
	assert.Error(t, err)
}

func TestBinaryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.dat")
	m := map[uint32]string{1: "one.mid", 2: "two.mid"}
	assert.NoError(t, CreateBinary(path, m))

	got, err := ReadBinary[map[uint32]string](path)
	assert.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestGenericHelpers(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, SortedKeys(map[int]bool{3: true, 1: true, 2: false}))
	assert.Equal(t, uint8(2), Min(uint8(7), uint8(2)))
	assert.Equal(t, uint64(6), Sum([]int{1, 2, 3}))
}
