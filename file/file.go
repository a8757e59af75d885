package file

import (
	"github.com/jsphweid/midiparse/model"
)

// CreateFileNumMap numbers paths from 0 in the order given.
func CreateFileNumMap(paths []string) model.FileNumToMidiPath {
	res := make(model.FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}
