package model

type FileNum = uint32
type FileNumToMidiPath = map[FileNum]string
type FileNumToSummary = map[FileNum]Summary
