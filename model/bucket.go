package model

// BucketOverview names one gob file of summaries and the range of file
// numbers it holds.
type BucketOverview struct {
	Filename string
	Start    FileNum
	End      FileNum
}

// Failure records a file that could not be parsed.
type Failure struct {
	Path string
	Err  error
}
