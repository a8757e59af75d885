package model

type FileResult struct {
	FileNum uint32  `json:"file_num"`
	Path    string  `json:"path"`
	Summary Summary `json:"summary"`
}

type ErrorResponse struct {
	Error  string `json:"detail"`
	Kind   string `json:"kind,omitempty"`
	Offset *int   `json:"offset,omitempty"`
}
