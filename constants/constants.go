package constants

import "os"

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetIndexDir() string {
	return getenv("INDEX_PATH", "./out")
}

// GetMediaDir returns the directory holding the midi files to index. It has
// no default.
func GetMediaDir() string {
	return os.Getenv("MEDIA_PATH")
}

func GetCatalogEndpoint() string {
	return os.Getenv("CATALOG_ENDPOINT")
}

func GetCatalogTable() string {
	return getenv("CATALOG_TABLE", "midiparse-summaries")
}

func GetCatalogRegion() string {
	return getenv("CATALOG_REGION", "localhost")
}

func GetLogLevel() string {
	return getenv("LOG_LEVEL", "info")
}

func GetPort() string {
	return getenv("PORT", "8080")
}

const (
	HeaderTag = "MThd"
	TrackTag  = "MTrk"

	// 4 byte tag + 4 byte big-endian length
	ChunkHeaderSize = 8
	HeaderDataSize  = 6
)

const FileNumsFilename = "fileNums.dat"

// MaxParseBodySize bounds the request body accepted by the parse endpoint.
const MaxParseBodySize = 16 * 1024 * 1024
