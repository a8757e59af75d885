package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/midiparse/bucket"
	"github.com/jsphweid/midiparse/constants"
	"github.com/jsphweid/midiparse/midi"
	"github.com/jsphweid/midiparse/model"
	"github.com/jsphweid/midiparse/summary"
	"github.com/jsphweid/midiparse/util"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var served struct {
	mu        sync.RWMutex
	summaries model.FileNumToSummary
	paths     model.FileNumToMidiPath
}

var reloadIndex = debounce.New(500 * time.Millisecond)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serves",
	Long:  `Serves the parse endpoint and the summaries in INDEX_PATH over http`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// LoadServeFiles reads the index written by the index command. A missing
// index leaves the file endpoints empty.
func LoadServeFiles() error {
	dir := constants.GetIndexDir()
	summaries, err := bucket.LoadAll(dir)
	if err != nil {
		return err
	}
	paths, err := util.ReadBinary[model.FileNumToMidiPath](filepath.Join(dir, constants.FileNumsFilename))
	if err != nil {
		return err
	}

	served.mu.Lock()
	defer served.mu.Unlock()
	served.summaries = summaries
	served.paths = paths
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("could not write response", zap.Error(err))
	}
}

func parseErrorResponse(err error) model.ErrorResponse {
	res := model.ErrorResponse{Error: err.Error()}
	var perr *model.Error
	if errors.As(err, &perr) {
		res.Kind = perr.Kind.String()
		offset := perr.Offset
		res.Offset = &offset
	}
	return res
}

// HandleParse decodes the request body as a midi file. The response is the
// file's summary, or its rendered text with ?format=text.
func HandleParse(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	w.Header().Set("X-Request-Id", requestID)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxParseBodySize))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, model.ErrorResponse{Error: err.Error()})
		return
	}

	f, err := midi.Parse(body, midi.WithLogger(logger.With(zap.String("requestId", requestID))))
	if err != nil {
		logger.Info("parse failed", zap.String("requestId", requestID), zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, parseErrorResponse(err))
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, f.Describe())
		fmt.Fprint(w, f.Render())
		return
	}
	name := r.URL.Query().Get("name")
	writeJSON(w, http.StatusOK, summary.Of(name, f))
}

func HandleFiles(w http.ResponseWriter, r *http.Request) {
	served.mu.RLock()
	defer served.mu.RUnlock()

	res := make([]model.FileResult, 0, len(served.summaries))
	for _, num := range util.SortedKeys(served.summaries) {
		res = append(res, model.FileResult{FileNum: num, Path: served.paths[num], Summary: served.summaries[num]})
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleFile(w http.ResponseWriter, r *http.Request) {
	num, err := strconv.ParseUint(mux.Vars(r)["num"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "file number must be an unsigned integer"})
		return
	}

	served.mu.RLock()
	defer served.mu.RUnlock()
	s, ok := served.summaries[model.FileNum(num)]
	if !ok {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: fmt.Sprintf("no file %d", num)})
		return
	}
	writeJSON(w, http.StatusOK, model.FileResult{FileNum: model.FileNum(num), Path: served.paths[model.FileNum(num)], Summary: s})
}

// HandleReload schedules a reload of the index. Bursts of requests result
// in a single reload.
func HandleReload(w http.ResponseWriter, r *http.Request) {
	reloadIndex(func() {
		if err := LoadServeFiles(); err != nil {
			logger.Warn("index reload failed", zap.Error(err))
			return
		}
		logger.Info("index reloaded")
	})
	w.WriteHeader(http.StatusAccepted)
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/parse", HandleParse).Methods("POST")
	router.HandleFunc("/files", HandleFiles).Methods("GET")
	router.HandleFunc("/files/{num}", HandleFile).Methods("GET")
	router.HandleFunc("/reload", HandleReload).Methods("POST")
	return cors.Default().Handler(router)
}

func serve() error {
	if err := LoadServeFiles(); err != nil {
		logger.Warn("starting without an index", zap.Error(err))
	}

	addr := ":" + constants.GetPort()
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, NewRouter())
}
