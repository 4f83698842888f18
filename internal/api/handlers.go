package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/FocuswithJustin/AcaciaBible/core/canon"
	"github.com/FocuswithJustin/AcaciaBible/core/corpus"
	"github.com/FocuswithJustin/AcaciaBible/core/resolve"
	"github.com/FocuswithJustin/AcaciaBible/internal/fileutil"
	"github.com/FocuswithJustin/AcaciaBible/internal/logging"
	"github.com/FocuswithJustin/AcaciaBible/internal/server"
	"github.com/FocuswithJustin/AcaciaBible/internal/storage"
)

// Version is the API version reported by / and /health.
const Version = "0.1.0"

// maxReferenceLength bounds user-supplied reference text.
const maxReferenceLength = 256

// maxPayloadBytes bounds corpus uploads (post-decompression payloads are
// bounded separately by the converter's own limits).
const maxPayloadBytes = 64 << 20

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// BookInfo describes one canonical book and whether content is loaded.
type BookInfo struct {
	Name     string `json:"name"`
	Order    int    `json:"order"`
	Chapters int    `json:"chapters"`
	Loaded   bool   `json:"loaded"`
}

// CorpusInfo describes the loaded corpus.
type CorpusInfo struct {
	Books        int    `json:"books"`
	Verses       int    `json:"verses"`
	FetchEnabled bool   `json:"fetch_enabled"`
	Driver       string `json:"driver,omitempty"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Uptime       string `json:"uptime"`
	Books        int    `json:"books"`
	Verses       int    `json:"verses"`
	FetchEnabled bool   `json:"fetch_enabled"`
}

var startTime = time.Now()

// Package state wired by Start (or directly by tests).
var (
	appResolver *resolve.Resolver
	persist     *storage.Store
)

func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"name":    "Acacia Bible API",
		"version": Version,
		"endpoints": []string{
			"GET /health",
			"GET /resolve?ref=...",
			"GET /books",
			"GET /corpus",
			"POST /corpus",
			"GET /jobs",
			"GET /jobs/:id",
			"WS /ws",
		},
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	store := appResolver.Store()
	respond(w, http.StatusOK, HealthInfo{
		Status:       "healthy",
		Version:      Version,
		Uptime:       time.Since(startTime).String(),
		Books:        len(store.Books()),
		Verses:       store.VerseCount(),
		FetchEnabled: appResolver.FetchEnabled(),
	})
}

// resolveResponse pairs a resolution status with its passage for rendering.
type resolveResponse struct {
	Reference string          `json:"reference"`
	Status    resolve.Status  `json:"status"`
	Passage   *corpus.Passage `json:"passage,omitempty"`
	Text      string          `json:"text,omitempty"`
}

func handleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	reference := server.SanitizeUserInput(r.URL.Query().Get("ref"))
	reference = server.LimitStringLength(reference, maxReferenceLength)
	if reference == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMETER", "Query parameter 'ref' is required")
		return
	}

	start := time.Now()
	result := appResolver.GetContent(r.Context(), reference)
	logging.Resolution(reference, string(result.Status), time.Since(start))
	BroadcastResolution(reference, string(result.Status))

	if result.Found() {
		respond(w, http.StatusOK, resolveResponse{
			Reference: result.Passage.Reference.String(),
			Status:    result.Status,
			Passage:   result.Passage,
			Text:      result.Passage.Text(),
		})
		return
	}

	status, code := httpStatusFor(result.Status)
	respondError(w, status, code, result.Message)
}

// httpStatusFor maps a resolution status to an HTTP status and error code.
func httpStatusFor(s resolve.Status) (int, string) {
	switch s {
	case resolve.StatusInvalidReference:
		return http.StatusBadRequest, "INVALID_REFERENCE"
	case resolve.StatusUnknownBook:
		return http.StatusBadRequest, "UNKNOWN_BOOK"
	case resolve.StatusNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case resolve.StatusMissingCredential:
		return http.StatusServiceUnavailable, "MISSING_CREDENTIAL"
	case resolve.StatusAPIError:
		return http.StatusBadGateway, "UPSTREAM_ERROR"
	case resolve.StatusFormatError:
		return http.StatusBadGateway, "FORMAT_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func handleBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	loaded := make(map[string]bool)
	for _, name := range appResolver.Store().Books() {
		loaded[name] = true
	}

	books := make([]BookInfo, 0, canon.BookCount)
	for i, name := range canon.BookOrder() {
		books = append(books, BookInfo{
			Name:     name,
			Order:    i + 1,
			Chapters: canon.ChapterCount(name),
			Loaded:   loaded[name],
		})
	}

	respondWithTotal(w, http.StatusOK, books, len(books))
}

func handleCorpus(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		corpusInfoHandler(w, r)
	case http.MethodPost:
		corpusImportHandler(w, r)
	default:
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET and POST are allowed")
	}
}

func corpusInfoHandler(w http.ResponseWriter, _ *http.Request) {
	store := appResolver.Store()
	info := CorpusInfo{
		Books:        len(store.Books()),
		Verses:       store.VerseCount(),
		FetchEnabled: appResolver.FetchEnabled(),
	}
	if persist != nil {
		info.Driver = storage.DriverPackage()
	}
	respond(w, http.StatusOK, info)
}

func corpusImportHandler(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !server.ValidateContentType(contentType, server.AllowedCorpusContentTypes) {
		respondError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE",
			fmt.Sprintf("Content-Type %q is not accepted for corpus payloads", contentType))
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes+1))
	if err != nil {
		respondError(w, http.StatusBadRequest, "READ_ERROR", "Failed to read request body")
		return
	}
	if len(payload) > maxPayloadBytes {
		respondError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
			fmt.Sprintf("Corpus payload exceeds %d bytes", maxPayloadBytes))
		return
	}
	if len(payload) == 0 {
		respondError(w, http.StatusBadRequest, "EMPTY_PAYLOAD", "Request body is empty")
		return
	}

	if r.URL.Query().Get("async") == "true" {
		job := globalJobStore.Create()
		go runImportJob(job.ID, payload)
		respond(w, http.StatusAccepted, job)
		return
	}

	result, err := importPayload(r.Context(), payload)
	if err != nil {
		respondError(w, http.StatusBadRequest, "IMPORT_FAILED", err.Error())
		return
	}
	respond(w, http.StatusOK, result)
}

// importPayload decompresses, converts, and loads a corpus payload into the
// resolver's store, persisting it when storage is configured.
func importPayload(ctx context.Context, payload []byte) (*ImportResult, error) {
	start := time.Now()

	raw, err := fileutil.Decompress(payload)
	if err != nil {
		return nil, err
	}

	converted, shape, err := corpus.Convert(raw)
	if err != nil {
		return nil, err
	}

	store := appResolver.Store()
	store.Replace(converted)
	verses := store.VerseCount()

	if persist != nil {
		if err := persist.Save(ctx, converted); err != nil {
			return nil, err
		}
	}

	logging.CorpusLoad(shape, verses)
	BroadcastCorpusLoad(shape, verses)

	return &ImportResult{
		Shape:    shape,
		Verses:   verses,
		Duration: time.Since(start).String(),
	}, nil
}

// runImportJob drives an async import and records the outcome.
func runImportJob(jobID string, payload []byte) {
	_ = globalJobStore.Update(jobID, JobStatusRunning, nil, "")

	result, err := importPayload(context.Background(), payload)
	if err != nil {
		_ = globalJobStore.Update(jobID, JobStatusFailed, nil, err.Error())
		return
	}
	_ = globalJobStore.Update(jobID, JobStatusCompleted, result, "")
}

func handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	jobs := globalJobStore.List()
	respondWithTotal(w, http.StatusOK, jobs, len(jobs))
}

func handleJobByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/jobs/")
	if id == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMETER", "Job ID is required")
		return
	}

	job, ok := globalJobStore.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Job %s not found", id))
		return
	}
	respond(w, http.StatusOK, job)
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondWithTotal(w http.ResponseWriter, status int, data interface{}, total int) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Total:     total,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	response := APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
