package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kforge/pkg/domain/interfaces"
	"github.com/m-mizutani/kforge/pkg/domain/model"
	"github.com/m-mizutani/kforge/pkg/domain/types"
	"github.com/m-mizutani/kforge/pkg/utils/archive"
)

// ConvertHandler handles Postman-to-Karate conversion requests
type ConvertHandler struct {
	convertUC   interfaces.ConvertUseCase
	maxBodySize int64
}

// NewConvertHandler creates a new ConvertHandler
func NewConvertHandler(convertUC interfaces.ConvertUseCase, maxBodySize int64) *ConvertHandler {
	return &ConvertHandler{
		convertUC:   convertUC,
		maxBodySize: maxBodySize,
	}
}

// Handle processes a conversion request. The collection arrives either as
// a multipart form field `file` or as the raw request body. Success always
// streams back a ZIP attachment; every failure returns a JSON error body.
func (h *ConvertHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	raw, err := h.readPayload(r)
	if err != nil {
		logger.Warn("Rejected conversion request", "error", err)
		writeError(w, err, http.StatusBadRequest)
		return
	}

	if !model.ValidateCollection(raw) {
		logger.Warn("Rejected invalid collection")
		writeError(w, goerr.New("Invalid Postman collection format", goerr.T(types.TagBadRequest)), http.StatusBadRequest)
		return
	}

	var col model.Collection
	if err := json.Unmarshal(raw, &col); err != nil {
		logger.Warn("Rejected malformed collection", "error", err)
		writeError(w, goerr.New("Invalid Postman collection format", goerr.T(types.TagBadRequest)), http.StatusBadRequest)
		return
	}

	bundle, err := h.convertUC.GenerateSuite(ctx, &col)
	if err != nil {
		logger.Error("Failed to generate test suite", "error", err)
		writeInternalError(w, err)
		return
	}

	path, err := archive.Write(bundle)
	if err != nil {
		logger.Error("Failed to package test suite", "error", err)
		writeInternalError(w, err)
		return
	}

	h.serveArchive(w, r, path)
}

// readPayload extracts the raw collection JSON from the request. All
// returned errors are user-correctable and tagged as such.
func (h *ConvertHandler) readPayload(r *http.Request) (json.RawMessage, error) {
	logger := ctxlog.From(r.Context())

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, goerr.New("No file selected", goerr.T(types.TagBadRequest))
		}
		defer file.Close()

		if header.Filename == "" {
			return nil, goerr.New("No file selected", goerr.T(types.TagBadRequest))
		}

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read uploaded file", goerr.T(types.TagBadRequest))
		}
		if !json.Valid(data) {
			return nil, goerr.New("Invalid JSON format", goerr.T(types.TagBadRequest))
		}

		logger.Info("Received file", "filename", header.Filename, "size", len(data))
		return data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read request body", goerr.T(types.TagBadRequest))
	}
	defer r.Body.Close()

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, goerr.New("No JSON data provided", goerr.T(types.TagBadRequest))
	}
	if !json.Valid(data) {
		return nil, goerr.New("Invalid JSON format", goerr.T(types.TagBadRequest))
	}

	logger.Info("Received JSON data directly", "size", len(data))
	return data, nil
}

// serveArchive streams the ZIP back as a timestamped attachment
func (h *ConvertHandler) serveArchive(w http.ResponseWriter, r *http.Request, path string) {
	logger := ctxlog.From(r.Context())

	f, err := os.Open(path)
	if err != nil {
		logger.Error("Failed to open archive", "error", err, "path", path)
		writeInternalError(w, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("karate-test-suite-%s.zip", time.Now().Format("20060102-150405"))

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, f); err != nil {
		logger.Error("Failed to stream archive", "error", err)
	}
}

// writeInternalError renders any non-user failure as a generic 500
func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, fmt.Errorf("Internal server error: %s", err.Error()), http.StatusInternalServerError)
}
