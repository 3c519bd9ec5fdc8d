// Package server exposes the statement pipeline as a JSON-emitting HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spendlens/spendlens/pkg/api"
	"github.com/spendlens/spendlens/pkg/extract"
	"github.com/spendlens/spendlens/pkg/insights"
	"github.com/spendlens/spendlens/pkg/report"
	"github.com/spendlens/spendlens/pkg/statement"
)

// uploadField is the multipart form field carrying the statement file.
const uploadField = "statement"

// Config holds server options.
type Config struct {
	// Classification is the externally maintained retailer→category map.
	// Optional; without it responses omit category totals.
	Classification api.Classification
	// MaxUploadBytes caps the statement body size. Defaults to 10 MiB.
	MaxUploadBytes int64
	// WindowDays is the trailing window applied when a request carries no
	// days parameter. Zero means no default window.
	WindowDays int
	// Now supplies the reference instant for the trailing-window filter.
	// Defaults to time.Now; tests inject a fixed clock.
	Now func() time.Time
}

// Server handles statement uploads and returns aggregated summaries.
type Server struct {
	classification api.Classification
	maxUpload      int64
	windowDays     int
	now            func() time.Time
	logger         *slog.Logger
}

// New creates a Server.
func New(cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Server{
		classification: cfg.Classification,
		maxUpload:      cfg.MaxUploadBytes,
		windowDays:     cfg.WindowDays,
		now:            cfg.Now,
		logger:         logger,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/statement", s.handleStatement)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statementResponse is the report plus any records skipped in best-effort
// mode.
type statementResponse struct {
	report.Document
	SkippedRecords []string `json:"skipped_records,omitempty"`
}

// handleStatement runs the full pipeline over an uploaded statement.
//
// Body: either a raw text blob, or multipart/form-data with a "statement"
// file (.pdf files are extracted, anything else is treated as text).
// Query: days (optional positive integer trailing window; absent falls back
// to the configured default window, when one is set), strict (optional bool;
// default best-effort, skipping bad records).
func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	text, err := s.statementText(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	strict := false
	if v := r.URL.Query().Get("strict"); v != "" {
		strict, err = strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("strict: %w", err))
			return
		}
	}

	records := statement.Parse(text)

	var (
		transactions []api.Transaction
		skipped      []string
	)
	if strict {
		transactions, err = statement.Normalize(records)
		if err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
	} else {
		var errs []error
		transactions, errs = statement.NormalizeLenient(records)
		for _, e := range errs {
			skipped = append(skipped, e.Error())
		}
	}

	// An explicit days parameter always goes through the filter, so requests
	// for invalid windows fail instead of silently using the default.
	days, filter := s.windowDays, s.windowDays > 0
	if v := r.URL.Query().Get("days"); v != "" {
		days, err = strconv.Atoi(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("days: %w", err))
			return
		}
		filter = true
	}
	if filter {
		transactions, err = insights.FilterTrailing(transactions, days, s.now())
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, api.ErrInvalidWindow) {
				status = http.StatusBadRequest
			}
			s.writeError(w, status, err)
			return
		}
	}

	summaries := insights.Summarize(transactions)
	categories := insights.AggregateByCategory(s.classification, summaries.Debits)
	doc := report.Build(summaries, len(transactions), categories)

	s.writeJSON(w, http.StatusOK, statementResponse{Document: doc, SkippedRecords: skipped})
}

// statementText pulls the raw statement text out of the request body.
func (s *Server) statementText(r *http.Request) (string, error) {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if contentType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return "", fmt.Errorf("reading body: %w", err)
		}
		return string(data), nil
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return "", fmt.Errorf("reading %q form file: %w", uploadField, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}

	if strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		text, err := extract.FromReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return "", err
		}
		return text, nil
	}
	return string(data), nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
