// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/sumry/source"
	"github.com/poiesic/sumry/summarize"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
	maxRequestBytes    = 64 << 10
)

type summarizeRequest struct {
	URL string `json:"url"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type summaryItem struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Model     string    `json:"model"`
	Summary   string    `json:"summary"`
	Chunks    int       `json:"chunks"`
	Failed    int       `json:"failed"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: "sumry backend is running"})
}

func (s *Server) handleSummarizeArxiv(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	result, err := s.summarizer.SummarizeURL(r.Context(), req.URL)
	if err != nil {
		status := statusForError(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("summarization failed", "url", req.URL, "err", err)
		} else {
			s.logger.Warn("summarization rejected", "url", req.URL, "err", err)
		}
		s.writeError(w, status, err.Error())
		return
	}

	if !result.Report.Complete() {
		s.logger.Error("summarization incomplete", "url", req.URL, "status", result.Report.Status)
		s.writeError(w, http.StatusBadGateway, result.Report.Text)
		return
	}

	s.writeJSON(w, http.StatusOK, summarizeResponse{Summary: result.Report.Text})
}

func (s *Server) handleRecentSummaries(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxRecentLimit)
	}

	records, err := s.summarizer.RecentSummaries(r.Context(), limit)
	if err != nil {
		s.logger.Warn("listing summaries failed", "err", err)
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	items := make([]summaryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, summaryItem{
			ID:        strconv.FormatUint(uint64(rec.Id), 16),
			Source:    rec.Source,
			Model:     rec.Model,
			Summary:   rec.Summary,
			Chunks:    rec.Chunks,
			Failed:    rec.Failed,
			CreatedAt: rec.CreatedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, items)
}

// statusForError maps summarization errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, source.ErrURLNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, source.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, source.ErrNotPDF),
		errors.Is(err, source.ErrInvalidPDF),
		errors.Is(err, source.ErrNoText),
		errors.Is(err, summarize.ErrNoContent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, source.ErrDownloadFailed):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("failed to write response", "status", status, "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
