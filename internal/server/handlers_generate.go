package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jonathan/resume-wizard/internal/generation"
)

const maxRequestBytes = 1 << 20

// handleGenerateSummary serves POST /api/generate-summary
func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorResponse(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	var req generation.SummaryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil || req.Validate() != nil {
		s.errorResponse(w, http.StatusBadRequest, msgPersonalInfoRequired)
		return
	}

	start := time.Now()
	summary, err := s.generator.GenerateSummary(r.Context(), req)
	s.metrics.observeGeneration("generate-summary", start, err)
	if err != nil {
		s.logger.Printf("[generation] Error generating summary: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, msgSummaryFailed)
		return
	}
	s.jsonResponse(w, http.StatusOK, generation.SummaryResponse{Summary: summary})
}

// handleGenerateBullets serves POST /api/generate-bullets
func (s *Server) handleGenerateBullets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorResponse(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	var req generation.BulletsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil || req.Validate() != nil {
		s.errorResponse(w, http.StatusBadRequest, msgTitleCompanyRequired)
		return
	}

	start := time.Now()
	bullets, err := s.generator.GenerateBullets(r.Context(), req)
	s.metrics.observeGeneration("generate-bullets", start, err)
	if err != nil {
		s.logger.Printf("[generation] Error generating bullets: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, msgBulletsFailed)
		return
	}
	if bullets == nil {
		bullets = []string{}
	}
	s.jsonResponse(w, http.StatusOK, generation.BulletsResponse{Bullets: bullets})
}
