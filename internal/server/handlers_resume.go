package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/export"
	"github.com/jonathan/resume-wizard/internal/preview"
	"github.com/jonathan/resume-wizard/internal/types"
)

// handleGetResume returns the current workspace state
func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// handlePreview renders the live preview. ?format=text gives the plain terminal layout.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	state := s.store.Snapshot()
	blocks := preview.Blocks(document.Resolve(state.ResumeData), preview.Options{
		ShowGenerateSummary: true,
		Generating:          s.summarizer.Generating(),
	})

	switch r.URL.Query().Get("format") {
	case "", "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := preview.WriteHTML(w, blocks, state.Theme); err != nil {
			s.logger.Printf("[preview] %v", err)
		}
	case "text":
		width, _ := strconv.Atoi(r.URL.Query().Get("width"))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := preview.WriteText(w, blocks, preview.PlainStyles(), width); err != nil {
			s.logger.Printf("[preview] %v", err)
		}
	default:
		s.errorResponse(w, http.StatusBadRequest, "format must be html or text")
	}
}

// handleEvents streams a "state" event with the current state and one after every committed change
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	// the stream outlives the server's write timeout
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	updates := make(chan types.State, 1)
	unsubscribe := s.store.Subscribe(func(state types.State) {
		// keep only the newest state; observers must not block the commit path
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- state:
		default:
		}
	})
	defer unsubscribe()

	if err := sse.WriteEvent("state", s.store.Snapshot()); err != nil {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case state := <-updates:
			if err := sse.WriteEvent("state", state); err != nil {
				return
			}
		}
	}
}

// handleWorkspaceSummary runs the preview's generate-summary action against the workspace
func (s *Server) handleWorkspaceSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	summary, err := s.summarizer.GenerateSummary(r.Context())
	if !errors.Is(err, preview.ErrGenerationInFlight) {
		s.metrics.observeGeneration("workspace-summary", start, err)
	}
	if err != nil {
		s.logger.Printf("[preview] generate summary: %v", err)
		status := HTTPStatus(err)
		msg := msgSummaryFailed
		if status == http.StatusConflict {
			msg = err.Error()
		}
		if status == http.StatusBadGateway {
			status = http.StatusInternalServerError
		}
		s.errorResponse(w, status, msg)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"summary": summary})
}

// handleExport renders the workspace and returns the artifact as a download
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := s.format
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := export.ParseFormat(f)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		format = parsed
	}

	artifact, err := s.exporter.Export(r.Context(), s.store.Snapshot().ResumeData, format)
	if err != nil {
		if !errors.Is(err, export.ErrNotExportable) && !errors.Is(err, export.ErrExportInProgress) {
			s.metrics.exports.WithLabelValues(string(format), "error").Inc()
		}
		status := HTTPStatus(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			msg = "Failed to generate export. Please try again."
		}
		s.errorResponse(w, status, msg)
		return
	}
	s.metrics.exports.WithLabelValues(string(format), "success").Inc()

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	if artifact.Pages > 0 {
		w.Header().Set("X-Page-Count", strconv.Itoa(artifact.Pages))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		s.logger.Printf("[export] failed to write artifact: %v", err)
	}
}

type exportStatusResponse struct {
	Phase      export.Phase  `json:"phase"`
	Format     export.Format `json:"format,omitempty"`
	FileName   string        `json:"fileName,omitempty"`
	Error      string        `json:"error,omitempty"`
	Exportable bool          `json:"exportable"`
}

// handleExportStatus reports the exporter state and whether export is currently offered
func (s *Server) handleExportStatus(w http.ResponseWriter, _ *http.Request) {
	status := s.exporter.Status()
	resp := exportStatusResponse{
		Phase:      status.Phase,
		Format:     status.Format,
		Exportable: export.Exportable(s.store.PersonalInfo()),
	}
	if status.Artifact != nil {
		resp.FileName = status.Artifact.FileName
	}
	if status.Err != nil {
		resp.Error = status.Err.Error()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
