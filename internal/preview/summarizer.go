package preview

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/jonathan/resume-wizard/internal/generation"
	"github.com/jonathan/resume-wizard/internal/store"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrGenerationInFlight is returned while a summary request is already running
	ErrGenerationInFlight = errors.New("summary generation already in progress")
	// ErrStaleResult is returned when a result arrives after the summary changed or the request was superseded.
	// The result is discarded and the store is left untouched.
	ErrStaleResult = errors.New("summary result is stale")
	// ErrEmptySummary is returned when the generator produced no text
	ErrEmptySummary = errors.New("generated summary is empty")
)

// Summarizer runs the generate-summary action against the store
type Summarizer struct {
	store     *store.Store
	generator generation.Generator
	logger    *log.Logger

	inFlight *semaphore.Weighted
	latest   atomic.Uint64
}

// NewSummarizer returns a Summarizer writing into s
func NewSummarizer(s *store.Store, gen generation.Generator, logger *log.Logger) *Summarizer {
	if logger == nil {
		logger = log.Default()
	}
	return &Summarizer{
		store:     s,
		generator: gen,
		logger:    logger,
		inFlight:  semaphore.NewWeighted(1),
	}
}

// Generating reports whether a request is in flight
func (s *Summarizer) Generating() bool {
	if s.inFlight.TryAcquire(1) {
		s.inFlight.Release(1)
		return false
	}
	return true
}

// Invalidate makes any in-flight result stale, for callers that navigate away
func (s *Summarizer) Invalidate() {
	s.latest.Add(1)
}

// GenerateSummary reads the current personal info, work experience and education, asks the
// generator for a summary, and writes it to the store. On failure the store is untouched.
// A result is applied only if no newer request or invalidation happened and the stored
// summary still equals the one the request started from.
func (s *Summarizer) GenerateSummary(ctx context.Context) (string, error) {
	if !s.inFlight.TryAcquire(1) {
		return "", ErrGenerationInFlight
	}
	defer s.inFlight.Release(1)

	token := s.latest.Add(1)
	snapshot := s.store.Snapshot()
	startedFrom := snapshot.ResumeData.PersonalInfo.Summary

	summary, err := s.generator.GenerateSummary(ctx, generation.NewSummaryRequest(snapshot.ResumeData))
	if err != nil {
		return "", err
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", ErrEmptySummary
	}

	if s.latest.Load() != token || !s.store.SetSummaryIf(startedFrom, summary) {
		s.logger.Printf("[preview] discarding stale summary result (request %d)", token)
		return "", ErrStaleResult
	}
	return summary, nil
}
