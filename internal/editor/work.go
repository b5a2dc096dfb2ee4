package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-wizard/internal/generation"
	"github.com/jonathan/resume-wizard/internal/store"
	"github.com/jonathan/resume-wizard/internal/types"
	"golang.org/x/sync/semaphore"
)

// ErrGenerationInFlight is returned when bullet generation is already running for this editor
var ErrGenerationInFlight = errors.New("bullet generation already in progress")

// WorkEditor is the work experience editor with bullet list helpers
type WorkEditor struct {
	*Editor[types.WorkExperience]
	generating *semaphore.Weighted
}

// NewWorkEditor returns a work experience editor
func NewWorkEditor(s *store.Store, v *types.Validator) *WorkEditor {
	return &WorkEditor{
		Editor:     New(WorkExperienceBinding(s), v),
		generating: semaphore.NewWeighted(1),
	}
}

// AddBullet appends an empty bullet to the draft and returns its index
func (e *WorkEditor) AddBullet() int {
	var i int
	e.Update(func(w *types.WorkExperience) {
		w.Description = append(w.Description, "")
		i = len(w.Description) - 1
	})
	return i
}

// UpdateBullet replaces bullet i in the draft
func (e *WorkEditor) UpdateBullet(i int, text string) error {
	var err error
	e.Update(func(w *types.WorkExperience) {
		if i < 0 || i >= len(w.Description) {
			err = fmt.Errorf("bullet %d out of range (have %d)", i, len(w.Description))
			return
		}
		w.Description[i] = text
	})
	return err
}

// RemoveBullet deletes bullet i from the draft, keeping the order of the rest
func (e *WorkEditor) RemoveBullet(i int) error {
	var err error
	e.Update(func(w *types.WorkExperience) {
		if i < 0 || i >= len(w.Description) {
			err = fmt.Errorf("bullet %d out of range (have %d)", i, len(w.Description))
			return
		}
		w.Description = append(w.Description[:i:i], w.Description[i+1:]...)
	})
	return err
}

// SetCurrentRole toggles the draft's current-role flag. Setting it fills in "Present";
// clearing it drops "Present" so a real end date can be entered.
func (e *WorkEditor) SetCurrentRole(current bool) {
	e.Update(func(w *types.WorkExperience) {
		w.IsCurrentRole = current
		switch {
		case current:
			w.EndDate = types.PresentEndDate
		case w.EndDate == types.PresentEndDate:
			w.EndDate = ""
		}
	})
}

// GenerateBullets asks gen for bullets based on the draft's title and company and replaces the
// draft's description with the result. The store is not touched. Only one call may run at a time.
func (e *WorkEditor) GenerateBullets(ctx context.Context, gen generation.Generator) ([]string, error) {
	draft := e.Draft()
	req := generation.BulletsRequest{
		JobTitle:         strings.TrimSpace(draft.JobTitle),
		Company:          strings.TrimSpace(draft.Company),
		Responsibilities: generation.DefaultResponsibilities,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if existing := nonEmpty(draft.Description); len(existing) > 0 {
		req.Responsibilities = strings.Join(existing, "; ")
	}

	if !e.generating.TryAcquire(1) {
		return nil, ErrGenerationInFlight
	}
	defer e.generating.Release(1)

	bullets, err := gen.GenerateBullets(ctx, req)
	if err != nil {
		return nil, err
	}

	e.Update(func(w *types.WorkExperience) {
		w.Description = append([]string(nil), bullets...)
	})
	return bullets, nil
}

func nonEmpty(lines []string) []string {
	var out []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}
