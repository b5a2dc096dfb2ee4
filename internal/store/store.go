// Package store owns the canonical resume state and funnels every mutation through one commit path.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-wizard/internal/types"
)

// persistTimeout bounds a single Save call made from the commit path
const persistTimeout = 5 * time.Second

// errNoChange lets a mutation finish without notifying or persisting
var errNoChange = errors.New("no change")

// Persister loads and saves the whole state. Load returns (nil, nil) when nothing is stored.
type Persister interface {
	Load(ctx context.Context) (*types.State, error)
	Save(ctx context.Context, state types.State) error
}

// Observer receives a private copy of the state after every committed mutation
type Observer func(state types.State)

type subscription struct {
	id int
	fn Observer
}

// Store is the single owner of the resume data and wizard position.
// Observers are notified synchronously, in subscription order, before a mutating call returns.
// Observers must not call mutating methods.
type Store struct {
	commitMu sync.Mutex // serializes mutate, notify, persist
	mu       sync.RWMutex
	state    types.State
	issued   map[string]struct{}

	observers []subscription
	nextSubID int

	persister Persister
	logger    *log.Logger
	newID     func() (string, error)
}

// New creates a Store and restores state from persister. A nil persister, a missing blob,
// or a load failure all produce the empty default state.
func New(ctx context.Context, persister Persister, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		issued:    make(map[string]struct{}),
		persister: persister,
		logger:    logger,
		newID:     newUUIDv7,
	}
	s.state = s.load(ctx)
	return s
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate entry id: %w", err)
	}
	return id.String(), nil
}

func (s *Store) load(ctx context.Context) types.State {
	if s.persister == nil {
		return types.NewState()
	}

	loaded, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Printf("[store] failed to load saved state, starting empty: %v", err)
		return types.NewState()
	}
	if loaded == nil {
		return types.NewState()
	}

	state := loaded.Clone()
	s.normalizeLoaded(&state)
	return state
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() types.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers an observer and returns a function that removes it
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.observers = append(s.observers, subscription{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.observers = slices.DeleteFunc(s.observers, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// commit applies mutate under the state lock, then notifies observers and persists.
// mutate must either fully apply or return an error having changed nothing.
func (s *Store) commit(mutate func(state *types.State) error) error {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.Lock()
	if err := mutate(&s.state); err != nil {
		s.mu.Unlock()
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}
	snapshot := s.state.Clone()
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, sub := range observers {
		sub.fn(snapshot.Clone())
	}
	s.persist(snapshot)
	return nil
}

func (s *Store) persist(state types.State) {
	if s.persister == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.persister.Save(ctx, state); err != nil {
		s.logger.Printf("[store] failed to persist state: %v", err)
	}
}

// issueID returns an id never handed out or loaded before by this store. Caller holds mu.
func (s *Store) issueID() (string, error) {
	for {
		id, err := s.newID()
		if err != nil {
			return "", err
		}
		if _, taken := s.issued[id]; taken {
			continue
		}
		s.issued[id] = struct{}{}
		return id, nil
	}
}

// UpdatePersonalInfo merges the present fields of patch into PersonalInfo
func (s *Store) UpdatePersonalInfo(patch types.PersonalInfoPatch) {
	_ = s.commit(func(state *types.State) error {
		patch.Apply(&state.ResumeData.PersonalInfo)
		return nil
	})
}

// SetSummaryIf replaces the summary only if it still equals expected, and reports whether it did
func (s *Store) SetSummaryIf(expected, summary string) bool {
	applied := false
	_ = s.commit(func(state *types.State) error {
		if state.ResumeData.PersonalInfo.Summary != expected {
			return errNoChange
		}
		state.ResumeData.PersonalInfo.Summary = summary
		applied = true
		return nil
	})
	return applied
}

// PersonalInfo returns the current personal info
func (s *Store) PersonalInfo() types.PersonalInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ResumeData.PersonalInfo
}

// CurrentStep returns the wizard position
func (s *Store) CurrentStep() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentStep
}

// SetCurrentStep clamps n to the wizard's range, stores it, and returns the stored value
func (s *Store) SetCurrentStep(n int) int {
	step := types.ClampStep(n)
	_ = s.commit(func(state *types.State) error {
		if state.CurrentStep == step {
			return errNoChange
		}
		state.CurrentStep = step
		return nil
	})
	return step
}

// ToggleTheme flips the persisted theme and returns the new value
func (s *Store) ToggleTheme() types.Theme {
	var theme types.Theme
	_ = s.commit(func(state *types.State) error {
		state.Theme = state.Theme.Toggle()
		theme = state.Theme
		return nil
	})
	return theme
}

// Reset clears all resume data and returns to the first step. The theme is kept.
// Ids issued before the reset stay retired.
func (s *Store) Reset() {
	_ = s.commit(func(state *types.State) error {
		state.ResumeData = types.NewResumeData()
		state.CurrentStep = types.FirstStep
		return nil
	})
}

// RemoveEntry removes an entry of the given kind by id. Absent ids are a no-op.
func (s *Store) RemoveEntry(kind types.Kind, id string) error {
	switch kind {
	case types.KindWorkExperience:
		s.RemoveWorkExperience(id)
	case types.KindEducation:
		s.RemoveEducation(id)
	case types.KindSkills:
		s.RemoveSkillGroup(id)
	default:
		return fmt.Errorf("cannot remove entries of kind %q", kind)
	}
	return nil
}

func indexOf[T interface{ EntryID() string }](items []T, id string) int {
	return slices.IndexFunc(items, func(item T) bool {
		return item.EntryID() == id
	})
}

func removeByID[T interface{ EntryID() string }](items []T, id string) ([]T, bool) {
	i := indexOf(items, id)
	if i < 0 {
		return items, false
	}
	return slices.Delete(items, i, i+1), true
}

func findByID[T interface{ EntryID() string }](s *Store, items func(*types.State) []T, id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := items(&s.state)
	if i := indexOf(list, id); i >= 0 {
		return list[i], true
	}
	var zero T
	return zero, false
}
