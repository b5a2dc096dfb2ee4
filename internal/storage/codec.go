// Package storage provides key-value persistence backends for the wizard state.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-wizard/internal/schemas"
	"github.com/jonathan/resume-wizard/internal/types"
)

// DefaultKey is the storage name the wizard state is kept under
const DefaultKey = "resume-builder-storage"

// BlobVersion is written into every encoded blob
const BlobVersion = 0

type envelope struct {
	State   types.State `json:"state"`
	Version int         `json:"version"`
}

// DecodeError reports a stored blob that could not be turned back into state
type DecodeError struct {
	Key   string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode stored state %q: %v", e.Key, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Encode serializes state into the persisted blob format
func Encode(state types.State) ([]byte, error) {
	data, err := json.Marshal(envelope{State: state, Version: BlobVersion})
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// Decode validates blob against the state schema and unmarshals it
func Decode(key string, blob []byte) (*types.State, error) {
	if err := schemas.Validate(schemas.StateSchema, blob); err != nil {
		return nil, &DecodeError{Key: key, Cause: err}
	}
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, &DecodeError{Key: key, Cause: err}
	}
	return &env.State, nil
}
