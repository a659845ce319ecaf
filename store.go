package workflow

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Store when a key holds no value.
var ErrNotFound = errors.New("workflow: not found")

// Slot keys under which the Editor persists its state.
const (
	SlotWorkflow  = "workflowData"
	SlotTemplates = "draggableNodes"
)

// Store defines the key-value contract used to persist workflow snapshots.
type Store interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value at key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. No error if the key does not exist.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
