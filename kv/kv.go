// Package kv provides workflow.Store implementations that need no network
// service: an in-memory map for tests, a directory of files for the CLI and
// an embedded BadgerDB for long-running servers. Scoped namespaces any Store
// under a key prefix so several workspaces can share one backend.
package kv

import (
	"context"

	"github.com/meikuraledutech/workflow"
)

// Scoped prefixes every key passed to an inner Store.
type Scoped struct {
	inner  workflow.Store
	prefix string
}

// NewScoped wraps inner so all keys are stored under prefix.
func NewScoped(inner workflow.Store, prefix string) *Scoped {
	return &Scoped{inner: inner, prefix: prefix}
}

// WorkspacePrefix is the key prefix used for a named workspace.
func WorkspacePrefix(name string) string {
	return "workspace:" + name + ":"
}

// Get returns the value stored under key, or workflow.ErrNotFound.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set stores value under key, replacing any previous value.
func (s *Scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the inner store.
func (s *Scoped) Close() error {
	return s.inner.Close()
}

var _ workflow.Store = (*Scoped)(nil)
