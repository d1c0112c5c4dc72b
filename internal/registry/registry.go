// Package registry holds the ordered list of monitored targets. The list is
// external configuration: the HTTP API (or an operator editing the file)
// writes it, the check cycle only reads it.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hamed0406/pagewatch/internal/domain"
)

// Registry is the port the orchestrator and the API read targets through.
type Registry interface {
	// Load returns targets in configured order. A missing or malformed
	// source degrades to an empty list, never an error that aborts a cycle.
	Load(ctx context.Context) ([]domain.Target, error)
	Add(ctx context.Context, t domain.Target) error
}

var _ Registry = (*FileRegistry)(nil)

// FileRegistry stores targets as a JSON array in one file, typically a
// sites.json kept next to the snapshot directory.
type FileRegistry struct {
	mu   sync.Mutex
	path string
}

func NewFileRegistry(path string) (*FileRegistry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("registry dir: %w", err)
	}
	return &FileRegistry{path: path}, nil
}

func (r *FileRegistry) Load(ctx context.Context) ([]domain.Target, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

// loadLocked reads the file and resets it to an empty list when missing,
// empty, or malformed. Config damage must never take the cycle down.
func (r *FileRegistry) loadLocked() ([]domain.Target, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, r.writeLocked(nil)
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}
	if len(b) == 0 {
		return nil, r.writeLocked(nil)
	}

	var targets []domain.Target
	if err := json.Unmarshal(b, &targets); err != nil {
		// Malformed config degrades to empty rather than failing cycles.
		return nil, r.writeLocked(nil)
	}
	return targets, nil
}

func (r *FileRegistry) Add(ctx context.Context, t domain.Target) error {
	if t.URL == "" {
		return fmt.Errorf("target url is empty")
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	targets, err := r.loadLocked()
	if err != nil {
		return err
	}
	for _, existing := range targets {
		if existing.URL == t.URL {
			return fmt.Errorf("target %s already registered", t.URL)
		}
	}
	return r.writeLocked(append(targets, t))
}

// writeLocked persists the list atomically so a crash mid-write cannot leave
// a malformed registry behind.
func (r *FileRegistry) writeLocked(targets []domain.Target) error {
	if targets == nil {
		targets = []domain.Target{}
	}
	b, err := json.MarshalIndent(targets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write registry: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}
