// Package snapshot persists the last observed text per monitored page.
//
// Precondition: one orchestrator per store. Concurrent saves to different
// keys are safe; two cycles writing the same key concurrently are not
// supported and must be prevented by the caller's scheduler.
package snapshot

import (
	"context"
	"crypto/md5"
	"encoding/hex"

	"github.com/hamed0406/pagewatch/internal/domain"
)

// Key derives the storage key for a target URL. Stable across runs and
// platforms; used only for addressing, never as a security boundary.
func Key(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Store is the port a cycle reads and writes snapshots through.
// Load returns (nil, nil) when the key was never observed.
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	Load(ctx context.Context, key string) (*domain.Snapshot, error)
	// Save overwrites the snapshot for key with text captured now. A failed
	// save must leave any prior snapshot intact and loadable.
	Save(ctx context.Context, key string, text string) error
}
