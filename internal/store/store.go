// Package store provides session persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/domain"
)

// Repository is the session-repository abstraction. Backends are
// swappable (in-memory, Redis, SQLite) without touching the core.
type Repository interface {
	// GetOrCreate returns the session for sessionID, creating it with
	// default state on first reference.
	GetOrCreate(ctx context.Context, sessionID string) (*domain.Session, error)

	// Save replaces stored state for the session. Last-writer-wins; the
	// orchestrator serializes turns per session via KeyedMutex.
	Save(ctx context.Context, session *domain.Session) error

	// EvictIdle removes sessions whose last activity is older than ttl
	// and returns how many were removed. Backends with native expiry
	// may report zero.
	EvictIdle(ctx context.Context, ttl time.Duration) (int, error)

	// Ping verifies backend connectivity.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// StartEvictionWorker runs EvictIdle on a fixed interval until ctx is
// cancelled. Idle-session expiry keeps the session map from growing
// without bound.
func StartEvictionWorker(ctx context.Context, repo Repository, ttl, interval time.Duration, onEvict func(count int)) {
	if ttl <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				count, err := repo.EvictIdle(ctx, ttl)
				if err != nil || count == 0 {
					continue
				}
				if onEvict != nil {
					onEvict(count)
				}
			}
		}
	}()
}
