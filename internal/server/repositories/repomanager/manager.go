// Package repomanager builds the credential store selected by configuration
// and owns the lifetime of its underlying connection.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authkernel/internal/server/config"
	"github.com/dmitrijs2005/authkernel/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Ping(ctx context.Context) error
	Close() error
}

// New opens the backend named by cfg.Store. For postgres the schema
// migrations are applied before returning.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return NewMemoryRepositoryManager(), nil
	case config.StorePostgres:
		m, err := NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.StoreRedis:
		m, err := NewRedisRepositoryManager(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// MemoryRepositoryManager serves a process-local store.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
