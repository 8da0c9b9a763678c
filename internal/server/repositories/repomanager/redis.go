package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authkernel/internal/server/repositories/users"
	"github.com/redis/go-redis/v9"
)

// RedisRepositoryManager vends the Redis-backed users repository.
type RedisRepositoryManager struct {
	client *redis.Client
	users  users.Repository
}

// NewRedisRepositoryManager connects to addr and checks the connection.
func NewRedisRepositoryManager(ctx context.Context, addr, password string) (*RedisRepositoryManager, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})

	m := &RedisRepositoryManager{client: client, users: users.NewRedisRepository(client)}
	if err := m.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping error: %w", err)
	}
	return m, nil
}

func (m *RedisRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *RedisRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx).Err()
}

func (m *RedisRepositoryManager) Close() error {
	return m.client.Close()
}
