package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/authkernel/internal/common"
	"github.com/dmitrijs2005/authkernel/internal/server/models"
)

// MemoryRepository keeps users in process memory. Records are copied on
// the way in and out so callers cannot mutate stored state.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func clone(u models.User) *models.User {
	u.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &u
}

func (r *MemoryRepository) Insert(_ context.Context, user *models.User) (*models.User, error) {
	key := models.NormalizeEmail(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[key]; ok {
		return nil, common.ErrAlreadyExists
	}
	if _, ok := r.byID[user.ID]; ok {
		return nil, common.ErrAlreadyExists
	}

	r.byID[user.ID] = *clone(*user)
	r.byEmail[key] = user.ID
	return user, nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[models.NormalizeEmail(email)]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(u), nil
}

// Len returns the number of stored users.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
