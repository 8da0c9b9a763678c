package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkernel/internal/common"
	"github.com/dmitrijs2005/authkernel/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const (
	redisEmailPrefix = "authkernel:email:"
	redisUserPrefix  = "authkernel:user:"
)

// redisUser is the stored JSON form; unlike models.User it keeps the hash.
type redisUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// insertScript claims KEYS[1] (the email) for ARGV[1] (the id) and writes
// ARGV[2] to KEYS[2] (the record) in one step. An email key whose record is
// missing (ARGV[3] is the record key prefix) is taken over. Returns 1 on
// success, 0 when the email belongs to an existing record.
var insertScript = redis.NewScript(`
local owner = redis.call('GET', KEYS[1])
if owner and redis.call('EXISTS', ARGV[3] .. owner) == 1 then
  return 0
end
redis.call('SET', KEYS[1], ARGV[1])
redis.call('SET', KEYS[2], ARGV[2])
return 1
`)

// RedisRepository stores each user as JSON under authkernel:user:<id> and
// claims the email on authkernel:email:<normalised email>. The claim and the
// record write run as one server-side script.
type RedisRepository struct {
	client redis.Cmdable
}

func NewRedisRepository(client redis.Cmdable) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) emailKey(email string) string {
	return redisEmailPrefix + models.NormalizeEmail(email)
}

func (r *RedisRepository) userKey(id string) string {
	return redisUserPrefix + id
}

func (r *RedisRepository) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	data, err := json.Marshal(redisUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}

	keys := []string{r.emailKey(user.Email), r.userKey(user.ID)}
	claimed, err := insertScript.Run(ctx, r.client, keys, user.ID, data, redisUserPrefix).Int()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if claimed == 0 {
		return nil, common.ErrAlreadyExists
	}

	return user, nil
}

func (r *RedisRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	id, err := r.client.Get(ctx, r.emailKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *RedisRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	data, err := r.client.Get(ctx, r.userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	var stored redisUser
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("db error: corrupt user record %s: %w", id, err)
	}

	return &models.User{
		ID:           stored.ID,
		Name:         stored.Name,
		Email:        stored.Email,
		PasswordHash: stored.PasswordHash,
		CreatedAt:    stored.CreatedAt,
	}, nil
}
