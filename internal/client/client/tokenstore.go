package client

import (
	"strings"

	"github.com/dmitrijs2005/authkernel/internal/filex"
)

// TokenStore persists the session token to a file only the user can read.
// Logging out deletes the file; the server keeps no session to revoke.
type TokenStore struct {
	path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Load returns the saved token, or "" when none is saved.
func (t *TokenStore) Load() (string, error) {
	data, err := filex.ReadFileIfExists(t.path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (t *TokenStore) Save(token string) error {
	return filex.WriteFileAtomic(t.path, []byte(token), 0o600)
}

func (t *TokenStore) Clear() error {
	return filex.RemoveIfExists(t.path)
}
