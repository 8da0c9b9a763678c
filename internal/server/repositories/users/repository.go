// Package users contains the credential store: persistence of user records
// keyed by email, with no hashing logic of its own.
package users

import (
	"context"

	"github.com/dmitrijs2005/authkernel/internal/server/models"
)

// Repository is the credential store contract.
//
// Emails are compared case-insensitively (see models.NormalizeEmail).
// Insert must be an atomic check-then-insert: of several concurrent inserts
// for the same normalised email exactly one succeeds and the others get
// common.ErrAlreadyExists. Lookups that find nothing return
// common.ErrNotFound. Any other error means the store itself failed.
type Repository interface {
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}
