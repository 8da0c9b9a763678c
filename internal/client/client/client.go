package client

import (
	"context"

	"github.com/dmitrijs2005/authkernel/internal/authrpc"
)

type Client interface {
	Close() error
	Register(ctx context.Context, name, email string, password []byte) (*authrpc.User, error)
	Login(ctx context.Context, email string, password []byte) (*authrpc.User, error)
	Verify(ctx context.Context) (*authrpc.Claims, error)
	Profile(ctx context.Context) (*authrpc.User, error)
	Ping(ctx context.Context) error
	Token() string
	SetToken(token string)
}
