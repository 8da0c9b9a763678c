// Package grpc serves the authentication API over gRPC.
package grpc

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrijs2005/authkernel/internal/authrpc"
	"github.com/dmitrijs2005/authkernel/internal/logging"
	"github.com/dmitrijs2005/authkernel/internal/server/models"
	"github.com/dmitrijs2005/authkernel/internal/server/services"
	"google.golang.org/grpc"
)

// AuthService is the part of services.UserService the handlers use.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Verify(ctx context.Context, token string) (*models.Claims, error)
	Profile(ctx context.Context, token string) (*models.AuthenticatedUser, error)
}

type GRPCServer struct {
	authrpc.UnimplementedAuthServiceServer
	address string
	users   AuthService
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us AuthService) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
	}
}

// NewServer builds a grpc.Server with the interceptors and the service
// registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	authrpc.RegisterAuthServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}

	return nil
}
