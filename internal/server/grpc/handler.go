package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/authkernel/internal/authrpc"
	"github.com/dmitrijs2005/authkernel/internal/common"
	"github.com/dmitrijs2005/authkernel/internal/server/models"
	"github.com/dmitrijs2005/authkernel/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *authrpc.RegisterRequest) (*authrpc.AuthResponse, error) {
	res, err := s.users.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return toAuthResponse(res), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *authrpc.LoginRequest) (*authrpc.AuthResponse, error) {
	res, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return toAuthResponse(res), nil
}

func (s *GRPCServer) Verify(ctx context.Context, _ *authrpc.VerifyRequest) (*authrpc.VerifyResponse, error) {
	token, ok := accessTokenFromContext(ctx)
	if !ok {
		return nil, s.mapError(ctx, common.ErrMissingToken)
	}

	claims, err := s.users.Verify(ctx, token)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return &authrpc.VerifyResponse{
		Valid: true,
		Claims: &authrpc.Claims{
			UserID:    claims.UserID,
			Email:     claims.Email,
			IssuedAt:  claims.IssuedAt,
			ExpiresAt: claims.ExpiresAt,
		},
	}, nil
}

func (s *GRPCServer) Profile(ctx context.Context, _ *authrpc.ProfileRequest) (*authrpc.ProfileResponse, error) {
	token, ok := accessTokenFromContext(ctx)
	if !ok {
		return nil, s.mapError(ctx, common.ErrMissingToken)
	}

	user, err := s.users.Profile(ctx, token)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return &authrpc.ProfileResponse{User: toUser(*user)}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *authrpc.PingRequest) (*authrpc.PingResponse, error) {
	return &authrpc.PingResponse{Status: "OK"}, nil
}

// mapError converts a service error into a gRPC status. Internal details
// are logged, never returned.
func (s *GRPCServer) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrDuplicateAccount):
		return status.Error(codes.AlreadyExists, common.ErrDuplicateAccount.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.InvalidArgument, common.ErrInvalidCredentials.Error())
	case errors.Is(err, common.ErrMissingToken):
		return status.Error(codes.Unauthenticated, common.ErrMissingToken.Error())
	case errors.Is(err, common.ErrMalformedToken),
		errors.Is(err, common.ErrInvalidSignature),
		errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, "user not found")
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func toUser(u models.AuthenticatedUser) *authrpc.User {
	return &authrpc.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toAuthResponse(res *services.AuthResult) *authrpc.AuthResponse {
	return &authrpc.AuthResponse{Token: res.Token, User: toUser(res.User)}
}
