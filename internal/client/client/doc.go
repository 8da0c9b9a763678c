// Package client contains client-side building blocks for authkernel.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register, Login, Verify, Profile and Ping.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, injects the bearer token via an interceptor and maps
//     gRPC status codes to sentinel errors.
//  3. TokenStore, which keeps the session token in a 0600 file between runs.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrAlreadyExists,
// ErrInvalidRequest, ErrNotFound.
package client
