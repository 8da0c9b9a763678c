package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/authkernel/internal/common"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error to an HTTP status and client message.
// Anything unrecognised is a 500 with a generic message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrDuplicateAccount):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, common.ErrMissingToken):
		return http.StatusUnauthorized, "Access token required"
	case common.IsTokenError(err):
		return http.StatusForbidden, "Invalid or expired token"
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, "User not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (s *Server) writeError(c *gin.Context, err error) {
	code, msg := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(code, gin.H{"message": msg})
}
