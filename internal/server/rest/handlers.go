package rest

import (
	"net/http"

	"github.com/dmitrijs2005/authkernel/internal/common"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	res, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": res.Token, "user": res.User})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	res, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": res.Token, "user": res.User})
}

func (s *Server) verify(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		s.writeError(c, common.ErrMissingToken)
		return
	}

	claims, err := s.users.Verify(c.Request.Context(), token)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "claims": claims})
}

func (s *Server) profile(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		s.writeError(c, common.ErrMissingToken)
		return
	}

	user, err := s.users.Profile(c.Request.Context(), token)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func bearerToken(c *gin.Context) (string, bool) {
	return common.BearerToken(c.GetHeader("Authorization"))
}
