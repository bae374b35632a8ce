package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskflow/internal/auth"
	"taskflow/internal/models"
)

// handleRegister creates a new account from username and password.
func (s *Server) handleRegister(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		s.respondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
		return
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	user, err := s.store.CreateUser(c.Request.Context(), creds.Username, hash)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// handleLogin verifies credentials and issues an access token.
// Unknown usernames and wrong passwords are both reported as 401 so that
// account existence cannot be probed.
func (s *Server) handleLogin(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		s.respondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
		return
	}

	user, err := s.store.GetUserByUsername(c.Request.Context(), creds.Username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.respondError(c, fmt.Errorf("%w: invalid credentials", models.ErrUnauthorized))
			return
		}
		s.respondError(c, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, creds.Password) {
		s.respondError(c, fmt.Errorf("%w: invalid credentials", models.ErrUnauthorized))
		return
	}

	token, err := s.issuer.Issue(user, time.Now())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}
