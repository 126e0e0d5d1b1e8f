package server

import (
	"errors"
	"net/http"
	"strings"

	"moviedeck/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid registration data")
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	s.db.Model(&userRow{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		response.Error(c, http.StatusConflict, "Username already taken")
		return
	}
	if email != "" {
		s.db.Model(&userRow{}).Where("email = ?", email).Count(&count)
		if count > 0 {
			response.Error(c, http.StatusConflict, "Email already registered")
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user := userRow{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		s.log.Error("failed to create user", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	s.issueSession(c, http.StatusCreated, user)
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid login data")
		return
	}

	login := strings.TrimSpace(req.Login)
	var user userRow
	err := s.db.Where("username = ? OR email = ?", login, strings.ToLower(login)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.log.Error("failed to look up user", "error", err)
		response.Error(c, http.StatusInternalServerError, "Login failed")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		response.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.issueSession(c, http.StatusOK, user)
}

// handleVerify validates the bearer token outside RequireAuth so it can
// answer with the {valid, user, error} shape the client expects.
func (s *Server) handleVerify(c *gin.Context) {
	h := c.GetHeader("Authorization")
	tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if h == "" || tokenStr == "" || !strings.HasPrefix(h, "Bearer ") {
		response.Error(c, http.StatusUnauthorized, "Token is invalid")
		return
	}

	claims, err := s.jwt.ValidateToken(tokenStr)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Token is invalid")
		return
	}

	var user userRow
	if err := s.db.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		response.Error(c, http.StatusUnauthorized, "Token is invalid")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  user.toDomain(),
	})
}

func (s *Server) issueSession(c *gin.Context, status int, user userRow) {
	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		s.log.Error("failed to sign token", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to create session")
		return
	}

	c.JSON(status, gin.H{
		"user":      user.toDomain(),
		"token":     token,
		"expiresIn": s.jwt.TTL().String(),
	})
}
