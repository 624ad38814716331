package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guluwater/officetools-server/internal/common"
	"github.com/guluwater/officetools-server/internal/server/users"
)

// RegisterRequest is the POST /api/register payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the POST /api/login payload. Username may also carry an
// email address.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserPayload is the public projection of a user record. The password hash
// is never part of any response.
type UserPayload struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Response is the uniform envelope for every endpoint.
type Response struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	User    *UserPayload  `json:"user,omitempty"`
	Users   []UserPayload `json:"users,omitempty"`
}

func publicUser(u *users.User, withCreatedAt bool) *UserPayload {
	p := &UserPayload{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
	if withCreatedAt {
		t := u.CreatedAt
		p.CreatedAt = &t
	}
	return p
}

// errorResponse maps service errors to an HTTP status and a caller-facing
// message. Anything unrecognized is a storage/internal failure and stays
// opaque.
func (s *Server) errorResponse(c *gin.Context, err error) {
	var status int
	var message string

	switch {
	case errors.Is(err, common.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrUsernameExists):
		status, message = http.StatusBadRequest, "username already exists"
	case errors.Is(err, common.ErrEmailExists):
		status, message = http.StatusBadRequest, "email already exists"
	case errors.Is(err, common.ErrAlreadyExists):
		status, message = http.StatusBadRequest, "user already exists"
	case errors.Is(err, common.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "invalid username or password"
	default:
		status, message = http.StatusInternalServerError, "server error"
		s.logger.Error(c.Request.Context(), "request failed",
			"request_id", c.GetString("request_id"), "error", err.Error())
	}

	c.JSON(status, Response{Success: false, Message: message})
}

// Register handles POST /api/register.
func (s *Server) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "invalid request body"})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "registration successful",
		User:    publicUser(user, false),
	})
}

// Login handles POST /api/login.
func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "invalid request body"})
		return
	}

	user, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "login successful",
		User:    publicUser(user, false),
	})
}

// ListUsers handles GET /api/users.
func (s *Server) ListUsers(c *gin.Context) {
	list, err := s.users.List(c.Request.Context())
	if err != nil {
		s.errorResponse(c, err)
		return
	}

	payload := make([]UserPayload, 0, len(list))
	for _, u := range list {
		payload = append(payload, *publicUser(u, true))
	}

	c.JSON(http.StatusOK, Response{Success: true, Users: payload})
}

// Health handles GET /health.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
