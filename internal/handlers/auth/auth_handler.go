package auth

import (
	"net/http"
	"strconv"

	"carrental-service/internal/domain/user"
	"carrental-service/internal/middleware"
	"carrental-service/internal/pkg/response"
	service "carrental-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a staff account (admin only).
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	u, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create user", err)
		return
	}
	response.Success(c, http.StatusCreated, "user created", u)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.FromError(c, "login failed", err)
		return
	}
	response.Success(c, http.StatusOK, "login successful", result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	jti := middleware.MustGetJTI(c)

	if err := h.authService.Logout(c.Request.Context(), userID, jti); err != nil {
		response.FromError(c, "logout failed", err)
		return
	}
	response.Success(c, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.authService.Me(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, "failed to load profile", err)
		return
	}
	response.Success(c, http.StatusOK, "profile", u)
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list users", err)
		return
	}
	response.Success(c, http.StatusOK, "users", users)
}

// SetActive enables or disables a staff account (admin only).
func (h *AuthHandler) SetActive(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user ID", err)
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	if err := h.authService.SetActive(c.Request.Context(), id, *req.Active); err != nil {
		response.FromError(c, "failed to update user", err)
		return
	}
	response.Success(c, http.StatusOK, "user updated", nil)
}
