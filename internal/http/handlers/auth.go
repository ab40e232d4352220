package handlers

import (
	"context"
	"net/http"

	"github.com/clickfit/clickfit/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (user.User, error)
}

type AuthHandler struct {
	users Authenticator
}

func NewAuthHandler(users Authenticator) *AuthHandler {
	return &AuthHandler{users: users}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := requestTimeout(ctx)

	defer cancel()

	u, err := h.users.Authenticate(cctx, req.Email, req.Password)

	if err != nil {
		respondServiceError(ctx, err, "Login failed")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    u,
	})
}
