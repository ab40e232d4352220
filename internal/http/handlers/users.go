package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/clickfit/clickfit/internal/domain/user"
	"github.com/clickfit/clickfit/internal/service"
	"github.com/gin-gonic/gin"
)

// UserManager is the slice of the account service the CRUD endpoints need.
type UserManager interface {
	Create(ctx context.Context, in service.CreateUserInput) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	List(ctx context.Context, filter user.ListFilter) ([]user.User, error)
	Update(ctx context.Context, id int64, in service.UpdateUserInput) (user.User, error)
	Deactivate(ctx context.Context, id int64) (user.User, error)
	ListByType(ctx context.Context, typ user.Type) ([]user.User, error)
}

type UsersHandler struct {
	users UserManager
}

func NewUsersHandler(users UserManager) *UsersHandler {
	return &UsersHandler{users: users}
}

type CreateUserRequest struct {
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Type     user.Type `json:"type" binding:"omitempty,oneof=admin trainer member"`
	Active   *bool     `json:"active"`
}

type UpdateUserRequest struct {
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Type     user.Type `json:"type" binding:"omitempty,oneof=admin trainer member"`
	Active   *bool     `json:"active"`
}

func (h *UsersHandler) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := requestTimeout(ctx)

	defer cancel()

	u, err := h.users.Create(cctx, service.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Type:     req.Type,
		Active:   req.Active,
	})

	if err != nil {
		respondServiceError(ctx, err, "Failed to create user")
		return
	}

	RespondMessage(ctx, "User created successfully", u)
}

func (h *UsersHandler) GetUserByID(ctx *gin.Context) {
	id, ok := userIDParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := requestTimeout(ctx)

	defer cancel()

	u, err := h.users.GetByID(cctx, id)

	if err != nil {
		respondServiceError(ctx, err, "Failed to fetch user")
		return
	}

	RespondData(ctx, u)
}

func (h *UsersHandler) ListUsers(ctx *gin.Context) {
	var filter user.ListFilter

	if raw, exists := ctx.GetQuery("type"); exists {
		typ := user.Type(raw)
		filter.Type = &typ
	}

	if raw, exists := ctx.GetQuery("active"); exists {
		active := raw == "true"
		filter.Active = &active
	}

	cctx, cancel := requestTimeout(ctx)

	defer cancel()

	users, err := h.users.List(cctx, filter)

	if err != nil {
		respondServiceError(ctx, err, "Failed to fetch users")
		return
	}

	RespondList(ctx, users, len(users))
}

func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	id, ok := userIDParam(ctx)

	if !ok {
		return
	}

	var req UpdateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := requestTimeout(ctx)

	defer cancel()

	u, err := h.users.Update(cctx, id, service.UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Type:     req.Type,
		Active:   req.Active,
	})

	if err != nil {
		respondServiceError(ctx, err, "Failed to update user")
		return
	}

	RespondMessage(ctx, "User updated successfully", u)
}

func (h *UsersHandler) DeleteUser(ctx *gin.Context) {
	id, ok := userIDParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := requestTimeout(ctx)

	defer cancel()

	u, err := h.users.Deactivate(cctx, id)

	if err != nil {
		respondServiceError(ctx, err, "Failed to delete user")
		return
	}

	RespondMessage(ctx, "User deactivated successfully", u)
}

func (h *UsersHandler) GetUsersByType(ctx *gin.Context) {
	typ := user.Type(ctx.Param("type"))

	cctx, cancel := requestTimeout(ctx)

	defer cancel()

	users, err := h.users.ListByType(cctx, typ)

	if err != nil {
		respondServiceError(ctx, err, "Failed to fetch users by type")
		return
	}

	RespondList(ctx, users, len(users))
}

func userIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil {
		RespondBadRequest(ctx, "Invalid user id")
		return 0, false
	}

	return id, true
}

// requestTimeout bounds one DB round trip while keeping the caller's
// cancellation.
func requestTimeout(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), 3*time.Second)
}
