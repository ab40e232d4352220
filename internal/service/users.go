package service

import (
	"context"

	"github.com/clickfit/clickfit/internal/domain/user"
	"github.com/clickfit/clickfit/internal/security"
)

// UserStore is the persistence contract the service orchestrates. The
// postgres implementation backs it in production; tests substitute stubs.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash string, typ user.Type, active bool) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	List(ctx context.Context, filter user.ListFilter) ([]user.User, error)
	Update(ctx context.Context, id int64, email, passwordHash string, typ user.Type, active bool) (user.User, error)
	Deactivate(ctx context.Context, id int64) (user.User, error)
	ListByType(ctx context.Context, typ user.Type) ([]user.User, error)
	Stats(ctx context.Context) (user.Stats, error)
}

// Users owns validation, password hashing and persistence orchestration for
// user accounts. It is stateless; every call stands alone.
type Users struct {
	store UserStore
}

func NewUsers(store UserStore) *Users {
	return &Users{store: store}
}

type CreateUserInput struct {
	Email    string
	Password string
	Type     user.Type
	Active   *bool
}

type UpdateUserInput struct {
	Email    string
	Password string // empty means "keep the existing hash"
	Type     user.Type
	Active   *bool
}

func (s *Users) Create(ctx context.Context, in CreateUserInput) (user.User, error) {
	if in.Email == "" || in.Password == "" {
		return user.User{}, user.NewValidationError("Email and password are required")
	}

	typ := in.Type

	if typ == "" {
		typ = user.TypeMember
	}

	if !typ.Valid() {
		return user.User{}, user.NewValidationError("Invalid user type. Must be admin, trainer, or member")
	}

	active := true

	if in.Active != nil {
		active = *in.Active
	}

	hash, err := security.HashPassword(in.Password)

	if err != nil {
		return user.User{}, err
	}

	return s.store.Create(ctx, in.Email, hash, typ, active)
}

func (s *Users) GetByID(ctx context.Context, id int64) (user.User, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Users) List(ctx context.Context, filter user.ListFilter) ([]user.User, error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, user.NewValidationError("Invalid user type. Must be admin, trainer, or member")
	}

	return s.store.List(ctx, filter)
}

func (s *Users) Update(ctx context.Context, id int64, in UpdateUserInput) (user.User, error) {
	if in.Email == "" || in.Type == "" || in.Active == nil {
		return user.User{}, user.NewValidationError("Email, type, and active status are required")
	}

	if !in.Type.Valid() {
		return user.User{}, user.NewValidationError("Invalid user type. Must be admin, trainer, or member")
	}

	hash := ""

	if in.Password != "" {
		h, err := security.HashPassword(in.Password)

		if err != nil {
			return user.User{}, err
		}

		hash = h
	} else {
		// No new password supplied: pass the stored hash through unchanged.
		current, err := s.store.GetByID(ctx, id)

		if err != nil {
			return user.User{}, err
		}

		hash = current.PasswordHash
	}

	return s.store.Update(ctx, id, in.Email, hash, in.Type, *in.Active)
}

func (s *Users) Deactivate(ctx context.Context, id int64) (user.User, error) {
	return s.store.Deactivate(ctx, id)
}

func (s *Users) ListByType(ctx context.Context, typ user.Type) ([]user.User, error) {
	if !typ.Valid() {
		return nil, user.NewValidationError("Invalid user type. Must be admin, trainer, or member")
	}

	return s.store.ListByType(ctx, typ)
}

// Authenticate verifies credentials for login. The active check runs before
// password verification so a deactivated account reports as such; unknown
// email and wrong password are indistinguishable to the caller.
func (s *Users) Authenticate(ctx context.Context, email, password string) (user.User, error) {
	if email == "" || password == "" {
		return user.User{}, user.NewValidationError("Email and password are required")
	}

	u, err := s.store.GetByEmail(ctx, email)

	if err != nil {
		if err == user.ErrNotFound {
			return user.User{}, user.ErrInvalidCredentials
		}

		return user.User{}, err
	}

	if !u.Active {
		return user.User{}, user.ErrDeactivated
	}

	if err := security.CheckPassword(u.PasswordHash, password); err != nil {
		return user.User{}, user.ErrInvalidCredentials
	}

	return u, nil
}

func (s *Users) Stats(ctx context.Context) (user.Stats, error) {
	return s.store.Stats(ctx)
}
