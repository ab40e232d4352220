package service_test

import (
	"context"
	"testing"

	"github.com/clickfit/clickfit/internal/domain/user"
	"github.com/clickfit/clickfit/internal/repo/memory"
	"github.com/clickfit/clickfit/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *service.Users {
	return service.NewUsers(memory.NewUsersRepo())
}

func boolPtr(v bool) *bool {
	return &v
}

func TestCreateThenAuthenticate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, service.CreateUserInput{
		Email:    "a@x.com",
		Password: "p1",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", created.Email)
	assert.Equal(t, user.TypeMember, created.Type, "type defaults to member")
	assert.True(t, created.Active, "active defaults to true")
	assert.NotEqual(t, "p1", created.PasswordHash, "plaintext must never be stored")

	authed, err := svc.Authenticate(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, authed.ID)
}

func TestCreateValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	tests := []struct {
		name string
		in   service.CreateUserInput
	}{
		{name: "missing_email", in: service.CreateUserInput{Password: "p1"}},
		{name: "missing_password", in: service.CreateUserInput{Email: "a@x.com"}},
		{name: "invalid_type", in: service.CreateUserInput{Email: "a@x.com", Password: "p1", Type: "owner"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.True(t, user.IsValidation(err), "want validation error, got %v", err)
		})
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, service.CreateUserInput{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, service.CreateUserInput{Email: "a@x.com", Password: "p2"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, service.CreateUserInput{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	_, wrongPassword := svc.Authenticate(ctx, "a@x.com", "nope")
	_, unknownEmail := svc.Authenticate(ctx, "ghost@x.com", "p1")

	assert.ErrorIs(t, wrongPassword, user.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, user.ErrInvalidCredentials)
}

func TestAuthenticateDeactivatedBeforePasswordCheck(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, service.CreateUserInput{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	_, err = svc.Deactivate(ctx, created.ID)
	require.NoError(t, err)

	// correct credentials still fail, citing deactivation
	_, err = svc.Authenticate(ctx, "a@x.com", "p1")
	assert.ErrorIs(t, err, user.ErrDeactivated)

	// wrong password on a deactivated account also reports deactivation
	_, err = svc.Authenticate(ctx, "a@x.com", "nope")
	assert.ErrorIs(t, err, user.ErrDeactivated)
}

func TestUpdateWithoutPasswordKeepsHash(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, service.CreateUserInput{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, service.UpdateUserInput{
		Email:  "b@x.com",
		Type:   user.TypeTrainer,
		Active: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", updated.Email)
	assert.Equal(t, user.TypeTrainer, updated.Type)

	// original password still authenticates against the new email
	_, err = svc.Authenticate(ctx, "b@x.com", "p1")
	assert.NoError(t, err)
}

func TestUpdateWithPasswordReplacesHash(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, service.CreateUserInput{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, service.UpdateUserInput{
		Email:    "a@x.com",
		Password: "p2",
		Type:     user.TypeMember,
		Active:   boolPtr(true),
	})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "a@x.com", "p1")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "a@x.com", "p2")
	assert.NoError(t, err)
}

func TestUpdateValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, service.CreateUserInput{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   service.UpdateUserInput
	}{
		{name: "missing_email", in: service.UpdateUserInput{Type: user.TypeMember, Active: boolPtr(true)}},
		{name: "missing_type", in: service.UpdateUserInput{Email: "a@x.com", Active: boolPtr(true)}},
		{name: "missing_active", in: service.UpdateUserInput{Email: "a@x.com", Type: user.TypeMember}},
		{name: "invalid_type", in: service.UpdateUserInput{Email: "a@x.com", Type: "owner", Active: boolPtr(true)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, created.ID, tt.in)
			assert.True(t, user.IsValidation(err), "want validation error, got %v", err)
		})
	}
}

func TestUpdateMissingUser(t *testing.T) {
	svc := newService()

	_, err := svc.Update(context.Background(), 404, service.UpdateUserInput{
		Email:    "a@x.com",
		Password: "p1",
		Type:     user.TypeMember,
		Active:   boolPtr(true),
	})
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestDeactivateIsIdempotent(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, service.CreateUserInput{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	first, err := svc.Deactivate(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, first.Active)

	second, err := svc.Deactivate(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, second.Active)
	assert.Equal(t, first.ID, second.ID)
}

func TestListByTypeRejectsUnknownTypes(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	for _, typ := range []user.Type{"Admin", "ADMIN", "superuser", "members", ""} {
		_, err := svc.ListByType(ctx, typ)
		assert.True(t, user.IsValidation(err), "type %q should be rejected", typ)
	}
}

func TestListFilters(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	seed := []service.CreateUserInput{
		{Email: "admin1@x.com", Password: "p", Type: user.TypeAdmin},
		{Email: "admin2@x.com", Password: "p", Type: user.TypeAdmin},
		{Email: "member1@x.com", Password: "p", Type: user.TypeMember, Active: boolPtr(false)},
	}

	for _, in := range seed {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, user.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	admins := user.TypeAdmin
	byType, err := svc.List(ctx, user.ListFilter{Type: &admins})
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	active := true
	members := user.TypeMember
	combined, err := svc.List(ctx, user.ListFilter{Type: &members, Active: &active})
	require.NoError(t, err)
	assert.Empty(t, combined)

	badType := user.Type("owner")
	_, err = svc.List(ctx, user.ListFilter{Type: &badType})
	assert.True(t, user.IsValidation(err))
}

func TestStats(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	seed := []service.CreateUserInput{
		{Email: "admin1@x.com", Password: "p", Type: user.TypeAdmin},
		{Email: "admin2@x.com", Password: "p", Type: user.TypeAdmin},
		{Email: "member1@x.com", Password: "p", Type: user.TypeMember},
	}

	for _, in := range seed {
		created, err := svc.Create(ctx, in)
		require.NoError(t, err)

		if created.Email == "member1@x.com" {
			_, err = svc.Deactivate(ctx, created.ID)
			require.NoError(t, err)
		}
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.ActiveUsers)
	assert.Contains(t, stats.UsersByType, user.TypeCount{Type: user.TypeAdmin, Count: 2})
	assert.Contains(t, stats.UsersByType, user.TypeCount{Type: user.TypeMember, Count: 1})
}
