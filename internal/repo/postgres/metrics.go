package postgres

import (
	"context"

	"github.com/clickfit/clickfit/internal/domain/user"
)

// Observer times one logical DB operation (see observability.Prom).
type Observer interface {
	ObserveDB(op string, fn func() error) error
}

// InstrumentedUsersRepo wraps UsersRepo so every logical op lands in the DB
// metrics with a stable op label.
type InstrumentedUsersRepo struct {
	next *UsersRepo
	obs  Observer
}

func WithMetrics(next *UsersRepo, obs Observer) *InstrumentedUsersRepo {
	return &InstrumentedUsersRepo{next: next, obs: obs}
}

func (r *InstrumentedUsersRepo) Create(ctx context.Context, email, passwordHash string, typ user.Type, active bool) (user.User, error) {
	var u user.User

	err := r.obs.ObserveDB("users.create", func() error {
		var err error
		u, err = r.next.Create(ctx, email, passwordHash, typ, active)
		return err
	})

	return u, err
}

func (r *InstrumentedUsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	var u user.User

	err := r.obs.ObserveDB("users.get_by_id", func() error {
		var err error
		u, err = r.next.GetByID(ctx, id)
		return err
	})

	return u, err
}

func (r *InstrumentedUsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.obs.ObserveDB("users.get_by_email", func() error {
		var err error
		u, err = r.next.GetByEmail(ctx, email)
		return err
	})

	return u, err
}

func (r *InstrumentedUsersRepo) List(ctx context.Context, filter user.ListFilter) ([]user.User, error) {
	var out []user.User

	err := r.obs.ObserveDB("users.list", func() error {
		var err error
		out, err = r.next.List(ctx, filter)
		return err
	})

	return out, err
}

func (r *InstrumentedUsersRepo) Update(ctx context.Context, id int64, email, passwordHash string, typ user.Type, active bool) (user.User, error) {
	var u user.User

	err := r.obs.ObserveDB("users.update", func() error {
		var err error
		u, err = r.next.Update(ctx, id, email, passwordHash, typ, active)
		return err
	})

	return u, err
}

func (r *InstrumentedUsersRepo) Deactivate(ctx context.Context, id int64) (user.User, error) {
	var u user.User

	err := r.obs.ObserveDB("users.deactivate", func() error {
		var err error
		u, err = r.next.Deactivate(ctx, id)
		return err
	})

	return u, err
}

func (r *InstrumentedUsersRepo) ListByType(ctx context.Context, typ user.Type) ([]user.User, error) {
	var out []user.User

	err := r.obs.ObserveDB("users.list_by_type", func() error {
		var err error
		out, err = r.next.ListByType(ctx, typ)
		return err
	})

	return out, err
}

func (r *InstrumentedUsersRepo) Stats(ctx context.Context) (user.Stats, error) {
	var s user.Stats

	err := r.obs.ObserveDB("users.stats", func() error {
		var err error
		s, err = r.next.Stats(ctx)
		return err
	})

	return s, err
}
