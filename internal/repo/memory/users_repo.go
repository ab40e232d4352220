package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/clickfit/clickfit/internal/domain/user"
)

// UsersRepo is an in-memory stand-in for the postgres store. It backs the
// service and handler tests; it mirrors the backend contract including
// email uniqueness and soft deletes.
type UsersRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		nextID: 1,
		items:  make(map[int64]user.User),
	}
}

func (r *UsersRepo) Create(_ context.Context, email, passwordHash string, typ user.Type, active bool) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Email == email {
			return user.User{}, user.ErrEmailTaken
		}
	}

	now := time.Now().UTC()

	u := user.User{
		ID:           r.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		Type:         typ,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.nextID++
	r.items[u.ID] = u

	return u, nil
}

func (r *UsersRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) List(_ context.Context, filter user.ListFilter) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.items))

	for _, u := range r.items {
		if filter.Type != nil && u.Type != *filter.Type {
			continue
		}

		if filter.Active != nil && u.Active != *filter.Active {
			continue
		}

		out = append(out, u)
	}

	sortByCreatedDesc(out)

	return out, nil
}

func (r *UsersRepo) Update(_ context.Context, id int64, email, passwordHash string, typ user.Type, active bool) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	for _, existing := range r.items {
		if existing.ID != id && existing.Email == email {
			return user.User{}, user.ErrEmailTaken
		}
	}

	u.Email = email
	u.PasswordHash = passwordHash
	u.Type = typ
	u.Active = active
	u.UpdatedAt = time.Now().UTC()

	r.items[id] = u

	return u, nil
}

func (r *UsersRepo) Deactivate(_ context.Context, id int64) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	u.Active = false
	u.UpdatedAt = time.Now().UTC()
	r.items[id] = u

	return u, nil
}

func (r *UsersRepo) ListByType(_ context.Context, typ user.Type) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0)

	for _, u := range r.items {
		if u.Type == typ {
			out = append(out, u)
		}
	}

	sortByCreatedDesc(out)

	return out, nil
}

func (r *UsersRepo) Stats(_ context.Context) (user.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s user.Stats

	byType := make(map[user.Type]int64)

	for _, u := range r.items {
		s.TotalUsers++

		if u.Active {
			s.ActiveUsers++
		}

		byType[u.Type]++
	}

	s.UsersByType = make([]user.TypeCount, 0, len(byType))

	for _, typ := range []user.Type{user.TypeAdmin, user.TypeMember, user.TypeTrainer} {
		if count, ok := byType[typ]; ok {
			s.UsersByType = append(s.UsersByType, user.TypeCount{Type: typ, Count: count})
		}
	}

	return s, nil
}

func sortByCreatedDesc(users []user.User) {
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			// newest id first when timestamps collide
			return users[i].ID > users[j].ID
		}

		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
}
