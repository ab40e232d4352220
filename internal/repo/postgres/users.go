package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clickfit/clickfit/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UsersRepo persists users through the backend-resident routines
// (add_user, get_user_by_id, update_user, delete_user, get_users_by_type)
// plus ad-hoc parameterized SQL for listing and statistics.
type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

const userColumns = `id, email, password_hash, type, active, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Type,
		&u.Active,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordHash string, typ user.Type, active bool) (user.User, error) {
	u, err := scanUser(r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM add_user($1, $2, $3, $4)`,
		email, passwordHash, string(typ), active,
	))

	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	u, err := scanUser(r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM get_user_by_id($1)`,
		id,
	))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, err := scanUser(r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) List(ctx context.Context, filter user.ListFilter) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`

	var conds []string
	var args []interface{}

	argsPosition := 1

	if filter.Type != nil {
		conds = append(conds, fmt.Sprintf("type = $%d", argsPosition))
		args = append(args, string(*filter.Type))
		argsPosition++
	}

	if filter.Active != nil {
		conds = append(conds, fmt.Sprintf("active = $%d", argsPosition))
		args = append(args, *filter.Active)
		argsPosition++
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	// most recent first
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	return collectUsers(rows)
}

func (r *UsersRepo) Update(ctx context.Context, id int64, email, passwordHash string, typ user.Type, active bool) (user.User, error) {
	u, err := scanUser(r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM update_user($1, $2, $3, $4, $5)`,
		id, email, passwordHash, string(typ), active,
	))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) Deactivate(ctx context.Context, id int64) (user.User, error) {
	u, err := scanUser(r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM delete_user($1)`,
		id,
	))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) ListByType(ctx context.Context, typ user.Type) ([]user.User, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+userColumns+` FROM get_users_by_type($1)`,
		string(typ),
	)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	return collectUsers(rows)
}

func (r *UsersRepo) Stats(ctx context.Context) (user.Stats, error) {
	var s user.Stats

	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&s.TotalUsers)

	if err != nil {
		return user.Stats{}, err
	}

	err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE active = TRUE`).Scan(&s.ActiveUsers)

	if err != nil {
		return user.Stats{}, err
	}

	rows, err := r.pool.Query(ctx, `SELECT type, COUNT(*) FROM users GROUP BY type ORDER BY type`)

	if err != nil {
		return user.Stats{}, err
	}

	defer rows.Close()

	s.UsersByType = make([]user.TypeCount, 0, 3)

	for rows.Next() {
		var tc user.TypeCount

		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return user.Stats{}, err
		}

		s.UsersByType = append(s.UsersByType, tc)
	}

	if err := rows.Err(); err != nil {
		return user.Stats{}, err
	}

	return s, nil
}

func collectUsers(rows pgx.Rows) ([]user.User, error) {
	output := make([]user.User, 0)

	for rows.Next() {
		u, err := scanUser(rows)

		if err != nil {
			return nil, err
		}

		output = append(output, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return output, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
