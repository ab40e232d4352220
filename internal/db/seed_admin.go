package db

import (
	"context"
	"errors"

	"github.com/clickfit/clickfit/internal/config"
	"github.com/clickfit/clickfit/internal/domain/user"
	"github.com/clickfit/clickfit/internal/security"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureAdminUser seeds a bootstrap admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured. Existing accounts are left untouched.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var dummy int64

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`SELECT * FROM add_user($1, $2, $3, $4)`,
		cfg.AdminEmail, hash, string(user.TypeAdmin), true,
	)

	return err
}
