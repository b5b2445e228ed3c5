package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tarpehcare/portal/internal/data/pgxutil"
	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
)

// IdentityRepo provides database operations for local credential records
// used by the password auth mode.
type IdentityRepo struct {
	DB *sql.DB
}

// NewIdentityRepo creates a new IdentityRepo.
func NewIdentityRepo(db *sql.DB) *IdentityRepo {
	return &IdentityRepo{DB: db}
}

const identityColumnsSQL = `id, email, password_hash, created_at, updated_at`

// Create inserts a new identity with an already-hashed password.
func (r *IdentityRepo) Create(ctx context.Context, email, passwordHash string) (*model.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.ValidationField("email", "email is required")
	}
	if passwordHash == "" {
		return nil, apperrors.Validation("password hash is required")
	}

	var out model.Identity
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO identities (email, password_hash)
			VALUES ($1, $2)
			RETURNING `+identityColumnsSQL,
			email, passwordHash,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Identity])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByEmail retrieves an identity by email, case-insensitively.
func (r *IdentityRepo) GetByEmail(ctx context.Context, email string) (*model.Identity, error) {
	var ident model.Identity
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+identityColumnsSQL+` FROM identities WHERE lower(email) = lower($1)`,
			strings.TrimSpace(email),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		ident, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Identity])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("identity not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &ident, nil
}

// GetByID retrieves an identity by ID.
func (r *IdentityRepo) GetByID(ctx context.Context, id string) (*model.Identity, error) {
	var ident model.Identity
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+identityColumnsSQL+` FROM identities WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		ident, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Identity])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("identity not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &ident, nil
}

// UpdatePassword replaces the stored password hash for an identity.
func (r *IdentityRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if passwordHash == "" {
		return apperrors.Validation("password hash is required")
	}

	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE identities
			SET password_hash = $1, updated_at = now()
			WHERE id = $2`, passwordHash, id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	}); err != nil {
		return apperrors.MapDBError(err)
	}
	if affected == 0 {
		return apperrors.NotFound("identity not found")
	}
	return nil
}
