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

// FamilyMemberRepo provides database operations for family-portal accounts
// and their client links.
type FamilyMemberRepo struct {
	DB *sql.DB
}

// NewFamilyMemberRepo creates a new FamilyMemberRepo.
func NewFamilyMemberRepo(db *sql.DB) *FamilyMemberRepo {
	return &FamilyMemberRepo{DB: db}
}

const familyMemberColumnsSQL = `id, auth_user_id, email, first_name, last_name, phone, created_at, updated_at`

// Create inserts a family member and its client links in one transaction.
func (r *FamilyMemberRepo) Create(ctx context.Context, req *model.CreateFamilyMemberRequest) (*model.FamilyMember, error) {
	if req == nil {
		return nil, apperrors.Validation("create family member request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.FamilyMember
	if err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO family_members (auth_user_id, email, first_name, last_name, phone)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+familyMemberColumnsSQL,
			strings.TrimSpace(req.AuthUserID),
			strings.TrimSpace(req.Email),
			strings.TrimSpace(req.FirstName),
			strings.TrimSpace(req.LastName),
			req.Phone,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.FamilyMember])
		if err != nil {
			return err
		}
		return insertClientLinks(ctx, tx, out.ID, req.ClientIDs)
	}}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a family member by ID.
func (r *FamilyMemberRepo) GetByID(ctx context.Context, id string) (*model.FamilyMember, error) {
	return r.getByQuery(ctx, `SELECT `+familyMemberColumnsSQL+` FROM family_members WHERE id = $1`, id)
}

// GetByAuthUserID retrieves a family member by the identity that owns the
// account. This is the directory lookup used during role resolution.
func (r *FamilyMemberRepo) GetByAuthUserID(ctx context.Context, authUserID string) (*model.FamilyMember, error) {
	return r.getByQuery(ctx,
		`SELECT `+familyMemberColumnsSQL+` FROM family_members WHERE auth_user_id = $1`,
		strings.TrimSpace(authUserID))
}

// GetByEmail retrieves a family member by email, case-insensitively.
func (r *FamilyMemberRepo) GetByEmail(ctx context.Context, email string) (*model.FamilyMember, error) {
	return r.getByQuery(ctx,
		`SELECT `+familyMemberColumnsSQL+` FROM family_members WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email))
}

// LinkedClientIDs returns the ids of the clients a family member is linked
// to, ordered for deterministic session stamping.
func (r *FamilyMemberRepo) LinkedClientIDs(ctx context.Context, familyMemberID string) ([]string, error) {
	var ids []string
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT client_id
			FROM family_member_clients
			WHERE family_member_id = $1
			ORDER BY client_id`, familyMemberID)
		if err != nil {
			return err
		}
		defer rows.Close()
		ids, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return ids, nil
}

// List retrieves family members with pagination.
func (r *FamilyMemberRepo) List(ctx context.Context, limit, offset int) ([]*model.FamilyMember, error) {
	if limit <= 0 {
		limit = 50
	}
	offset = max(offset, 0)

	var rowsOut []model.FamilyMember
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+familyMemberColumnsSQL+`
			FROM family_members
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2`, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.FamilyMember])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.FamilyMember, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ReplaceClientLinks replaces the set of clients a family member is linked to.
func (r *FamilyMemberRepo) ReplaceClientLinks(ctx context.Context, familyMemberID string, req model.UpdateFamilyMemberLinksRequest) error {
	if err := req.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}

	if err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM family_members WHERE id = $1)`, familyMemberID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return pgx.ErrNoRows
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM family_member_clients WHERE family_member_id = $1`, familyMemberID,
		); err != nil {
			return err
		}
		return insertClientLinks(ctx, tx, familyMemberID, req.ClientIDs)
	}}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("family member not found")
		}
		return apperrors.MapDBError(err)
	}
	return nil
}

// Delete deletes a family member by ID. Client links cascade.
func (r *FamilyMemberRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM family_members WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	}); err != nil {
		return false, apperrors.MapDBError(err)
	}
	return affected > 0, nil
}

func insertClientLinks(ctx context.Context, tx pgx.Tx, familyMemberID string, clientIDs []string) error {
	for _, clientID := range clientIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO family_member_clients (family_member_id, client_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			familyMemberID, strings.TrimSpace(clientID),
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *FamilyMemberRepo) getByQuery(ctx context.Context, q string, args ...any) (*model.FamilyMember, error) {
	var fm model.FamilyMember
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		fm, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.FamilyMember])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("family member not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &fm, nil
}
