package data

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tarpehcare/portal/internal/data/pgxutil"
	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
)

// IntakeRepo provides database operations for public intake submissions.
type IntakeRepo struct {
	DB *sql.DB
}

// NewIntakeRepo creates a new IntakeRepo.
func NewIntakeRepo(db *sql.DB) *IntakeRepo {
	return &IntakeRepo{DB: db}
}

const intakeColumnsSQL = `id, contact_name, contact_email, contact_phone, recipient_name, care_needs, status, created_at, updated_at`

// Create records a public intake form submission.
func (r *IntakeRepo) Create(ctx context.Context, req *model.CreateIntakeRequest) (*model.IntakeSubmission, error) {
	if req == nil {
		return nil, apperrors.Validation("create intake request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.IntakeSubmission
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO intake_submissions (contact_name, contact_email, contact_phone, recipient_name, care_needs)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+intakeColumnsSQL,
			strings.TrimSpace(req.ContactName),
			strings.TrimSpace(req.ContactEmail),
			req.ContactPhone,
			strings.TrimSpace(req.RecipientName),
			req.CareNeeds,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.IntakeSubmission])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves an intake submission by ID.
func (r *IntakeRepo) GetByID(ctx context.Context, id string) (*model.IntakeSubmission, error) {
	var s model.IntakeSubmission
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+intakeColumnsSQL+` FROM intake_submissions WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		s, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.IntakeSubmission])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("intake submission not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &s, nil
}

// ListWithOptions retrieves intake submissions for admin review, newest first.
func (r *IntakeRepo) ListWithOptions(ctx context.Context, opts model.SubmissionsListOptions) ([]*model.IntakeSubmission, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query := `SELECT ` + intakeColumnsSQL + ` FROM intake_submissions`
	args := []any{}
	if opts.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *opts.Status)
	}
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.IntakeSubmission
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.IntakeSubmission])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.IntakeSubmission, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateStatus transitions a submission between new, reviewed, and archived.
func (r *IntakeRepo) UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus) (*model.IntakeSubmission, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("invalid status")
	}

	var out model.IntakeSubmission
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE intake_submissions
			SET status = $1, updated_at = now()
			WHERE id = $2
			RETURNING `+intakeColumnsSQL,
			status, id,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.IntakeSubmission])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("intake submission not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
