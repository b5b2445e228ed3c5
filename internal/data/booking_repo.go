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

// BookingRepo provides database operations for public booking requests.
type BookingRepo struct {
	DB *sql.DB
}

// NewBookingRepo creates a new BookingRepo.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{DB: db}
}

const bookingColumnsSQL = `id, contact_name, contact_email, contact_phone, service, preferred_start, schedule, status, created_at, updated_at`

// Create records a public booking form submission.
func (r *BookingRepo) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingRequest, error) {
	if req == nil {
		return nil, apperrors.Validation("create booking request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.BookingRequest
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO booking_requests (contact_name, contact_email, contact_phone, service, preferred_start, schedule)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+bookingColumnsSQL,
			strings.TrimSpace(req.ContactName),
			strings.TrimSpace(req.ContactEmail),
			req.ContactPhone,
			req.Service,
			req.PreferredStart,
			req.Schedule,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BookingRequest])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a booking request by ID.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.BookingRequest, error) {
	var b model.BookingRequest
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+bookingColumnsSQL+` FROM booking_requests WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		b, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BookingRequest])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("booking request not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &b, nil
}

// ListWithOptions retrieves booking requests for admin review, newest first.
func (r *BookingRepo) ListWithOptions(ctx context.Context, opts model.SubmissionsListOptions) ([]*model.BookingRequest, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query := `SELECT ` + bookingColumnsSQL + ` FROM booking_requests`
	args := []any{}
	if opts.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *opts.Status)
	}
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.BookingRequest
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.BookingRequest])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.BookingRequest, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateStatus transitions a booking request between new, reviewed, and archived.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus) (*model.BookingRequest, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("invalid status")
	}

	var out model.BookingRequest
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE booking_requests
			SET status = $1, updated_at = now()
			WHERE id = $2
			RETURNING `+bookingColumnsSQL,
			status, id,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BookingRequest])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("booking request not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
