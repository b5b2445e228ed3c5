package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tarpehcare/portal/internal/data/database"
	"github.com/tarpehcare/portal/internal/data/pgxutil"
	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
)

// Advisory lock namespace for shift maintenance.
// Using two-arg pg_try_advisory_xact_lock(major, minor) for proper namespacing.
// Major key 2000 is reserved for the shift reaper.
const (
	advisoryLockShiftMajor      = 2000
	advisoryLockShiftMarkMissed = 1 // minor key for MarkMissedShifts
)

// ShiftRepo provides database operations for shifts, including the check-in
// and check-out transitions.
type ShiftRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewShiftRepo creates a new ShiftRepo with real time provider.
func NewShiftRepo(db *sql.DB) *ShiftRepo {
	return &ShiftRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewShiftRepoWithTimeProvider creates a new ShiftRepo with a custom time provider (useful for tests).
func NewShiftRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ShiftRepo {
	return &ShiftRepo{DB: db, timeProvider: tp}
}

const shiftColumnsSQL = `id, caregiver_id, client_id, starts_at, ends_at, status, checked_in_at, checked_out_at, notes, created_at, updated_at`

func shiftColumns() []string {
	return []string{
		"id", "caregiver_id", "client_id", "starts_at", "ends_at", "status",
		"checked_in_at", "checked_out_at", "notes", "created_at", "updated_at",
	}
}

// Create inserts a new scheduled shift.
func (r *ShiftRepo) Create(ctx context.Context, req *model.CreateShiftRequest) (*model.Shift, error) {
	if req == nil {
		return nil, apperrors.Validation("create shift request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Shift
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO shifts (caregiver_id, client_id, starts_at, ends_at, notes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+shiftColumnsSQL,
			req.CaregiverID,
			req.ClientID,
			req.StartsAt.UTC(),
			req.EndsAt.UTC(),
			req.Notes,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Shift])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a shift by ID.
func (r *ShiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var s model.Shift
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+shiftColumnsSQL+` FROM shifts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		s, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Shift])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("shift not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &s, nil
}

// ListWithOptions retrieves shifts with optional filters and sorting.
// The ClientIDs filter scopes results to a family member's linked clients.
func (r *ShiftRepo) ListWithOptions(ctx context.Context, opts model.ShiftsListOptions) ([]*model.Shift, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(shiftColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.CaregiverID != nil && *opts.CaregiverID != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("caregiver_id", database.Equal, *opts.CaregiverID),
		))
	}
	if opts.ClientID != nil && *opts.ClientID != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("client_id", database.Equal, *opts.ClientID),
		))
	}
	if len(opts.ClientIDs) > 0 {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("client_id", database.Any, opts.ClientIDs),
		))
	}
	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}
	if opts.From != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("starts_at", database.GreaterThanOrEqual, opts.From.UTC()),
		))
	}
	if opts.To != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("starts_at", database.LessThan, opts.To.UTC()),
		))
	}
	sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, map[string]string{
		"starts_at":  "starts_at",
		"created_at": "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("shifts", queryOpts...))

	var rowsOut []model.Shift
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Shift])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Shift, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update reschedules or annotates a shift. Status transitions go through
// CheckIn and CheckOut, never through Update.
func (r *ShiftRepo) Update(ctx context.Context, id string, req model.UpdateShiftRequest) (*model.Shift, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setParts := make([]string, 0, 6)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.CaregiverID != nil {
		setParts = append(setParts, fmt.Sprintf("caregiver_id = $%d", nextIdx()))
		args = append(args, *req.CaregiverID)
	}
	if req.ClientID != nil {
		setParts = append(setParts, fmt.Sprintf("client_id = $%d", nextIdx()))
		args = append(args, *req.ClientID)
	}
	if req.StartsAt != nil {
		setParts = append(setParts, fmt.Sprintf("starts_at = $%d", nextIdx()))
		args = append(args, req.StartsAt.UTC())
	}
	if req.EndsAt != nil {
		setParts = append(setParts, fmt.Sprintf("ends_at = $%d", nextIdx()))
		args = append(args, req.EndsAt.UTC())
	}
	if req.Notes != nil {
		if strings.TrimSpace(*req.Notes) == "" {
			setParts = append(setParts, "notes = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("notes = $%d", nextIdx()))
			args = append(args, strings.TrimSpace(*req.Notes))
		}
	}
	setParts = append(setParts, "updated_at = now()")

	args = append(args, id)
	query := "UPDATE shifts SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + shiftColumnsSQL

	var out model.Shift
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Shift])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("shift not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// CheckIn transitions a scheduled shift to in_progress. The WHERE clause
// enforces the legal transition; a zero-row update means the shift is either
// missing or not in a checkable state.
func (r *ShiftRepo) CheckIn(ctx context.Context, id, caregiverID string) (*model.Shift, error) {
	now := r.timeProvider.Now().UTC()

	var out model.Shift
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE shifts
			SET status = 'in_progress', checked_in_at = $1, updated_at = $1
			WHERE id = $2 AND caregiver_id = $3 AND status = 'scheduled'
			RETURNING `+shiftColumnsSQL,
			now, id, caregiverID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Shift])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.explainTransitionFailure(ctx, id, caregiverID, "check in")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// CheckOut transitions an in_progress shift to completed, optionally
// recording visit notes.
func (r *ShiftRepo) CheckOut(ctx context.Context, id, caregiverID string, notes *string) (*model.Shift, error) {
	now := r.timeProvider.Now().UTC()

	var out model.Shift
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE shifts
			SET status = 'completed',
			    checked_out_at = $1,
			    notes = COALESCE($2, notes),
			    updated_at = $1
			WHERE id = $3 AND caregiver_id = $4 AND status = 'in_progress'
			RETURNING `+shiftColumnsSQL,
			now, notes, id, caregiverID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Shift])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.explainTransitionFailure(ctx, id, caregiverID, "check out")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// explainTransitionFailure distinguishes "no such shift", "not your shift",
// and "wrong state" after a guarded transition update matched zero rows.
func (r *ShiftRepo) explainTransitionFailure(ctx context.Context, id, caregiverID, action string) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CaregiverID != caregiverID {
		return apperrors.Forbidden("shift belongs to another caregiver")
	}
	return apperrors.Conflictf("cannot %s a shift in status %q", action, existing.Status)
}

// MarkMissedShifts marks scheduled shifts whose window ended before the
// cutoff as missed. Processes up to batchSize shifts per call and uses an
// advisory lock so concurrent reaper instances do not conflict. Returns the
// number of shifts marked.
func (r *ShiftRepo) MarkMissedShifts(ctx context.Context, grace time.Duration, batchSize int) (int64, error) {
	if batchSize <= 0 {
		return 0, apperrors.Validation("batch size must be greater than zero")
	}

	var rowsAffected int64
	err := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			var locked bool
			if err := tx.QueryRowContext(ctx, "SELECT pg_try_advisory_xact_lock($1, $2)",
				advisoryLockShiftMajor, advisoryLockShiftMarkMissed).Scan(&locked); err != nil {
				return fmt.Errorf("acquire advisory lock: %w", err)
			}
			if !locked {
				rowsAffected = 0
				return nil
			}

			now := r.timeProvider.Now().UTC()
			cutoff := now.Add(-grace)

			res, err := tx.ExecContext(ctx, `
				UPDATE shifts
				SET status = 'missed', updated_at = $1
				WHERE id IN (
					SELECT id FROM shifts
					WHERE status = 'scheduled'
					  AND ends_at < $2
					ORDER BY ends_at
					LIMIT $3
				)
			`, now, cutoff, batchSize)
			if err != nil {
				return fmt.Errorf("mark missed shifts: %w", err)
			}

			ra, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			rowsAffected = ra
			return nil
		},
	})
	if err != nil {
		return 0, err
	}
	return rowsAffected, nil
}

// ListUpcoming returns scheduled shifts starting within the given window,
// used by the reminder scheduler.
func (r *ShiftRepo) ListUpcoming(ctx context.Context, window time.Duration, limit int) ([]*model.Shift, error) {
	if limit <= 0 {
		limit = 100
	}
	now := r.timeProvider.Now().UTC()
	until := now.Add(window)

	var rowsOut []model.Shift
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+shiftColumnsSQL+`
			FROM shifts
			WHERE status = 'scheduled' AND starts_at >= $1 AND starts_at < $2
			ORDER BY starts_at
			LIMIT $3`, now, until, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Shift])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Shift, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Delete deletes a shift by ID. Returns false when no row matched.
func (r *ShiftRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
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
