package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tarpehcare/portal/internal/data/database"
	"github.com/tarpehcare/portal/internal/data/pgxutil"
	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
)

// CaregiverRepo provides database operations for caregiver profiles.
type CaregiverRepo struct {
	DB *sql.DB
}

// NewCaregiverRepo creates a new CaregiverRepo.
func NewCaregiverRepo(db *sql.DB) *CaregiverRepo {
	return &CaregiverRepo{DB: db}
}

const caregiverColumnsSQL = `id, email, first_name, last_name, phone, status, created_at, updated_at`

const (
	caregiverGetByIDQuery = `
		SELECT ` + caregiverColumnsSQL + `
		FROM caregivers
		WHERE id = $1`

	caregiverGetByEmailQuery = `
		SELECT ` + caregiverColumnsSQL + `
		FROM caregivers
		WHERE lower(email) = lower($1)`
)

// caregiverColumns returns the standard column list for caregiver queries.
func caregiverColumns() []string {
	return []string{"id", "email", "first_name", "last_name", "phone", "status", "created_at", "updated_at"}
}

// Create inserts a new caregiver profile.
func (r *CaregiverRepo) Create(ctx context.Context, req *model.CreateCaregiverRequest) (*model.Caregiver, error) {
	if req == nil {
		return nil, apperrors.Validation("create caregiver request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Caregiver
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO caregivers (email, first_name, last_name, phone, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+caregiverColumnsSQL,
			strings.TrimSpace(req.Email),
			strings.TrimSpace(req.FirstName),
			strings.TrimSpace(req.LastName),
			req.Phone,
			req.Status,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Caregiver])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a caregiver by ID.
func (r *CaregiverRepo) GetByID(ctx context.Context, id string) (*model.Caregiver, error) {
	return r.getByQuery(ctx, caregiverGetByIDQuery, id)
}

// GetByEmail retrieves a caregiver by email, case-insensitively. This is the
// directory lookup used during role resolution.
func (r *CaregiverRepo) GetByEmail(ctx context.Context, email string) (*model.Caregiver, error) {
	return r.getByQuery(ctx, caregiverGetByEmailQuery, strings.TrimSpace(email))
}

// ListWithOptions retrieves caregivers with optional filters and sorting.
func (r *CaregiverRepo) ListWithOptions(ctx context.Context, opts model.CaregiversListOptions) ([]*model.Caregiver, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(caregiverColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("last_name", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}
	sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, map[string]string{
		"created_at": "created_at",
		"last_name":  "last_name",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("caregivers", queryOpts...))

	var rowsOut []model.Caregiver
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Caregiver])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Caregiver, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a caregiver profile.
func (r *CaregiverRepo) Update(ctx context.Context, id string, req model.UpdateCaregiverRequest) (*model.Caregiver, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setParts := make([]string, 0, 6)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.Email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Email))
	}
	if req.FirstName != nil {
		setParts = append(setParts, fmt.Sprintf("first_name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.FirstName))
	}
	if req.LastName != nil {
		setParts = append(setParts, fmt.Sprintf("last_name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.LastName))
	}
	if req.Phone != nil {
		if strings.TrimSpace(*req.Phone) == "" {
			setParts = append(setParts, "phone = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("phone = $%d", nextIdx()))
			args = append(args, strings.TrimSpace(*req.Phone))
		}
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}
	setParts = append(setParts, "updated_at = now()")

	args = append(args, id)
	query := "UPDATE caregivers SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + caregiverColumnsSQL

	var out model.Caregiver
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Caregiver])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("caregiver not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete deletes a caregiver by ID. Returns false when no row matched.
func (r *CaregiverRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM caregivers WHERE id = $1`, id)
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

func (r *CaregiverRepo) getByQuery(ctx context.Context, q string, args ...any) (*model.Caregiver, error) {
	var cg model.Caregiver
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		cg, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Caregiver])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("caregiver not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &cg, nil
}

// validateSortOptions validates and returns safe sort column and direction.
// The allowed map fixes the sortable columns per table.
func validateSortOptions(sort, dir string, allowed map[string]string) (string, string) {
	sortCol := "created_at"
	sortDir := "DESC"

	if sort != "" {
		if validSort, ok := allowed[strings.ToLower(strings.TrimSpace(sort))]; ok {
			sortCol = validSort
		}
	}
	if dir != "" {
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "asc":
			sortDir = "ASC"
		case "desc":
			sortDir = "DESC"
		}
	}
	return sortCol, sortDir
}
