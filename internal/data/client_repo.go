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

// ClientRepo provides database operations for client records.
type ClientRepo struct {
	DB *sql.DB
}

// NewClientRepo creates a new ClientRepo.
func NewClientRepo(db *sql.DB) *ClientRepo {
	return &ClientRepo{DB: db}
}

const clientColumnsSQL = `id, first_name, last_name, address, care_level, status, created_at, updated_at`

func clientColumns() []string {
	return []string{"id", "first_name", "last_name", "address", "care_level", "status", "created_at", "updated_at"}
}

// Create inserts a new client record.
func (r *ClientRepo) Create(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error) {
	if req == nil {
		return nil, apperrors.Validation("create client request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Client
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO clients (first_name, last_name, address, care_level, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+clientColumnsSQL,
			strings.TrimSpace(req.FirstName),
			strings.TrimSpace(req.LastName),
			req.Address,
			req.CareLevel,
			req.Status,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Client])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a client by ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*model.Client, error) {
	var c model.Client
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+clientColumnsSQL+` FROM clients WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		c, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Client])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("client not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &c, nil
}

// GetByIDs retrieves several clients at once, preserving no particular order.
// Used by the family portal to load the clients a member is linked to.
func (r *ClientRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("clients",
		database.WithColumns(clientColumns()...),
		database.WithCondition(database.WhereCond("id", database.Any, ids)),
		database.WithOrderBy("last_name", "ASC"),
	))

	var rowsOut []model.Client
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Client])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Client, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListWithOptions retrieves clients with optional filters and sorting.
func (r *ClientRepo) ListWithOptions(ctx context.Context, opts model.ClientsListOptions) ([]*model.Client, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(clientColumns()...),
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

	query, args := database.BuildListQuery(database.NewListQueryOptions("clients", queryOpts...))

	var rowsOut []model.Client
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Client])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Client, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a client record.
func (r *ClientRepo) Update(ctx context.Context, id string, req model.UpdateClientRequest) (*model.Client, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setParts := make([]string, 0, 6)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.FirstName != nil {
		setParts = append(setParts, fmt.Sprintf("first_name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.FirstName))
	}
	if req.LastName != nil {
		setParts = append(setParts, fmt.Sprintf("last_name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.LastName))
	}
	if req.Address != nil {
		if strings.TrimSpace(*req.Address) == "" {
			setParts = append(setParts, "address = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("address = $%d", nextIdx()))
			args = append(args, strings.TrimSpace(*req.Address))
		}
	}
	if req.CareLevel != nil {
		setParts = append(setParts, fmt.Sprintf("care_level = $%d", nextIdx()))
		args = append(args, *req.CareLevel)
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}
	setParts = append(setParts, "updated_at = now()")

	args = append(args, id)
	query := "UPDATE clients SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + clientColumnsSQL

	var out model.Client
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Client])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("client not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete deletes a client by ID. Returns false when no row matched.
func (r *ClientRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
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
