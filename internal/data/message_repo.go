package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/tarpehcare/portal/internal/data/pgxutil"
	"github.com/tarpehcare/portal/internal/domain/auth"
	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
)

// MessageRepo provides database operations for client message threads.
type MessageRepo struct {
	DB *sql.DB
}

// NewMessageRepo creates a new MessageRepo.
func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{DB: db}
}

const messageColumnsSQL = `id, client_id, sender_role, sender_id, body, read_at, created_at`

// Create posts a message to a client's thread. Sender identity comes from
// the caller's session, never from request input.
func (r *MessageRepo) Create(ctx context.Context, req *model.CreateMessageRequest, senderRole model.SenderRole, senderID string) (*model.Message, error) {
	if req == nil {
		return nil, apperrors.Validation("create message request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if !senderRole.Valid() {
		return nil, apperrors.Validation("invalid sender role")
	}

	var out model.Message
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO messages (client_id, sender_role, sender_id, body)
			VALUES ($1, $2, $3, $4)
			RETURNING `+messageColumnsSQL,
			req.ClientID, senderRole, senderID, req.Body,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Message])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListForClient retrieves a client's thread, newest first.
func (r *MessageRepo) ListForClient(ctx context.Context, opts model.MessagesListOptions) ([]*model.Message, error) {
	if opts.ClientID == "" {
		return nil, apperrors.Validation("client_id is required")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query := `
		SELECT ` + messageColumnsSQL + `
		FROM messages
		WHERE client_id = $1`
	args := []any{opts.ClientID}
	if opts.Unread != nil && *opts.Unread {
		query += ` AND read_at IS NULL`
	}
	query += `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	args = append(args, limit, offset)

	var rowsOut []model.Message
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Message])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Message, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// MarkRead marks all messages in a client thread that were not sent by the
// reader as read. Returns the number of messages newly marked.
func (r *MessageRepo) MarkRead(ctx context.Context, clientID string, readerRole model.SenderRole) (int64, error) {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE messages
			SET read_at = now()
			WHERE client_id = $1 AND sender_role != $2 AND read_at IS NULL`,
			clientID, readerRole,
		)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	}); err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return affected, nil
}

// GetByID retrieves a message by ID.
func (r *MessageRepo) GetByID(ctx context.Context, id string) (*model.Message, error) {
	var m model.Message
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+messageColumnsSQL+` FROM messages WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		m, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Message])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("message not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &m, nil
}

// SenderRoleForSession maps a portal role to the sender role recorded on a
// message. The guest role never posts; callers guard that before reaching
// the repo.
func SenderRoleForSession(role auth.Role) (model.SenderRole, bool) {
	switch role {
	case auth.RoleAdmin:
		return model.SenderRoleAdmin, true
	case auth.RoleCaregiver:
		return model.SenderRoleCaregiver, true
	case auth.RoleFamily:
		return model.SenderRoleFamily, true
	default:
		return "", false
	}
}
