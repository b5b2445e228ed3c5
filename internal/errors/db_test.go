package errors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_NilError(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError_ContextErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{"deadline exceeded", context.DeadlineExceeded, ErrCodeTimeout},
		{"canceled", context.Canceled, ErrCodeCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.err)
			if GetCode(err) != tt.wantCode {
				t.Errorf("MapDBError() code = %v, want %v", GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("MapDBError(pgx.ErrNoRows) should be NotFound, got %v", GetCode(err))
	}
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	tests := []struct {
		name      string
		pgErr     *pgconn.PgError
		wantField string
	}{
		{
			name: "with column name",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "caregivers_email_key",
				ColumnName:     "email",
			},
			wantField: "email",
		},
		{
			name: "with Detail message",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "caregivers_email_key",
				Detail:         `Key (email)=(amara@example.com) already exists.`,
			},
			wantField: "email",
		},
		{
			name: "inferred from constraint name",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "identities_email_key",
			},
			wantField: "email",
		},
		{
			name: "ambiguous multi-column constraint",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "family_member_clients_family_member_id_client_id_key",
			},
			wantField: "",
		},
		{
			name: "expression index constraint",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "identities_lower_key",
			},
			wantField: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.pgErr)
			if !IsConflict(err) {
				t.Errorf("MapDBError() should be Conflict, got %v", GetCode(err))
			}
			if field := GetField(err); field != tt.wantField {
				t.Errorf("MapDBError() field = %q, want %q", field, tt.wantField)
			}
		})
	}
}

func TestMapDBError_ForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name        string
		pgErr       *pgconn.PgError
		wantContain string
	}{
		{
			name: "parent still referenced",
			pgErr: &pgconn.PgError{
				Code:   pgerrcode.ForeignKeyViolation,
				Detail: `Key (id)=(c-1) is still referenced from table "shifts".`,
			},
			wantContain: "in use by Shift",
		},
		{
			name: "missing parent",
			pgErr: &pgconn.PgError{
				Code:   pgerrcode.ForeignKeyViolation,
				Detail: `Key (client_id)=(nope) is not present in table "clients".`,
			},
			wantContain: "referenced Client does not exist",
		},
		{
			name: "falls back to table metadata",
			pgErr: &pgconn.PgError{
				Code:      pgerrcode.ForeignKeyViolation,
				TableName: "family_member_clients",
			},
			wantContain: "Family Member",
		},
		{
			name: "falls back to constraint name",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.ForeignKeyViolation,
				ConstraintName: "shifts_caregiver_id_fkey",
			},
			wantContain: "caregiver",
		},
		{
			name:        "generic fallback",
			pgErr:       &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation},
			wantContain: "in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.pgErr)
			if !IsForeignKey(err) {
				t.Fatalf("MapDBError() should be ForeignKey, got %v", GetCode(err))
			}
			var appErr *AppError
			if !errors.As(err, &appErr) {
				t.Fatal("expected an AppError")
			}
			if !containsFold(appErr.Message, tt.wantContain) {
				t.Errorf("message %q does not contain %q", appErr.Message, tt.wantContain)
			}
		})
	}
}

func TestMapDBError_NotNullViolation(t *testing.T) {
	err := MapDBError(&pgconn.PgError{
		Code:       pgerrcode.NotNullViolation,
		ColumnName: "first_name",
	})
	if !IsValidation(err) {
		t.Fatalf("should be Validation, got %v", GetCode(err))
	}
	if GetField(err) != "first_name" {
		t.Errorf("field = %q, want first_name", GetField(err))
	}
}

func TestMapDBError_CheckViolation(t *testing.T) {
	err := MapDBError(&pgconn.PgError{
		Code:       pgerrcode.CheckViolation,
		ColumnName: "status",
	})
	if !IsValidation(err) {
		t.Fatalf("should be Validation, got %v", GetCode(err))
	}
	if GetField(err) != "status" {
		t.Errorf("field = %q, want status", GetField(err))
	}
}

func TestMapDBError_UnknownPgError(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	if !IsInternal(err) {
		t.Errorf("unknown pg error should map to Internal, got %v", GetCode(err))
	}
}

func TestMapDBError_PassthroughNonDBError(t *testing.T) {
	plain := errors.New("not a db error")
	if got := MapDBError(plain); got != plain {
		t.Errorf("MapDBError() = %v, want original error back", got)
	}
}

func TestMapTableToDomain(t *testing.T) {
	tests := []struct {
		table string
		want  string
	}{
		{"caregivers", "Caregiver"},
		{"clients", "Client"},
		{"family_members", "Family Member"},
		{"shifts", "Shift"},
		{"intake_submissions", "Intake Submission"},
		{"booking_requests", "Booking Request"},
		{"some_future_table", "Some Future Table"},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			if got := mapTableToDomain(tt.table); got != tt.want {
				t.Errorf("mapTableToDomain(%q) = %q, want %q", tt.table, got, tt.want)
			}
		})
	}
}

// containsFold reports whether s contains substr, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
