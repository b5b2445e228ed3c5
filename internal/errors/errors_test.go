package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  &AppError{Code: ErrCodeNotFound, Message: "caregiver not found"},
			want: "caregiver not found",
		},
		{
			name: "with cause",
			err:  &AppError{Code: ErrCodeInternal, Message: "query failed", Cause: errors.New("connection reset")},
			want: "query failed: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(cause, ErrCodeInternal, "wrapped")
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
		check    func(error) bool
	}{
		{"not found", NotFound("missing"), ErrCodeNotFound, IsNotFound},
		{"not foundf", NotFoundf("shift %s not found", "abc"), ErrCodeNotFound, IsNotFound},
		{"conflict", Conflict("duplicate"), ErrCodeConflict, IsConflict},
		{"validation", Validation("bad input"), ErrCodeValidation, IsValidation},
		{"validation field", ValidationField("email", "invalid"), ErrCodeValidation, IsValidation},
		{"foreign key", ForeignKey("in use"), ErrCodeForeignKey, IsForeignKey},
		{"unauthorized", Unauthorized("sign in required"), ErrCodeUnauthorized, IsUnauthorized},
		{"forbidden", Forbidden("wrong role"), ErrCodeForbidden, IsForbidden},
		{"internal", Internal("boom"), ErrCodeInternal, IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %v, want %v", got, tt.wantCode)
			}
			if !tt.check(tt.err) {
				t.Errorf("predicate returned false for %v", tt.err)
			}
		})
	}
}

func TestValidationField_Field(t *testing.T) {
	err := ValidationField("email", "invalid format")
	if got := GetField(err); got != "email" {
		t.Errorf("GetField() = %q, want %q", got, "email")
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "should be nil"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
	if err := Wrapf(nil, ErrCodeInternal, "should be nil %d", 1); err != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", err)
	}
}

func TestWrapf_FormatsMessage(t *testing.T) {
	cause := errors.New("pq: something")
	err := Wrapf(cause, ErrCodeInternal, "listing shifts for client %s", "c-1")
	want := fmt.Sprintf("listing shifts for client c-1: %v", cause)
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestGetCode_NonAppError(t *testing.T) {
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain error) = %q, want empty", got)
	}
	if got := GetField(errors.New("plain")); got != "" {
		t.Errorf("GetField(plain error) = %q, want empty", got)
	}
}

func TestPredicates_WrappedDeep(t *testing.T) {
	inner := Forbidden("family role required")
	outer := fmt.Errorf("handling request: %w", inner)
	if !IsForbidden(outer) {
		t.Error("IsForbidden should see through fmt.Errorf wrapping")
	}
}
