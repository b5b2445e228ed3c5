package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Regular expressions for parsing PgError.Detail messages.
var (
	// reKeyField extracts field name from unique violation detail: "Key (field)=(value) already exists.".
	reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)
	// reReferencedFrom detects parent deletion: "... is still referenced from table ...".
	reReferencedFrom = regexp.MustCompile(`is still referenced from table "?([^"]+)"?`)
	// reNotPresent detects missing parent: "... is not present in table ...".
	reNotPresent = regexp.MustCompile(`is not present in table "?([^"]+)"?`)
)

// MapDBError maps database errors to AppError instances.
// It handles common database error patterns including:
// - pgx.ErrNoRows → NotFound
// - Unique constraint violations → Conflict
// - Foreign key violations → ForeignKey
// - Check constraint violations → Validation
// - NOT NULL violations → Validation
// - Context timeouts/cancellations → Timeout/Canceled
//
// If the error is not a recognized database error, it returns the original error.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	// Check for context errors first
	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	// Check for pgx.ErrNoRows (not found)
	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{
			Code:    ErrCodeNotFound,
			Message: "Resource not found",
			Cause:   err,
		}
	}

	// Check for PostgreSQL errors
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	// Return original error if not a recognized database error
	return err
}

// mapPgError maps PostgreSQL-specific errors to AppError instances.
func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return mapUniqueViolation(pgErr)
	case pgerrcode.ForeignKeyViolation:
		return mapForeignKeyViolation(pgErr)
	case pgerrcode.CheckViolation:
		return mapCheckViolation(pgErr)
	case pgerrcode.NotNullViolation:
		return mapNotNullViolation(pgErr)
	default:
		// Return wrapped internal error for unhandled database errors
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "A database error occurred. Please try again.",
			Cause:   pgErr,
		}
	}
}

// mapUniqueViolation maps unique constraint violations to Conflict errors.
func mapUniqueViolation(pgErr *pgconn.PgError) error {
	var field string

	// Prefer ColumnName metadata when available (most reliable)
	if pgErr.ColumnName != "" {
		field = pgErr.ColumnName
	}

	// Fallback: Parse Detail message for "Key (field)=(value) already exists."
	if field == "" && pgErr.Detail != "" {
		if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			field = m[1]
		}
	}

	// Last resort: Infer from constraint name (e.g., "caregivers_email_key" → "email")
	if field == "" {
		field = inferFieldFromConstraint(pgErr.ConstraintName)
	}

	message := "This value already exists. Please choose a different one."
	if field != "" {
		return &AppError{
			Code:    ErrCodeConflict,
			Message: message,
			Field:   field,
			Cause:   pgErr,
		}
	}

	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Cause:   pgErr,
	}
}

// mapForeignKeyViolation maps foreign key constraint violations to ForeignKey errors.
func mapForeignKeyViolation(pgErr *pgconn.PgError) error {
	var message string

	// Parse Detail message to distinguish between:
	// - "... is still referenced from table ..." (deleting/updating parent)
	// - "... is not present in table ..." (inserting/updating child with missing parent)
	if pgErr.Detail != "" {
		if referencedMatch := reReferencedFrom.FindStringSubmatch(pgErr.Detail); len(referencedMatch) == 2 {
			tableName := referencedMatch[1]
			domainName := mapTableToDomain(tableName)
			message = "Cannot delete because this item is in use by " + domainName + "."
		} else if missingMatch := reNotPresent.FindStringSubmatch(pgErr.Detail); len(missingMatch) == 2 {
			tableName := missingMatch[1]
			domainName := mapTableToDomain(tableName)
			message = "Cannot complete operation because the referenced " + domainName + " does not exist."
		}
	}

	// Fallback: Use TableName metadata if Detail parsing failed
	if message == "" && pgErr.TableName != "" {
		domainName := mapTableToDomain(pgErr.TableName)
		message = "Cannot complete operation because this item is in use by " + domainName + "."
	}

	// Last resort: Infer from constraint name
	if message == "" {
		message = inferForeignKeyMessage(pgErr.ConstraintName)
	}

	return &AppError{
		Code:    ErrCodeForeignKey,
		Message: message,
		Cause:   pgErr,
	}
}

// mapNotNullViolation maps NOT NULL constraint violations to Validation errors.
func mapNotNullViolation(pgErr *pgconn.PgError) error {
	message := "Required field is missing. Please check your input."
	field := pgErr.ColumnName

	if field != "" {
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "This field is required.",
			Field:   field,
			Cause:   pgErr,
		}
	}

	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Cause:   pgErr,
	}
}

// mapCheckViolation maps CHECK constraint violations to Validation errors.
func mapCheckViolation(pgErr *pgconn.PgError) error {
	message := "Invalid data. Please check your input."
	field := pgErr.ColumnName

	if field != "" {
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "This field has an invalid value.",
			Field:   field,
			Cause:   pgErr,
		}
	}

	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Cause:   pgErr,
	}
}

// inferFieldFromConstraint attempts to infer the field name from a constraint name.
// e.g., "caregivers_email_key" → "email"
// e.g., "clients_name_unique" → "name"
// Returns empty string if inference fails or is ambiguous.
func inferFieldFromConstraint(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	parts := strings.Split(constraintName, "_")
	// Constraint names typically follow patterns like:
	// - "table_field_key" (unique) → 3 parts
	// - "table_field_unique" → 3 parts
	// - "table_field_idx" → 3 parts

	// Multi-column or complex constraints have more parts.
	// Avoid returning misleading field names for these cases.
	if len(parts) > 3 {
		return ""
	}

	if len(parts) == 3 {
		fieldCandidate := parts[1]

		// e.g., "table_lower_key" where "lower" is a function in an
		// expression index, not a field.
		if isFunctionName(fieldCandidate) {
			return ""
		}

		return fieldCandidate
	}

	return ""
}

// mapTableToDomain maps internal table names to user-friendly domain names.
func mapTableToDomain(tableName string) string {
	tableName = strings.ToLower(strings.TrimSpace(tableName))

	domainMap := map[string]string{
		"identities":            "Account",
		"caregivers":            "Caregiver",
		"clients":               "Client",
		"family_members":        "Family Member",
		"family_member_clients": "Family Member",
		"shifts":                "Shift",
		"messages":              "Message",
		"intake_submissions":    "Intake Submission",
		"booking_requests":      "Booking Request",
	}

	if domainName, ok := domainMap[tableName]; ok {
		return domainName
	}

	// Fallback: capitalize first letter and replace underscores with spaces
	return capitalizeFirst(strings.ReplaceAll(tableName, "_", " "))
}

// capitalizeFirst capitalizes the first letter of each word in a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}

	words := strings.Split(s, " ")
	for i, word := range words {
		if len(word) > 0 && word[0] >= 'a' && word[0] <= 'z' {
			words[i] = string(word[0]-32) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// inferForeignKeyMessage infers a user-friendly message from a foreign key constraint name.
func inferForeignKeyMessage(constraintName string) string {
	constraintName = strings.ToLower(constraintName)

	// Check caregiver before client: "shifts_caregiver_id_fkey" never contains "client",
	// but link tables like "family_member_clients_client_id_fkey" contain both
	// "member" and "client", so check the more specific tokens first.
	if strings.Contains(constraintName, "family_member") || strings.Contains(constraintName, "member") {
		return "Cannot complete operation because it references a Family Member."
	}
	if strings.Contains(constraintName, "caregiver") {
		return "Cannot delete because this caregiver has scheduled shifts or messages."
	}
	if strings.Contains(constraintName, "client") {
		return "Cannot delete because this client has shifts, messages, or family links."
	}
	if strings.Contains(constraintName, "shift") {
		return "Cannot complete operation because it references a Shift."
	}

	// Generic foreign key violation message
	return "Cannot complete operation because this item is in use."
}

// isFunctionName checks if a string looks like a common SQL function name
// used in expression indexes (e.g., lower, upper, trim, etc.)
func isFunctionName(s string) bool {
	commonFunctions := []string{
		"lower", "upper", "trim", "ltrim", "rtrim",
		"md5", "sha1", "sha256", "encode", "decode",
	}
	s = strings.ToLower(s)
	for _, fn := range commonFunctions {
		if s == fn {
			return true
		}
	}
	return false
}
