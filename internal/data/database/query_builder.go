package database

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
)

type ConditionType string

const (
	Equal              ConditionType = "="
	NotEqual           ConditionType = "!="
	GreaterThan        ConditionType = ">"
	LessThan           ConditionType = "<"
	LessThanOrEqual    ConditionType = "<="
	GreaterThanOrEqual ConditionType = ">="
	Like               ConditionType = "LIKE"
	ILike              ConditionType = "ILIKE"
	In                 ConditionType = "IN"
	Any                ConditionType = "ANY"

	defaultLimit  = -1
	defaultOffset = -1
)

type Condition struct {
	Field string
	Type  ConditionType
	Value any
}

func WhereCond(field string, condType ConditionType, value any) Condition {
	return Condition{
		Field: field,
		Type:  condType,
		Value: value,
	}
}

type ListQueryOptions struct {
	Table      string
	Columns    []string
	CountOnly  bool
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	Limit      int
	Offset     int
}

type ListQueryOption func(*ListQueryOptions)

func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{
		Table:      table,
		Columns:    []string{},
		Conditions: []Condition{},
		Limit:      defaultLimit,
		Offset:     defaultOffset,
	}

	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Columns = cols
	}
}

// WithCondition adds a single condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Conditions = append(o.Conditions, cond)
	}
}

// WithConditions sets the entire list of conditions.
func WithConditions(conds ...Condition) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Conditions = conds
	}
}

// WithOrderBy sets the ordering column and direction.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDir = direction
	}
}

// WithLimit sets the limit. Accepts 0.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

// WithOffset sets the offset. Accepts 0.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if offset >= 0 {
			o.Offset = offset
		}
	}
}

// WithCountOnly sets the query to count only.
func WithCountOnly() ListQueryOption {
	return func(o *ListQueryOptions) {
		o.CountOnly = true
	}
}

// sanitizeIdentifier wraps a single string identifier for sanitization.
func sanitizeIdentifier(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

// sanitizeQualifiedIdentifier sanitizes qualified identifiers like "table.column".
// It splits on '.' and uses pgx.Identifier to properly quote each part.
func sanitizeQualifiedIdentifier(ident string) string {
	parts := strings.Split(ident, ".")
	return pgx.Identifier(parts).Sanitize()
}

// buildSelectClause generates the SELECT part of the query with sanitized columns.
func buildSelectClause(options *ListQueryOptions) string {
	if options.CountOnly {
		return "SELECT COUNT(*) "
	}
	if len(options.Columns) == 0 {
		return "SELECT * "
	}

	processed := make([]string, len(options.Columns))
	for i, col := range options.Columns {
		if strings.Contains(col, ".") {
			processed[i] = sanitizeQualifiedIdentifier(col)
		} else {
			processed[i] = sanitizeIdentifier(col)
		}
	}

	return fmt.Sprintf("SELECT %s ", strings.Join(processed, ", "))
}

// buildPaginationAndOrderClause generates ORDER BY, LIMIT, OFFSET parts with
// sanitized OrderBy and validated OrderDir.
func buildPaginationAndOrderClause(
	options *ListQueryOptions,
	startParamIndex int,
	initialArgs []any,
) (string, []any) {
	var clause strings.Builder
	args := initialArgs
	paramCount := startParamIndex

	if options.OrderBy != "" {
		clause.WriteString(" ORDER BY ")
		clause.WriteString(sanitizeQualifiedIdentifier(options.OrderBy))
		upperOrderDir := strings.ToUpper(options.OrderDir)
		if upperOrderDir == "ASC" || upperOrderDir == "DESC" {
			clause.WriteString(" ")
			clause.WriteString(upperOrderDir)
		}
	}

	// Add LIMIT/OFFSET only if explicitly set (not the default sentinel)
	if options.Limit != defaultLimit {
		clause.WriteString(fmt.Sprintf(" LIMIT $%d", paramCount))
		args = append(args, options.Limit)
		paramCount++
	}
	if options.Offset != defaultOffset {
		clause.WriteString(fmt.Sprintf(" OFFSET $%d", paramCount))
		args = append(args, options.Offset)
	}

	return clause.String(), args
}

// BuildListQuery constructs a SQL query string and arguments from options,
// sanitizing identifiers. It handles SELECT, WHERE, ORDER BY, LIMIT, and
// OFFSET clauses.
//
// Example usage:
//
//	options := NewListQueryOptions("shifts",
//		WithColumns("id", "caregiver_id", "status"),
//		WithCondition(WhereCond("status", Equal, "scheduled")),
//		WithCondition(WhereCond("client_id", In, []string{"a", "b"})),
//		WithOrderBy("starts_at", "ASC"),
//		WithLimit(50),
//		WithOffset(0),
//	)
//
//	query, args := BuildListQuery(options)
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	if options == nil {
		return "", nil
	}

	var query strings.Builder

	query.WriteString(buildSelectClause(options))
	query.WriteString("FROM ")
	query.WriteString(sanitizeIdentifier(options.Table))

	whereClause, whereArgs, nextParamCount := buildWhereClause(options.Conditions, 1)
	if whereClause != "" {
		query.WriteString(" ")
		query.WriteString(whereClause)
	}

	// return early for CountOnly
	if options.CountOnly {
		return query.String(), whereArgs
	}

	paginationOrderClause, finalArgs := buildPaginationAndOrderClause(
		options,
		nextParamCount,
		whereArgs,
	)
	if paginationOrderClause != "" {
		query.WriteString(paginationOrderClause)
	}

	return query.String(), finalArgs
}

func handleStandardCondition(
	cond Condition,
	sanitizedField string,
	paramCount int,
) (string, []any, int) {
	conditionStr := fmt.Sprintf("%s %s $%d", sanitizedField, cond.Type, paramCount)
	return conditionStr, []any{cond.Value}, paramCount + 1
}

func handleInCondition(cond Condition, sanitizedField string, paramCount int) (string, []any, int) {
	// Accept any slice type via reflection
	rv := reflect.ValueOf(cond.Value)
	if rv.Kind() != reflect.Slice || rv.Len() == 0 {
		return "", []any{}, paramCount
	}

	placeholders := make([]string, rv.Len())
	args := make([]any, rv.Len())
	currentParam := paramCount
	for i := range rv.Len() {
		placeholders[i] = fmt.Sprintf("$%d", currentParam)
		args[i] = rv.Index(i).Interface()
		currentParam++
	}
	conditionStr := fmt.Sprintf("%s IN (%s)", sanitizedField, strings.Join(placeholders, ", "))
	return conditionStr, args, currentParam
}

func handleAnyCondition(cond Condition, sanitizedField string, paramCount int) (string, []any, int) {
	rv := reflect.ValueOf(cond.Value)
	if rv.Kind() != reflect.Slice || rv.Len() == 0 {
		return "", []any{}, paramCount
	}

	placeholders := make([]string, rv.Len())
	args := make([]any, rv.Len())
	currentParam := paramCount
	for i := range rv.Len() {
		placeholders[i] = fmt.Sprintf("$%d", currentParam)
		args[i] = rv.Index(i).Interface()
		currentParam++
	}
	conditionStr := fmt.Sprintf(
		"%s = ANY (ARRAY[%s])",
		sanitizedField,
		strings.Join(placeholders, ", "),
	)
	return conditionStr, args, currentParam
}

// processCondition processes a single condition and returns the SQL string,
// args, and next param count.
func processCondition(cond Condition, paramCount int) (string, []any, int) {
	if cond.Field == "" {
		return "", []any{}, paramCount
	}
	sanitizedField := sanitizeIdentifier(cond.Field)

	switch cond.Type {
	case In:
		return handleInCondition(cond, sanitizedField, paramCount)
	case Any:
		return handleAnyCondition(cond, sanitizedField, paramCount)
	case Equal, NotEqual, GreaterThan, LessThan, LessThanOrEqual, GreaterThanOrEqual, Like, ILike:
		return handleStandardCondition(cond, sanitizedField, paramCount)
	}
	return "", []any{}, paramCount
}

// buildWhereClause generates the WHERE part of the query with sanitized fields
// and manages parameter numbering.
func buildWhereClause(inputConditions []Condition, startParamIndex int) (string, []any, int) {
	conditions := make([]string, 0, len(inputConditions))
	args := []any{}
	paramCount := startParamIndex

	for _, cond := range inputConditions {
		conditionStr, newArgs, nextParamCount := processCondition(cond, paramCount)
		if conditionStr != "" {
			conditions = append(conditions, conditionStr)
			args = append(args, newArgs...)
			paramCount = nextParamCount
		}
	}

	if len(conditions) == 0 {
		return "", args, paramCount
	}
	return "WHERE " + strings.Join(conditions, " AND "), args, paramCount
}
