package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/auditgrid/auditgrid/internal/storage/postgres"
)

var (
	ErrBadExpression = errors.New("malformed filter expression")
	ErrBadOrderField = errors.New("unknown order_by field")
	ErrBadField      = errors.New("unknown filter field")
)

// Columns the expression tree and order_by may reference.
var allowedFields = map[string]bool{
	"id":              true,
	"slug":            true,
	"title":           true,
	"status":          true,
	"assessment_type": true,
	"created_at":      true,
	"updated_at":      true,
}

// Resolver turns a declarative clause into an ordered assessment id list.
// The expression tree uses the shape {"left": field, "op": {"name": op},
// "right": value}, with AND/OR nodes carrying sub-expressions on both sides.
type Resolver struct {
	db *postgres.Client
}

func NewResolver(db *postgres.Client) *Resolver {
	return &Resolver{db: db}
}

func (r *Resolver) ResolveIDs(ctx context.Context, clause *Clause) ([]int64, error) {
	where := "TRUE"
	var args []interface{}

	if clause.Filters != nil && len(clause.Filters.Expression) > 0 {
		compiled, compiledArgs, _, err := compileExpression(clause.Filters.Expression, 1)
		if err != nil {
			return nil, err
		}
		where = compiled
		args = compiledArgs
	}

	order, err := compileOrderBy(clause.OrderBy)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id FROM assessments WHERE %s ORDER BY %s`, where, order)

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func compileOrderBy(orderBy []OrderBy) (string, error) {
	if len(orderBy) == 0 {
		return "id ASC", nil
	}

	parts := make([]string, 0, len(orderBy))
	for _, ob := range orderBy {
		if !allowedFields[ob.Name] {
			return "", fmt.Errorf("%w: %q", ErrBadOrderField, ob.Name)
		}
		dir := "ASC"
		if ob.Desc {
			dir = "DESC"
		}
		parts = append(parts, fmt.Sprintf("%s %s", ob.Name, dir))
	}
	// Tie-break on id so equal keys still order deterministically.
	parts = append(parts, "id ASC")
	return strings.Join(parts, ", "), nil
}

// compileExpression renders one expression node into a parameterized SQL
// fragment, returning the next free placeholder index.
func compileExpression(expr map[string]interface{}, argIndex int) (string, []interface{}, int, error) {
	opName, err := expressionOp(expr)
	if err != nil {
		return "", nil, 0, err
	}

	switch strings.ToUpper(opName) {
	case "AND", "OR":
		left, ok := expr["left"].(map[string]interface{})
		if !ok {
			return "", nil, 0, fmt.Errorf("%w: %s left side is not an expression", ErrBadExpression, opName)
		}
		right, ok := expr["right"].(map[string]interface{})
		if !ok {
			return "", nil, 0, fmt.Errorf("%w: %s right side is not an expression", ErrBadExpression, opName)
		}
		leftSQL, leftArgs, argIndex, err := compileExpression(left, argIndex)
		if err != nil {
			return "", nil, 0, err
		}
		rightSQL, rightArgs, argIndex, err := compileExpression(right, argIndex)
		if err != nil {
			return "", nil, 0, err
		}
		combined := fmt.Sprintf("(%s %s %s)", leftSQL, strings.ToUpper(opName), rightSQL)
		return combined, append(leftArgs, rightArgs...), argIndex, nil

	case "=", "!=":
		field, value, err := expressionOperands(expr)
		if err != nil {
			return "", nil, 0, err
		}
		clause := fmt.Sprintf("%s %s $%d", field, opName, argIndex)
		return clause, []interface{}{fmt.Sprint(value)}, argIndex + 1, nil

	case "~", "!~":
		field, value, err := expressionOperands(expr)
		if err != nil {
			return "", nil, 0, err
		}
		op := "ILIKE"
		if opName == "!~" {
			op = "NOT ILIKE"
		}
		clause := fmt.Sprintf("%s::text %s $%d", field, op, argIndex)
		return clause, []interface{}{"%" + fmt.Sprint(value) + "%"}, argIndex + 1, nil

	case "IN":
		field, value, err := expressionOperands(expr)
		if err != nil {
			return "", nil, 0, err
		}
		items, ok := value.([]interface{})
		if !ok || len(items) == 0 {
			return "", nil, 0, fmt.Errorf("%w: IN requires a non-empty list", ErrBadExpression)
		}
		placeholders := make([]string, 0, len(items))
		args := make([]interface{}, 0, len(items))
		for _, item := range items {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argIndex))
			args = append(args, fmt.Sprint(item))
			argIndex++
		}
		clause := fmt.Sprintf("%s IN (%s)", field, strings.Join(placeholders, ","))
		return clause, args, argIndex, nil

	default:
		return "", nil, 0, fmt.Errorf("%w: unsupported operator %q", ErrBadExpression, opName)
	}
}

func expressionOp(expr map[string]interface{}) (string, error) {
	op, ok := expr["op"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("%w: missing op", ErrBadExpression)
	}
	name, ok := op["name"].(string)
	if !ok || name == "" {
		return "", fmt.Errorf("%w: missing op name", ErrBadExpression)
	}
	return name, nil
}

func expressionOperands(expr map[string]interface{}) (string, interface{}, error) {
	field, ok := expr["left"].(string)
	if !ok {
		return "", nil, fmt.Errorf("%w: left side must be a field name", ErrBadExpression)
	}
	field = strings.ToLower(field)
	if !allowedFields[field] {
		return "", nil, fmt.Errorf("%w: %q", ErrBadField, field)
	}
	value, ok := expr["right"]
	if !ok {
		return "", nil, fmt.Errorf("%w: missing right side", ErrBadExpression)
	}
	return field, value, nil
}
