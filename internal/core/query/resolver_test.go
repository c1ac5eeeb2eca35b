package query

import (
	"errors"
	"reflect"
	"testing"
)

func TestCompileOrderByDefault(t *testing.T) {
	order, err := compileOrderBy(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order != "id ASC" {
		t.Errorf("expected default ordering, got %q", order)
	}
}

func TestCompileOrderByDirectionAndTieBreak(t *testing.T) {
	order, err := compileOrderBy([]OrderBy{
		{Name: "title", Desc: true},
		{Name: "status"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order != "title DESC, status ASC, id ASC" {
		t.Errorf("unexpected ordering clause: %q", order)
	}
}

func TestCompileOrderByRejectsUnknownField(t *testing.T) {
	_, err := compileOrderBy([]OrderBy{{Name: "password_hash"}})
	if !errors.Is(err, ErrBadOrderField) {
		t.Errorf("expected ErrBadOrderField, got %v", err)
	}
}

func TestCompileExpressionEquality(t *testing.T) {
	expr := map[string]interface{}{
		"left":  "status",
		"op":    map[string]interface{}{"name": "="},
		"right": "Not Started",
	}

	sql, args, next, err := compileExpression(expr, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "status = $1" {
		t.Errorf("unexpected sql: %q", sql)
	}
	if !reflect.DeepEqual(args, []interface{}{"Not Started"}) {
		t.Errorf("unexpected args: %v", args)
	}
	if next != 2 {
		t.Errorf("expected next index 2, got %d", next)
	}
}

func TestCompileExpressionContains(t *testing.T) {
	expr := map[string]interface{}{
		"left":  "title",
		"op":    map[string]interface{}{"name": "~"},
		"right": "audit",
	}

	sql, args, _, err := compileExpression(expr, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "title::text ILIKE $1" {
		t.Errorf("unexpected sql: %q", sql)
	}
	if !reflect.DeepEqual(args, []interface{}{"%audit%"}) {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestCompileExpressionNested(t *testing.T) {
	expr := map[string]interface{}{
		"left": map[string]interface{}{
			"left":  "assessment_type",
			"op":    map[string]interface{}{"name": "="},
			"right": "Control",
		},
		"op": map[string]interface{}{"name": "AND"},
		"right": map[string]interface{}{
			"left":  "status",
			"op":    map[string]interface{}{"name": "!="},
			"right": "Deprecated",
		},
	}

	sql, args, next, err := compileExpression(expr, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "(assessment_type = $1 AND status != $2)" {
		t.Errorf("unexpected sql: %q", sql)
	}
	if !reflect.DeepEqual(args, []interface{}{"Control", "Deprecated"}) {
		t.Errorf("unexpected args: %v", args)
	}
	if next != 3 {
		t.Errorf("expected next index 3, got %d", next)
	}
}

func TestCompileExpressionIn(t *testing.T) {
	expr := map[string]interface{}{
		"left":  "id",
		"op":    map[string]interface{}{"name": "IN"},
		"right": []interface{}{float64(1), float64(2)},
	}

	sql, args, _, err := compileExpression(expr, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "id IN ($1,$2)" {
		t.Errorf("unexpected sql: %q", sql)
	}
	if !reflect.DeepEqual(args, []interface{}{"1", "2"}) {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestCompileExpressionErrors(t *testing.T) {
	tests := []struct {
		name string
		expr map[string]interface{}
		want error
	}{
		{
			"missing op",
			map[string]interface{}{"left": "title", "right": "x"},
			ErrBadExpression,
		},
		{
			"unsupported operator",
			map[string]interface{}{"left": "title", "op": map[string]interface{}{"name": ">"}, "right": "x"},
			ErrBadExpression,
		},
		{
			"unknown field",
			map[string]interface{}{"left": "secret", "op": map[string]interface{}{"name": "="}, "right": "x"},
			ErrBadField,
		},
		{
			"empty IN list",
			map[string]interface{}{"left": "id", "op": map[string]interface{}{"name": "IN"}, "right": []interface{}{}},
			ErrBadExpression,
		},
		{
			"AND with scalar side",
			map[string]interface{}{"left": "title", "op": map[string]interface{}{"name": "AND"}, "right": map[string]interface{}{}},
			ErrBadExpression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := compileExpression(tt.expr, 1)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
