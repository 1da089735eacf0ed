package store

import (
	"fmt"
	"strconv"
	"strings"

	"education-backend-go/internal/apperrors"
)

// Cond is a single column-equality condition.
type Cond struct {
	Column string
	Value  any
}

// Filter is a conjunctive set of column-equality conditions used to locate
// entities. Conditions are typed (column, value) pairs built in code, not
// free-form maps.
type Filter []Cond

func Where(column string, value any) Filter {
	return Filter{{Column: column, Value: value}}
}

func (f Filter) And(column string, value any) Filter {
	return append(f, Cond{Column: column, Value: value})
}

// Validate rejects empty filters before any query runs.
func (f Filter) Validate() error {
	if len(f) == 0 {
		return apperrors.Validation("filter must contain at least one condition")
	}
	return nil
}

// Clause renders the filter as a SQL WHERE body with positional arguments.
func (f Filter) Clause() (string, []any) {
	parts := make([]string, 0, len(f))
	args := make([]any, 0, len(f))
	for i, cond := range f {
		parts = append(parts, cond.Column+" = $"+strconv.Itoa(i+1))
		args = append(args, cond.Value)
	}
	return strings.Join(parts, " AND "), args
}

func (f Filter) String() string {
	parts := make([]string, 0, len(f))
	for _, cond := range f {
		parts = append(parts, fmt.Sprintf("%s=%v", cond.Column, cond.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
