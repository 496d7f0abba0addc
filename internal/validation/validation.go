// Package validation carries field-level input errors from services to the
// HTTP layer, where they become a 400 response body.
package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error maps field names to human-readable problems.
type Error struct {
	Fields map[string]string
}

// NewError returns an empty field error collector.
func NewError() *Error {
	return &Error{Fields: make(map[string]string)}
}

// Add records a problem for a field, keeping the first one reported.
func (e *Error) Add(field, problem string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = problem
	}
}

// HasErrors reports whether any field failed.
func (e *Error) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
