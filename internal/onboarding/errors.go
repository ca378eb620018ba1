package onboarding

import (
	"sort"
	"strings"
)

// FieldError is a single field-level validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every failing field of one validation run.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message returns the message for field, or "" when the field passed.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// Map returns the errors keyed by field name.
func (e *ValidationError) Map() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		m[f.Field] = f.Message
	}
	return m
}

var fieldOrder = map[string]int{
	FieldFirstName:   0,
	FieldLastName:    1,
	FieldEmail:       2,
	FieldGender:      3,
	FieldPhoneNumber: 4,
	FieldDateOfBirth: 5,
}

// sort orders the errors the way the form lays out its fields.
func (e *ValidationError) sort() {
	sort.SliceStable(e.Fields, func(i, j int) bool {
		return fieldOrder[e.Fields[i].Field] < fieldOrder[e.Fields[j].Field]
	})
}
