package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestKindOf(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"not found", NotFound("sub plan", id), KindNotFound},
		{"forbidden", Forbidden("sub plan", id), KindForbidden},
		{"validation", NewValidationError(FieldError{Field: "mastery", Rule: "range"}), KindValidation},
		{"wrapped validation", fmt.Errorf("create: %w", NewValidationError()), KindValidation},
		{"conflict", Conflict("general plan"), KindConflict},
		{"unauthorized", ErrUnauthorized, KindUnauthorized},
		{"other", errors.New("boom"), KindInternal},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("%s: got=%q want=%q", tc.name, got, tc.want)
		}
	}
}

func TestValidationErrorFields(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewValidationError(
		FieldError{Field: "comment", Rule: "required"},
		FieldError{Field: "diagrams", Rule: "required"},
	))
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error")
	}
	names := ve.FieldNames()
	if len(names) != 2 || names[0] != "comment" || names[1] != "diagrams" {
		t.Fatalf("unexpected fields: %v", names)
	}
	if ve.Error() != "validation failed: comment (required), diagrams (required)" {
		t.Fatalf("unexpected message: %q", ve.Error())
	}
}
