package validators

import (
	"strings"

	pkgerrors "github.com/foodgo/food-go-backend/pkg/errors"
	"github.com/google/uuid"
)

// ParseUUIDParam parses a path parameter into a UUID with a validation error
// naming the field on failure.
func ParseUUIDParam(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a uuid").
			WithDetails(map[string]any{"field": field})
	}
	return id, nil
}

// RequireParam trims a path parameter and rejects blanks.
func RequireParam(raw, field string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "path parameter is required").
			WithDetails(map[string]any{"field": field})
	}
	return value, nil
}
