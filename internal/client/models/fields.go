package models

import (
	"errors"
	"strings"
)

var ErrIncorrectField = errors.New("field must be name=value")

// FieldsFromPairs turns "name=value" arguments into a partial-update body.
// A later pair overrides an earlier one with the same name.
func FieldsFromPairs(pairs []string) (map[string]any, error) {
	fields := make(map[string]any, len(pairs))
	for _, item := range pairs {
		parts := strings.Split(item, "=")
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, ErrIncorrectField
		}
		fields[strings.TrimSpace(parts[0])] = parts[1]
	}
	return fields, nil
}
