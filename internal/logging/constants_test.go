package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstants(t *testing.T) {
	fields := []string{
		FieldAlertID, FieldSourceSystem, FieldSheet, FieldColumns, FieldRows,
		FieldFile, FieldFileName, FieldDuration, FieldStatus, FieldMethod,
		FieldPath, FieldRequestID, FieldError,
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		assert.NotEmpty(t, f)
		assert.False(t, seen[f], "duplicate field name %q", f)
		seen[f] = true
	}
}
