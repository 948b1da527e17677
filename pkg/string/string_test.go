package string

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnyBlank(t *testing.T) {
	assert.False(t, AnyBlank())
	assert.False(t, AnyBlank("123", "wrong plate"))
	assert.True(t, AnyBlank("123", "   "))
	assert.True(t, AnyBlank("", "reason"))
	assert.True(t, AnyBlank("\t\n"))
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"PlateNumber":  "plate_number",
		"DueDate":      "due_date",
		"LicenseNo":    "license_no",
		"UserID":       "user_id",
		"ID":           "id",
		"mobileNumber": "mobile_number",
		"":             "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ToSnakeCase(in), in)
	}
}
