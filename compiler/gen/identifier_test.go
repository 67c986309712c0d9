package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"User", "User"},
		{"  id  ", "id"},
		{"_private", "_private"},
		{"user_email", "user_email"},
		{"A1_b2", "A1_b2"},
		{"\tName\n", "Name"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ValidateIdentifier(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateIdentifierInvalid(t *testing.T) {
	tests := []struct {
		raw     string
		message string
	}{
		{"", "empty"},
		{"   ", "empty"},
		{"1user", "digit"},
		{"9", "digit"},
		{"first-name", "letters, digits and underscores"},
		{"user email", "letters, digits and underscores"},
		{"naïve", "letters, digits and underscores"},
		{"a.b", "letters, digits and underscores"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := ValidateIdentifier(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidIdentifier)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestMethodSuffix(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"user_email", "UserEmail"},
		{"first-name", "FirstName"},
		{"  id  ", "Id"},
		{"id", "Id"},
		{"ID", "ID"},
		{"already_Camel", "AlreadyCamel"},
		{"a__b", "AB"},
		{"_leading", "Leading"},
		{"trailing_", "Trailing"},
		{"col\tname", "ColName"},
		{"_1st", "1st"},
		{"___", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, MethodSuffix(tt.key))
		})
	}
}

func TestExportedName(t *testing.T) {
	assert.Equal(t, "UserEmail", ExportedName("UserEmail"))
	assert.Equal(t, "Column1st", ExportedName("1st"))
	assert.Equal(t, "", ExportedName(""))
}
