package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email string `validate:"required,campus_email"`
	Name  string `validate:"required,min=2"`
}

func TestCampusEmailRule(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.ValidateStruct(signupForm{Email: "ada@ege.edu.tr", Name: "Ada"}))
	require.NoError(t, v.ValidateStruct(signupForm{Email: "ada@mit.edu", Name: "Ada"}))

	require.Error(t, v.ValidateStruct(signupForm{Email: "ada@gmail.com", Name: "Ada"}))
	require.Error(t, v.ValidateStruct(signupForm{Email: "not-an-email", Name: "Ada"}))
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.ValidateStruct(signupForm{Email: "ada@gmail.com", Name: "A"})
	require.Error(t, err)

	fields := FormatValidationErrors(err)
	require.Equal(t, "A university email address is required", fields["email"])
	require.Contains(t, fields["name"], "at least 2")
}

func TestValidateEmail(t *testing.T) {
	require.True(t, ValidateEmail("ada@ege.edu.tr"))
	require.False(t, ValidateEmail("nope"))
	require.False(t, ValidateEmail(""))
}

func TestSanitizeString(t *testing.T) {
	require.Equal(t, "hello", SanitizeString("  hello\x00 "))
}
