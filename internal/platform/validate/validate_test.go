// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Bookhub", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
		{"display_name", "Bob <bob@x.com>", false},
		{"angle_brackets", "<bob@x.com>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("username", "tai").
		MinLen("username", "tai", 3).
		MaxLen("username", "tai", 10).
		Email("email", "tai@bookhub.app").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").       // Fails
		MinLen("username", "a", 5).     // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_FirstErr verifies that only the earliest failure is reported and
that its text becomes the error message.
*/
func TestValidator_FirstErr(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		RequiredMsg("title", "  ", "Title is required").
		MaxLenMsg("title", "  ", 50, "Title must be 50 characters or fewer").
		RequiredMsg("bookId", "", "Please select a book").
		FirstErr()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Equal(t, "Title is required", ae.Message)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "title", ae.Details[0].Field)

	assert.NoError(t, (&validate.Validator{}).FirstErr())
}

/*
TestValidator_LengthCountsRunes checks that lengths are measured in characters,
not bytes.
*/
func TestValidator_LengthCountsRunes(t *testing.T) {
	hangul := strings.Repeat("가", 50)

	v := &validate.Validator{}
	v.MaxLen("title", hangul, 50)
	assert.False(t, v.HasErrors())

	v.MaxLen("title", hangul+"가", 50)
	assert.True(t, v.HasErrors())
}

/*
TestValidator_OneOfAndPositive covers the enumeration and numeric rules.
*/
func TestValidator_OneOfAndPositive(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		price     int64
		hasError  bool
	}{
		{"valid", "good", 1000, false},
		{"bad_condition", "mint", 1000, true},
		{"zero_price", "new", 0, true},
		{"negative_price", "new", -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.OneOf("condition", tt.condition, "new", "like-new", "good", "fair").
				Positive("price", tt.price)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}
