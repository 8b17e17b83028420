package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planInput struct {
	Title    string `json:"title" validate:"required,not-blank"`
	Category string `json:"category" validate:"required,is-plan-category"`
}

type decisionInput struct {
	Status string `json:"status" validate:"required,is-decision-status"`
}

type applicantInput struct {
	Mobile string  `json:"mobile" validate:"required,is-mobile"`
	Income float64 `json:"income" validate:"gt=0"`
}

func TestValidate_JSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&planInput{Title: "  ", Category: "CRYPTO"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "This field is required", vErr.Errors["title"])
	assert.Equal(t, "Must be one of: INVESTMENT, INSURANCE, FD, LOAN", vErr.Errors["category"])
}

func TestValidate_DecisionStatus(t *testing.T) {
	v := New()

	tests := []struct {
		status string
		valid  bool
	}{
		{"APPROVED", true},
		{"REJECTED", true},
		{"PENDING", false},
		{"approved", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			err := v.Validate(&decisionInput{Status: tt.status})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Applicant(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&applicantInput{Mobile: "+1 555-123-4567", Income: 1}))

	err := v.Validate(&applicantInput{Mobile: "call me", Income: 0})
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Contains(t, vErr.Errors, "mobile")
	assert.Equal(t, "Must be greater than 0", vErr.Errors["income"])
}

func TestValidationError_StableMessage(t *testing.T) {
	err := &ValidationError{Errors: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "Validation failed: field 'a': one; field 'b': two", err.Error())
}
