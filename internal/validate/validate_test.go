package validate

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsEmpty(t *testing.T) {
	var errs Errors
	errs.Positive("shares", decimal.NewFromInt(10))
	errs.NonNegative("assets", decimal.Zero)
	errs.Required("name", "Main Stage")
	assert.NoError(t, errs.Err())
}

func TestErrorsCollect(t *testing.T) {
	var errs Errors
	errs.Positive("shares", decimal.Zero)
	errs.NonNegative("assets", decimal.NewFromInt(-5))
	errs.Required("lender", "  ")

	err := errs.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "shares: must be greater than 0")
	assert.Contains(t, err.Error(), "lender: is required")

	var got Errors
	require.True(t, errors.As(err, &got))
	assert.Len(t, got, 3)
	assert.Equal(t, "must not be negative, got -5", got.ToMap()["assets"])
}
