package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	ve := &ValidationError{}
	assert.NoError(t, ve.OrNil())

	ve.Add("title", "is required")
	ve.Add("", "document is empty")

	err := fmt.Errorf("service.Op: %w", ve.OrNil())
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "service.Op: validation failed: title: is required; document is empty", err.Error())

	assert.False(t, IsValidationError(errors.New("plain")))
}

func TestFromOzzo(t *testing.T) {
	assert.NoError(t, FromOzzo(nil))

	err := FromOzzo(errors.New("boom"))
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, []FieldError{{Field: "", Message: "boom"}}, ve.Errors)
}
