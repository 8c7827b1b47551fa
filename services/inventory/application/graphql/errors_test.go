package graphql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	inventory "github.com/ghuser/stocktracker/services/inventory/domain"
)

func TestToResolverError(t *testing.T) {
	storage := fmt.Errorf("%w: insert: connection refused", inventory.ErrStorage)

	tests := []struct {
		name       string
		err        error
		production bool
		wantCode   string
		wantMsg    string
	}{
		{"not found", fmt.Errorf("get: %w", inventory.ErrItemNotFound), false, "NOT_FOUND", "item not found"},
		{"below zero", inventory.ErrInvalidOperation, false, "INVALID_OPERATION", "Cannot reduce quantity below 0"},
		{"duplicate", inventory.ErrDuplicateName, false, "CONFLICT", inventory.ErrDuplicateName.Error()},
		{"storage dev", storage, false, "INTERNAL", storage.Error()},
		{"storage prod", storage, true, "INTERNAL", "Internal Server Error"},
		{"unknown prod", errors.New("boom"), true, "INTERNAL", "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var re *resolverError
			assert.True(t, errors.As(toResolverError(tt.err, tt.production), &re))
			assert.Equal(t, tt.wantCode, re.Extensions()["code"])
			assert.Equal(t, tt.wantMsg, re.Error())
		})
	}
}

func TestToResolverError_Validation(t *testing.T) {
	ve := inventory.NewValidationError()
	ve.Add("name", "Name is required")

	var re *resolverError
	assert.True(t, errors.As(toResolverError(ve, true), &re))
	assert.Equal(t, "Validation failed", re.Error())
	assert.Equal(t, map[string]string{"name": "Name is required"}, re.Extensions()["fields"])
}

func TestToResolverError_Nil(t *testing.T) {
	assert.NoError(t, toResolverError(nil, false))
}
