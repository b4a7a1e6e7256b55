package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid input", ErrCapacityOutOfRange, http.StatusBadRequest},
		{"unauthenticated", ErrSessionNotFound, http.StatusUnauthorized},
		{"unauthorized", ErrNotDrawer, http.StatusForbidden},
		{"forbidden", ErrTenantMismatch, http.StatusForbidden},
		{"not found", ErrRoomNotFound, http.StatusNotFound},
		{"conflict", ErrRoomFull, http.StatusConflict},
		{"invalid state", ErrGameInProgress, http.StatusUnprocessableEntity},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests},
		{"upstream", ErrNoWordsAvailable, http.StatusBadGateway},
		{"wrapped", fmt.Errorf("join: %w", ErrAlreadyGuessed), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}
