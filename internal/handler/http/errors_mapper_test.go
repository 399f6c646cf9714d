package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/laterhq/later-server/internal/service"
	"github.com/laterhq/later-server/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid input", err: service.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "wrapped invalid input", err: fmt.Errorf("%w: %w", service.ErrInvalidInput, errors.New("note too long")), want: http.StatusBadRequest},
		{name: "signing upload", err: service.ErrSigningUpload, want: http.StatusBadGateway},
		{name: "reminder not found", err: store.ErrReminderNotFound, want: http.StatusNotFound},
		{name: "profile not found", err: store.ErrProfileNotFound, want: http.StatusNotFound},
		{name: "query failure", err: store.ErrExecutingQuery, want: http.StatusInternalServerError},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
