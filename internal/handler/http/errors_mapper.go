package http

import (
	"errors"
	"net/http"

	"github.com/laterhq/later-server/internal/service"
	"github.com/laterhq/later-server/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidInput:  http.StatusBadRequest,
	service.ErrSigningUpload: http.StatusBadGateway,

	store.ErrReminderNotFound:      http.StatusNotFound,
	store.ErrProfileNotFound:       http.StatusNotFound,
	store.ErrReminderAlreadyExists: http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrPreparingStatement:   http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
