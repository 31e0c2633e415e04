package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/identra-vault/internal/service"
	"github.com/MKhiriev/identra-vault/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:            http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid:        http.StatusUnauthorized,
	service.ErrValidationNoUserID:             http.StatusUnauthorized,
	service.ErrValidationInvalidVaultBackup:   http.StatusBadRequest,
	service.ErrValidationInvalidInitializedAt: http.StatusBadRequest,

	store.ErrVaultBackupNotFound: http.StatusNotFound,
	store.ErrVaultBackupNotSaved: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the mapped status. 5xx responses never carry the
// underlying error text.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}
