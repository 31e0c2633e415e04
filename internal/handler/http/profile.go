package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/utils"
	"github.com/MKhiriev/identra-vault/models"
)

// maxBackupBodySize bounds PUT bodies; a backup is well under 1 KiB.
const maxBackupBodySize = 16 << 10

func (h *Handler) saveVaultBackup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var backup models.VaultBackup
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBackupBodySize)).Decode(&backup); err != nil {
		log.Err(err).Str("func", "*Handler.saveVaultBackup").Msg("invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.ProfileService.SaveVaultBackup(r.Context(), userID, backup); err != nil {
		log.Err(err).Str("func", "*Handler.saveVaultBackup").Msg("error saving vault backup")
		writeError(w, err)
		return
	}

	h.metrics.IncrementBackupsStored()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getVaultBackup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	userID, _ := utils.GetUserIDFromContext(r.Context())

	backup, err := h.services.ProfileService.GetVaultBackup(r.Context(), userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getVaultBackup").Msg("error getting vault backup")
		writeError(w, err)
		return
	}

	if _, err = utils.WriteJSON(w, backup, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.getVaultBackup").Msg("error writing response")
	}
}

func (h *Handler) deleteVaultBackup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.services.ProfileService.DeleteVaultBackup(r.Context(), userID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteVaultBackup").Msg("error deleting vault backup")
		writeError(w, err)
		return
	}

	h.metrics.IncrementBackupsDeleted()
	w.WriteHeader(http.StatusNoContent)
}
