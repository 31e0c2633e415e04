package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/utils"
)

// verifyBodySignature checks the hex HMAC-SHA256 of the raw request body
// sent in the HashSHA256 header. A handler without a hash key skips the
// check.
func (h *Handler) verifyBodySignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hasher == nil {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		signature := r.Header.Get(utils.HashHeader)
		if signature == "" {
			log.Err(ErrMissingBodySignature).Str("func", "*Handler.verifyBodySignature").Send()
			http.Error(w, ErrMissingBodySignature.Error(), http.StatusBadRequest)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBackupBodySize))
		if err != nil {
			log.Err(err).Str("func", "*Handler.verifyBodySignature").Msg("failed to read request body")
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !h.hasher.Verify(body, signature) {
			log.Error().Str("func", "*Handler.verifyBodySignature").
				Str("hash from request", signature).
				Msg("hashes are not equal")
			http.Error(w, ErrBodySignatureInvalid.Error(), http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
