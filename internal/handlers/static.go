package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"recipe-share-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// serveBlobs streams the file named by the {name} URL parameter from store
func serveBlobs(store services.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		body, err := store.Open(r.Context(), name)
		if err != nil {
			if statusFor(err) == http.StatusNotFound {
				http.NotFound(w, r)
				return
			}
			log.Error().Err(err).Str("file", name).Msg("Failed to open stored file")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		defer body.Close()

		if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Header().Set("X-Content-Type-Options", "nosniff")

		if _, err := io.Copy(w, body); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("Failed to stream file")
		}
	}
}
