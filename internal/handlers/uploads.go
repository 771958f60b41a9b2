package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"recipe-share-backend/internal/common"
	"recipe-share-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// multipartMemory is how much of a multipart body is held in memory before spilling to disk
const multipartMemory = 8 << 20

// isMultipart reports whether the request carries a multipart form
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// parseMultipart caps the body at maxBytes and parses the form
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("upload exceeds %d bytes: %w", maxBytes, common.ErrValidation)
		}
		return fmt.Errorf("invalid multipart form: %w", common.ErrValidation)
	}
	return nil
}

// openedUploads holds the files opened from a multipart form
type openedUploads struct {
	uploads []services.Upload
	files   []multipart.File
}

func (o *openedUploads) Close() {
	if o == nil {
		return
	}
	for _, f := range o.files {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close upload")
		}
	}
	o.files = nil
}

// formUploads opens up to limit files sent under field. A zero limit
// disables the count check. The caller must Close the result.
func formUploads(r *http.Request, field string, limit int) (*openedUploads, error) {
	out := &openedUploads{}
	if r.MultipartForm == nil {
		return out, nil
	}

	headers := r.MultipartForm.File[field]
	if limit > 0 && len(headers) > limit {
		return nil, fmt.Errorf("at most %d files allowed in %q: %w", limit, field, common.ErrValidation)
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			out.Close()
			return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
		}
		out.files = append(out.files, f)
		out.uploads = append(out.uploads, services.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}
	return out, nil
}

// singleUpload opens the optional file sent under field
func singleUpload(r *http.Request, field string) (*services.Upload, *openedUploads, error) {
	opened, err := formUploads(r, field, 1)
	if err != nil {
		return nil, nil, err
	}
	if len(opened.uploads) == 0 {
		return nil, opened, nil
	}
	return &opened.uploads[0], opened, nil
}
