package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var errTooLarge = errors.New("upload too large")

// readUpload parses a multipart form bounded by limit and returns the
// contents of the named file field.
func readUpload(w http.ResponseWriter, r *http.Request, field string, limit int64) ([]byte, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("%w: limit is %d bytes", errTooLarge, limit)
		}
		return nil, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err)
	}
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("missing %q upload", field)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("failed to read %q upload: %w", field, err)
	}
	if len(data) == 0 {
		return nil, http.StatusBadRequest, fmt.Errorf("%q upload is empty", field)
	}
	return data, http.StatusOK, nil
}
