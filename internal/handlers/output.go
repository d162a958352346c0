package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/caffeicsatyam/ocean-pulse-api/internal/logger"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/storage"
)

// OutputHandler streams a previously rendered artifact, located anywhere in
// the outputs tree by exact base-name match.
func OutputHandler(store *storage.Service, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := strings.TrimPrefix(r.URL.Path, "/output/")
		if filename == "" || strings.Contains(filename, "/") {
			respondError(w, "Output file not found", http.StatusNotFound)
			return
		}

		path, err := store.FindOutput(filename)
		if err != nil {
			if !errors.Is(err, storage.ErrOutputNotFound) {
				logger.Error("Failed to scan outputs for %s: %v", filename, err)
			}
			respondError(w, "Output file not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", contentTypeFor(filename))
		http.ServeFile(w, r, path)
	}
}

// contentTypeFor infers the served content type from the file extension
// alone; artifact contents are never sniffed.
func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "video/mp4"
	}
}
