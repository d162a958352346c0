package handlers

import (
	"net/http"
	"os"

	"github.com/caffeicsatyam/ocean-pulse-api/internal/logger"
)

// UIHandler serves the static upload form. The template is read per request
// so edits show up without a restart.
func UIHandler(templatePath string, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := os.ReadFile(templatePath)
		if err != nil {
			logger.Error("Failed to read template %s: %v", templatePath, err)
			respondError(w, "UI template not available", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}
