package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/caffeicsatyam/ocean-pulse-api/internal/detector"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/events"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/logger"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/storage"
)

// Detector is the inference capability consumed by the predict pipeline.
type Detector interface {
	Detect(srcPath, outDir string, kind detector.MediaKind) (*detector.Run, error)
	Names() []string
}

// PredictHandler accepts a multipart media upload, stores it under a
// collision-free name, runs detection into a fresh run directory and returns
// the detections plus a link to the rendered artifact.
func PredictHandler(store *storage.Service, det Detector, hub *events.Hub, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respondError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			respondError(w, "No file uploaded", http.StatusBadRequest)
			return
		}
		defer file.Close()

		record, err := store.SaveUpload(file, header.Filename)
		if err != nil {
			logger.Error("Failed to save upload: %v", err)
			respondError(w, "Failed to store uploaded file", http.StatusInternalServerError)
			return
		}

		// Detection is attempted regardless of the declared content type;
		// the type only decides the file_type field of the response.
		kind := detector.KindFromContentType(header.Header.Get("Content-Type"))

		runDir, err := store.NewRunDir("det_")
		if err != nil {
			logger.Error("Failed to create run directory: %v", err)
			respondError(w, "Failed to prepare output directory", http.StatusInternalServerError)
			return
		}

		logger.Info("Running detection on %s (%s)", record.Name, kind)

		run, err := det.Detect(record.Path, runDir, kind)
		if err != nil {
			logger.Error("Detection failed for %s: %v", record.Name, err)
			respondError(w, "Detection failed", http.StatusInternalServerError)
			return
		}

		response, err := detector.Resolve(run, det.Names(), kind, logger)
		if err != nil {
			if errors.Is(err, detector.ErrNoOutput) {
				logger.Error("No output file generated for %s", record.Name)
				respondError(w, "No output file generated", http.StatusInternalServerError)
				return
			}
			logger.Error("Failed to resolve detection results for %s: %v", record.Name, err)
			respondError(w, "Failed to resolve detection results", http.StatusInternalServerError)
			return
		}

		if hub != nil {
			if payload, err := json.Marshal(response); err == nil {
				hub.Broadcast(payload)
			}
		}

		respondJSON(w, response, http.StatusOK)
	}
}
