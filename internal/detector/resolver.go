package detector

import (
	"fmt"
	"math"
	"os"

	"github.com/caffeicsatyam/ocean-pulse-api/internal/dto"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/logger"
)

// Resolve turns a finished run into the response payload. The first file in
// lexical directory order is the representative artifact, which makes the
// selection deterministic across filesystems. Class ids outside the table
// are logged and skipped, never failing the whole response.
func Resolve(run *Run, names []string, kind MediaKind, logger *logger.Logger) (dto.DetectionResponse, error) {
	entries, err := os.ReadDir(run.OutDir)
	if err != nil {
		return dto.DetectionResponse{}, fmt.Errorf("failed to read run directory %s: %w", run.OutDir, err)
	}

	var artifact string
	for _, entry := range entries {
		if !entry.IsDir() {
			artifact = entry.Name()
			break
		}
	}
	if artifact == "" {
		return dto.DetectionResponse{}, ErrNoOutput
	}

	detections := make([]dto.Detection, 0, len(run.Detections))
	for _, raw := range run.Detections {
		if raw.ClassID < 0 || raw.ClassID >= len(names) {
			logger.Warning("Skipping detection with unknown class id %d", raw.ClassID)
			continue
		}
		detections = append(detections, dto.Detection{
			Class:      names[raw.ClassID],
			Confidence: roundConfidence(raw.Confidence),
		})
	}

	return dto.DetectionResponse{
		FileType:   kind.String(),
		Detections: detections,
		OutputURL:  "/output/" + artifact,
	}, nil
}

// roundConfidence rounds to 3 decimals, ties to even.
func roundConfidence(v float64) float64 {
	return math.RoundToEven(v*1000) / 1000
}
