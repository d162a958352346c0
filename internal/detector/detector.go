package detector

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"github.com/caffeicsatyam/ocean-pulse-api/internal/logger"
)

const (
	// ConfidenceThreshold is the fixed confidence cutoff requested from the model.
	ConfidenceThreshold = 0.25
	// nmsThreshold is the IoU cutoff for non-max suppression.
	nmsThreshold = 0.45
	// inputSize is the square side length the network expects.
	inputSize = 640
)

var (
	// ErrInference marks failures of the model invocation itself.
	ErrInference = errors.New("model inference failed")
	// ErrNoOutput means a run produced zero artifact files.
	ErrNoOutput = errors.New("no output file generated")
)

// MediaKind distinguishes image uploads from everything else. Anything not
// declared as an image is treated as video, detection is attempted either way.
type MediaKind int

const (
	MediaVideo MediaKind = iota
	MediaImage
)

// KindFromContentType maps a declared content type onto a MediaKind.
func KindFromContentType(contentType string) MediaKind {
	if strings.HasPrefix(contentType, "image/") {
		return MediaImage
	}
	return MediaVideo
}

func (k MediaKind) String() string {
	if k == MediaImage {
		return "image"
	}
	return "video"
}

// RawDetection is one finding as reported by the network.
type RawDetection struct {
	ClassID    int
	Confidence float64
	Box        image.Rectangle
}

// Run is the outcome of a single model invocation: the directory the
// annotated artifact was written into, plus the raw detection records.
type Run struct {
	OutDir     string
	Detections []RawDetection
}

// Service wraps one loaded network instance and its class-name table.
// A Service is not safe for concurrent use; run concurrent inference
// through a Pool.
type Service struct {
	net    gocv.Net
	names  []string
	logger *logger.Logger
}

// NewService loads the network and class names from disk. Any failure here
// is fatal to startup.
func NewService(modelPath, namesPath string, logger *logger.Logger) (*Service, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}

	names, err := loadClassNames(namesPath)
	if err != nil {
		return nil, err
	}

	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load network from %s", modelPath)
	}

	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)
	if errBackend != nil || errTarget != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set preferable backend or target")
	}

	logger.Info("Detection network loaded from %s (%d classes)", modelPath, len(names))

	return &Service{
		net:    net,
		names:  names,
		logger: logger,
	}, nil
}

// Names returns the model's class-id to label table.
func (s *Service) Names() []string {
	return s.names
}

// Close releases the loaded network.
func (s *Service) Close() error {
	return s.net.Close()
}

// Detect runs the model against srcPath and writes the annotated artifact
// into outDir. The call blocks for the full duration of inference.
func (s *Service) Detect(srcPath, outDir string, kind MediaKind) (*Run, error) {
	if kind == MediaImage {
		return s.detectImage(srcPath, outDir)
	}
	return s.detectVideo(srcPath, outDir)
}

func (s *Service) detectImage(srcPath, outDir string) (*Run, error) {
	mat := gocv.IMRead(srcPath, gocv.IMReadColor)
	if mat.Empty() {
		return nil, fmt.Errorf("%w: could not decode image %s", ErrInference, srcPath)
	}
	defer mat.Close()

	detections, err := s.inferFrame(&mat)
	if err != nil {
		return nil, err
	}

	if err := s.annotate(&mat, detections); err != nil {
		return nil, err
	}

	outPath := filepath.Join(outDir, "detected_"+filepath.Base(srcPath))
	if ok := gocv.IMWrite(outPath, mat); !ok {
		return nil, fmt.Errorf("failed to write annotated image %s", outPath)
	}

	return &Run{OutDir: outDir, Detections: detections}, nil
}

func (s *Service) detectVideo(srcPath, outDir string) (*Run, error) {
	capture, err := gocv.VideoCaptureFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open video %s: %v", ErrInference, srcPath, err)
	}
	defer capture.Close()

	fps := capture.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		fps = 25
	}
	width := int(capture.Get(gocv.VideoCaptureFrameWidth))
	height := int(capture.Get(gocv.VideoCaptureFrameHeight))

	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	outPath := filepath.Join(outDir, "detected_"+base+".mp4")

	writer, err := gocv.VideoWriterFile(outPath, "mp4v", fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("failed to open video writer for %s: %w", outPath, err)
	}
	defer writer.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	// The summary lists the first frame with findings; every frame gets
	// annotated in the rendered video.
	var reported []RawDetection

	for capture.Read(&frame) {
		if frame.Empty() {
			continue
		}

		detections, err := s.inferFrame(&frame)
		if err != nil {
			return nil, err
		}
		if err := s.annotate(&frame, detections); err != nil {
			return nil, err
		}
		if reported == nil && len(detections) > 0 {
			reported = detections
		}

		if err := writer.Write(frame); err != nil {
			return nil, fmt.Errorf("failed to write annotated video frame: %w", err)
		}
	}

	return &Run{OutDir: outDir, Detections: reported}, nil
}

// inferFrame runs one forward pass. The frame is letterboxed into a square
// so boxes can be scaled back without distortion.
func (s *Service) inferFrame(frame *gocv.Mat) ([]RawDetection, error) {
	rows, cols := frame.Rows(), frame.Cols()
	side := rows
	if cols > side {
		side = cols
	}

	square := gocv.NewMatWithSize(side, side, gocv.MatTypeCV8UC3)
	defer square.Close()
	roi := square.Region(image.Rect(0, 0, cols, rows))
	frame.CopyTo(&roi)
	roi.Close()

	scale := float32(side) / float32(inputSize)

	blob := gocv.BlobFromImage(square, 1.0/255.0, image.Pt(inputSize, inputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	s.net.SetInput(blob, "")

	output := s.net.Forward("")
	defer output.Close()
	if output.Empty() {
		return nil, fmt.Errorf("%w: network returned no output", ErrInference)
	}

	return s.decodeOutput(&output, scale), nil
}

// decodeOutput reads the [1, 4+classes, anchors] tensor emitted by the
// network and returns detections surviving non-max suppression.
func (s *Service) decodeOutput(output *gocv.Mat, scale float32) []RawDetection {
	dims := output.Size()
	if len(dims) < 3 {
		return nil
	}
	attrs, anchors := dims[1], dims[2]
	classes := attrs - 4

	var (
		boxes    []image.Rectangle
		scores   []float32
		classIDs []int
	)

	for anchor := 0; anchor < anchors; anchor++ {
		bestClass := -1
		bestScore := float32(0)
		for class := 0; class < classes; class++ {
			score := output.GetFloatAt3(0, 4+class, anchor)
			if score > bestScore {
				bestClass, bestScore = class, score
			}
		}
		if bestScore < ConfidenceThreshold {
			continue
		}

		cx := output.GetFloatAt3(0, 0, anchor)
		cy := output.GetFloatAt3(0, 1, anchor)
		w := output.GetFloatAt3(0, 2, anchor)
		h := output.GetFloatAt3(0, 3, anchor)

		boxes = append(boxes, image.Rect(
			int((cx-w/2)*scale),
			int((cy-h/2)*scale),
			int((cx+w/2)*scale),
			int((cy+h/2)*scale),
		))
		scores = append(scores, bestScore)
		classIDs = append(classIDs, bestClass)
	}

	if len(boxes) == 0 {
		return nil
	}

	indices := gocv.NMSBoxes(boxes, scores, ConfidenceThreshold, nmsThreshold)

	detections := make([]RawDetection, 0, len(indices))
	for _, idx := range indices {
		detections = append(detections, RawDetection{
			ClassID:    classIDs[idx],
			Confidence: float64(scores[idx]),
			Box:        boxes[idx],
		})
	}
	return detections
}

// annotate draws labelled boxes onto the frame in place.
func (s *Service) annotate(frame *gocv.Mat, detections []RawDetection) error {
	red := color.RGBA{R: 255, G: 0, B: 0, A: 0}

	for _, det := range detections {
		if err := gocv.Rectangle(frame, det.Box, red, 2); err != nil {
			return fmt.Errorf("failed to draw rectangle: %w", err)
		}

		label := fmt.Sprintf("class_%d (%.2f)", det.ClassID, det.Confidence)
		if det.ClassID >= 0 && det.ClassID < len(s.names) {
			label = fmt.Sprintf("%s (%.2f)", s.names[det.ClassID], det.Confidence)
		}
		pt := image.Pt(det.Box.Min.X, det.Box.Min.Y-5)
		if err := gocv.PutText(frame, label, pt, gocv.FontHersheySimplex, 0.5, red, 1); err != nil {
			return fmt.Errorf("failed to draw label: %w", err)
		}
	}
	return nil
}

// loadClassNames reads one label per line, skipping blanks.
func loadClassNames(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class names file %s: %w", path, err)
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read class names file %s: %w", path, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("class names file %s is empty", path)
	}

	return names, nil
}
