package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrOutputNotFound is returned when no file in the outputs tree matches a requested name.
var ErrOutputNotFound = errors.New("output file not found")

// UploadRecord describes a single stored upload.
type UploadRecord struct {
	Name string
	Path string
}

// Service owns the uploads and outputs directory roots. Concurrent requests
// never collide on disk because every upload and run directory gets a fresh
// random name.
type Service struct {
	uploadsDir string
	outputsDir string
}

// New ensures both roots exist and are usable. A failure here is fatal to
// startup; no request should ever hit a missing root.
func New(uploadsDir, outputsDir string) (*Service, error) {
	for _, dir := range []string{uploadsDir, outputsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return &Service{
		uploadsDir: uploadsDir,
		outputsDir: outputsDir,
	}, nil
}

// UploadsDir returns the uploads root.
func (s *Service) UploadsDir() string {
	return s.uploadsDir
}

// OutputsDir returns the outputs root.
func (s *Service) OutputsDir() string {
	return s.outputsDir
}

// UniqueName returns a fresh 128-bit random name carrying the given extension.
// No collision check against disk is needed at this entropy.
func UniqueName(ext string) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}

// SaveUpload streams an uploaded body to disk under a collision-free name,
// preserving the extension of the declared filename. The body is copied
// through, never buffered whole, so large videos are fine.
func (s *Service) SaveUpload(r io.Reader, declaredName string) (UploadRecord, error) {
	name := UniqueName(filepath.Ext(declaredName))
	path := filepath.Join(s.uploadsDir, name)

	file, err := os.Create(path)
	if err != nil {
		return UploadRecord{}, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		os.Remove(path)
		return UploadRecord{}, fmt.Errorf("failed to write upload: %w", err)
	}

	return UploadRecord{Name: name, Path: path}, nil
}

// NewRunDir creates a fresh uniquely named sub-directory under the outputs
// root. Each detection run owns its directory exclusively.
func (s *Service) NewRunDir(prefix string) (string, error) {
	dir := filepath.Join(s.outputsDir, prefix+UniqueName(""))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return dir, nil
}

// FindOutput walks the outputs tree for a file whose base name exactly equals
// filename. Run directory names are random, so base names are unguessable.
func (s *Service) FindOutput(filename string) (string, error) {
	var found string

	err := filepath.WalkDir(s.outputsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == filename {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan outputs directory: %w", err)
	}

	if found == "" {
		return "", ErrOutputNotFound
	}
	return found, nil
}
