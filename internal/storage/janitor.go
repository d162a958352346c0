package storage

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caffeicsatyam/ocean-pulse-api/internal/logger"
)

// Janitor evicts uploads and run directories older than the retention TTL.
// Without it the service accumulates files forever.
type Janitor struct {
	storage  *Service
	ttl      time.Duration
	interval time.Duration
	logger   *logger.Logger
}

// NewJanitor creates a Janitor. A zero TTL disables eviction entirely.
func NewJanitor(storage *Service, ttl, interval time.Duration, logger *logger.Logger) *Janitor {
	return &Janitor{
		storage:  storage,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps on a ticker until the process exits.
func (j *Janitor) Run() {
	if j.ttl <= 0 {
		j.logger.Info("Retention disabled, keeping uploads and outputs forever")
		return
	}

	j.logger.Info("Retention sweep every %s, evicting entries older than %s", j.interval, j.ttl)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		<-ticker.C
		j.Sweep()
	}
}

// Sweep removes every upload file and run directory whose modification time
// is older than the TTL. Entries that appear mid-sweep are left alone.
func (j *Janitor) Sweep() {
	if j.ttl <= 0 {
		return
	}

	cutoff := time.Now().Add(-j.ttl)
	removed := 0
	for _, root := range []string{j.storage.UploadsDir(), j.storage.OutputsDir()} {
		entries, err := os.ReadDir(root)
		if err != nil {
			j.logger.Error("Retention sweep failed to read %s: %v", root, err)
			continue
		}

		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(cutoff) {
				continue
			}

			path := filepath.Join(root, entry.Name())
			if err := os.RemoveAll(path); err != nil {
				j.logger.Error("Retention sweep failed to remove %s: %v", path, err)
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		j.logger.Info("Retention sweep removed %d expired entries", removed)
	}
}
