package detector

import (
	"fmt"

	"github.com/caffeicsatyam/ocean-pulse-api/internal/logger"
)

// Pool hands out loaded detector instances one request at a time. Each
// instance owns its own network, so distinct instances may run concurrently;
// a single-instance pool serializes inference entirely.
type Pool struct {
	slots chan *Service
	names []string
}

// NewPool loads size independent model instances.
func NewPool(size int, modelPath, namesPath string, logger *logger.Logger) (*Pool, error) {
	if size < 1 {
		size = 1
	}

	pool := &Pool{
		slots: make(chan *Service, size),
	}
	for i := 0; i < size; i++ {
		service, err := NewService(modelPath, namesPath, logger)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to load detector instance %d: %w", i, err)
		}
		pool.names = service.Names()
		pool.slots <- service
	}

	return pool, nil
}

// Detect borrows an instance for the duration of one inference. When all
// instances are busy the call blocks until one frees up.
func (p *Pool) Detect(srcPath, outDir string, kind MediaKind) (*Run, error) {
	service := <-p.slots
	defer func() { p.slots <- service }()
	return service.Detect(srcPath, outDir, kind)
}

// Names returns the shared class-id to label table.
func (p *Pool) Names() []string {
	return p.names
}

// Close releases every loaded instance.
func (p *Pool) Close() {
	for {
		select {
		case service := <-p.slots:
			service.Close()
		default:
			return
		}
	}
}
