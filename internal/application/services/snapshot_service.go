package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/franchisepulse/backend/internal/domain/models"
)

// DefaultSnapshotEvery is how many records accumulate before an NDJSON flush.
const DefaultSnapshotEvery = 5000

// SnapshotService accumulates enriched records and appends them to an NDJSON
// file in batches. Snapshot failures are logged and swallowed; the snapshot is
// a convenience export, never the source of truth.
type SnapshotService struct {
	path  string
	every int

	mu     sync.Mutex
	buffer []models.EnrichedRecord
}

// NewSnapshotService creates a snapshot accumulator. every <= 0 falls back to
// the default threshold.
func NewSnapshotService(path string, every int) *SnapshotService {
	if every <= 0 {
		every = DefaultSnapshotEvery
	}
	return &SnapshotService{path: path, every: every}
}

// Add buffers records and flushes when the threshold is crossed.
func (s *SnapshotService) Add(records ...models.EnrichedRecord) {
	if s.path == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.buffer = append(s.buffer, records...)
	if len(s.buffer) >= s.every {
		s.flushLocked()
	}
}

// Flush writes whatever is buffered, regardless of the threshold. Called on
// shutdown.
func (s *SnapshotService) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

// Pending returns the current buffer size; used by tests and progress logs.
func (s *SnapshotService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffer)
}

func (s *SnapshotService) flushLocked() {
	if len(s.buffer) == 0 {
		return
	}

	if err := s.appendNDJSON(s.buffer); err != nil {
		log.Printf("⚠️ Snapshot write failed (%d records kept in memory): %v", len(s.buffer), err)
		return
	}

	log.Printf("💾 Snapshot: appended %d records to %s", len(s.buffer), s.path)
	s.buffer = s.buffer[:0]
}

func (s *SnapshotService) appendNDJSON(records []models.EnrichedRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return err
		}
	}
	return nil
}
