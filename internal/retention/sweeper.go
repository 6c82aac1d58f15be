package retention

import (
	"context"
	"log"
	"time"
)

// RecordStore is the slice of the record store the sweeper needs.
type RecordStore interface {
	DeleteAll(ctx context.Context) (int64, error)
}

// FileStage enumerates and removes staged files.
type FileStage interface {
	List() ([]string, error)
	Remove(name string) error
}

// Sweeper clears all stored submissions and all staged files. It runs on a
// weekly schedule, logically concurrent with in-flight submissions; there
// is deliberately no mutual exclusion between a sweep and an intake run
// (acceptable at the weekly, low-traffic cadence).
type Sweeper struct {
	logger *log.Logger
	store  RecordStore
	files  FileStage
}

// NewSweeper builds a sweeper over the record store and the file stage.
func NewSweeper(logger *log.Logger, store RecordStore, files FileStage) *Sweeper {
	return &Sweeper{logger: logger, store: store, files: files}
}

// Run performs one sweep: records first, then files. The two phases are
// not transactional; a crash between them leaves staged files orphaned
// against an empty record set until the next sweep. File deletions are
// attempted individually so one failure does not stop the rest. All
// failures are operator-visible only.
func (s *Sweeper) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	count, err := s.store.DeleteAll(ctx)
	if err != nil {
		s.logger.Printf("cleanup: delete responses: %v", err)
		return
	}
	s.logger.Printf("cleanup: deleted %d responses", count)

	names, err := s.files.List()
	if err != nil {
		s.logger.Printf("cleanup: read upload stage: %v", err)
		return
	}
	for _, name := range names {
		if err := s.files.Remove(name); err != nil {
			s.logger.Printf("cleanup: delete file %s: %v", name, err)
			continue
		}
		s.logger.Printf("cleanup: deleted file %s", name)
	}
}
