package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/cognitive-economics/questionnaire-services/api/internal/intake/domain"
)

// LocalStage stores uploaded proposal documents on the local filesystem.
// The same directory backs the static /uploads route and the retention
// sweep.
type LocalStage struct {
	dir string
}

// NewLocalStage creates the upload directory if needed and returns the
// stage. Directory creation is idempotent, so concurrent first-time
// construction is safe.
func NewLocalStage(dir string) (*LocalStage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalStage{dir: dir}, nil
}

// Dir returns the stage root for the static file server.
func (s *LocalStage) Dir() string {
	return s.dir
}

// Save writes the upload under a fresh random name that keeps the original
// extension. Timestamp-based names collide under concurrent writers, so
// names are uuids.
func (s *LocalStage) Save(ctx context.Context, r io.Reader, originalName, contentType string) (*domain.FileRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := uuid.NewString() + filepath.Ext(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create staged file: %w", err)
	}
	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// A half-written file must not survive: the submission is aborted
		// and nothing will ever reference it.
		os.Remove(path)
		return nil, fmt.Errorf("write staged file: %w", err)
	}

	return &domain.FileRef{
		StoredName:   name,
		OriginalName: filepath.Base(originalName),
		Size:         written,
		ContentType:  contentType,
	}, nil
}

// List returns the stored names currently staged.
func (s *LocalStage) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Remove deletes a single staged file by stored name.
func (s *LocalStage) Remove(name string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}
