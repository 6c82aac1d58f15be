package retention

import (
	"context"
	"errors"
	"io"
	"log"
	"sort"
	"testing"
)

type mockStore struct {
	DeleteAllFunc func(ctx context.Context) (int64, error)

	deleteCalls int
}

func (m *mockStore) DeleteAll(ctx context.Context) (int64, error) {
	m.deleteCalls++
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return 0, nil
}

type mockStage struct {
	ListFunc   func() ([]string, error)
	RemoveFunc func(name string) error

	files   map[string]struct{}
	removed []string
}

func newMockStage(names ...string) *mockStage {
	files := make(map[string]struct{}, len(names))
	for _, name := range names {
		files[name] = struct{}{}
	}
	return &mockStage{files: files}
}

func (m *mockStage) List() ([]string, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *mockStage) Remove(name string) error {
	if m.RemoveFunc != nil {
		if err := m.RemoveFunc(name); err != nil {
			return err
		}
	}
	delete(m.files, name)
	m.removed = append(m.removed, name)
	return nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRunClearsRecordsAndFiles(t *testing.T) {
	store := &mockStore{
		DeleteAllFunc: func(_ context.Context) (int64, error) { return 3, nil },
	}
	stage := newMockStage("a.pdf", "b.txt", "c.doc")

	NewSweeper(discardLogger(), store, stage).Run(context.Background())

	if store.deleteCalls != 1 {
		t.Errorf("DeleteAll called %d times, want 1", store.deleteCalls)
	}
	if len(stage.files) != 0 {
		t.Errorf("stage still holds %d files after sweep", len(stage.files))
	}
}

func TestRunWithNothingToSweep(t *testing.T) {
	store := &mockStore{}
	stage := newMockStage()

	NewSweeper(discardLogger(), store, stage).Run(context.Background())

	if store.deleteCalls != 1 {
		t.Errorf("DeleteAll called %d times, want 1", store.deleteCalls)
	}
	if len(stage.removed) != 0 {
		t.Errorf("removed %v from an empty stage", stage.removed)
	}
}

func TestRunContinuesPastFileRemovalFailure(t *testing.T) {
	store := &mockStore{}
	stage := newMockStage("a.pdf", "b.txt", "c.doc")
	stage.RemoveFunc = func(name string) error {
		if name == "a.pdf" {
			return errors.New("permission denied")
		}
		return nil
	}

	NewSweeper(discardLogger(), store, stage).Run(context.Background())

	if len(stage.removed) != 2 {
		t.Errorf("removed %v, want the two removable files", stage.removed)
	}
	if _, ok := stage.files["a.pdf"]; !ok {
		t.Error("failed file unexpectedly gone")
	}
}

func TestRunSkipsFilesWhenDeleteAllFails(t *testing.T) {
	store := &mockStore{
		DeleteAllFunc: func(_ context.Context) (int64, error) {
			return 0, errors.New("connection reset")
		},
	}
	stage := newMockStage("a.pdf")

	NewSweeper(discardLogger(), store, stage).Run(context.Background())

	if len(stage.removed) != 0 {
		t.Errorf("files removed despite record deletion failure: %v", stage.removed)
	}
}
