package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveRoundTrip(t *testing.T) {
	stage, err := NewLocalStage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStage: %v", err)
	}

	payload := []byte("proposal contents")
	ref, err := stage.Save(context.Background(), bytes.NewReader(payload), "proposal.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if ref.OriginalName != "proposal.pdf" {
		t.Errorf("OriginalName = %q", ref.OriginalName)
	}
	if !strings.HasSuffix(ref.StoredName, ".pdf") {
		t.Errorf("StoredName = %q, want .pdf suffix", ref.StoredName)
	}
	if ref.Size != int64(len(payload)) {
		t.Errorf("Size = %d, want %d", ref.Size, len(payload))
	}

	stored, err := os.ReadFile(filepath.Join(stage.Dir(), ref.StoredName))
	if err != nil {
		t.Fatalf("read staged file: %v", err)
	}
	if !bytes.Equal(stored, payload) {
		t.Errorf("staged bytes differ from uploaded bytes")
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	stage, err := NewLocalStage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStage: %v", err)
	}

	first, err := stage.Save(context.Background(), strings.NewReader("a"), "doc.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second, err := stage.Save(context.Background(), strings.NewReader("b"), "doc.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}

	if first.StoredName == second.StoredName {
		t.Errorf("two uploads of the same name share stored name %q", first.StoredName)
	}

	names, err := stage.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("List returned %d names, want 2", len(names))
	}
}

func TestListAndRemove(t *testing.T) {
	stage, err := NewLocalStage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStage: %v", err)
	}

	ref, err := stage.Save(context.Background(), strings.NewReader("x"), "note.txt", "text/plain")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := stage.Remove(ref.StoredName); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	names, err := stage.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List returned %v after removal, want empty", names)
	}
}

func TestNewLocalStageIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	if _, err := NewLocalStage(dir); err != nil {
		t.Fatalf("first NewLocalStage: %v", err)
	}
	if _, err := NewLocalStage(dir); err != nil {
		t.Fatalf("second NewLocalStage on existing dir: %v", err)
	}
}

func TestSaveRespectsCancelledContext(t *testing.T) {
	stage, err := NewLocalStage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStage: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := stage.Save(ctx, strings.NewReader("x"), "doc.pdf", "application/pdf"); err == nil {
		t.Error("Save succeeded with cancelled context")
	}

	names, err := stage.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("cancelled Save left files behind: %v", names)
	}
}
