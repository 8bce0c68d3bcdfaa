package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdejongh/samplestage/pkg/models"
	"github.com/sdejongh/samplestage/pkg/storage"
)

func writeFile(t *testing.T, root, name string, content []byte) {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
}

// TestScannerExtensionFilter tests that only allow-listed extensions match
func TestScannerExtensionFilter(t *testing.T) {
	tempDir := t.TempDir()

	writeFile(t, tempDir, "kick.wav", []byte("0123456789"))
	writeFile(t, tempDir, "notes.txt", []byte("not audio"))
	writeFile(t, tempDir, "loop.mp3", []byte("mp3"))
	writeFile(t, tempDir, "pad.aiff", []byte("aiff"))
	writeFile(t, tempDir, "session.als", []byte("project"))
	writeFile(t, tempDir, "nested/deep/hat.WAV", []byte("upper"))

	source, err := storage.NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer source.Close()

	scanner := New(models.DefaultExtensions, nil)
	candidates, err := scanner.Scan(context.Background(), source)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(candidates) != 4 {
		t.Fatalf("Scan() returned %d candidates, want 4", len(candidates))
	}

	found := make(map[string]*models.Candidate)
	for _, c := range candidates {
		found[c.Name] = c
	}

	for _, name := range []string{"kick.wav", "loop.mp3", "pad.aiff", "hat.WAV"} {
		if found[name] == nil {
			t.Errorf("Scan() missing expected candidate %s", name)
		}
	}
	if found["notes.txt"] != nil {
		t.Error("Scan() should not return non-audio files")
	}
	if found["session.als"] != nil {
		t.Error("Scan() should not return project files")
	}

	t.Run("CandidateAttributes", func(t *testing.T) {
		kick := found["kick.wav"]
		if kick.Size != 10 {
			t.Errorf("Size = %d, want 10", kick.Size)
		}
		if kick.Ext != ".wav" {
			t.Errorf("Ext = %s, want .wav", kick.Ext)
		}
	})

	t.Run("CaseInsensitiveExtension", func(t *testing.T) {
		upper := found["hat.WAV"]
		if upper == nil {
			t.Fatal("Scan() missed upper-case extension")
		}
		if upper.Ext != ".wav" {
			t.Errorf("Ext = %s, want lowered .wav", upper.Ext)
		}
		if upper.RelativePath != filepath.Join("nested", "deep", "hat.WAV") {
			t.Errorf("RelativePath = %s", upper.RelativePath)
		}
	})
}

// TestScannerExclude tests exclude pattern handling
func TestScannerExclude(t *testing.T) {
	tempDir := t.TempDir()

	writeFile(t, tempDir, "keep.wav", []byte("keep"))
	writeFile(t, tempDir, "__MACOSX/junk.wav", []byte("junk"))
	writeFile(t, tempDir, "._resource.wav", []byte("fork"))

	source, err := storage.NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer source.Close()

	scanner := New(models.DefaultExtensions, []string{"__MACOSX/", "._*"})
	candidates, err := scanner.Scan(context.Background(), source)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("Scan() returned %d candidates, want 1", len(candidates))
	}
	if candidates[0].Name != "keep.wav" {
		t.Errorf("Scan() returned %s, want keep.wav", candidates[0].Name)
	}
}

// TestScannerUnreadableRoot tests that I/O errors propagate
func TestScannerUnreadableRoot(t *testing.T) {
	tempDir := t.TempDir()

	source, err := storage.NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer source.Close()

	// Remove the root out from under the backend
	if err := os.RemoveAll(tempDir); err != nil {
		t.Fatalf("failed to remove temp dir: %v", err)
	}

	if _, err := scannerScan(t, source); err == nil {
		t.Error("Scan() should fail when the root is unreadable")
	}
}

func scannerScan(t *testing.T, source storage.Backend) ([]*models.Candidate, error) {
	t.Helper()
	return New(models.DefaultExtensions, nil).Scan(context.Background(), source)
}

// TestShouldExclude tests the pattern matcher directly
func TestShouldExclude(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"kick.wav", nil, false},
		{"kick.wav", []string{"*.tmp"}, false},
		{"temp.tmp", []string{"*.tmp"}, true},
		{"__MACOSX/kick.wav", []string{"__MACOSX/"}, true},
		{"Packs/__MACOSX/kick.wav", []string{"__MACOSX/"}, true},
		{"Packs/Demo/kick.wav", []string{"Packs/Demo/*"}, true},
		{"Packs/Other/kick.wav", []string{"Packs/Demo/*"}, false},
		{"._kick.wav", []string{"._*"}, true},
	}

	for _, tt := range tests {
		if got := shouldExclude(tt.path, tt.patterns); got != tt.want {
			t.Errorf("shouldExclude(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
		}
	}
}
