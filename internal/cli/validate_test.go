package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdejongh/samplestage/pkg/logging"
	"github.com/sdejongh/samplestage/pkg/prefs"
)

// fakeSource is a canned prefs.Source for resolution tests
type fakeSource struct {
	record *prefs.Preferences
	err    error
	called bool
}

func (s *fakeSource) Collect() (*prefs.Preferences, error) {
	s.called = true
	return s.record, s.err
}

// setStageFlags swaps the package flag state for one test
func setStageFlags(t *testing.T, f StageFlags) {
	t.Helper()
	old := stageFlags
	stageFlags = f
	t.Cleanup(func() { stageFlags = old })
}

func writePrefsFile(t *testing.T, path string, record *prefs.Preferences) {
	t.Helper()
	if err := prefs.Save(record, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

// TestResolvePaths tests the source/destination resolution order:
// explicit flags first, then the preference file, then the prompt
func TestResolvePaths(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNullLogger()

	t.Run("FlagsWinWithoutPrompt", func(t *testing.T) {
		tempDir := t.TempDir()
		setStageFlags(t, StageFlags{
			Source: filepath.Join(tempDir, "downloads"),
			Dest:   filepath.Join(tempDir, "library"),
		})
		prompter := &fakeSource{}

		source, dest, err := resolvePaths(ctx, logger, prompter)
		if err != nil {
			t.Fatalf("resolvePaths() error = %v", err)
		}
		if source != filepath.Join(tempDir, "downloads") {
			t.Errorf("source = %q, want flag value", source)
		}
		if dest != filepath.Join(tempDir, "library") {
			t.Errorf("dest = %q, want flag value", dest)
		}
		if prompter.called {
			t.Error("prompt must not run when both flags are set")
		}
	})

	t.Run("PreferenceFileFillsMissingFlags", func(t *testing.T) {
		tempDir := t.TempDir()
		prefsFile := filepath.Join(tempDir, "config.json")
		writePrefsFile(t, prefsFile, &prefs.Preferences{
			SourceDir:      filepath.Join(tempDir, "downloads"),
			DestinationDir: filepath.Join(tempDir, "library"),
		})
		setStageFlags(t, StageFlags{PrefsFile: prefsFile})
		prompter := &fakeSource{}

		source, dest, err := resolvePaths(ctx, logger, prompter)
		if err != nil {
			t.Fatalf("resolvePaths() error = %v", err)
		}
		if source != filepath.Join(tempDir, "downloads") {
			t.Errorf("source = %q, want preference value", source)
		}
		if dest != filepath.Join(tempDir, "library") {
			t.Errorf("dest = %q, want preference value", dest)
		}
		if prompter.called {
			t.Error("prompt must not run when the preference file is usable")
		}
	})

	t.Run("FlagOverridesPreferenceValue", func(t *testing.T) {
		tempDir := t.TempDir()
		prefsFile := filepath.Join(tempDir, "config.json")
		writePrefsFile(t, prefsFile, &prefs.Preferences{
			SourceDir:      filepath.Join(tempDir, "old-downloads"),
			DestinationDir: filepath.Join(tempDir, "library"),
		})
		setStageFlags(t, StageFlags{
			Source:    filepath.Join(tempDir, "new-downloads"),
			PrefsFile: prefsFile,
		})

		source, dest, err := resolvePaths(ctx, logger, &fakeSource{})
		if err != nil {
			t.Fatalf("resolvePaths() error = %v", err)
		}
		if source != filepath.Join(tempDir, "new-downloads") {
			t.Errorf("source = %q, flag must win over preference file", source)
		}
		if dest != filepath.Join(tempDir, "library") {
			t.Errorf("dest = %q, want preference value", dest)
		}
	})

	t.Run("MissingFileTriggersPrompt", func(t *testing.T) {
		tempDir := t.TempDir()
		prefsFile := filepath.Join(tempDir, "config.json")
		setStageFlags(t, StageFlags{PrefsFile: prefsFile})
		prompter := &fakeSource{record: &prefs.Preferences{
			SourceDir:      filepath.Join(tempDir, "downloads"),
			DestinationDir: filepath.Join(tempDir, "library"),
		}}

		source, dest, err := resolvePaths(ctx, logger, prompter)
		if err != nil {
			t.Fatalf("resolvePaths() error = %v", err)
		}
		if !prompter.called {
			t.Fatal("prompt must run when the preference file is missing")
		}
		if source != filepath.Join(tempDir, "downloads") || dest != filepath.Join(tempDir, "library") {
			t.Errorf("resolved %q/%q, want prompted values", source, dest)
		}

		// The collected record must have been persisted
		saved, err := prefs.Load(prefsFile)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !saved.Complete() {
			t.Error("prompted preferences were not saved")
		}
	})

	t.Run("MalformedFileIsRecreated", func(t *testing.T) {
		tempDir := t.TempDir()
		prefsFile := filepath.Join(tempDir, "config.json")
		if err := os.WriteFile(prefsFile, []byte("{not json"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		setStageFlags(t, StageFlags{PrefsFile: prefsFile})
		prompter := &fakeSource{record: &prefs.Preferences{
			SourceDir:      filepath.Join(tempDir, "downloads"),
			DestinationDir: filepath.Join(tempDir, "library"),
		}}

		source, _, err := resolvePaths(ctx, logger, prompter)
		if err != nil {
			t.Fatalf("resolvePaths() error = %v", err)
		}
		if !prompter.called {
			t.Fatal("prompt must run when the preference file is malformed")
		}
		if source != filepath.Join(tempDir, "downloads") {
			t.Errorf("source = %q, want prompted value", source)
		}

		saved, err := prefs.Load(prefsFile)
		if err != nil {
			t.Fatalf("recreated file should be loadable, got %v", err)
		}
		if saved.SourceDir != filepath.Join(tempDir, "downloads") {
			t.Errorf("saved source = %q, want prompted value", saved.SourceDir)
		}
	})

	t.Run("ReconfigureForcesPrompt", func(t *testing.T) {
		tempDir := t.TempDir()
		prefsFile := filepath.Join(tempDir, "config.json")
		writePrefsFile(t, prefsFile, &prefs.Preferences{
			SourceDir:      filepath.Join(tempDir, "old-downloads"),
			DestinationDir: filepath.Join(tempDir, "old-library"),
		})
		setStageFlags(t, StageFlags{PrefsFile: prefsFile, Reconfigure: true})
		prompter := &fakeSource{record: &prefs.Preferences{
			SourceDir:      filepath.Join(tempDir, "downloads"),
			DestinationDir: filepath.Join(tempDir, "library"),
		}}

		source, dest, err := resolvePaths(ctx, logger, prompter)
		if err != nil {
			t.Fatalf("resolvePaths() error = %v", err)
		}
		if !prompter.called {
			t.Fatal("prompt must run when --reconfigure is set")
		}
		if source != filepath.Join(tempDir, "downloads") || dest != filepath.Join(tempDir, "library") {
			t.Errorf("resolved %q/%q, want reconfigured values", source, dest)
		}
	})

	t.Run("PromptFailurePropagates", func(t *testing.T) {
		tempDir := t.TempDir()
		setStageFlags(t, StageFlags{PrefsFile: filepath.Join(tempDir, "config.json")})
		prompter := &fakeSource{err: errors.New("stdin closed")}

		_, _, err := resolvePaths(ctx, logger, prompter)
		if err == nil {
			t.Fatal("resolvePaths() should fail when the prompt fails")
		}
	})

	t.Run("IncompletePreferencesError", func(t *testing.T) {
		tempDir := t.TempDir()
		prefsFile := filepath.Join(tempDir, "config.json")
		writePrefsFile(t, prefsFile, &prefs.Preferences{
			SourceDir: filepath.Join(tempDir, "downloads"),
		})
		setStageFlags(t, StageFlags{PrefsFile: prefsFile})

		_, _, err := resolvePaths(ctx, logger, &fakeSource{})
		if err == nil {
			t.Fatal("resolvePaths() should fail when the destination stays unset")
		}
	})
}
