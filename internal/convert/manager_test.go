package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LuMiSxh/hozon/internal/config"
)

func writeSourceTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, chapter := range []string{"chapter_1", "chapter_2"} {
		dir := filepath.Join(root, chapter)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		for _, page := range []string{"001.jpg", "002.jpg"} {
			if err := os.WriteFile(filepath.Join(dir, page), []byte("x"), 0644); err != nil {
				t.Fatal(err)
			}
		}
	}
	return root
}

func TestNewManagerRejectsInvalidSettings(t *testing.T) {
	s := config.DefaultSettings()
	s.OutputFormat = "pdf"
	if _, err := NewManager(s, nil); err == nil {
		t.Error("NewManager should reject an unknown output format")
	}
}

func TestConvertEndToEnd(t *testing.T) {
	s := config.DefaultSettings()
	s.SourcePath = writeSourceTree(t)
	s.TargetPath = t.TempDir()
	s.Metadata.Title = "Pipeline Test"

	var events []ProgressEvent
	manager, err := NewManager(s, func(e ProgressEvent) {
		events = append(events, e)
	})
	if err != nil {
		t.Fatal(err)
	}

	paths, err := manager.Convert(context.Background())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("paths = %v, want one volume", paths)
	}
	if _, err := os.Stat(paths[0]); err != nil {
		t.Errorf("output file missing: %v", err)
	}

	completed, total := manager.Progress()
	if completed != 1 || total != 1 {
		t.Errorf("Progress = %d/%d, want 1/1", completed, total)
	}

	var sawSuccess bool
	for _, e := range events {
		if e.Level == LevelSuccess && strings.Contains(e.Message, "complete") {
			sawSuccess = true
		}
	}
	if !sawSuccess {
		t.Error("expected a completion progress event")
	}
}

func TestConvertRequiresSource(t *testing.T) {
	s := config.DefaultSettings()
	s.TargetPath = t.TempDir()

	manager, err := NewManager(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := manager.Convert(context.Background()); err == nil {
		t.Error("Convert should fail without a source path")
	}
}

func TestConvertRequiresTitleAndTarget(t *testing.T) {
	s := config.DefaultSettings()
	s.SourcePath = writeSourceTree(t)
	s.Metadata.Title = ""

	manager, err := NewManager(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := manager.Convert(context.Background()); err == nil {
		t.Error("Convert should fail without a title")
	}

	s = config.DefaultSettings()
	s.SourcePath = writeSourceTree(t)
	manager, err = NewManager(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := manager.Convert(context.Background()); err == nil {
		t.Error("Convert should fail without a target path")
	}
}

func TestAnalyzeReportsFindings(t *testing.T) {
	root := writeSourceTree(t)
	if err := os.WriteFile(filepath.Join(root, "chapter_1", "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	s := config.DefaultSettings()
	s.SourcePath = root
	s.TargetPath = t.TempDir()

	var messages []string
	manager, err := NewManager(s, func(e ProgressEvent) {
		messages = append(messages, e.Message)
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := manager.Analyze(context.Background()); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	var sawSkip bool
	for _, msg := range messages {
		if strings.Contains(msg, "notes.txt") {
			sawSkip = true
		}
	}
	if !sawSkip {
		t.Errorf("messages = %v, want a skipped-file message", messages)
	}
}
