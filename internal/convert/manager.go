package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/LuMiSxh/hozon/internal/collect"
	"github.com/LuMiSxh/hozon/internal/config"
	"github.com/LuMiSxh/hozon/internal/generate"
	"github.com/LuMiSxh/hozon/internal/model"
	"github.com/LuMiSxh/hozon/internal/structure"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a conversion progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager coordinates a conversion run.
type Manager struct {
	settings *config.Settings
	cfg      *config.Conversion

	collector  *collect.Collector
	structurer *structure.Structurer
	generator  *generate.Generator

	covers generate.CoverPolicy

	totalVolumes     int32
	completedVolumes int32

	onProgress func(ProgressEvent)
}

// NewManager creates a conversion Manager. The settings are validated
// and compiled immediately; invalid settings fail here rather than
// mid-pipeline.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) (*Manager, error) {
	cfg, err := settings.Build()
	if err != nil {
		return nil, err
	}

	m := &Manager{
		settings:   settings,
		cfg:        cfg,
		collector:  collect.New(cfg),
		structurer: structure.New(cfg),
		generator:  generate.New(cfg),
		onProgress: onProgress,
	}

	m.generator.OnVolumeDone = func(number int, path string) {
		atomic.AddInt32(&m.completedVolumes, 1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Wrote %s", filepath.Base(path)), Level: LevelSuccess})
	}

	return m, nil
}

// UseCovers sets explicit cover images for generated volumes.
func (m *Manager) UseCovers(policy generate.CoverPolicy) {
	m.covers = policy
}

// Progress returns the number of completed and total volumes of the
// current generation phase. Safe to call from other goroutines.
func (m *Manager) Progress() (completed, total int32) {
	return atomic.LoadInt32(&m.completedVolumes), atomic.LoadInt32(&m.totalVolumes)
}

// Analyze collects the source tree and reports findings without writing
// anything.
func (m *Manager) Analyze(ctx context.Context) (model.CollectedContent, error) {
	if err := m.checkSource(); err != nil {
		return model.CollectedContent{}, err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Analyzing %s", m.cfg.SourcePath), Level: LevelInfo})

	content, err := m.collector.AnalyzeSource(ctx)
	if err != nil {
		return content, err
	}

	for _, f := range content.Report.Findings {
		level := LevelWarning
		if f.Kind == model.FindingConsistentNaming {
			level = LevelInfo
		}
		m.progress(ProgressEvent{Message: describeFinding(f), Level: level})
	}
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found %d chapters; recommended grouping: %s", len(content.Chapters), content.Report.RecommendedStrategy),
		Level:   LevelInfo,
	})

	return content, nil
}

// Structure groups previously collected chapters into volumes.
func (m *Manager) Structure(ctx context.Context, content model.CollectedContent) (model.StructuredContent, error) {
	structured, err := m.structurer.Structure(ctx, content)
	if err != nil {
		return structured, err
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Grouped %d chapters into %d volumes (%s strategy)",
			structured.Report.ChaptersProcessed, structured.Report.VolumesCreated, structured.StrategyApplied),
		Level: LevelInfo,
	})
	return structured, nil
}

// Convert runs the full pipeline from the source directory and returns
// the written output paths.
func (m *Manager) Convert(ctx context.Context) ([]string, error) {
	content, err := m.Analyze(ctx)
	if err != nil {
		return nil, err
	}
	return m.ConvertCollected(ctx, content)
}

// ConvertCollected structures already-collected content and generates
// output files.
func (m *Manager) ConvertCollected(ctx context.Context, content model.CollectedContent) ([]string, error) {
	structured, err := m.Structure(ctx, content)
	if err != nil {
		return nil, err
	}
	return m.ConvertStructured(ctx, structured)
}

// ConvertStructured generates output files for already-structured
// volumes.
func (m *Manager) ConvertStructured(ctx context.Context, structured model.StructuredContent) ([]string, error) {
	if err := m.checkTarget(); err != nil {
		return nil, err
	}

	atomic.StoreInt32(&m.completedVolumes, 0)
	atomic.StoreInt32(&m.totalVolumes, int32(len(structured.Volumes)))

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Generating %d %s volumes", len(structured.Volumes), m.cfg.Format),
		Level:   LevelInfo,
	})

	paths, err := m.generator.Generate(ctx, structured, m.covers)
	if err != nil {
		return nil, err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Conversion complete: %d files written", len(paths)), Level: LevelSuccess})
	return paths, nil
}

func (m *Manager) checkSource() error {
	if m.cfg.SourcePath == "" {
		return errors.New("source path is required")
	}
	info, err := os.Stat(m.cfg.SourcePath)
	if err != nil {
		return fmt.Errorf("source path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source path %s is not a directory", m.cfg.SourcePath)
	}
	return nil
}

func (m *Manager) checkTarget() error {
	if m.cfg.Metadata.Title == "" {
		return errors.New("a title is required")
	}
	if m.cfg.TargetPath == "" {
		return errors.New("target path is required")
	}
	return nil
}

func describeFinding(f model.Finding) string {
	switch f.Kind {
	case model.FindingConsistentNaming:
		return fmt.Sprintf("Chapter names follow a volume-chapter pattern (%s)", f.Path)
	case model.FindingUnsupportedFile:
		return fmt.Sprintf("Skipped unsupported file: %s", f.Path)
	case model.FindingInconsistentPageCount:
		return fmt.Sprintf("%s has %d pages, expected around %d", f.Path, f.Found, f.Expected)
	case model.FindingSpecialCharacters:
		return fmt.Sprintf("Path contains problematic characters: %s", f.Path)
	case model.FindingUnusualFileSize:
		return fmt.Sprintf("%s is %d KB, average is %d KB", f.Path, f.SizeKB, f.AverageKB)
	case model.FindingPermissionDenied:
		return fmt.Sprintf("Cannot read %s: %s", f.Path, f.Detail)
	case model.FindingNoChapters:
		return fmt.Sprintf("No chapter directories found in %s", f.Path)
	case model.FindingNoPages:
		return fmt.Sprintf("No page images found in %s", f.Path)
	default:
		return f.Path
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
