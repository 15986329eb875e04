package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"github.com/LuMiSxh/hozon/internal/model"
	"gopkg.in/yaml.v3"
)

// Settings holds all configuration options for a conversion run.
type Settings struct {
	// Paths
	SourcePath string `json:"source_path"`
	TargetPath string `json:"target_path"`

	// Output settings
	OutputFormat     string `json:"output_format"`     // cbz, epub
	ReadingDirection string `json:"reading_direction"` // ltr, rtl
	CreateOutputDir  bool   `json:"create_output_dir"`
	VolumeSeparator  string `json:"volume_separator"`

	// Collection settings
	CollectionDepth  string `json:"collection_depth"`  // deep, shallow
	GroupingStrategy string `json:"grouping_strategy"` // manual, name, image, flat
	ChapterNameRegex string `json:"chapter_name_regex,omitempty"`
	PageNameRegex    string `json:"page_name_regex,omitempty"`

	// Sensitivity for grayscale cover detection, in percent (0-100).
	Sensitivity int `json:"sensitivity"`

	// VolumeSizes is the explicit chapters-per-volume partition for the
	// manual grouping strategy. Empty means one volume with everything.
	VolumeSizes []int `json:"volume_sizes,omitempty"`

	// Concurrency ceilings. Zero means use the default.
	ScanConcurrency     int `json:"scan_concurrency,omitempty"`
	AnalysisConcurrency int `json:"analysis_concurrency,omitempty"`
	GenerateConcurrency int `json:"generate_concurrency,omitempty"`

	// Metadata embedded into generated files.
	Metadata model.Metadata `json:"metadata"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		OutputFormat:     "cbz",
		ReadingDirection: "ltr",
		CreateOutputDir:  true,
		VolumeSeparator:  " - ",
		CollectionDepth:  "deep",
		GroupingStrategy: "manual",
		Sensitivity:      75,
		Metadata:         model.NewMetadata("Untitled Conversion"),
	}
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadMetadata reads series metadata from a YAML file.
func LoadMetadata(path string) (model.Metadata, error) {
	var meta model.Metadata
	data, err := os.ReadFile(path)
	if err != nil {
		return meta, err
	}
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("parsing metadata file %s: %w", path, err)
	}
	if meta.Language == "" {
		meta.Language = "en"
	}
	return meta, nil
}

// Build validates the settings and produces the immutable Conversion the
// pipeline consumes. Custom regex patterns are compiled here; a malformed
// pattern or out-of-range sensitivity is rejected before any I/O happens.
func (s *Settings) Build() (*Conversion, error) {
	if s.Sensitivity < 0 || s.Sensitivity > 100 {
		return nil, fmt.Errorf("sensitivity must be between 0 and 100, got %d", s.Sensitivity)
	}

	format, err := model.ParseFormat(s.OutputFormat)
	if err != nil {
		return nil, err
	}
	direction, err := model.ParseDirection(s.ReadingDirection)
	if err != nil {
		return nil, err
	}
	depth, err := model.ParseDepth(s.CollectionDepth)
	if err != nil {
		return nil, err
	}
	strategy, err := model.ParseGroupingStrategy(s.GroupingStrategy)
	if err != nil {
		return nil, err
	}

	var chapterPattern, pagePattern *regexp.Regexp
	if s.ChapterNameRegex != "" {
		chapterPattern, err = regexp.Compile(s.ChapterNameRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid chapter name regex: %w", err)
		}
	}
	if s.PageNameRegex != "" {
		pagePattern, err = regexp.Compile(s.PageNameRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid page name regex: %w", err)
		}
	}

	for _, size := range s.VolumeSizes {
		if size <= 0 {
			return nil, fmt.Errorf("volume sizes must be positive, got %d", size)
		}
	}

	return &Conversion{
		Metadata:        s.Metadata,
		SourcePath:      s.SourcePath,
		TargetPath:      s.TargetPath,
		Format:          format,
		Direction:       direction,
		CreateOutputDir: s.CreateOutputDir,
		Depth:           depth,
		Strategy:        strategy,
		VolumeSeparator: s.VolumeSeparator,
		Sensitivity:     float64(s.Sensitivity) / 100,
		VolumeSizes:     append([]int(nil), s.VolumeSizes...),
		ChapterPattern:  chapterPattern,
		PagePattern:     pagePattern,
		ScanLimit:       defaultLimit(s.ScanConcurrency, 64),
		AnalysisLimit:   defaultLimit(s.AnalysisConcurrency, min(runtime.NumCPU(), 8)),
		GenerateLimit:   defaultLimit(s.GenerateConcurrency, min(runtime.NumCPU(), 4)),
	}, nil
}

func defaultLimit(configured, fallback int) int {
	if configured > 0 {
		return configured
	}
	return fallback
}
