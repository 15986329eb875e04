package config

import (
	"regexp"

	"github.com/LuMiSxh/hozon/internal/model"
)

// Comparator orders two paths for chapter or page sorting. It returns a
// negative value when a sorts before b, zero when they are equal, and a
// positive value otherwise. Ties are broken by the original enumeration
// order, which is platform-dependent.
type Comparator func(a, b string) int

// Conversion is the validated, immutable configuration for one
// conversion run. Construct it through Settings.Build; an invalid
// configuration never produces a Conversion value.
type Conversion struct {
	Metadata model.Metadata

	SourcePath string
	TargetPath string

	Format          model.Format
	Direction       model.Direction
	CreateOutputDir bool
	Depth           model.Depth
	Strategy        model.GroupingStrategy
	VolumeSeparator string

	// Sensitivity is the grayscale classification threshold in [0, 1].
	Sensitivity float64

	// VolumeSizes is the manual-strategy partition; empty means a single
	// volume.
	VolumeSizes []int

	// ChapterPattern and PagePattern are the compiled custom numeric
	// patterns. Nil selects pathutil.DefaultNumberPattern.
	ChapterPattern *regexp.Regexp
	PagePattern    *regexp.Regexp

	// ChapterSort and PageSort are injected custom comparators. Nil
	// selects the built-in numeric comparator. These are set
	// programmatically; they have no settings-file representation.
	ChapterSort Comparator
	PageSort    Comparator

	// Concurrency ceilings: directory scans, cover decodes, and volume
	// generation tasks.
	ScanLimit     int
	AnalysisLimit int
	GenerateLimit int
}
