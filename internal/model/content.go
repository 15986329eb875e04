package model

import "path/filepath"

// Chapter is an ordered sequence of page image paths. Insertion order is
// sort order; the collector produces chapters already sorted.
type Chapter []string

// Dir returns the directory containing the chapter's pages, derived from
// the first page. Empty chapters have no directory.
func (c Chapter) Dir() string {
	if len(c) == 0 {
		return ""
	}
	return filepath.Dir(c[0])
}

// Name returns the chapter's identifying folder name, or "Untitled
// Chapter" when it cannot be derived.
func (c Chapter) Name() string {
	dir := c.Dir()
	if dir == "" {
		return "Untitled Chapter"
	}
	return filepath.Base(dir)
}

// Volume is an ordered sequence of chapters packaged into one output file.
type Volume []Chapter

// PageCount returns the total number of pages across all chapters.
func (v Volume) PageCount() int {
	n := 0
	for _, c := range v {
		n += len(c)
	}
	return n
}

// Empty reports whether the volume contains no pages at all.
func (v Volume) Empty() bool {
	return v.PageCount() == 0
}

// ChapterTitles returns the folder-derived display name of every chapter,
// in order.
func (v Volume) ChapterTitles() []string {
	titles := make([]string, len(v))
	for i, c := range v {
		titles[i] = c.Name()
	}
	return titles
}

// CollectedContent is the outcome of the collection and analysis phase.
type CollectedContent struct {
	// Chapters holds the collected pages grouped by chapter, in sorted
	// chapter order.
	Chapters []Chapter

	// Report describes what the analysis pass observed.
	Report AnalyzeReport
}

// StructuredContent is the outcome of the volume structuring phase.
type StructuredContent struct {
	// Volumes holds the chapters grouped into output volumes.
	Volumes []Volume

	// Report summarizes the grouping.
	Report StructureReport

	// StrategyApplied records which grouping strategy produced the result.
	StrategyApplied GroupingStrategy
}

// StructureReport summarizes a single structuring call.
type StructureReport struct {
	ChaptersProcessed int   `json:"chapters_processed"`
	VolumesCreated    int   `json:"volumes_created"`
	ChaptersPerVolume []int `json:"chapters_per_volume"`
}

// FindingKind tags one observation about the source tree.
type FindingKind int

const (
	// FindingConsistentNaming: chapter folders follow a recognizable
	// volume-chapter naming pattern.
	FindingConsistentNaming FindingKind = iota

	// FindingUnsupportedFile: a file was present but silently excluded by
	// the image filter.
	FindingUnsupportedFile

	// FindingInconsistentPageCount: a chapter's page count deviates
	// strongly from the mean.
	FindingInconsistentPageCount

	// FindingSpecialCharacters: a page path contains characters that can
	// break archives or filesystems.
	FindingSpecialCharacters

	// FindingUnusualFileSize: a page is far larger or smaller than the
	// average page.
	FindingUnusualFileSize

	// FindingPermissionDenied: a page's metadata could not be read.
	FindingPermissionDenied

	// FindingNoChapters: the source tree contains no chapter directories.
	FindingNoChapters

	// FindingNoPages: chapters were found but none contain any pages.
	FindingNoPages
)

// String returns a short identifier for the finding kind.
func (k FindingKind) String() string {
	switch k {
	case FindingConsistentNaming:
		return "consistent-naming"
	case FindingUnsupportedFile:
		return "unsupported-file"
	case FindingInconsistentPageCount:
		return "inconsistent-page-count"
	case FindingSpecialCharacters:
		return "special-characters"
	case FindingUnusualFileSize:
		return "unusual-file-size"
	case FindingPermissionDenied:
		return "permission-denied"
	case FindingNoChapters:
		return "no-chapters"
	case FindingNoPages:
		return "no-pages"
	default:
		return "unknown"
	}
}

// Finding is one observation from the analysis pass. Only the fields
// relevant to its Kind are populated.
type Finding struct {
	Kind FindingKind

	// Path names the file or chapter directory the finding refers to.
	Path string

	// Detail carries free-form context, e.g. the detected naming pattern.
	Detail string

	// Expected and Found carry page counts for inconsistent-page-count
	// findings.
	Expected int
	Found    int

	// SizeKB and AverageKB carry sizes for unusual-file-size findings.
	SizeKB    int64
	AverageKB int64
}

// AnalyzeReport accumulates findings from one analysis pass, together
// with the grouping strategy the analyzer recommends.
type AnalyzeReport struct {
	Findings            []Finding
	RecommendedStrategy GroupingStrategy
}
