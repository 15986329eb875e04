package model

import "fmt"

// GroupingStrategy selects how collected chapters are grouped into
// volumes.
type GroupingStrategy int

const (
	// GroupManual partitions chapters by explicit volume sizes, or keeps
	// everything in one volume when no sizes are supplied.
	GroupManual GroupingStrategy = iota

	// GroupName groups by volume-chapter patterns in folder names
	// (e.g. "01-001" vs "02-001").
	GroupName

	// GroupImageAnalysis detects volume boundaries by classifying each
	// chapter's cover page as color (boundary) or grayscale (interior).
	GroupImageAnalysis

	// GroupFlat merges every page into a single chapter inside a single
	// volume.
	GroupFlat
)

// String returns the strategy's CLI name.
func (s GroupingStrategy) String() string {
	switch s {
	case GroupManual:
		return "manual"
	case GroupName:
		return "name"
	case GroupImageAnalysis:
		return "image"
	case GroupFlat:
		return "flat"
	default:
		return "unknown"
	}
}

// ParseGroupingStrategy converts a CLI name into a GroupingStrategy.
func ParseGroupingStrategy(s string) (GroupingStrategy, error) {
	switch s {
	case "manual":
		return GroupManual, nil
	case "name":
		return GroupName, nil
	case "image":
		return GroupImageAnalysis, nil
	case "flat":
		return GroupFlat, nil
	default:
		return 0, fmt.Errorf("unknown grouping strategy %q", s)
	}
}

// Depth controls how the source directory is scanned.
type Depth int

const (
	// DepthDeep expects source/chapter_folder/page.jpg.
	DepthDeep Depth = iota

	// DepthShallow expects source/page.jpg; the source directory itself
	// is the single chapter.
	DepthShallow
)

// String returns the depth's CLI name.
func (d Depth) String() string {
	if d == DepthShallow {
		return "shallow"
	}
	return "deep"
}

// ParseDepth converts a CLI name into a Depth.
func ParseDepth(s string) (Depth, error) {
	switch s {
	case "deep":
		return DepthDeep, nil
	case "shallow":
		return DepthShallow, nil
	default:
		return 0, fmt.Errorf("unknown collection depth %q", s)
	}
}

// Format is the output container format.
type Format int

const (
	// FormatCBZ is a comic book ZIP archive with ComicInfo.xml metadata.
	FormatCBZ Format = iota

	// FormatEPUB is an EPUB 3 container with per-page XHTML documents.
	FormatEPUB
)

// Extension returns the output file extension, including the dot.
func (f Format) Extension() string {
	if f == FormatEPUB {
		return ".epub"
	}
	return ".cbz"
}

// String returns the format's CLI name.
func (f Format) String() string {
	if f == FormatEPUB {
		return "epub"
	}
	return "cbz"
}

// ParseFormat converts a CLI name into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "cbz":
		return FormatCBZ, nil
	case "epub":
		return FormatEPUB, nil
	default:
		return 0, fmt.Errorf("unknown output format %q", s)
	}
}

// Direction is the reading direction embedded into EPUB output. CBZ
// output ignores it.
type Direction int

const (
	// DirectionLTR is left-to-right (Western style).
	DirectionLTR Direction = iota

	// DirectionRTL is right-to-left (manga style).
	DirectionRTL
)

// String returns the EPUB page-progression value.
func (d Direction) String() string {
	if d == DirectionRTL {
		return "rtl"
	}
	return "ltr"
}

// ParseDirection converts a CLI name into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "ltr":
		return DirectionLTR, nil
	case "rtl":
		return DirectionRTL, nil
	default:
		return 0, fmt.Errorf("unknown reading direction %q", s)
	}
}
