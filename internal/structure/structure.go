package structure

import (
	"context"
	"fmt"
	"slices"

	"github.com/LuMiSxh/hozon/internal/config"
	"github.com/LuMiSxh/hozon/internal/imaging"
	"github.com/LuMiSxh/hozon/internal/model"
	"github.com/LuMiSxh/hozon/internal/pathutil"
)

// Structurer groups chapters into volumes according to the configured
// strategy.
type Structurer struct {
	cfg *config.Conversion
}

// New creates a Structurer for the given conversion configuration.
func New(cfg *config.Conversion) *Structurer {
	return &Structurer{cfg: cfg}
}

// Structure applies the configured grouping strategy to the collected
// chapters.
func (s *Structurer) Structure(ctx context.Context, content model.CollectedContent) (model.StructuredContent, error) {
	chapters := content.Chapters

	var volumes []model.Volume
	var err error

	switch s.cfg.Strategy {
	case model.GroupManual:
		volumes, err = s.manual(chapters)
	case model.GroupName:
		volumes = s.byName(chapters)
	case model.GroupImageAnalysis:
		volumes, err = s.byImage(ctx, chapters)
	case model.GroupFlat:
		return flatten(chapters), nil
	default:
		err = fmt.Errorf("unknown grouping strategy %v", s.cfg.Strategy)
	}
	if err != nil {
		return model.StructuredContent{}, err
	}

	return model.StructuredContent{
		Volumes:         volumes,
		Report:          buildReport(len(chapters), volumes),
		StrategyApplied: s.cfg.Strategy,
	}, nil
}

// manual partitions chapters by the configured explicit sizes. Without
// sizes, every chapter goes into a single volume. Sizes that ask for more
// chapters than exist are an error; sizes that cover fewer chapters than
// exist silently drop the tail.
func (s *Structurer) manual(chapters []model.Chapter) ([]model.Volume, error) {
	if len(s.cfg.VolumeSizes) == 0 {
		if len(chapters) == 0 {
			return nil, nil
		}
		return []model.Volume{model.Volume(chapters)}, nil
	}

	demanded := 0
	for _, size := range s.cfg.VolumeSizes {
		demanded += size
	}
	if demanded > len(chapters) {
		return nil, fmt.Errorf("volume sizes demand %d chapters but only %d were collected", demanded, len(chapters))
	}

	return partition(chapters, s.cfg.VolumeSizes), nil
}

// byName sorts chapters by the volume-chapter numbers in their folder
// names and starts a new volume whenever the volume number changes from
// the immediately preceding chapter's. Chapters without a parseable
// volume number carry volume 0, which never opens a new volume; a
// numbered chapter directly after one does, even when its volume number
// matches the last one seen. Sorting and parsing always use the
// volume-chapter grouping pattern, not the numeric sort pattern.
func (s *Structurer) byName(chapters []model.Chapter) []model.Volume {
	if len(chapters) == 0 {
		return nil
	}

	pattern := pathutil.DefaultNameGroupingPattern

	sorted := slices.Clone(chapters)
	if s.cfg.ChapterSort != nil {
		slices.SortStableFunc(sorted, func(a, b model.Chapter) int {
			return s.cfg.ChapterSort(a.Name(), b.Name())
		})
	} else {
		slices.SortStableFunc(sorted, func(a, b model.Chapter) int {
			return CompareVolumeChapter(a.Name(), b.Name(), pattern)
		})
	}

	starts := []int{0}
	prev, _ := parseVolumeChapter(sorted[0].Name(), pattern)
	for i := 1; i < len(sorted); i++ {
		curr, _ := parseVolumeChapter(sorted[i].Name(), pattern)
		if curr > 0 && curr != prev {
			starts = append(starts, i)
		}
		prev = curr
	}

	return partition(sorted, CalculateVolumeSizes(starts, len(sorted)))
}

// byImage finds volume boundaries by classifying each chapter's first
// page as color or grayscale.
func (s *Structurer) byImage(ctx context.Context, chapters []model.Chapter) ([]model.Volume, error) {
	if len(chapters) == 0 {
		return nil, nil
	}

	covers := make([]string, len(chapters))
	for i, ch := range chapters {
		if len(ch) > 0 {
			covers[i] = ch[0]
		}
	}

	starts, err := imaging.DetectVolumeStarts(ctx, covers, s.cfg.Sensitivity, s.cfg.AnalysisLimit)
	if err != nil {
		return nil, err
	}

	return partition(chapters, CalculateVolumeSizes(starts, len(chapters))), nil
}

// flatten merges every page into one synthetic chapter inside one
// volume. The report keeps the original chapter count so callers can
// still tell how much was merged.
func flatten(chapters []model.Chapter) model.StructuredContent {
	var merged model.Chapter
	for _, ch := range chapters {
		merged = append(merged, ch...)
	}

	var volumes []model.Volume
	perVolume := []int{}
	if len(merged) > 0 {
		volumes = []model.Volume{{merged}}
		perVolume = []int{len(chapters)}
	}

	return model.StructuredContent{
		Volumes: volumes,
		Report: model.StructureReport{
			ChaptersProcessed: len(chapters),
			VolumesCreated:    len(volumes),
			ChaptersPerVolume: perVolume,
		},
		StrategyApplied: model.GroupFlat,
	}
}

// CalculateVolumeSizes converts sorted boundary indices into a list of
// chapters-per-volume sizes covering total chapters. Zero-length spans
// between duplicate boundaries are dropped. When no boundary produces a
// volume but chapters exist, everything becomes one volume.
func CalculateVolumeSizes(starts []int, total int) []int {
	if total <= 0 {
		return nil
	}
	if len(starts) == 0 {
		return []int{total}
	}

	var sizes []int
	for i := 0; i+1 < len(starts); i++ {
		if size := starts[i+1] - starts[i]; size > 0 {
			sizes = append(sizes, size)
		}
	}

	if remaining := total - starts[len(starts)-1]; remaining > 0 {
		sizes = append(sizes, remaining)
	}

	if len(sizes) == 0 {
		return []int{total}
	}
	return sizes
}

// partition slices chapters into contiguous volumes of the given sizes.
// Chapters beyond the last size are dropped.
func partition(chapters []model.Chapter, sizes []int) []model.Volume {
	volumes := make([]model.Volume, 0, len(sizes))
	offset := 0
	for _, size := range sizes {
		if offset+size > len(chapters) {
			size = len(chapters) - offset
		}
		if size <= 0 {
			break
		}
		volumes = append(volumes, model.Volume(chapters[offset:offset+size]))
		offset += size
	}
	return volumes
}

func buildReport(processed int, volumes []model.Volume) model.StructureReport {
	perVolume := make([]int, len(volumes))
	for i, v := range volumes {
		perVolume[i] = len(v)
	}
	return model.StructureReport{
		ChaptersProcessed: processed,
		VolumesCreated:    len(volumes),
		ChaptersPerVolume: perVolume,
	}
}
