package collect

import (
	"context"
	"os"
	"path/filepath"

	"github.com/LuMiSxh/hozon/internal/model"
	"github.com/LuMiSxh/hozon/internal/pathutil"
)

// Page count deviation and size heuristics for the analysis pass.
const (
	pageCountDeviation = 0.3
	sizeOutlierFactor  = 3
	sizeFloorKB        = 10
)

// AnalyzeSource collects the source tree and inspects it for problems.
// Inspection is best-effort: unreadable files become findings rather than
// errors, and only the initial collection itself can fail.
func (c *Collector) AnalyzeSource(ctx context.Context) (model.CollectedContent, error) {
	var content model.CollectedContent

	chapters, err := c.Chapters(ctx)
	if err != nil {
		return content, err
	}
	if len(chapters) == 0 {
		content.Report.Findings = append(content.Report.Findings, model.Finding{
			Kind: model.FindingNoChapters,
			Path: c.cfg.SourcePath,
		})
		content.Report.RecommendedStrategy = model.GroupManual
		return content, nil
	}

	pages, err := c.Pages(ctx, chapters)
	if err != nil {
		return content, err
	}
	content.Chapters = pages

	total := 0
	for _, ch := range pages {
		total += len(ch)
	}
	if total == 0 {
		content.Report.Findings = append(content.Report.Findings, model.Finding{
			Kind: model.FindingNoPages,
			Path: c.cfg.SourcePath,
		})
		content.Report.RecommendedStrategy = model.GroupManual
		return content, nil
	}

	report := &content.Report

	c.checkNaming(chapters, report)
	c.checkUnsupportedFiles(chapters, pages, report)
	c.checkPageCounts(chapters, pages, total, report)
	c.checkPages(pages, report)

	return content, nil
}

// checkNaming looks for volume-chapter patterns in the chapter folder
// names. A single match is enough to recommend name-based grouping;
// without one, image analysis is the best automatic option left.
func (c *Collector) checkNaming(chapters []string, report *model.AnalyzeReport) {
	pattern := pathutil.DefaultNameGroupingPattern
	for _, dir := range chapters {
		if pattern.MatchString(filepath.Base(dir)) {
			report.Findings = append(report.Findings, model.Finding{
				Kind:   model.FindingConsistentNaming,
				Path:   dir,
				Detail: pattern.String(),
			})
			report.RecommendedStrategy = model.GroupName
			return
		}
	}
	report.RecommendedStrategy = model.GroupImageAnalysis
}

// checkUnsupportedFiles reports files present in chapter directories that
// the collector silently excluded.
func (c *Collector) checkUnsupportedFiles(chapters []string, pages []model.Chapter, report *model.AnalyzeReport) {
	for i, dir := range chapters {
		all, err := c.AllFiles(dir)
		if err != nil {
			continue
		}

		collected := make(map[string]bool, len(pages[i]))
		for _, p := range pages[i] {
			collected[p] = true
		}

		for _, f := range all {
			if collected[f] || pathutil.IsSupportedImage(f) {
				continue
			}
			report.Findings = append(report.Findings, model.Finding{
				Kind: model.FindingUnsupportedFile,
				Path: f,
			})
		}
	}
}

// checkPageCounts flags chapters whose page count deviates strongly from
// the mean across all chapters.
func (c *Collector) checkPageCounts(chapters []string, pages []model.Chapter, total int, report *model.AnalyzeReport) {
	if len(pages) < 2 {
		return
	}

	avg := float64(total) / float64(len(pages))
	threshold := max(pageCountDeviation*avg, 1.0)

	for i, ch := range pages {
		deviation := float64(len(ch)) - avg
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation > threshold {
			report.Findings = append(report.Findings, model.Finding{
				Kind:     model.FindingInconsistentPageCount,
				Path:     chapters[i],
				Expected: int(avg),
				Found:    len(ch),
			})
		}
	}
}

// checkPages inspects every page for path problems, unreadable metadata,
// and size outliers relative to the average page.
func (c *Collector) checkPages(pages []model.Chapter, report *model.AnalyzeReport) {
	type pageSize struct {
		path   string
		sizeKB int64
	}

	var sizes []pageSize
	var totalKB int64

	for _, ch := range pages {
		for _, p := range ch {
			if err := pathutil.ValidatePath(p); err != nil {
				report.Findings = append(report.Findings, model.Finding{
					Kind:   model.FindingSpecialCharacters,
					Path:   p,
					Detail: err.Error(),
				})
			}

			info, err := os.Stat(p)
			if err != nil {
				report.Findings = append(report.Findings, model.Finding{
					Kind:   model.FindingPermissionDenied,
					Path:   p,
					Detail: err.Error(),
				})
				continue
			}

			kb := info.Size() / 1024
			sizes = append(sizes, pageSize{path: p, sizeKB: kb})
			totalKB += kb
		}
	}

	if len(sizes) == 0 {
		return
	}

	avgKB := totalKB / int64(len(sizes))
	for _, s := range sizes {
		tooLarge := s.sizeKB > sizeOutlierFactor*avgKB
		tooSmall := avgKB > sizeFloorKB && s.sizeKB < avgKB/sizeOutlierFactor
		if tooLarge || tooSmall {
			report.Findings = append(report.Findings, model.Finding{
				Kind:      model.FindingUnusualFileSize,
				Path:      s.path,
				SizeKB:    s.sizeKB,
				AverageKB: avgKB,
			})
		}
	}
}
