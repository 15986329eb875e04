package collect

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/LuMiSxh/hozon/internal/config"
	"github.com/LuMiSxh/hozon/internal/model"
	"github.com/LuMiSxh/hozon/internal/pathutil"
	"golang.org/x/sync/errgroup"
)

// Collector scans a source directory for chapter directories and page
// images.
type Collector struct {
	cfg *config.Conversion
}

// New creates a Collector for the given conversion configuration.
func New(cfg *config.Conversion) *Collector {
	return &Collector{cfg: cfg}
}

// Chapters returns the chapter directories of the source tree in sorted
// order. In shallow mode the source directory itself is the single
// chapter; in deep mode its immediate subdirectories are the chapters.
func (c *Collector) Chapters(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var chapters []string
	if c.cfg.Depth == model.DepthShallow {
		chapters = []string{c.cfg.SourcePath}
	} else {
		var err error
		chapters, err = listEntries(c.cfg.SourcePath, true)
		if err != nil {
			return nil, fmt.Errorf("listing chapters in %s: %w", c.cfg.SourcePath, err)
		}
	}

	slices.SortStableFunc(chapters, c.chapterComparator())
	return chapters, nil
}

// Pages lists and sorts the page images of every chapter. One scan task
// runs per chapter, bounded by the configured scan ceiling; results are
// written into a pre-sized slot per chapter so completion order does not
// matter. Any single chapter's failure fails the whole call.
func (c *Collector) Pages(ctx context.Context, chapters []string) ([]model.Chapter, error) {
	pages := make([]model.Chapter, len(chapters))
	sort := c.pageComparator()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.ScanLimit)

	for i, dir := range chapters {
		i, dir := i, dir
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files, err := listEntries(dir, false)
			if err != nil {
				return fmt.Errorf("listing pages in %s: %w", dir, err)
			}
			slices.SortStableFunc(files, sort)
			pages[i] = files
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// AllFiles lists every non-hidden file in a directory without the image
// filter. The analysis pass uses it to detect files the collector
// silently excluded.
func (c *Collector) AllFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || pathutil.IsHidden(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// listEntries performs a single-level, non-recursive scan. Hidden entries
// are always skipped. With onlyDirs true only directories are kept;
// otherwise only supported image files are kept and everything else is
// silently dropped.
func listEntries(dir string, onlyDirs bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if pathutil.IsHidden(entry.Name()) {
			continue
		}
		if entry.IsDir() != onlyDirs {
			continue
		}
		if !onlyDirs && !pathutil.IsSupportedImage(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

func (c *Collector) chapterComparator() config.Comparator {
	if c.cfg.ChapterSort != nil {
		return c.cfg.ChapterSort
	}
	return numberComparator(c.cfg.ChapterPattern)
}

func (c *Collector) pageComparator() config.Comparator {
	if c.cfg.PageSort != nil {
		return c.cfg.PageSort
	}
	return numberComparator(c.cfg.PagePattern)
}

func numberComparator(pattern *regexp.Regexp) config.Comparator {
	if pattern == nil {
		pattern = pathutil.DefaultNumberPattern
	}
	return func(a, b string) int {
		return pathutil.CompareByNumber(a, b, pattern)
	}
}
