package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LuMiSxh/hozon/internal/config"
	"github.com/LuMiSxh/hozon/internal/model"
	"github.com/LuMiSxh/hozon/internal/pathutil"
	"golang.org/x/sync/errgroup"
)

// ErrNoVolumes is returned when generation is asked to package an empty
// volume list, or volumes that contain no pages at all.
var ErrNoVolumes = errors.New("no volumes with pages to generate")

// CoverPolicy selects cover images for generated volumes. PerVolume
// entries (keyed by 1-based volume number) take precedence over Single;
// volumes matched by neither fall back to their first page.
type CoverPolicy struct {
	Single    string
	PerVolume map[int]string
}

func (p CoverPolicy) coverFor(volume int) string {
	if path, ok := p.PerVolume[volume]; ok {
		return path
	}
	return p.Single
}

// VolumeInfo carries everything a format writer needs besides the pages
// themselves.
type VolumeInfo struct {
	Metadata model.Metadata

	// Number is the 1-based volume number; Total is the volume count of
	// the whole run.
	Number int
	Total  int

	// Cover is the explicit cover image path, or "" for format-specific
	// fallback behavior.
	Cover string

	Direction model.Direction
}

// Writer packages one volume into one output file.
type Writer interface {
	Write(path string, volume model.Volume, info VolumeInfo) error
}

// Generator writes structured volumes to disk.
type Generator struct {
	cfg *config.Conversion

	// OnVolumeDone, when set, is called after each volume file is
	// written. It may be called from multiple goroutines at once.
	OnVolumeDone func(number int, path string)
}

// New creates a Generator for the given conversion configuration.
func New(cfg *config.Conversion) *Generator {
	return &Generator{cfg: cfg}
}

// Generate writes one output file per volume and returns the written
// paths in volume order. With CreateOutputDir set, files go into a
// created target/<sanitized title>/ subdirectory; otherwise they go
// directly into the target, which must already exist. Volume tasks run
// concurrently; a failing
// task does not cancel its siblings, and the first error is returned
// after all tasks finish.
func (g *Generator) Generate(ctx context.Context, structured model.StructuredContent, covers CoverPolicy) ([]string, error) {
	volumes := structured.Volumes
	if len(volumes) == 0 {
		return nil, ErrNoVolumes
	}
	empty := true
	for _, v := range volumes {
		if !v.Empty() {
			empty = false
			break
		}
	}
	if empty {
		return nil, ErrNoVolumes
	}

	outputDir, err := g.prepareOutputDir()
	if err != nil {
		return nil, err
	}

	writer, err := g.writerFor(g.cfg.Format)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(volumes))

	// A plain Group rather than WithContext: one corrupt page should not
	// cancel volumes already in flight.
	var group errgroup.Group
	group.SetLimit(g.cfg.GenerateLimit)

	for i, volume := range volumes {
		volume := volume
		number := i + 1
		path := filepath.Join(outputDir, g.volumeFilename(number, len(volumes)))
		paths[i] = path

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			info := VolumeInfo{
				Metadata:  g.cfg.Metadata,
				Number:    number,
				Total:     len(volumes),
				Cover:     covers.coverFor(number),
				Direction: g.cfg.Direction,
			}
			if err := writer.Write(path, volume, info); err != nil {
				return fmt.Errorf("writing volume %d: %w", number, err)
			}
			if g.OnVolumeDone != nil {
				g.OnVolumeDone(number, path)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// prepareOutputDir resolves where volume files land. With CreateOutputDir
// a per-title subdirectory is created under the target; without it,
// volumes go directly into the target, which must already exist.
func (g *Generator) prepareOutputDir() (string, error) {
	if g.cfg.CreateOutputDir {
		dir := filepath.Join(g.cfg.TargetPath, pathutil.SanitizeFilename(g.cfg.Metadata.Title))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
		return dir, nil
	}

	info, err := os.Stat(g.cfg.TargetPath)
	if err != nil {
		return "", fmt.Errorf("target directory %s does not exist and create_output_dir is disabled: %w", g.cfg.TargetPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("target path %s is not a directory", g.cfg.TargetPath)
	}
	return g.cfg.TargetPath, nil
}

// volumeFilename builds the output filename. Single-volume runs use the
// bare title; multi-volume runs append the separator and volume number.
func (g *Generator) volumeFilename(number, total int) string {
	name := g.cfg.Metadata.Title
	if total > 1 {
		name = fmt.Sprintf("%s%sVolume %d", name, g.cfg.VolumeSeparator, number)
	}
	return pathutil.SanitizeFilename(name) + g.cfg.Format.Extension()
}

func (g *Generator) writerFor(format model.Format) (Writer, error) {
	switch format {
	case model.FormatCBZ:
		return &cbzWriter{}, nil
	case model.FormatEPUB:
		return &epubWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %v", format)
	}
}
