package imaging

import (
	"context"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"slices"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
	"golang.org/x/sync/semaphore"
)

const (
	// maxSampleDim caps the working copy; larger images are downscaled
	// before sampling so classification cost stays flat.
	maxSampleDim = 500

	// sampleStride selects every n-th pixel on both axes.
	sampleStride = 10

	// grayTolerance is the maximum per-channel spread (8-bit) for a pixel
	// to still count as gray. Scans are rarely perfectly neutral.
	grayTolerance = 10
)

// DecodeFile decodes a page image from disk. JPEG, PNG and WebP are
// supported.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// IsGrayscale classifies an image as grayscale using a sparse pixel
// sample. sensitivity is the fraction of pixels (0 to 1) that must be
// near-gray for the whole image to count as grayscale; higher values make
// the classifier stricter.
//
// An image with no samplable pixels is classified as color.
func IsGrayscale(img image.Image, sensitivity float64) bool {
	img = downscale(img)

	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()

	sampled := 0
	gray := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y += sampleStride {
		for x := bounds.Min.X; x < bounds.Max.X; x += sampleStride {
			sampled++
			r, g, b, _ := img.At(x, y).RGBA()
			if nearGray(uint8(r>>8), uint8(g>>8), uint8(b>>8)) {
				gray++
			}
		}
	}

	if sampled == 0 {
		return false
	}

	estimated := float64(gray) * float64(totalPixels) / float64(sampled)
	return estimated > sensitivity*float64(totalPixels)
}

// DetectVolumeStarts classifies every chapter's first page and returns
// the sorted indices of chapters that start a volume. Chapter 0 is always
// a volume start. Empty chapters and pages that fail to decode are
// skipped rather than reported; boundary detection is a heuristic and a
// single unreadable cover should not abort the run.
//
// covers holds each chapter's first page path, or "" for an empty
// chapter. limit bounds how many pages decode at once.
func DetectVolumeStarts(ctx context.Context, covers []string, sensitivity float64, limit int) ([]int, error) {
	if limit < 1 {
		limit = 1
	}

	type result struct {
		index    int
		boundary bool
	}

	sem := semaphore.NewWeighted(int64(limit))
	results := make([]result, len(covers))

	for i, cover := range covers {
		i, cover := i, cover
		if cover == "" {
			continue
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		go func() {
			defer sem.Release(1)
			img, err := DecodeFile(cover)
			if err != nil {
				return
			}
			results[i] = result{index: i, boundary: !IsGrayscale(img, sensitivity)}
		}()
	}

	// Acquiring the full weight waits for every in-flight decode.
	if err := sem.Acquire(ctx, int64(limit)); err != nil {
		return nil, err
	}

	starts := []int{0}
	for _, r := range results {
		if r.boundary {
			starts = append(starts, r.index)
		}
	}

	slices.Sort(starts)
	return slices.Compact(starts), nil
}

// downscale returns a working copy that fits within maxSampleDim,
// preserving aspect ratio. Small images pass through untouched.
func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxSampleDim && height <= maxSampleDim {
		return img
	}

	ratio := float64(width) / float64(height)
	if width > height {
		width = maxSampleDim
		height = int(float64(maxSampleDim) / ratio)
	} else {
		height = maxSampleDim
		width = int(float64(maxSampleDim) * ratio)
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func nearGray(r, g, b uint8) bool {
	return absDiff(r, g) <= grayTolerance &&
		absDiff(g, b) <= grayTolerance &&
		absDiff(b, r) <= grayTolerance
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
