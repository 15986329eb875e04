package pathutil

import (
	"cmp"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

// Default patterns used when no custom regex is configured. They are
// compiled once at startup and treated as immutable; configuration objects
// hold references to them rather than recompiling.
var (
	// DefaultNumberPattern extracts numeric values from chapter and page
	// filenames. Matches "001", "1", "1.5" and similar.
	DefaultNumberPattern = regexp.MustCompile(`\d+\.?\d*`)

	// DefaultNameGroupingPattern detects "volume-chapter" style folder
	// names such as "01-23" or "01-23.5".
	DefaultNameGroupingPattern = regexp.MustCompile(`\d+-\d+(\.\d+)?`)
)

// ErrUnsupportedFormat is returned by FileInfo for file extensions outside
// the supported image allow-list.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Maximum path length on Windows without long-path support.
const windowsMaxPath = 260

// IsHidden reports whether the final path segment starts with a dot.
//
// The segments "." and ".." are directory references, not hidden names,
// and report false.
func IsHidden(path string) bool {
	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return false
	}
	return strings.HasPrefix(name, ".")
}

// IsSupportedImage reports whether the path has a supported image
// extension (jpg/jpeg, png, webp). The check is case-insensitive and does
// not touch the filesystem.
func IsSupportedImage(path string) bool {
	_, _, err := FileInfo(path)
	return err == nil
}

// FileInfo returns the normalized extension and MIME type for a supported
// image path.
//
// Supported formats:
//   - JPEG/JPG: image/jpeg
//   - PNG: image/png
//   - WebP: image/webp
func FileInfo(path string) (ext, mime string, err error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "jpg", "jpeg":
		return "jpg", "image/jpeg", nil
	case "png":
		return "png", "image/png", nil
	case "webp":
		return "webp", "image/webp", nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ExtractNumber applies re to the final path segment and parses a numeric
// sort key from it.
//
// When the pattern matches multiple times the last match wins: the
// rightmost number in a name is assumed most specific (volume-then-chapter
// numbering). The first capture group is preferred over the whole match
// when present. Integer captures have leading zeros stripped before
// parsing; captures containing a decimal point are parsed verbatim.
//
// The second return value is false when nothing matches or parsing fails.
func ExtractNumber(path string, re *regexp.Regexp) (float64, bool) {
	name := filepath.Base(path)

	matches := re.FindAllStringSubmatch(name, -1)
	if len(matches) == 0 {
		return 0, false
	}

	last := matches[len(matches)-1]
	capture := last[0]
	if len(last) > 1 && last[1] != "" {
		capture = last[1]
	}

	if !strings.Contains(capture, ".") {
		capture = strings.TrimLeft(capture, "0")
	}

	n, err := strconv.ParseFloat(capture, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CompareByNumber orders two paths by the numeric keys extracted from
// their filenames. Paths without a key sort before paths with one; two
// missing or equal keys compare as equal, leaving ties to the caller's
// enumeration order.
func CompareByNumber(a, b string, re *regexp.Regexp) int {
	an, aok := ExtractNumber(a, re)
	bn, bok := ExtractNumber(b, re)

	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	default:
		return cmp.Compare(an, bn)
	}
}

// SanitizeFilename replaces characters that are unsafe in file names with
// a dash, and control characters with an underscore.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case strings.ContainsRune(`<>"|?*:/\`, r):
			b.WriteRune('-')
		case r < 0x20 || r == 0x7f:
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidatePath checks a path for characters that cause problems in zip
// archives or on common filesystems, and for excessive length on Windows.
func ValidatePath(path string) error {
	if runtime.GOOS == "windows" && len(path) > windowsMaxPath && !strings.HasPrefix(path, `\\?\`) {
		return fmt.Errorf("path too long (%d chars): %s", len(path), path)
	}
	if strings.ContainsAny(path, `<>"|?*`) {
		return fmt.Errorf("path contains invalid characters: %s", path)
	}
	return nil
}
