package structure

import (
	"cmp"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// CompareVolumeChapter orders two chapter names by the volume-chapter
// numbers embedded in them, e.g. "01-003" before "01-010" before
// "02-001". Fractional chapters like "01-003.5" sort between their
// neighbors. Names where no volume number can be parsed compare equal,
// leaving their relative order to the caller's sort stability.
func CompareVolumeChapter(a, b string, pattern *regexp.Regexp) int {
	volA, chapA := parseVolumeChapter(a, pattern)
	volB, chapB := parseVolumeChapter(b, pattern)
	if volA == 0 || volB == 0 {
		return 0
	}
	if c := cmp.Compare(volA, volB); c != 0 {
		return c
	}
	return cmp.Compare(chapA, chapB)
}

// parseVolumeChapter extracts the volume number and chapter number from
// a chapter name. A chapter's fractional part ("003.5") is scaled by its
// digit count, so ".5" and ".50" land on the same value. Volume 0 means
// the name did not match.
func parseVolumeChapter(name string, pattern *regexp.Regexp) (int, float64) {
	match := pattern.FindString(name)
	if match == "" {
		return 0, 0
	}

	volPart, chapPart, ok := strings.Cut(match, "-")
	if !ok {
		return 0, 0
	}

	vol, err := strconv.Atoi(volPart)
	if err != nil {
		return 0, 0
	}

	intPart, fracPart, _ := strings.Cut(chapPart, ".")
	chapter, err := strconv.ParseFloat(intPart, 64)
	if err != nil {
		return 0, 0
	}
	if fracPart != "" {
		frac, err := strconv.ParseFloat(fracPart, 64)
		if err != nil {
			return 0, 0
		}
		chapter += frac / math.Pow10(len(fracPart))
	}

	return vol, chapter
}
