package structure

import (
	"context"
	"path/filepath"
	"slices"
	"testing"

	"github.com/LuMiSxh/hozon/internal/config"
	"github.com/LuMiSxh/hozon/internal/model"
	"github.com/LuMiSxh/hozon/internal/pathutil"
)

// chapterNamed builds a chapter whose pages live under the given folder
// name, so Chapter.Name() resolves to it.
func chapterNamed(name string, pages int) model.Chapter {
	ch := make(model.Chapter, pages)
	for i := range ch {
		ch[i] = filepath.Join("/src", name, "page.jpg")
	}
	return ch
}

func testConversion(t *testing.T, mutate func(*config.Settings)) *config.Conversion {
	t.Helper()
	s := config.DefaultSettings()
	if mutate != nil {
		mutate(s)
	}
	conv, err := s.Build()
	if err != nil {
		t.Fatal(err)
	}
	return conv
}

func TestCalculateVolumeSizes(t *testing.T) {
	tests := []struct {
		name   string
		starts []int
		total  int
		want   []int
	}{
		{"three even volumes", []int{0, 5, 10}, 15, []int{5, 5, 5}},
		{"short tail", []int{0, 10}, 12, []int{10, 2}},
		{"no boundaries", nil, 15, []int{15}},
		{"nothing at all", nil, 0, nil},
		{"duplicate boundary dropped", []int{0, 3, 3, 6}, 9, []int{3, 3, 3}},
		{"boundary at end", []int{0, 4}, 4, []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateVolumeSizes(tt.starts, tt.total)
			if !slices.Equal(got, tt.want) {
				t.Errorf("CalculateVolumeSizes(%v, %d) = %v, want %v", tt.starts, tt.total, got, tt.want)
			}
		})
	}
}

func TestCompareVolumeChapter(t *testing.T) {
	pattern := pathutil.DefaultNameGroupingPattern

	tests := []struct {
		a, b string
		want int
	}{
		{"01-001", "01-002", -1},
		{"01-010", "02-001", -1},
		{"02-001", "01-010", 1},
		{"01-003", "01-003", 0},
		{"01-003", "01-003.5", -1},
		{"01-003.5", "01-004", -1},
		{"extras", "01-001", 0}, // unparseable compares equal
	}

	for _, tt := range tests {
		got := CompareVolumeChapter(tt.a, tt.b, pattern)
		switch {
		case tt.want < 0 && got >= 0,
			tt.want > 0 && got <= 0,
			tt.want == 0 && got != 0:
			t.Errorf("CompareVolumeChapter(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestManualWithoutSizes(t *testing.T) {
	chapters := []model.Chapter{
		chapterNamed("a", 2),
		chapterNamed("b", 3),
	}

	s := New(testConversion(t, nil))
	structured, err := s.Structure(context.Background(), model.CollectedContent{Chapters: chapters})
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}

	if len(structured.Volumes) != 1 || len(structured.Volumes[0]) != 2 {
		t.Errorf("volumes = %v, want one volume with both chapters", structured.Report.ChaptersPerVolume)
	}
	if structured.Report.VolumesCreated != 1 {
		t.Errorf("VolumesCreated = %d, want 1", structured.Report.VolumesCreated)
	}
}

func TestManualWithSizes(t *testing.T) {
	chapters := []model.Chapter{
		chapterNamed("a", 1), chapterNamed("b", 1),
		chapterNamed("c", 1), chapterNamed("d", 1),
	}

	s := New(testConversion(t, func(cfg *config.Settings) {
		cfg.VolumeSizes = []int{2, 2}
	}))
	structured, err := s.Structure(context.Background(), model.CollectedContent{Chapters: chapters})
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}

	if !slices.Equal(structured.Report.ChaptersPerVolume, []int{2, 2}) {
		t.Errorf("ChaptersPerVolume = %v, want [2 2]", structured.Report.ChaptersPerVolume)
	}
	if structured.Volumes[1][0].Name() != "c" {
		t.Errorf("second volume starts with %q, want c", structured.Volumes[1][0].Name())
	}
}

func TestManualOverrunFails(t *testing.T) {
	chapters := []model.Chapter{chapterNamed("a", 1)}

	s := New(testConversion(t, func(cfg *config.Settings) {
		cfg.VolumeSizes = []int{2}
	}))
	if _, err := s.Structure(context.Background(), model.CollectedContent{Chapters: chapters}); err == nil {
		t.Error("Structure should fail when sizes demand more chapters than exist")
	}
}

func TestManualUndersupplyDropsTail(t *testing.T) {
	chapters := []model.Chapter{
		chapterNamed("a", 1), chapterNamed("b", 1), chapterNamed("c", 1),
	}

	s := New(testConversion(t, func(cfg *config.Settings) {
		cfg.VolumeSizes = []int{2}
	}))
	structured, err := s.Structure(context.Background(), model.CollectedContent{Chapters: chapters})
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}
	if !slices.Equal(structured.Report.ChaptersPerVolume, []int{2}) {
		t.Errorf("ChaptersPerVolume = %v, want [2]", structured.Report.ChaptersPerVolume)
	}
}

func TestNameGrouping(t *testing.T) {
	chapters := []model.Chapter{
		chapterNamed("01-002", 1),
		chapterNamed("02-001", 1),
		chapterNamed("01-001", 1),
	}

	s := New(testConversion(t, func(cfg *config.Settings) {
		cfg.GroupingStrategy = "name"
	}))
	structured, err := s.Structure(context.Background(), model.CollectedContent{Chapters: chapters})
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}

	if !slices.Equal(structured.Report.ChaptersPerVolume, []int{2, 1}) {
		t.Fatalf("ChaptersPerVolume = %v, want [2 1]", structured.Report.ChaptersPerVolume)
	}
	if structured.Volumes[0][0].Name() != "01-001" {
		t.Errorf("first chapter = %q, want 01-001 after sorting", structured.Volumes[0][0].Name())
	}
	if structured.Volumes[1][0].Name() != "02-001" {
		t.Errorf("second volume starts with %q, want 02-001", structured.Volumes[1][0].Name())
	}
}

func TestNameGroupingUnparsedAttachesToPrevious(t *testing.T) {
	chapters := []model.Chapter{
		chapterNamed("01-001", 1),
		chapterNamed("extras", 1),
		chapterNamed("02-001", 1),
	}

	s := New(testConversion(t, func(cfg *config.Settings) {
		cfg.GroupingStrategy = "name"
	}))
	structured, err := s.Structure(context.Background(), model.CollectedContent{Chapters: chapters})
	if err != nil {
		t.Fatal(err)
	}

	// "extras" carries no volume number, so it never opens a volume.
	if structured.Report.VolumesCreated != 2 {
		t.Errorf("VolumesCreated = %d, want 2 (got %v)", structured.Report.VolumesCreated, structured.Report.ChaptersPerVolume)
	}
}

func TestNameGroupingNumberedAfterUnnumberedOpensVolume(t *testing.T) {
	// The boundary check compares against the immediately preceding
	// chapter: an unnumbered chapter resets the comparison, so the next
	// numbered chapter opens a volume even with an unchanged volume
	// number.
	chapters := []model.Chapter{
		chapterNamed("01-001", 1),
		chapterNamed("extras", 1),
		chapterNamed("01-002", 1),
	}

	s := New(testConversion(t, func(cfg *config.Settings) {
		cfg.GroupingStrategy = "name"
	}))
	structured, err := s.Structure(context.Background(), model.CollectedContent{Chapters: chapters})
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(structured.Report.ChaptersPerVolume, []int{2, 1}) {
		t.Errorf("ChaptersPerVolume = %v, want [2 1]", structured.Report.ChaptersPerVolume)
	}
}

func TestNameGroupingIgnoresCustomNumericPattern(t *testing.T) {
	// A custom chapter regex only affects numeric sorting; volume
	// boundaries always come from the volume-chapter grouping pattern.
	chapters := []model.Chapter{
		chapterNamed("01-001", 1),
		chapterNamed("01-002", 1),
		chapterNamed("02-001", 1),
	}

	s := New(testConversion(t, func(cfg *config.Settings) {
		cfg.GroupingStrategy = "name"
		cfg.ChapterNameRegex = `Chapter\s*(\d+)`
	}))
	structured, err := s.Structure(context.Background(), model.CollectedContent{Chapters: chapters})
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(structured.Report.ChaptersPerVolume, []int{2, 1}) {
		t.Errorf("ChaptersPerVolume = %v, want [2 1]", structured.Report.ChaptersPerVolume)
	}
}

func TestFlatGrouping(t *testing.T) {
	chapters := []model.Chapter{
		chapterNamed("a", 2),
		chapterNamed("b", 3),
	}

	s := New(testConversion(t, func(cfg *config.Settings) {
		cfg.GroupingStrategy = "flat"
	}))
	structured, err := s.Structure(context.Background(), model.CollectedContent{Chapters: chapters})
	if err != nil {
		t.Fatal(err)
	}

	if len(structured.Volumes) != 1 || len(structured.Volumes[0]) != 1 {
		t.Fatalf("flat should produce one volume with one merged chapter, got %v", structured.Report)
	}
	if got := structured.Volumes[0].PageCount(); got != 5 {
		t.Errorf("merged page count = %d, want 5", got)
	}
	if !slices.Equal(structured.Report.ChaptersPerVolume, []int{2}) {
		t.Errorf("ChaptersPerVolume = %v, want original chapter count [2]", structured.Report.ChaptersPerVolume)
	}
}

func TestFlatGroupingEmpty(t *testing.T) {
	s := New(testConversion(t, func(cfg *config.Settings) {
		cfg.GroupingStrategy = "flat"
	}))
	structured, err := s.Structure(context.Background(), model.CollectedContent{})
	if err != nil {
		t.Fatal(err)
	}
	if len(structured.Volumes) != 0 {
		t.Errorf("flat over nothing should produce no volumes, got %d", len(structured.Volumes))
	}
}
