package model

import (
	"testing"
)

func TestChapterName(t *testing.T) {
	tests := []struct {
		name    string
		chapter Chapter
		want    string
	}{
		{"derived from parent dir", Chapter{"src/ch_01/001.jpg", "src/ch_01/002.jpg"}, "ch_01"},
		{"empty chapter", Chapter{}, "Untitled Chapter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.chapter.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVolumePageCount(t *testing.T) {
	v := Volume{
		Chapter{"a/1.jpg", "a/2.jpg"},
		Chapter{"b/1.jpg"},
	}
	if got := v.PageCount(); got != 3 {
		t.Errorf("PageCount() = %d, want 3", got)
	}
	if v.Empty() {
		t.Error("Empty() = true for a volume with pages")
	}
	if !(Volume{Chapter{}}).Empty() {
		t.Error("Empty() = false for a volume of empty chapters")
	}
}

func TestVolumeChapterTitles(t *testing.T) {
	v := Volume{
		Chapter{"src/01-001/p1.jpg"},
		Chapter{"src/01-002/p1.jpg"},
	}
	titles := v.ChapterTitles()
	if len(titles) != 2 || titles[0] != "01-001" || titles[1] != "01-002" {
		t.Errorf("ChapterTitles() = %v", titles)
	}
}

func TestParseRoundTrips(t *testing.T) {
	for _, s := range []GroupingStrategy{GroupManual, GroupName, GroupImageAnalysis, GroupFlat} {
		got, err := ParseGroupingStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("ParseGroupingStrategy(%q) = %v, %v", s.String(), got, err)
		}
	}
	for _, f := range []Format{FormatCBZ, FormatEPUB} {
		got, err := ParseFormat(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseGroupingStrategy("bogus"); err == nil {
		t.Error("ParseGroupingStrategy should reject unknown names")
	}
}
