package pathutil

import (
	"math"
	"testing"
)

func TestIsHidden(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{".hidden", true},
		{"normal.jpg", false},
		{"dir/.DS_Store", true},
		{"dir/page.png", false},
		{"a/.b/c.jpg", false},
		{".", false},
		{"..", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsHidden(tt.path); got != tt.want {
				t.Errorf("IsHidden(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsSupportedImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"page.jpg", true},
		{"page.JPEG", true},
		{"page.png", true},
		{"page.webp", true},
		{"page.gif", false},
		{"page.txt", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsSupportedImage(tt.path); got != tt.want {
				t.Errorf("IsSupportedImage(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestFileInfo(t *testing.T) {
	ext, mime, err := FileInfo("dir/cover.JPG")
	if err != nil {
		t.Fatalf("FileInfo: %v", err)
	}
	if ext != "jpg" || mime != "image/jpeg" {
		t.Errorf("FileInfo = (%q, %q), want (jpg, image/jpeg)", ext, mime)
	}

	if _, _, err := FileInfo("notes.txt"); err == nil {
		t.Error("FileInfo should reject non-image extensions")
	}
}

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		name   string
		want   float64
		wantOK bool
	}{
		// Last digit run wins, leading zeros stripped.
		{"001-caption-042.jpg", 42, true},
		{"chapter_2.5.png", 2.5, true},
		{"chapter_003", 3, true},
		{"page-0010.webp", 10, true},
		{"1.5", 1.5, true},
		{"no digits here", 0, false},
		// All-zero integer captures trim to nothing and yield no key.
		{"000", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractNumber(tt.name, DefaultNumberPattern)
			if ok != tt.wantOK {
				t.Fatalf("ExtractNumber(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ExtractNumber(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestCompareByNumber(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"ch_1.jpg", "ch_2.jpg", -1},
		{"ch_10.jpg", "ch_2.jpg", 1},
		{"ch_2.jpg", "ch_2.jpg", 0},
		{"alpha.jpg", "beta.jpg", 0},
		{"alpha.jpg", "ch_1.jpg", -1},
		{"ch_1.jpg", "alpha.jpg", 1},
	}

	for _, tt := range tests {
		if got := CompareByNumber(tt.a, tt.b, DefaultNumberPattern); got != tt.want {
			t.Errorf("CompareByNumber(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal_file.txt", "normal_file.txt"},
		{"test<file>", "test-file-"},
		{"test|file", "test-file"},
		{"test?file", "test-file"},
		{"test*file", "test-file"},
		{`test"file`, "test-file"},
		{"test:file", "test-file"},
		{"test/file", "test-file"},
		{`test\file`, "test-file"},
		{"test\x01file", "test_file"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	if err := ValidatePath("some/ordinary/path.jpg"); err != nil {
		t.Errorf("ValidatePath rejected an ordinary path: %v", err)
	}
	if err := ValidatePath("bad<path>.jpg"); err == nil {
		t.Error("ValidatePath should reject angle brackets")
	}
	if err := ValidatePath("what?.jpg"); err == nil {
		t.Error("ValidatePath should reject question marks")
	}
}
