package generate

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/LuMiSxh/hozon/internal/model"
	"github.com/LuMiSxh/hozon/internal/pathutil"
)

// cbzWriter packages a volume as a comic book ZIP archive with a
// ComicInfo.xml metadata entry. A cover is optional; when present it is
// stored as 000_cover.<ext> so readers sort it first.
type cbzWriter struct{}

// comicInfo is the ComicInfo.xml schema subset embedded into CBZ output.
type comicInfo struct {
	XMLName xml.Name `xml:"ComicInfo"`
	XSI     string   `xml:"xmlns:xsi,attr"`
	XSD     string   `xml:"xmlns:xsd,attr"`

	Title   string `xml:"Title"`
	Series  string `xml:"Series,omitempty"`
	Volume  int    `xml:"Volume"`
	Summary string `xml:"Summary,omitempty"`
	Notes   string `xml:"Notes,omitempty"`

	Year  int `xml:"Year,omitempty"`
	Month int `xml:"Month,omitempty"`
	Day   int `xml:"Day,omitempty"`

	Writer    string `xml:"Writer,omitempty"`
	Penciller string `xml:"Penciller,omitempty"`
	Inker     string `xml:"Inker,omitempty"`
	Colorist  string `xml:"Colorist,omitempty"`
	Letterer  string `xml:"Letterer,omitempty"`

	Publisher string `xml:"Publisher,omitempty"`
	Imprint   string `xml:"Imprint,omitempty"`
	Genre     string `xml:"Genre,omitempty"`
	Tags      string `xml:"Tags,omitempty"`
	Web       string `xml:"Web,omitempty"`

	PageCount   int    `xml:"PageCount"`
	LanguageISO string `xml:"LanguageISO,omitempty"`
}

func (w *cbzWriter) Write(path string, volume model.Volume, info VolumeInfo) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	archive := zip.NewWriter(file)

	if info.Cover != "" {
		ext, _, err := pathutil.FileInfo(info.Cover)
		if err != nil {
			return fmt.Errorf("cover %s: %w", info.Cover, err)
		}
		if err := addZipFile(archive, "000_cover."+ext, info.Cover); err != nil {
			return err
		}
	}

	page := 0
	for _, chapter := range volume {
		for _, src := range chapter {
			ext, _, err := pathutil.FileInfo(src)
			if err != nil {
				return fmt.Errorf("page %s: %w", src, err)
			}
			page++
			if err := addZipFile(archive, fmt.Sprintf("page_%03d.%s", page, ext), src); err != nil {
				return err
			}
		}
	}

	data, err := marshalComicInfo(volume, info)
	if err != nil {
		return err
	}
	entry, err := archive.Create("ComicInfo.xml")
	if err != nil {
		return err
	}
	if _, err := entry.Write(data); err != nil {
		return err
	}

	if err := archive.Close(); err != nil {
		return err
	}
	return file.Close()
}

func marshalComicInfo(volume model.Volume, info VolumeInfo) ([]byte, error) {
	meta := info.Metadata

	released := meta.ReleaseDate
	if released.IsZero() {
		released = time.Now()
	}

	authors := strings.Join(meta.Authors, ", ")

	ci := comicInfo{
		XSI:         "http://www.w3.org/2001/XMLSchema-instance",
		XSD:         "http://www.w3.org/2001/XMLSchema",
		Title:       meta.Title,
		Series:      meta.Series,
		Volume:      info.Number,
		Summary:     meta.Description,
		Notes:       buildNotes(volume, meta),
		Year:        released.Year(),
		Month:       int(released.Month()),
		Day:         released.Day(),
		Writer:      authors,
		Penciller:   authors,
		Inker:       authors,
		Colorist:    authors,
		Letterer:    authors,
		Publisher:   meta.Publisher,
		Imprint:     meta.Identifier,
		Genre:       meta.Genre,
		Tags:        strings.Join(meta.Tags, ", "),
		Web:         meta.Web,
		PageCount:   volume.PageCount(),
		LanguageISO: meta.Language,
	}

	data, err := xml.MarshalIndent(ci, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}

// buildNotes folds custom metadata fields and the chapter list into the
// free-form Notes field, which has no structured equivalent in the
// ComicInfo schema.
func buildNotes(volume model.Volume, meta model.Metadata) string {
	var lines []string

	if meta.Rights != "" {
		lines = append(lines, "Rights: "+meta.Rights)
	}

	keys := make([]string, 0, len(meta.CustomFields))
	for k := range meta.CustomFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, k+": "+meta.CustomFields[k])
	}

	if titles := volume.ChapterTitles(); len(titles) > 0 {
		lines = append(lines, "Chapters: "+strings.Join(titles, "; "))
	}

	return strings.Join(lines, "\n")
}

func addZipFile(archive *zip.Writer, name, src string) error {
	entry, err := archive.Create(name)
	if err != nil {
		return err
	}
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(entry, f)
	return err
}
