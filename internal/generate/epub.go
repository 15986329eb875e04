package generate

import (
	"archive/zip"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/LuMiSxh/hozon/internal/model"
	"github.com/LuMiSxh/hozon/internal/pathutil"
	"github.com/google/uuid"
)

// epubWriter packages a volume as an EPUB 3 container. Every page
// becomes one XHTML document wrapping its image; reading direction is
// carried on the spine. A cover is mandatory: the explicit cover if one
// is configured, otherwise the first page of the volume's first chapter.
type epubWriter struct{}

const epubStylesheet = `html, body {
  margin: 0;
  padding: 0;
  height: 100%;
}
img.page {
  display: block;
  margin: 0 auto;
  max-width: 100%;
  max-height: 100%;
}
`

const containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`

func (w *epubWriter) Write(path string, volume model.Volume, info VolumeInfo) error {
	cover := info.Cover
	if cover == "" {
		if len(volume) == 0 || len(volume[0]) == 0 {
			return fmt.Errorf("volume %d needs a cover but its first chapter has no pages", info.Number)
		}
		cover = volume[0][0]
	}
	coverExt, coverMime, err := pathutil.FileInfo(cover)
	if err != nil {
		return fmt.Errorf("cover %s: %w", cover, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	archive := zip.NewWriter(file)

	// The mimetype entry must be first and stored uncompressed.
	mimetype, err := archive.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		return err
	}
	if _, err := mimetype.Write([]byte("application/epub+zip")); err != nil {
		return err
	}

	if err := addZipString(archive, "META-INF/container.xml", containerXML); err != nil {
		return err
	}
	if err := addZipString(archive, "OEBPS/style.css", epubStylesheet); err != nil {
		return err
	}
	if err := addZipFile(archive, "OEBPS/cover."+coverExt, cover); err != nil {
		return err
	}

	var manifest, spine, nav strings.Builder

	fmt.Fprintf(&manifest, `    <item id="cover-image" href="cover.%s" media-type="%s" properties="cover-image"/>`+"\n", coverExt, coverMime)
	manifest.WriteString(`    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>` + "\n")
	manifest.WriteString(`    <item id="css" href="style.css" media-type="text/css"/>` + "\n")

	for ci, chapter := range volume {
		chapterDir := fmt.Sprintf("chapters/chapter_%03d", ci+1)
		for pi, src := range chapter {
			ext, mime, err := pathutil.FileInfo(src)
			if err != nil {
				return fmt.Errorf("page %s: %w", src, err)
			}

			imgName := fmt.Sprintf("%s/img_%03d.%s", chapterDir, pi+1, ext)
			pageName := fmt.Sprintf("%s/page_%03d.xhtml", chapterDir, pi+1)
			imgID := fmt.Sprintf("img-%03d-%03d", ci+1, pi+1)
			pageID := fmt.Sprintf("page-%03d-%03d", ci+1, pi+1)

			if err := addZipFile(archive, "OEBPS/"+imgName, src); err != nil {
				return err
			}
			page := pageXHTML(fmt.Sprintf("img_%03d.%s", pi+1, ext), chapter.Name())
			if err := addZipString(archive, "OEBPS/"+pageName, page); err != nil {
				return err
			}

			fmt.Fprintf(&manifest, `    <item id="%s" href="%s" media-type="%s"/>`+"\n", imgID, imgName, mime)
			fmt.Fprintf(&manifest, `    <item id="%s" href="%s" media-type="application/xhtml+xml"/>`+"\n", pageID, pageName)
			fmt.Fprintf(&spine, `    <itemref idref="%s"/>`+"\n", pageID)

			if pi == 0 {
				fmt.Fprintf(&nav, `      <li><a href="%s">%s</a></li>`+"\n", pageName, xmlEscape(chapter.Name()))
			}
		}
	}

	opf := buildOPF(info, manifest.String(), spine.String())
	if err := addZipString(archive, "OEBPS/content.opf", opf); err != nil {
		return err
	}
	if err := addZipString(archive, "OEBPS/nav.xhtml", navXHTML(nav.String())); err != nil {
		return err
	}

	if err := archive.Close(); err != nil {
		return err
	}
	return file.Close()
}

// buildOPF assembles the package document: Dublin Core metadata, the
// manifest, and a spine carrying the page-progression direction.
func buildOPF(info VolumeInfo, manifest, spine string) string {
	meta := info.Metadata

	identifier := meta.Identifier
	if identifier == "" {
		identifier = "urn:uuid:" + uuid.NewString()
	}

	released := meta.ReleaseDate
	if released.IsZero() {
		released = time.Now()
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="pub-id">` + "\n")
	b.WriteString(`  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">` + "\n")
	fmt.Fprintf(&b, `    <dc:identifier id="pub-id">%s</dc:identifier>`+"\n", xmlEscape(identifier))
	fmt.Fprintf(&b, `    <dc:title>%s</dc:title>`+"\n", xmlEscape(volumeTitle(info)))
	fmt.Fprintf(&b, `    <dc:language>%s</dc:language>`+"\n", xmlEscape(meta.Language))
	fmt.Fprintf(&b, `    <dc:date>%s</dc:date>`+"\n", released.Format("2006-01-02"))
	fmt.Fprintf(&b, `    <meta property="dcterms:modified">%s</meta>`+"\n", time.Now().UTC().Format("2006-01-02T15:04:05Z"))
	for _, author := range meta.Authors {
		fmt.Fprintf(&b, `    <dc:creator>%s</dc:creator>`+"\n", xmlEscape(author))
	}
	if meta.Publisher != "" {
		fmt.Fprintf(&b, `    <dc:publisher>%s</dc:publisher>`+"\n", xmlEscape(meta.Publisher))
	}
	if meta.Description != "" {
		fmt.Fprintf(&b, `    <dc:description>%s</dc:description>`+"\n", xmlEscape(meta.Description))
	}
	if meta.Rights != "" {
		fmt.Fprintf(&b, `    <dc:rights>%s</dc:rights>`+"\n", xmlEscape(meta.Rights))
	}
	for _, tag := range meta.Tags {
		fmt.Fprintf(&b, `    <dc:subject>%s</dc:subject>`+"\n", xmlEscape(tag))
	}

	keys := make([]string, 0, len(meta.CustomFields))
	for k := range meta.CustomFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, `    <meta property="hozon:%s">%s</meta>`+"\n", xmlEscape(k), xmlEscape(meta.CustomFields[k]))
	}

	b.WriteString("  </metadata>\n")
	b.WriteString("  <manifest>\n")
	b.WriteString(manifest)
	b.WriteString("  </manifest>\n")
	fmt.Fprintf(&b, `  <spine page-progression-direction="%s">`+"\n", info.Direction)
	b.WriteString(spine)
	b.WriteString("  </spine>\n")
	b.WriteString("</package>\n")
	return b.String()
}

// volumeTitle composes the display title: series and title when both are
// set and differ, plus a volume suffix on multi-volume runs.
func volumeTitle(info VolumeInfo) string {
	meta := info.Metadata
	title := meta.Title
	if meta.Series != "" && meta.Series != meta.Title {
		title = meta.Series + " - " + title
	}
	if info.Total > 1 {
		title = fmt.Sprintf("%s Vol %d", title, info.Number)
	}
	return title
}

func pageXHTML(imgHref, alt string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <title>%s</title>
  <link rel="stylesheet" type="text/css" href="../../style.css"/>
</head>
<body>
  <img class="page" src="%s" alt="%s"/>
</body>
</html>
`, xmlEscape(alt), imgHref, xmlEscape(alt))
}

func navXHTML(items string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head>
  <title>Contents</title>
</head>
<body>
  <nav epub:type="toc">
    <ol>
%s    </ol>
  </nav>
</body>
</html>
`, items)
}

func addZipString(archive *zip.Writer, name, content string) error {
	entry, err := archive.Create(name)
	if err != nil {
		return err
	}
	_, err = entry.Write([]byte(content))
	return err
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
