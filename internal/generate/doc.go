// Package generate packages structured volumes into CBZ or EPUB files.
//
// The Generator writes one output file per volume, running volume tasks
// concurrently under a bounded ceiling. CBZ output is a ZIP archive with
// a ComicInfo.xml metadata entry; EPUB output is an EPUB 3 container
// with one XHTML document per page.
//
//	generator := generate.New(conv)
//	paths, err := generator.Generate(ctx, structured, generate.CoverPolicy{})
//
// Covers are optional for CBZ and mandatory for EPUB; when no explicit
// cover is supplied, EPUB generation falls back to the first page of a
// volume's first chapter.
package generate
