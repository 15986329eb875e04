// Package model defines the core data structures used throughout the
// hozon conversion pipeline.
//
// # Chapters and Volumes
//
// A Chapter is an ordered list of page image paths collected from one
// directory. A Volume is an ordered list of chapters packaged into a
// single output file:
//
//	chapter := model.Chapter{"ch1/001.jpg", "ch1/002.jpg"}
//	volume := model.Volume{chapter}
//	fmt.Println(chapter.Name()) // "ch1"
//	fmt.Println(volume.PageCount()) // 2
//
// # Metadata
//
// Metadata holds series-level descriptive fields embedded into generated
// files (ComicInfo.xml for CBZ, the OPF document for EPUB). It carries
// both JSON and YAML struct tags so it can live in settings files or a
// standalone series description file.
//
// # Reports
//
// AnalyzeReport summarizes findings about a source tree; StructureReport
// summarizes how chapters were grouped into volumes. Both are produced
// once per pipeline call and read-only afterward.
package model
