// Package collect turns a source directory tree into ordered chapter and
// page lists, and analyzes the tree for problems worth reporting.
//
// # Collector
//
// The Collector scans one level at a time: chapter directories first,
// then each chapter's pages. Hidden entries are always skipped and only
// supported image files count as pages. Per-chapter page scans run
// concurrently under a bounded ceiling so very wide trees cannot exhaust
// file descriptors:
//
//	collector := collect.New(conv)
//	chapters, err := collector.Chapters(ctx)
//	pages, err := collector.Pages(ctx, chapters)
//
// # Analysis
//
// AnalyzeSource performs collection and then a best-effort inspection
// pass, accumulating findings (skipped files, inconsistent page counts,
// permission problems, unusual sizes) instead of failing:
//
//	content, err := collector.AnalyzeSource(ctx)
//	for _, f := range content.Report.Findings {
//	    fmt.Println(f.Kind, f.Path)
//	}
package collect
