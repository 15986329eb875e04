// Package convert coordinates the full conversion pipeline: collect,
// analyze, structure, generate.
//
// The Manager is the single entry point used by both CLI and TUI. It
// reports progress through a callback and exposes volume counters for
// pollers:
//
//	manager, err := convert.NewManager(settings, func(e convert.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	paths, err := manager.Convert(ctx)
//
// Each pipeline stage is also callable on its own (Analyze, Structure,
// ConvertStructured) for callers that want to inspect or adjust
// intermediate results.
package convert
