// Package config holds the user-facing settings for a conversion run and
// the validated configuration derived from them.
//
// Settings is the mutable, serializable form: it can be loaded from and
// saved to a JSON file and edited by CLI flags. Conversion is the
// immutable form the pipeline consumes; it is produced by Settings.Build,
// which compiles custom regex patterns, range-checks the analysis
// sensitivity and resolves concurrency ceilings. Invalid settings never
// produce a Conversion value:
//
//	settings := config.DefaultSettings()
//	settings.SourcePath = "./scans"
//	settings.TargetPath = "./out"
//	settings.Metadata.Title = "My Series"
//
//	conv, err := settings.Build()
//	if err != nil {
//	    log.Fatal(err) // e.g. a malformed chapter regex
//	}
package config
