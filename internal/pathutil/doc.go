// Package pathutil provides filename classification and comparison helpers
// used throughout the conversion pipeline.
//
// This package contains functions for:
//   - Hidden-file detection
//   - Supported image format checks (jpg/jpeg, png, webp)
//   - Numeric sort-key extraction from filenames
//   - Filename sanitization for cross-platform output files
//
// None of these functions perform I/O; they operate on path strings only.
package pathutil
