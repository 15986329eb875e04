// Package structure groups collected chapters into output volumes.
//
// Four strategies are available:
//
//   - manual: partition by explicit chapter counts, or keep everything in
//     one volume when no counts are given.
//   - name: read volume numbers out of chapter folder names like
//     "01-003" and start a new volume whenever the number changes.
//   - image: classify each chapter's first page; a color page marks a
//     volume boundary (see the imaging package).
//   - flat: merge every page into a single chapter in a single volume.
//
// Usage:
//
//	structurer := structure.New(conv)
//	structured, err := structurer.Structure(ctx, content)
//	for i, v := range structured.Volumes {
//	    fmt.Printf("volume %d: %d chapters\n", i+1, len(v))
//	}
package structure
