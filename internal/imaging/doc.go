// Package imaging classifies page images as color or grayscale and uses
// the classification to find volume boundaries.
//
// The heuristic: chapter interiors of scanned books are almost always
// grayscale, while volume covers are printed in color. A chapter whose
// first page is a color image therefore likely starts a new volume.
//
// Classification works on a sparse pixel sample of a downscaled copy, so
// even large scans classify in a few milliseconds:
//
//	img, err := imaging.DecodeFile("cover.jpg")
//	gray := imaging.IsGrayscale(img, 0.75)
//
// DetectVolumeStarts applies the classifier to every chapter's first
// page concurrently and returns the boundary chapter indices.
package imaging
