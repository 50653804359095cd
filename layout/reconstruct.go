// Package layout turns raw detector/recognizer output into canonical,
// reading-ordered line records. It is the first stage of the pipeline;
// everything downstream assumes its ordering invariant.
package layout

import (
	"sort"

	"facture/model"
)

// Reconstruct converts raw OCR records into Lines in reading order.
//
// The bounding box of each line is the axis-aligned hull of its quad,
// so arbitrary quad point ordering is tolerated; degenerate zero-area
// boxes pass through unchanged. The result is stable-sorted by the top
// edge Y, ties broken by original detection index, which makes the
// ordering deterministic for any input.
func Reconstruct(records []model.RawRecord) []model.Line {
	lines := make([]model.Line, 0, len(records))
	for _, rec := range records {
		lines = append(lines, model.Line{
			Index:      rec.Index,
			Text:       rec.Text,
			Confidence: rec.Confidence,
			BBox:       rec.Quad.Bounds(),
			Quad:       rec.Quad,
		})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].BBox.Y != lines[j].BBox.Y {
			return lines[i].BBox.Y < lines[j].BBox.Y
		}
		return lines[i].Index < lines[j].Index
	})

	return lines
}
