package model

// RawRecord is one recognized line as delivered by an OCR producer:
// a finite, order-independent set of these records is the upstream
// contract. Quads may be unordered and confidence may be zero; no other
// invariant is assumed.
type RawRecord struct {
	Index      int     `json:"index"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Quad       Quad    `json:"quad"`
}

// Line is a reconstructed text line in canonical reading order.
// Immutable once built: every stage of the pipeline reads the same Line
// slice and none mutates it.
type Line struct {
	Index      int     `json:"index"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	BBox       BBox    `json:"bbox"`
	Quad       Quad    `json:"quad"`
}
