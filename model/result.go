package model

import (
	"encoding/json"
	"math"
)

// ColumnType identifies the semantic role of a table column. Columns
// that match no standard keyword list are typed "extra_<slug>" where
// slug is the alphanumeric-only lowercase of the header text.
type ColumnType string

// Standard column types, in no particular order. Classification
// priority lives in the tables package.
const (
	ColDescription ColumnType = "description"
	ColQuantity    ColumnType = "quantity"
	ColUnitPrice   ColumnType = "unit_price"
	ColTotal       ColumnType = "total"
	ColUnit        ColumnType = "unit"
	ColReference   ColumnType = "reference"
	ColExtraN      ColumnType = "extra_n"
)

// ExtraColumn builds the column type for an unrecognized header slug.
func ExtraColumn(slug string) ColumnType {
	return ColumnType("extra_" + slug)
}

// IsExtra reports whether the type is a named extra column. The
// numbering column ("extra_n") is not considered a named extra.
func (c ColumnType) IsExtra() bool {
	return c != ColExtraN && len(c) > 6 && c[:6] == "extra_"
}

// unboundedX is the JSON stand-in for an unbounded right edge:
// encoding/json cannot represent +Inf.
const unboundedX = 99999

// Column is one inferred table column. The half-open ranges
// [XStart, XEnd) of a schema partition [0, +Inf): consecutive columns
// share an edge, the first starts at 0 and the last ends at +Inf.
type Column struct {
	Type   ColumnType `json:"type"`
	Label  string     `json:"label"`
	XStart float64    `json:"x_start"`
	XEnd   float64    `json:"x_end"`
}

// MarshalJSON clamps an infinite XEnd to the unboundedX sentinel so the
// schema stays representable in plain JSON.
func (c Column) MarshalJSON() ([]byte, error) {
	type alias Column
	a := alias(c)
	if math.IsInf(a.XEnd, 1) {
		a.XEnd = unboundedX
	}
	return json.Marshal(a)
}

// Contains reports whether an x coordinate falls in [XStart, XEnd).
func (c Column) Contains(x float64) bool {
	return x >= c.XStart && x < c.XEnd
}

// Validation carries the arithmetic check result for one row.
// CalculatedTotal is quantity × unit price, or 0 when the quantity is
// unknown.
type Validation struct {
	IsValid         bool    `json:"is_valid"`
	CalculatedTotal float64 `json:"calculated_total"`
}

// Row is one extracted table row: cell text keyed by column type, plus
// the arithmetic validation verdict. Rows with no cells are never
// emitted.
type Row struct {
	Cells      map[ColumnType]string
	Validation Validation
}

// Get returns the cell text for a column type, or "" when absent.
func (r Row) Get(t ColumnType) string {
	return r.Cells[t]
}

// Set stores cell text, allocating the cell map on first use.
func (r *Row) Set(t ColumnType, text string) {
	if r.Cells == nil {
		r.Cells = make(map[ColumnType]string)
	}
	r.Cells[t] = text
}

// MarshalJSON flattens the cells into the row object and attaches the
// validation verdict under "_validation". encoding/json sorts map keys,
// so the output is deterministic.
func (r Row) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Cells)+1)
	for t, v := range r.Cells {
		out[string(t)] = v
	}
	out["_validation"] = r.Validation
	return json.Marshal(out)
}

// Table is the extracted item table. Error is set (and Headers/Rows
// left empty) when no header row could be found; it is a reported
// condition, not a failure.
type Table struct {
	Headers []Column `json:"headers"`
	Rows    []Row    `json:"rows"`
	Error   string   `json:"error,omitempty"`
}

// ExtractionResult joins the header fields and the item table for one
// document. A downstream consumer must tolerate empty Fields, empty
// Rows and a non-empty table Error.
type ExtractionResult struct {
	Fields map[string]string `json:"fields"`
	Table  Table             `json:"table"`
}
