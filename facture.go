// Package facture turns unordered per-line OCR output from a business
// document (invoice or delivery note) into structured data: named
// header fields and a line-item table. No trained layout model and no
// fixed template are involved; extraction relies on reading-order
// reconstruction, anchor-based spatial search and dynamic table-schema
// discovery.
//
// Basic usage:
//
//	engine := facture.New()
//	result := engine.Extract(records)
//	fmt.Println(result.Fields["total_ttc"])
//
// With options:
//
//	engine := facture.New(
//	    facture.WithRowOpenThreshold(0.8),
//	    facture.WithStopKeywords("total", "bank details"),
//	)
//
// The engine is deterministic and safe for concurrent use: every call
// operates on immutable snapshots and identical input always yields
// identical output.
package facture

import (
	"sync"

	"facture/fields"
	"facture/layout"
	"facture/model"
	"facture/tables"
)

// Engine runs the extraction pipeline over OCR output.
type Engine struct {
	fields *fields.Extractor
	tables *tables.Detector
}

// New creates an Engine, applying any options over the defaults.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		fields: fields.NewExtractorWithRules(o.rules),
		tables: tables.NewDetectorWithConfig(o.table),
	}
}

// Extract reconstructs raw OCR records into reading order and extracts
// header fields and the item table from them. Malformed document
// content never produces an error: heuristic failures degrade to
// missing fields, invalid rows or a table-level error message.
func (e *Engine) Extract(records []model.RawRecord) *model.ExtractionResult {
	return e.ExtractLines(layout.Reconstruct(records))
}

// ExtractLines runs field and table extraction over lines that are
// already in reading order. Both extractors read the same immutable
// slice and run concurrently; their outputs join into one result.
func (e *Engine) ExtractLines(lines []model.Line) *model.ExtractionResult {
	var (
		wg         sync.WaitGroup
		fieldMap   map[string]string
		tableValue model.Table
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		fieldMap = e.fields.Extract(lines)
	}()
	go func() {
		defer wg.Done()
		tableValue = e.tables.Extract(lines)
	}()
	wg.Wait()

	return &model.ExtractionResult{
		Fields: fieldMap,
		Table:  tableValue,
	}
}

// Extract is a convenience wrapper running a default Engine once.
func Extract(records []model.RawRecord) *model.ExtractionResult {
	return New().Extract(records)
}
