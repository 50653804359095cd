package tables

import (
	"math"
	"testing"

	"facture/model"
)

func tline(index int, text string, x, y, w, h float64) model.Line {
	return model.Line{Index: index, Text: text, BBox: model.NewBBox(x, y, w, h)}
}

func TestExtract_NoHeader(t *testing.T) {
	lines := []model.Line{
		tline(0, "SARL TECHNO", 50, 20, 200, 20),
		tline(1, "Some free text", 50, 60, 200, 20),
	}

	table := NewDetector().Extract(lines)
	if table.Error != NoHeaderMessage {
		t.Errorf("Error = %q, want %q", table.Error, NoHeaderMessage)
	}
	if table.Headers == nil || len(table.Headers) != 0 {
		t.Errorf("Headers = %v, want empty non-nil slice", table.Headers)
	}
	if table.Rows == nil || len(table.Rows) != 0 {
		t.Errorf("Rows = %v, want empty non-nil slice", table.Rows)
	}
}

func TestExtract_MidpointPartition(t *testing.T) {
	lines := []model.Line{
		tline(0, "Qté", 200, 100, 50, 20),
		tline(1, "P.U.", 300, 100, 50, 20),
		tline(2, "Total", 400, 100, 50, 20),
	}

	table := NewDetector().Extract(lines)
	if table.Error != "" {
		t.Fatalf("unexpected error: %q", table.Error)
	}
	if len(table.Headers) != 3 {
		t.Fatalf("got %d headers, want 3", len(table.Headers))
	}

	want := []struct {
		typ    model.ColumnType
		xStart float64
		xEnd   float64
	}{
		{model.ColQuantity, 0, 275},
		{model.ColUnitPrice, 275, 375},
		{model.ColTotal, 375, math.Inf(1)},
	}
	for i, w := range want {
		col := table.Headers[i]
		if col.Type != w.typ {
			t.Errorf("column %d type = %q, want %q", i, col.Type, w.typ)
		}
		if col.XStart != w.xStart || col.XEnd != w.xEnd {
			t.Errorf("column %d range = [%v, %v), want [%v, %v)",
				i, col.XStart, col.XEnd, w.xStart, w.xEnd)
		}
	}
}

func TestExtract_StopKeywordEndsTable(t *testing.T) {
	lines := []model.Line{
		tline(0, "Désignation", 60, 100, 100, 20),
		tline(1, "Qté", 210, 100, 40, 20),
		tline(2, "Total", 410, 100, 50, 20),
		tline(3, "Clavier USB", 60, 140, 100, 20),
		tline(4, "2", 210, 140, 20, 20),
		tline(5, "500.00", 410, 140, 60, 20),
		tline(6, "Total TTC", 300, 200, 80, 20),
		tline(7, "Mentions légales", 60, 250, 150, 20),
	}

	table := NewDetector().Extract(lines)
	if table.Error != "" {
		t.Fatalf("unexpected error: %q", table.Error)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("got %d rows, want 1 (lines below the stop keyword must be dropped)", len(table.Rows))
	}
	if got := table.Rows[0].Get(model.ColDescription); got != "Clavier USB" {
		t.Errorf("description = %q, want 'Clavier USB'", got)
	}
}

func TestExtract_ReferenceRetypedWithoutDescription(t *testing.T) {
	lines := []model.Line{
		tline(0, "Ref", 60, 100, 50, 20),
		tline(1, "Montant", 400, 100, 70, 20),
	}

	table := NewDetector().Extract(lines)
	if table.Error != "" {
		t.Fatalf("unexpected error: %q", table.Error)
	}
	if len(table.Headers) != 2 {
		t.Fatalf("got %d headers, want 2", len(table.Headers))
	}
	if table.Headers[0].Type != model.ColDescription {
		t.Errorf("first column type = %q, want retype to %q",
			table.Headers[0].Type, model.ColDescription)
	}
}

func TestFindHeader_BestScoreWins(t *testing.T) {
	// y=50 carries two keyword cells, y=100 carries three.
	lines := []model.Line{
		tline(0, "Qté", 200, 50, 40, 20),
		tline(1, "Total", 400, 50, 50, 20),
		tline(2, "Désignation", 60, 100, 100, 20),
		tline(3, "Prix", 300, 100, 50, 20),
		tline(4, "Montant", 400, 100, 70, 20),
	}

	d := NewDetector()
	header, ok := d.findHeader(lines)
	if !ok {
		t.Fatal("no header found")
	}
	if header.yBottom != 120 {
		t.Errorf("yBottom = %v, want 120 (the three-keyword group)", header.yBottom)
	}
}

func TestFindHeader_TieGoesToLowestY(t *testing.T) {
	lines := []model.Line{
		tline(0, "Qté", 200, 50, 40, 20),
		tline(1, "Total", 400, 50, 50, 20),
		tline(2, "Prix", 300, 200, 50, 20),
		tline(3, "Montant", 400, 200, 70, 20),
	}

	d := NewDetector()
	header, ok := d.findHeader(lines)
	if !ok {
		t.Fatal("no header found")
	}
	if header.yBottom != 70 {
		t.Errorf("yBottom = %v, want 70 (tie must keep the first group)", header.yBottom)
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	classes := DefaultColumnKeywords()
	tests := []struct {
		text string
		want model.ColumnType
	}{
		{"Montant Total", model.ColTotal},
		{"Prix Unitaire", model.ColUnitPrice},
		{"QTÉ", model.ColQuantity},
		{"N°", model.ColExtraN},
		{"Référence", model.ColReference},
		{"Désignation", model.ColDescription},
		{"Observations", model.ExtraColumn("observations")},
	}
	for _, tt := range tests {
		if got := classify(tt.text, classes); got != tt.want {
			t.Errorf("classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
