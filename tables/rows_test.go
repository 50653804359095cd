package tables

import (
	"math"
	"testing"

	"facture/model"
)

func TestClusterRows(t *testing.T) {
	d := NewDetector()

	lines := []model.Line{
		tline(0, "Clavier", 60, 140, 100, 20),
		tline(1, "2", 210, 145, 20, 20),
		tline(2, "Souris", 60, 180, 100, 20),
	}

	rows := d.clusterRows(lines)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if len(rows[0]) != 2 {
		t.Errorf("first row has %d lines, want 2", len(rows[0]))
	}
	if rows[1][0].Text != "Souris" {
		t.Errorf("second row starts with %q, want 'Souris'", rows[1][0].Text)
	}
}

func TestClusterRows_ThresholdAnchorsOnFirstLine(t *testing.T) {
	d := NewDetector() // threshold 0.7 of a 20px average height = 14px

	lines := []model.Line{
		tline(0, "a", 60, 100, 50, 20),
		tline(1, "b", 120, 113, 50, 20), // 13px below the anchor: joins
		tline(2, "c", 180, 126, 50, 20), // 26px below the anchor: new row
	}

	rows := d.clusterRows(lines)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if len(rows[0]) != 2 || len(rows[1]) != 1 {
		t.Errorf("row sizes = %d and %d, want 2 and 1", len(rows[0]), len(rows[1]))
	}
}

func TestClusterRows_Empty(t *testing.T) {
	if rows := NewDetector().clusterRows(nil); rows != nil {
		t.Errorf("clusterRows(nil) = %v, want nil", rows)
	}
}

func TestMapToColumns(t *testing.T) {
	columns := []model.Column{
		{Type: model.ColDescription, XStart: 0, XEnd: 275},
		{Type: model.ColQuantity, XStart: 275, XEnd: 375},
		{Type: model.ColTotal, XStart: 375, XEnd: math.Inf(1)},
	}
	rawRows := [][]model.Line{{
		tline(0, "Clavier", 50, 140, 100, 20),
		tline(1, "USB", 160, 140, 50, 20),
		tline(2, "2", 290, 140, 20, 20),
		tline(3, "500.00", 400, 140, 60, 20),
	}}

	rows := mapToColumns(rawRows, columns)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if got := row.Get(model.ColDescription); got != "Clavier USB" {
		t.Errorf("description = %q, want concatenated 'Clavier USB'", got)
	}
	if got := row.Get(model.ColQuantity); got != "2" {
		t.Errorf("quantity = %q, want '2'", got)
	}
	if got := row.Get(model.ColTotal); got != "500.00" {
		t.Errorf("total = %q, want '500.00'", got)
	}
}

func TestMapToColumns_DropsUnmatchedAndEmptyRows(t *testing.T) {
	columns := []model.Column{
		{Type: model.ColDescription, XStart: 100, XEnd: 200},
	}
	rawRows := [][]model.Line{
		{tline(0, "orphan", 300, 140, 40, 20)}, // center 320: no column
		{tline(1, "kept", 120, 180, 40, 20)},   // center 140: matches
	}

	rows := mapToColumns(rawRows, columns)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (rows with no matched cell are dropped)", len(rows))
	}
	if got := rows[0].Get(model.ColDescription); got != "kept" {
		t.Errorf("description = %q, want 'kept'", got)
	}
}
