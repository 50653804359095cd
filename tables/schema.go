// Package tables discovers an item table on a reconstructed document
// with no fixed template: it finds a header row by keyword density,
// infers a typed column schema from the header geometry, clusters body
// lines into rows, maps them to columns, repairs common column
// confusions and validates the row arithmetic.
package tables

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"facture/internal/fold"
	"facture/model"
)

// ColumnKeywords binds a column type to the header keywords that
// identify it. Order in a keyword set matters only across sets: the
// classifier tries sets in slice order and the first containing match
// wins, so specific types (total, price) must precede generic ones
// (description).
type ColumnKeywords struct {
	Type     model.ColumnType
	Keywords []string
}

// DefaultColumnKeywords returns the built-in French+English header
// keyword sets in classification priority order.
func DefaultColumnKeywords() []ColumnKeywords {
	return []ColumnKeywords{
		{model.ColTotal, []string{"montant", "total", "prix total", "amount", "valeur", "net a payer"}},
		{model.ColUnitPrice, []string{"p.u", "pu", "prix", "price", "unitaire", "u.p"}},
		{model.ColQuantity, []string{"qté", "qte", "quantite", "qty", "quantity", "nombre", "q.te"}},
		{model.ColUnit, []string{"unité", "unite", "u", "carton", "boite", "colis"}},
		{model.ColExtraN, []string{"n°", "no", "num", "#"}},
		{model.ColReference, []string{"reference", "référence", "ref", "code"}},
		{model.ColDescription, []string{"description", "designation", "désignation", "libelle", "article", "produit", "nature"}},
	}
}

// classify maps a header cell text to a column type: the first keyword
// set with a containing match, in priority order, else an extra column
// named after the slug of the text.
func classify(text string, classes []ColumnKeywords) model.ColumnType {
	folded := fold.Norm(text)
	for _, class := range classes {
		for _, k := range class.Keywords {
			if strings.Contains(folded, fold.Norm(k)) {
				return class.Type
			}
		}
	}
	return model.ExtraColumn(slug(text))
}

// slug reduces header text to its alphanumeric lowercase form
// ("Désignation." becomes "dsignation").
func slug(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// headerInfo is the outcome of header detection: the inferred column
// schema and the bottom edge of the header row.
type headerInfo struct {
	columns []model.Column
	yBottom float64
}

// buildSchema turns the winning header group into a column schema.
// Cells are ordered left to right; column boundaries are the midpoints
// between adjacent header edges, the first column starts at 0 and the
// last is unbounded, so the ranges partition [0, +Inf) with no gaps
// and no overlaps.
func buildSchema(group []model.Line, classes []ColumnKeywords) headerInfo {
	cells := make([]model.Line, len(group))
	copy(cells, group)
	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].BBox.X < cells[j].BBox.X
	})

	columns := make([]model.Column, 0, len(cells))
	yBottom := 0.0
	for i, cell := range cells {
		xStart := 0.0
		if i > 0 {
			xStart = (cells[i-1].BBox.Right() + cell.BBox.X) / 2
		}
		xEnd := math.Inf(1)
		if i < len(cells)-1 {
			xEnd = (cell.BBox.Right() + cells[i+1].BBox.X) / 2
		}

		columns = append(columns, model.Column{
			Type:   classify(cell.Text, classes),
			Label:  cell.Text,
			XStart: xStart,
			XEnd:   xEnd,
		})

		if cell.BBox.Bottom() > yBottom {
			yBottom = cell.BBox.Bottom()
		}
	}

	return headerInfo{columns: columns, yBottom: yBottom}
}

// refineColumns adjusts column types based on which headers co-exist.
// A table with a Reference column and no Description column usually
// holds the item names under Reference, so it is retyped.
func refineColumns(columns []model.Column) []model.Column {
	hasDesc := false
	hasRef := false
	for _, c := range columns {
		switch c.Type {
		case model.ColDescription:
			hasDesc = true
		case model.ColReference:
			hasRef = true
		}
	}

	if hasRef && !hasDesc {
		for i := range columns {
			if columns[i].Type == model.ColReference {
				columns[i].Type = model.ColDescription
			}
		}
	}
	return columns
}
