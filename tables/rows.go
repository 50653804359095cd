package tables

import (
	"math"
	"sort"
	"strings"

	"facture/model"
)

// clusterRows groups body lines into table rows by vertical proximity.
// The distance check is always anchored on the row's first line, not a
// running centroid: that keeps slightly slanted rows together the same
// way on every run. A line joins the open row while its top edge sits
// within averageHeight × RowOpenThreshold of the row anchor.
func (d *Detector) clusterRows(lines []model.Line) [][]model.Line {
	if len(lines) == 0 {
		return nil
	}

	sorted := make([]model.Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Y < sorted[j].BBox.Y
	})

	var rows [][]model.Line
	current := []model.Line{sorted[0]}

	for _, line := range sorted[1:] {
		avgHeight := 0.0
		for _, r := range current {
			avgHeight += r.BBox.Height
		}
		avgHeight /= float64(len(current))

		anchorY := current[0].BBox.Y
		if math.Abs(line.BBox.Y-anchorY) < avgHeight*d.config.RowOpenThreshold {
			current = append(current, line)
		} else {
			rows = append(rows, current)
			current = []model.Line{line}
		}
	}
	rows = append(rows, current)

	return rows
}

// mapToColumns assigns each line of a row to the first column whose
// [XStart, XEnd) range contains its horizontal center. Lines landing
// in the same column concatenate with a single space in row-scan
// order; lines matching no column are dropped. Rows that end up empty
// are not emitted.
func mapToColumns(rows [][]model.Line, columns []model.Column) []model.Row {
	structured := make([]model.Row, 0, len(rows))
	for _, items := range rows {
		var row model.Row
		for _, item := range items {
			cx := item.BBox.CenterX()
			for _, col := range columns {
				if col.Contains(cx) {
					if existing := row.Get(col.Type); existing != "" {
						row.Set(col.Type, existing+" "+item.Text)
					} else {
						row.Set(col.Type, item.Text)
					}
					break
				}
			}
		}
		if len(row.Cells) > 0 {
			structured = append(structured, row)
		}
	}
	return structured
}

// cellTrimmed returns the whitespace-trimmed cell value for a type.
func cellTrimmed(row model.Row, t model.ColumnType) string {
	return strings.TrimSpace(row.Get(t))
}
