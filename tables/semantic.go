package tables

import (
	"sort"
	"strings"
	"unicode"

	"facture/model"
)

// applySemanticCorrections repairs common column-confusion patterns by
// content shape rather than position. Per row, in order:
//
//  1. A Reference cell holding prose while Description is empty moves
//     to Description (references are codes or plain integers).
//  2. An empty Reference is backfilled from the numbering column when
//     one exists (redundant "N" and "Ref" columns).
//  3. A still-empty Description takes the longest alphabetic value
//     among the named extra columns, blanking its source cell.
func applySemanticCorrections(rows []model.Row) []model.Row {
	for i := range rows {
		row := &rows[i]

		ref := cellTrimmed(*row, model.ColReference)
		desc := cellTrimmed(*row, model.ColDescription)
		if ref != "" && desc == "" && hasAlpha(ref) && !isInteger(ref) {
			row.Set(model.ColDescription, ref)
			row.Set(model.ColReference, "")
		}

		ref = cellTrimmed(*row, model.ColReference)
		if n := cellTrimmed(*row, model.ColExtraN); ref == "" && n != "" {
			row.Set(model.ColReference, n)
		}

		if cellTrimmed(*row, model.ColDescription) == "" {
			if key, text := longestExtraText(*row); key != "" {
				row.Set(model.ColDescription, text)
				row.Set(key, "")
			}
		}
	}
	return rows
}

// longestExtraText returns the named extra column holding the longest
// alphabetic text, or ("", "") when none qualifies. Candidates are
// ordered by length, then key, so the pick never depends on map
// iteration order.
func longestExtraText(row model.Row) (model.ColumnType, string) {
	type candidate struct {
		key  model.ColumnType
		text string
	}
	var candidates []candidate
	for key, value := range row.Cells {
		if !key.IsExtra() {
			continue
		}
		text := strings.TrimSpace(value)
		if text != "" && hasAlpha(text) {
			candidates = append(candidates, candidate{key, text})
		}
	}
	if len(candidates) == 0 {
		return "", ""
	}

	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i].text) != len(candidates[j].text) {
			return len(candidates[i].text) > len(candidates[j].text)
		}
		return candidates[i].key < candidates[j].key
	})
	return candidates[0].key, candidates[0].text
}

func hasAlpha(text string) bool {
	return strings.ContainsFunc(text, unicode.IsLetter)
}

// isInteger reports whether text is digits only.
func isInteger(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
