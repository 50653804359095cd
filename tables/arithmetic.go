package tables

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"facture/model"
)

// arithmeticTolerance is the currency-unit slack allowed between
// quantity × unit price and the stated line total.
const arithmeticTolerance = 1.0

// quantityInferenceSlack is how close total/price must sit to an
// integer before a missing quantity is inferred from it.
const quantityInferenceSlack = 0.05

var decimalRe = regexp.MustCompile(`\d+([.,]\d+)?`)
var nonAmountRe = regexp.MustCompile(`[^\d.]`)

// parseAmount parses a price or total: spaces stripped, decimal comma
// normalized to a dot, every other character discarded. The boolean is
// false when no number remains; the coerce-to-zero policy lives with
// the caller so the fallback stays visible.
func parseAmount(text string) (float64, bool) {
	clean := strings.ReplaceAll(text, ",", ".")
	clean = strings.ReplaceAll(clean, " ", "")
	clean = nonAmountRe.ReplaceAllString(clean, "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseQuantity parses a quantity cell: "*" separators become spaces
// and the first decimal number wins, so "1*1" parses as 1.
func parseQuantity(text string) (float64, bool) {
	clean := strings.ReplaceAll(text, "*", " ")
	match := decimalRe.FindString(clean)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// validateArithmetic checks quantity × price ≈ total on every row and
// attaches the verdict. A quantity of zero is inferred from
// total/price when that ratio is near-integral. Parse failures coerce
// to zero here and never propagate; CalculatedTotal is always stored
// (zero when the quantity stays unknown).
func validateArithmetic(rows []model.Row) []model.Row {
	for i := range rows {
		row := &rows[i]

		qty, _ := parseQuantity(row.Get(model.ColQuantity))
		price, _ := parseAmount(row.Get(model.ColUnitPrice))
		total, _ := parseAmount(row.Get(model.ColTotal))

		if qty == 0 && price > 0 && total > 0 {
			ratio := total / price
			if math.Abs(ratio-math.Round(ratio)) < quantityInferenceSlack {
				qty = math.Round(ratio)
			}
		}

		valid := qty > 0 && price > 0 && total > 0 &&
			math.Abs(qty*price-total) < arithmeticTolerance

		calculated := 0.0
		if qty != 0 {
			calculated = qty * price
		}

		row.Validation = model.Validation{
			IsValid:         valid,
			CalculatedTotal: calculated,
		}
	}
	return rows
}
