package fields

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	dateRe      = regexp.MustCompile(`\d{2,4}[/\-.]\d{1,2}[/\-.]\d{2,4}`)
	dayFirstRe  = regexp.MustCompile(`\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}`)
	yearFirstRe = regexp.MustCompile(`\d{4}[/\-.]\d{1,2}[/\-.]\d{1,2}`)
	dateSplitRe = regexp.MustCompile(`(?i)\s+(du|dated|le|date)\s+`)
	numericRe   = regexp.MustCompile(`^[\d\s\-/]+$`)
	nonDigitsRe = regexp.MustCompile(`[^\d]`)
)

// IsMoney accepts text that plausibly denotes an amount: it must carry
// at least one digit (currency symbols and thousand separators are
// fine).
func IsMoney(text string) bool {
	return strings.ContainsFunc(text, unicode.IsDigit)
}

// IsPhone accepts text containing at least 8 digits.
func IsPhone(text string) bool {
	return len(nonDigitsRe.ReplaceAllString(text, "")) >= 8
}

// IsDate accepts text containing a d/m/y-shaped number group with any
// of the usual separators.
func IsDate(text string) bool {
	return dateRe.MatchString(text)
}

// IsAlphanumeric accepts any text longer than one character.
func IsAlphanumeric(text string) bool {
	return len([]rune(text)) > 1
}

// IsTextBlock accepts prose-like text: longer than 3 characters and
// free of digits (an amount is never a name).
func IsTextBlock(text string) bool {
	return len([]rune(text)) > 3 && !IsMoney(text)
}

// CleanInvoiceNumber strips a trailing date clause from an invoice
// number ("123456 du 23/06/2025" becomes "123456") along with trailing
// separators.
func CleanInvoiceNumber(text string) string {
	parts := dateSplitRe.Split(text, 2)
	return strings.Trim(parts[0], " .:,")
}

// CleanBuyerName discards values that are really an address label that
// slipped past the anchor match.
func CleanBuyerName(text string) string {
	if strings.Contains(strings.ToLower(text), "adress") {
		return ""
	}
	return text
}

// CleanSupplierName discards values dominated by document or
// counterparty keywords.
func CleanSupplierName(text string) string {
	if text == "" {
		return ""
	}
	lower := strings.ToLower(text)
	for _, k := range []string{"client", "buyer", "facture", "invoice", "bon de livraison"} {
		if strings.Contains(lower, k) {
			return ""
		}
	}
	return strings.TrimSpace(text)
}

// CleanDate extracts the date substring from surrounding text,
// preferring day-first forms, then year-first; the input is returned
// unchanged when neither shape appears.
func CleanDate(text string) string {
	if text == "" {
		return ""
	}
	if m := dayFirstRe.FindString(text); m != "" {
		return m
	}
	if m := yearFirstRe.FindString(text); m != "" {
		return m
	}
	return text
}

// isPurelyNumeric reports whether text is made of digits, spaces,
// dashes and slashes only.
func isPurelyNumeric(text string) bool {
	return text != "" && numericRe.MatchString(text)
}
