package fields

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"facture/internal/fold"
	"facture/model"
)

// Fixed tolerances for the RightOrBelow zone, independent of the
// rule's own limits.
const (
	rightOrBelowDY = 20
	rightOrBelowDX = 100
)

// supplierStoplist disqualifies top-of-page lines from the supplier
// fallback guess.
var supplierStoplist = []string{"bon de livraison", "facture", "invoice", "client", "adresse", "tel", "date"}

var leadingSeparators = regexp.MustCompile(`^[:.\-\s]+`)

// Extractor locates header fields on a reconstructed line set.
type Extractor struct {
	rules []Rule
}

// NewExtractor creates an extractor with the default rule set.
func NewExtractor() *Extractor {
	return &Extractor{rules: DefaultRules()}
}

// NewExtractorWithRules creates an extractor with a custom rule set.
func NewExtractorWithRules(rules []Rule) *Extractor {
	return &Extractor{rules: rules}
}

// Extract applies every rule to the line set and returns the fields
// that validated. Lines must be in reading order (layout.Reconstruct
// output); the slice is never mutated. A field is assigned the
// validated candidate with the smallest anchor distance; an in-line
// "Label: Value" match wins outright at distance 0. Missing fields are
// simply absent from the map.
func (e *Extractor) Extract(lines []model.Line) map[string]string {
	fields := make(map[string]string)

	// Fold once; anchor matching and exclusion checks run on the
	// folded forms.
	folded := make([]string, len(lines))
	for i, l := range lines {
		folded[i] = fold.Norm(l.Text)
	}

	for _, rule := range e.rules {
		if value, ok := e.applyRule(rule, lines, folded); ok {
			fields[rule.Field] = value
		}
	}

	if _, ok := fields["supplier_name"]; !ok {
		if guess := guessSupplierName(lines); guess != "" {
			fields["supplier_name"] = guess
		}
	}

	return fields
}

// applyRule runs one rule over the line set.
func (e *Extractor) applyRule(rule Rule, lines []model.Line, folded []string) (string, bool) {
	best := math.Inf(1)
	value := ""

	for ai, anchor := range lines {
		if !matchesAnyAnchor(folded[ai], rule.Anchors) {
			continue
		}
		if excludedAnchor(anchor.Text, rule.ExcludeKeywords) {
			continue
		}

		if rule.FromAnchorLine {
			if val := extractSuffix(anchor.Text, rule.Anchors); val != "" {
				cleaned := val
				if rule.Cleaner != nil {
					cleaned = rule.Cleaner(val)
				}
				if cleaned != "" && rule.Validator(cleaned) {
					return cleaned, true
				}
				// The raw suffix may validate even when the cleaner
				// rejected it.
				if rule.Validator(val) {
					return val, true
				}
			}
		}

		for ci, cand := range lines {
			if ci == ai || !inZone(anchor.BBox, cand.BBox, rule) {
				continue
			}

			text := cand.Text
			if rule.Cleaner != nil {
				cleaned := rule.Cleaner(text)
				if cleaned != "" && rule.Validator(cleaned) {
					if d := anchorDistance(anchor.BBox, cand.BBox); d < best {
						best = d
						value = cleaned
					}
				}
				continue
			}
			if rule.Validator(text) {
				if d := anchorDistance(anchor.BBox, cand.BBox); d < best {
					best = d
					value = text
				}
			}
		}
	}

	return value, value != ""
}

// inZone reports whether a candidate box qualifies for the rule's
// search zone relative to the anchor box.
func inZone(anchor, cand model.BBox, rule Rule) bool {
	switch rule.Direction {
	case Right:
		return math.Abs(anchor.CenterY()-cand.CenterY()) < rule.MaxDY &&
			cand.X > anchor.Right() && cand.X-anchor.Right() < rule.MaxDX
	case Below:
		return cand.Y > anchor.Bottom() && cand.Y-anchor.Bottom() < rule.MaxDY &&
			math.Abs(cand.X-anchor.X) < rule.MaxDX
	case RightOrBelow:
		isRight := math.Abs(anchor.CenterY()-cand.CenterY()) < rightOrBelowDY &&
			cand.X > anchor.Right() && cand.X-anchor.Right() < rule.MaxDX
		isBelow := cand.Y > anchor.Bottom() && cand.Y-anchor.Bottom() < rule.MaxDY &&
			math.Abs(cand.X-anchor.X) < rightOrBelowDX
		return isRight || isBelow
	default:
		return false
	}
}

// anchorDistance is the Euclidean distance between the top-left
// corners of the anchor and candidate boxes.
func anchorDistance(anchor, cand model.BBox) float64 {
	return anchor.TopLeft().Distance(cand.TopLeft())
}

// matchesAnyAnchor reports whether the folded line text contains any of
// the rule anchors. Anchors shorter than 4 characters require a word
// boundary on both sides, so "ref" does not match inside "reference".
func matchesAnyAnchor(folded string, anchors []string) bool {
	for _, a := range anchors {
		k := fold.Norm(a)
		if k == "" || !strings.Contains(folded, k) {
			continue
		}
		if utf8.RuneCountInString(k) >= 4 || containsWord(folded, k) {
			return true
		}
	}
	return false
}

// containsWord reports whether text contains key with non-letter
// characters (or the string edges) on both sides.
func containsWord(text, key string) bool {
	for start := 0; ; {
		i := strings.Index(text[start:], key)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(key)
		beforeOK := i == 0 || !isAsciiLower(text[i-1])
		afterOK := end == len(text) || !isAsciiLower(text[end])
		if beforeOK && afterOK {
			return true
		}
		start = i + 1
	}
}

// hasTrailingBoundary reports whether some occurrence of key in text is
// followed by a non-letter or the end of the string.
func hasTrailingBoundary(text, key string) bool {
	for start := 0; ; {
		i := strings.Index(text[start:], key)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(key)
		if end == len(text) || !isAsciiLower(text[end]) {
			return true
		}
		start = i + 1
	}
}

func isAsciiLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}

// excludedAnchor reports whether the raw anchor text carries any
// exclusion keyword.
func excludedAnchor(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	folded := fold.Norm(text)
	for _, k := range keywords {
		if strings.Contains(folded, fold.Norm(k)) {
			return true
		}
	}
	return false
}

// extractSuffix removes the longest matching anchor keyword from the
// line text and returns what remains after leading separators are
// stripped ("Client Passager" yields "Passager"). Returns "" when no
// anchor matches or nothing is left.
func extractSuffix(text string, anchors []string) string {
	folded := fold.Norm(text)
	longest := ""
	for _, a := range anchors {
		k := fold.Norm(a)
		if k == "" || !strings.Contains(folded, k) {
			continue
		}
		// Short keys must not end inside a longer word ("ref" must not
		// consume the head of "reference").
		if utf8.RuneCountInString(k) < 4 && !hasTrailingBoundary(folded, k) {
			continue
		}
		// Only anchors literally present (case aside) can be stripped:
		// "société" must not shadow "societe" on accentless OCR text, or
		// the label would survive into the value.
		if !containsFold(text, a) {
			continue
		}
		if len(a) > len(longest) {
			longest = a
		}
	}
	if longest == "" {
		return ""
	}

	remaining := strings.TrimSpace(removeFold(text, longest))
	remaining = strings.TrimSpace(leadingSeparators.ReplaceAllString(remaining, ""))
	return remaining
}

// containsFold reports whether text contains key under simple
// case-insensitive comparison (no accent folding).
func containsFold(text, key string) bool {
	keyRunes := []rune(key)
	if len(keyRunes) == 0 {
		return false
	}
	runes := []rune(text)
	for i := 0; i+len(keyRunes) <= len(runes); i++ {
		if strings.EqualFold(string(runes[i:i+len(keyRunes)]), key) {
			return true
		}
	}
	return false
}

// removeFold removes every case-insensitive occurrence of key from
// text. Occurrences differing only in letter case are removed; an
// accent mismatch leaves the text untouched.
func removeFold(text, key string) string {
	keyRunes := []rune(key)
	if len(keyRunes) == 0 {
		return text
	}
	runes := []rune(text)
	var out []rune
	for i := 0; i < len(runes); {
		if i+len(keyRunes) <= len(runes) &&
			strings.EqualFold(string(runes[i:i+len(keyRunes)]), key) {
			i += len(keyRunes)
			continue
		}
		out = append(out, runes[i])
		i++
	}
	return string(out)
}

// guessSupplierName is the fallback when no supplier rule matched:
// the first plausible line, by (y, x) order, in the top 20% of the
// page. Document-type keywords and purely numeric lines are excluded.
func guessSupplierName(lines []model.Line) string {
	if len(lines) == 0 {
		return ""
	}

	maxY := 0.0
	for _, l := range lines {
		if l.BBox.Y > maxY {
			maxY = l.BBox.Y
		}
	}
	if maxY == 0 {
		maxY = 1
	}
	topThreshold := maxY * 0.2

	var top []model.Line
	for _, l := range lines {
		if l.BBox.Y > topThreshold {
			continue
		}
		text := strings.TrimSpace(l.Text)
		if len([]rune(text)) < 3 || isPurelyNumeric(text) {
			continue
		}
		if excludedAnchor(text, supplierStoplist) {
			continue
		}
		top = append(top, l)
	}
	if len(top) == 0 {
		return ""
	}

	sort.SliceStable(top, func(i, j int) bool {
		if top[i].BBox.Y != top[j].BBox.Y {
			return top[i].BBox.Y < top[j].BBox.Y
		}
		return top[i].BBox.X < top[j].BBox.X
	})
	return strings.TrimSpace(top[0].Text)
}
