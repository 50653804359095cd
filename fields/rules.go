// Package fields locates named header fields (total, date, invoice
// number, supplier, buyer, phone) on a reconstructed document using
// configurable spatial-anchor rules. An anchor is a line whose text
// matches one of a rule's keywords; the field value is either embedded
// in the anchor line itself or found in a geometric zone next to it.
package fields

// Direction selects the search zone relative to an anchor line.
type Direction int

const (
	// Right looks for candidates on the same visual line, to the right
	// of the anchor.
	Right Direction = iota
	// Below looks for candidates underneath the anchor, roughly
	// aligned on the left edge.
	Below
	// RightOrBelow accepts either zone. The Right branch uses a fixed
	// 20px vertical tolerance and the Below branch a fixed 100px
	// horizontal tolerance, regardless of the rule's own limits.
	RightOrBelow
)

// String returns a string representation of the direction
func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Below:
		return "below"
	case RightOrBelow:
		return "right_or_below"
	default:
		return "unknown"
	}
}

// Validator accepts or rejects a candidate value.
type Validator func(text string) bool

// Cleaner rewrites a candidate value before validation. Returning ""
// discards the candidate.
type Cleaner func(text string) string

// Rule describes how to locate one header field. Rules are independent
// of each other; the extractor applies them in order.
type Rule struct {
	// Field is the key under which the value is reported.
	Field string

	// Anchors are the keyword set identifying anchor lines. Anchors
	// shorter than 4 characters only match on word boundaries, so
	// "tel" matches "Tel: 0550" but not "hotel".
	Anchors []string

	// Direction selects the candidate zone relative to each anchor.
	Direction Direction

	// Validator must accept a candidate for it to be assigned.
	Validator Validator

	// Cleaner, when set, rewrites candidates before validation.
	Cleaner Cleaner

	// MaxDX and MaxDY bound the candidate zone in pixels.
	MaxDX float64
	MaxDY float64

	// ExcludeKeywords disqualifies anchor lines containing any of
	// these substrings ("Adresse No 1" should not anchor the invoice
	// number).
	ExcludeKeywords []string

	// FromAnchorLine first tries to read the value from the anchor
	// line itself ("Facture N° F-2023-001"). An in-line match is
	// authoritative: it is accepted at distance 0 and ends the rule.
	FromAnchorLine bool
}

// DefaultRules returns the built-in French+English rule set. The slice
// and its contents are freshly allocated, so callers may modify them
// before handing them to an Extractor.
func DefaultRules() []Rule {
	return []Rule{
		{
			Field: "total_ttc",
			Anchors: []string{
				"total", "total ttc", "net a payer", "montant total", "grand total", "total général",
				"total amount", "net to pay", "amount due",
			},
			Direction: Right,
			Validator: IsMoney,
			MaxDX:     600,
			MaxDY:     20,
		},
		{
			Field: "phone",
			Anchors: []string{
				"tel", "tél", "telephone", "téléphone", "mobile", "contact",
				"phone", "cell", "mob", "call",
			},
			Direction: RightOrBelow,
			Validator: IsPhone,
			MaxDX:     400,
			MaxDY:     60,
		},
		{
			Field: "invoice_date",
			Anchors: []string{
				"date", "le", "du", "facture du", "date facture",
				"invoice date", "dated", "date of issue",
			},
			Direction:      Right,
			FromAnchorLine: true,
			Validator:      IsDate,
			Cleaner:        CleanDate,
			MaxDX:          300,
			MaxDY:          20,
		},
		{
			Field: "invoice_number",
			Anchors: []string{
				"facture n", "bon de livraison", "bl n", "n°", "n 0",
				"invoice no", "invoice #", "inv #", "ref :",
			},
			// The "Bon de livraison" title usually sits above the number.
			Direction:       RightOrBelow,
			FromAnchorLine:  true,
			Validator:       IsAlphanumeric,
			Cleaner:         CleanInvoiceNumber,
			MaxDX:           300,
			MaxDY:           60,
			ExcludeKeywords: []string{"adresse", "tel", "page", "client", "rocade", "gare"},
		},
		{
			Field: "supplier_name",
			Anchors: []string{
				"fournisseur", "vendeur", "société", "societe", "entreprise",
				"expéditeur", "expediteur", "émetteur", "emetteur",
				"supplier", "seller", "company", "from",
			},
			Direction:       RightOrBelow,
			FromAnchorLine:  true,
			Validator:       IsTextBlock,
			Cleaner:         CleanSupplierName,
			MaxDX:           400,
			MaxDY:           120,
			ExcludeKeywords: []string{"client", "buyer", "facture", "invoice", "bon de livraison", "date", "tel", "adresse"},
		},
		{
			Field: "buyer_name",
			Anchors: []string{
				"client", "facturé à", "doit", "acheteur", "destinataire", "au nom de",
				"bill to", "sold to", "customer", "buyer",
			},
			Direction:      RightOrBelow,
			FromAnchorLine: true,
			Validator:      IsTextBlock,
			Cleaner:        CleanBuyerName,
			MaxDX:          400,
			MaxDY:          150,
		},
	}
}
