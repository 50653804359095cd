package tables

import (
	"math"
	"strings"

	"facture/internal/fold"
	"facture/model"
)

// NoHeaderMessage is reported in Table.Error when no line group
// qualifies as a header row. It is a degraded result, never a Go error.
const NoHeaderMessage = "no table header found"

// Config holds the tunables of table detection.
type Config struct {
	// HeaderYTolerance is the vertical-center distance (px) within
	// which lines join the same header candidate group.
	HeaderYTolerance float64

	// MinHeaderScore is the number of keyword-bearing cells a group
	// needs to qualify as a header row.
	MinHeaderScore int

	// RowOpenThreshold is the fraction of the average line height a
	// line may sit below the first line of the current row and still
	// join it. The source systems disagreed between 0.7 and 0.8; 0.7
	// is the default and the value is open to tuning.
	RowOpenThreshold float64

	// BoundaryMargin is the slack (px) applied at the header bottom
	// and the table end to absorb row boundary jitter.
	BoundaryMargin float64

	// Columns are the header keyword sets in classification priority
	// order.
	Columns []ColumnKeywords

	// StopKeywords mark the first line below the table body
	// (totals, bank details, signature blocks).
	StopKeywords []string
}

// DefaultConfig returns the default detection configuration.
func DefaultConfig() Config {
	return Config{
		HeaderYTolerance: 15,
		MinHeaderScore:   2,
		RowOpenThreshold: 0.7,
		BoundaryMargin:   5,
		Columns:          DefaultColumnKeywords(),
		StopKeywords: []string{
			"total", "net a payer", "montant", "arrête", "arrete",
			"banque", "règlement", "reglement", "tva", "signature",
			"amount", "bank", "payment", "tax",
		},
	}
}

// Detector discovers and extracts the item table of a document.
type Detector struct {
	config Config
}

// NewDetector creates a detector with the default configuration.
func NewDetector() *Detector {
	return &Detector{config: DefaultConfig()}
}

// NewDetectorWithConfig creates a detector with a custom configuration.
func NewDetectorWithConfig(config Config) *Detector {
	return &Detector{config: config}
}

// Extract runs the full table pipeline over a reading-ordered line
// set: header detection, schema inference, row clustering, column
// mapping, semantic correction and arithmetic validation. When no
// header qualifies it returns an empty table carrying NoHeaderMessage.
// The input slice is never mutated.
func (d *Detector) Extract(lines []model.Line) model.Table {
	header, ok := d.findHeader(lines)
	if !ok {
		return model.Table{
			Headers: []model.Column{},
			Rows:    []model.Row{},
			Error:   NoHeaderMessage,
		}
	}

	header.columns = refineColumns(header.columns)

	tableStart := header.yBottom
	tableEnd := d.findTableBottom(lines, tableStart)

	var body []model.Line
	for _, l := range lines {
		if l.BBox.Y > tableStart-d.config.BoundaryMargin && l.BBox.Y < tableEnd {
			body = append(body, l)
		}
	}

	rawRows := d.clusterRows(body)
	rows := mapToColumns(rawRows, header.columns)
	rows = applySemanticCorrections(rows)
	rows = validateArithmetic(rows)

	return model.Table{
		Headers: header.columns,
		Rows:    rows,
	}
}

// lineGroup is one candidate header group: lines sharing an
// approximate vertical center.
type lineGroup struct {
	center float64
	lines  []model.Line
}

// findHeader groups lines by vertical center (greedy first-fit over an
// ordered group list, so iteration order never depends on map order)
// and scores each group by how many of its cells contain a known
// column keyword. A cell contributes at most 1 regardless of how many
// keywords it holds. The qualifying group with the highest score wins;
// ties go to the lowest group, which is the first one encountered
// because lines arrive in reading order.
func (d *Detector) findHeader(lines []model.Line) (headerInfo, bool) {
	var groups []lineGroup
	for _, l := range lines {
		center := l.BBox.CenterY()
		placed := false
		for i := range groups {
			if math.Abs(groups[i].center-center) < d.config.HeaderYTolerance {
				groups[i].lines = append(groups[i].lines, l)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, lineGroup{center: center, lines: []model.Line{l}})
		}
	}

	keywords := d.allKeywords()

	best := headerInfo{}
	bestScore := 0
	for _, g := range groups {
		score := 0
		for _, l := range g.lines {
			if containsAnyKeyword(l.Text, keywords) {
				score++
			}
		}
		if score >= d.config.MinHeaderScore && score > bestScore {
			bestScore = score
			best = buildSchema(g.lines, d.config.Columns)
		}
	}

	return best, bestScore > 0
}

// allKeywords flattens the configured keyword sets.
func (d *Detector) allKeywords() []string {
	var all []string
	for _, class := range d.config.Columns {
		all = append(all, class.Keywords...)
	}
	return all
}

func containsAnyKeyword(text string, keywords []string) bool {
	folded := fold.Norm(text)
	for _, k := range keywords {
		if k != "" && strings.Contains(folded, fold.Norm(k)) {
			return true
		}
	}
	return false
}

// findTableBottom scans lines below the header in reading order and
// returns the y of the first stop-keyword line minus the boundary
// margin, or +Inf when the table runs to the end of the page.
func (d *Detector) findTableBottom(lines []model.Line, startY float64) float64 {
	for _, l := range lines {
		if l.BBox.Y <= startY {
			continue
		}
		folded := fold.Norm(l.Text)
		for _, w := range d.config.StopKeywords {
			if strings.Contains(folded, fold.Norm(w)) {
				return l.BBox.Y - d.config.BoundaryMargin
			}
		}
	}
	return math.Inf(1)
}
