package facture

import (
	"facture/fields"
	"facture/tables"
)

// extractOptions holds the assembled engine configuration.
type extractOptions struct {
	rules []fields.Rule
	table tables.Config
}

// defaultOptions returns the built-in French+English configuration.
func defaultOptions() extractOptions {
	return extractOptions{
		rules: fields.DefaultRules(),
		table: tables.DefaultConfig(),
	}
}

// Option configures an Engine.
type Option func(*extractOptions)

// WithRules replaces the header-field rule set wholesale.
func WithRules(rules []fields.Rule) Option {
	return func(o *extractOptions) {
		o.rules = rules
	}
}

// WithTableConfig replaces the table detection configuration wholesale.
func WithTableConfig(config tables.Config) Option {
	return func(o *extractOptions) {
		o.table = config
	}
}

// WithRowOpenThreshold tunes the row clustering threshold: the
// fraction of the average line height a line may sit below the first
// line of a row and still belong to it.
func WithRowOpenThreshold(threshold float64) Option {
	return func(o *extractOptions) {
		o.table.RowOpenThreshold = threshold
	}
}

// WithColumnKeywords replaces the header keyword sets. Order is the
// classification priority: specific types must precede generic ones.
func WithColumnKeywords(columns []tables.ColumnKeywords) Option {
	return func(o *extractOptions) {
		o.table.Columns = columns
	}
}

// WithStopKeywords replaces the keywords that mark the end of the
// table body.
func WithStopKeywords(keywords ...string) Option {
	return func(o *extractOptions) {
		o.table.StopKeywords = keywords
	}
}
