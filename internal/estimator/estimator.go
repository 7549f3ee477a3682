// Package estimator turns a free-text description of foods eaten into a
// per-item calorie breakdown. It is a deliberately naive heuristic: an
// ordered substring lookup plus a leading-digit quantity guess, with a flat
// fallback for anything unrecognized. It makes no attempt at nutritional
// accuracy or language understanding.
package estimator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/erinhale/kcal/internal/domain"
)

const (
	// DefaultFallbackCalories is assigned to a segment no table key matches.
	DefaultFallbackCalories = 120

	// DefaultQuantityDigits caps the leading-quantity capture at two digits.
	// Three or more digits simply fail to match and the quantity stays 1.
	DefaultQuantityDigits = 2
)

// Estimator estimates calories from free text. The zero value is not usable;
// construct with New. Estimators are immutable and safe for concurrent use.
type Estimator struct {
	table    Table
	fallback int
	qtyRe    *regexp.Regexp
}

// Option configures an Estimator during construction.
type Option func(*config)

type config struct {
	table    Table
	fallback int
	digits   int
}

// WithTable replaces the default calorie table.
func WithTable(t Table) Option {
	return func(c *config) { c.table = t }
}

// WithFallback replaces the flat calorie value used for unmatched segments.
func WithFallback(calories int) Option {
	return func(c *config) { c.fallback = calories }
}

// WithQuantityDigits replaces the maximum digit width of the leading-quantity
// heuristic. Values below 1 are ignored.
func WithQuantityDigits(digits int) Option {
	return func(c *config) {
		if digits >= 1 {
			c.digits = digits
		}
	}
}

// New creates an Estimator with the default table, fallback and quantity
// width unless overridden by options.
func New(opts ...Option) *Estimator {
	cfg := config{
		table:    DefaultTable(),
		fallback: DefaultFallbackCalories,
		digits:   DefaultQuantityDigits,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Estimator{
		table:    cfg.table,
		fallback: cfg.fallback,
		// A quantity is 1–N digits bounded by start-of-string or whitespace
		// on the left and whitespace on the right. The first such run wins.
		qtyRe: regexp.MustCompile(fmt.Sprintf(`(?:^|\s)([0-9]{1,%d})\s`, cfg.digits)),
	}
}

// Table returns the estimator's lookup table.
func (e *Estimator) Table() Table { return e.table }

// Estimate parses raw into comma/newline-separated segments and estimates
// calories for each. It is total over all string inputs: empty or
// whitespace-only input yields zero items, gibberish takes the fallback
// path. The returned result always satisfies Consistent().
func (e *Estimator) Estimate(raw string) domain.EstimateResult {
	var result domain.EstimateResult
	for _, seg := range splitSegments(raw) {
		item := e.estimateSegment(seg)
		result.Items = append(result.Items, item)
		result.TotalCalories += item.Calories
	}
	return result
}

// estimateSegment estimates a single trimmed segment.
func (e *Estimator) estimateSegment(seg string) domain.FoodLineItem {
	lowered := strings.ToLower(seg)

	entry, ok := e.table.Match(lowered)
	if !ok {
		return domain.FoodLineItem{Label: seg, Calories: e.fallback}
	}

	// Leading numeral heuristic: "2 eggs" → ×2. It has no unit awareness, so
	// "8 oz orange juice" also counts as ×8 — a known inaccuracy kept for
	// reproducibility.
	qty := 1
	if m := e.qtyRe.FindStringSubmatch(lowered); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			qty = n
		}
	}

	return domain.FoodLineItem{
		Label:    seg,
		Calories: entry.Calories * qty,
		Matched:  true,
	}
}

// splitSegments splits raw on commas and newlines, trims each piece and
// drops empties, preserving input order.
func splitSegments(raw string) []string {
	pieces := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	var segments []string
	for _, p := range pieces {
		if s := strings.TrimSpace(p); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
