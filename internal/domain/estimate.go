package domain

import "time"

// FoodLineItem is one segment of the user's input with its estimated calories.
// Label keeps the trimmed input text verbatim; Matched is false when no table
// key matched and the flat fallback value was used.
type FoodLineItem struct {
	Label    string
	Calories int
	Matched  bool
}

// EstimateResult is the output of a single estimation run. Items preserve
// input order.
type EstimateResult struct {
	Items         []FoodLineItem
	TotalCalories int
}

// Consistent reports whether TotalCalories equals the sum of item calories.
func (r EstimateResult) Consistent() bool {
	sum := 0
	for _, it := range r.Items {
		sum += it.Calories
	}
	return sum == r.TotalCalories
}

// Estimate is a recorded estimation run — one history entry.
type Estimate struct {
	ID            string
	RawInput      string
	Items         []FoodLineItem
	TotalCalories int
	CreatedAt     time.Time
}

// Result returns the estimation output portion of the entry.
func (e *Estimate) Result() EstimateResult {
	return EstimateResult{Items: e.Items, TotalCalories: e.TotalCalories}
}
