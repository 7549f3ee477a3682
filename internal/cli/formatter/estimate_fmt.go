package formatter

import (
	"fmt"
	"strings"

	"github.com/erinhale/kcal/internal/domain"
)

// FormatEstimate renders a full estimate: chip row plus total line.
// width bounds chip wrapping; 0 disables wrapping.
func FormatEstimate(e *domain.Estimate, width int) string {
	var b strings.Builder

	b.WriteString(ChipRow(e.Items, width))
	b.WriteString("\n")
	b.WriteString(FormatTotal(e.TotalCalories))

	if hasFallback(e.Items) {
		b.WriteString("\n")
		b.WriteString(Dim("~ marks foods not in the lookup table; their value is a flat guess."))
	}
	return b.String()
}

// FormatTotal renders the total calorie line.
func FormatTotal(calories int) string {
	return fmt.Sprintf("%s %s",
		Bold("Total:"),
		CalorieStyle(calories).Render(FormatKcal(calories)))
}

// FormatHistoryTable renders past estimates as an aligned table.
func FormatHistoryTable(estimates []*domain.Estimate) string {
	if len(estimates) == 0 {
		return Dim("No estimates yet.")
	}

	headers := []string{"ID", "WHEN", "INPUT", "ITEMS", "TOTAL"}
	rows := make([][]string, 0, len(estimates))
	for _, e := range estimates {
		rows = append(rows, []string{
			TruncID(e.ID),
			HumanTimestamp(e.CreatedAt),
			Truncate(e.RawInput, 40),
			fmt.Sprintf("%d", len(e.Items)),
			CalorieStyle(e.TotalCalories).Render(FormatKcal(e.TotalCalories)),
		})
	}
	return RenderTable(headers, rows)
}

func hasFallback(items []domain.FoodLineItem) bool {
	for _, it := range items {
		if !it.Matched {
			return true
		}
	}
	return false
}
