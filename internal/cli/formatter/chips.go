package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/erinhale/kcal/internal/domain"
)

var chipStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorDim).
	PaddingLeft(1).
	PaddingRight(1)

// Chip renders a single food line item as a bordered chip. Fallback items
// (no table match) show a "~" guess marker and a dim value.
func Chip(item domain.FoodLineItem) string {
	label := StyleFg.Render(item.Label)

	var value string
	if item.Matched {
		value = CalorieStyle(item.Calories).Render(FormatKcal(item.Calories))
	} else {
		value = StyleDim.Render("~" + FormatKcal(item.Calories) + " (guess)")
	}

	return chipStyle.Render(label + Dim(" · ") + value)
}

// ChipRow renders item chips side by side, wrapping to a new row when the
// terminal width would be exceeded. A width of 0 disables wrapping.
func ChipRow(items []domain.FoodLineItem, width int) string {
	if len(items) == 0 {
		return ""
	}

	var rows []string
	var row []string
	rowWidth := 0
	for _, item := range items {
		chip := Chip(item)
		w := lipgloss.Width(chip)
		if width > 0 && rowWidth > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
			rowWidth = 0
		}
		row = append(row, chip)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}
