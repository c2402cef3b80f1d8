package palette

import "quickaction/internal/domain"

// Row is one rendered palette line
type Row struct {
	Icons  []string // padded with "" up to the minimum icon count
	Label  string
	Active bool
}

// ClampSelection moves selection into [0, n-1]. With n == 0 it returns 0.
func ClampSelection(selection, n int) int {
	if selection >= n {
		selection = n - 1
	}
	if selection < 0 {
		selection = 0
	}
	return selection
}

// PadIcons appends blank placeholders until there are at least min icons
func PadIcons(icons []string, min int) []string {
	padded := make([]string, 0, max(len(icons), min))
	padded = append(padded, icons...)
	for len(padded) < min {
		padded = append(padded, "")
	}
	return padded
}

// Render builds one row per item with the clamped selection marked active
func Render(items []domain.ActionItem, selection, minIcons int) []Row {
	if len(items) == 0 {
		return nil
	}
	active := ClampSelection(selection, len(items))

	rows := make([]Row, len(items))
	for i, item := range items {
		rows[i] = Row{
			Icons:  PadIcons(item.Icons, minIcons),
			Label:  item.Label,
			Active: i == active,
		}
	}
	return rows
}
