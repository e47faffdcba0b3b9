package ratio

import (
	"fmt"
	"strings"
)

// FormatRatio renders a ratio value for display. Unavailable values
// render as "N/A"; everything else is fixed two-decimal notation, with a
// trailing "%" for percentage-style ratios. A present 0.0 renders as
// "0.00" / "0.00%", never "N/A".
func FormatRatio(value *float64, ratioName string) string {
	if value == nil {
		return "N/A"
	}
	if isPercentage(ratioName) {
		return fmt.Sprintf("%.2f%%", *value)
	}
	return fmt.Sprintf("%.2f", *value)
}

func isPercentage(ratioName string) bool {
	return strings.Contains(ratioName, "ROE") ||
		strings.Contains(ratioName, "ROA") ||
		strings.Contains(ratioName, "Margin")
}
