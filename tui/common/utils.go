package common

import (
	"fmt"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Ellipsize truncates s to at most width display columns, appending an
// ellipsis when anything was cut. ANSI-aware so styled text keeps its
// escapes intact.
func Ellipsize(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return ansi.Cut(s, 0, width-1) + "…"
}

// FormatCount renders an engagement count compactly: 999, 1.2k, 34k.
func FormatCount(n int) string {
	switch {
	case n < 1000:
		return fmt.Sprintf("%d", n)
	case n < 10000:
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	default:
		return fmt.Sprintf("%dk", n/1000)
	}
}

// FormatDate renders a timestamp the way the comment list shows it.
func FormatDate(t time.Time) string {
	return t.Format("Jan 02, 2006")
}
