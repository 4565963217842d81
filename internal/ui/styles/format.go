package styles

import "github.com/mattn/go-runewidth"

// TruncateString truncates s to maxWidth cells, ending in "..." when cut.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate("...", maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
