package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RuneWidth returns the display width of a rune. East Asian wide
// characters take two columns.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadString right-pads a string with spaces to the given display width.
// Profile and stack names may contain CJK text, which tabwriter would
// misalign.
func PadString(s string, width int) string {
	currentWidth := StringWidth(s)
	if currentWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-currentWidth)
}
