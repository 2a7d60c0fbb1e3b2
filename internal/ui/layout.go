// Package ui provides shared TUI styling, layout helpers, and theme definitions.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PadRight pads s with spaces to the given width.
func PadRight(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// Overlay draws fg centred on top of bg, replacing whole lines. Lipgloss
// has no real compositing, so the overlay region is opaque.
func Overlay(bg, fg string, width, height int) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	top := (height - len(fgLines)) / 2
	if top < 0 {
		top = 0
	}
	for i, fl := range fgLines {
		row := top + i
		if row >= len(bgLines) {
			break
		}
		pad := (width - lipgloss.Width(fl)) / 2
		if pad < 0 {
			pad = 0
		}
		bgLines[row] = strings.Repeat(" ", pad) + fl
	}
	return strings.Join(bgLines, "\n")
}
