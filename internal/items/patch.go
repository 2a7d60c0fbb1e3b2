package items

import (
	"fmt"
	"strings"

	"github.com/gex-tui/gex/internal/diff"
)

// HunkPatch returns a standalone patch applying just one hunk of a file.
func HunkPatch(fd *diff.FileDiff, h *diff.Hunk) string {
	return fd.FileHeader() + h.Text()
}

// LinePatch returns a standalone patch applying a single change line of a
// hunk. The other removed lines of the hunk become context and the other
// added lines are dropped, so the patch applies against the hunk's old
// content regardless of what else was changed; counts and the new-side
// start are recomputed to match.
func LinePatch(fd *diff.FileDiff, h *diff.Hunk, lineIdx int) string {
	var b strings.Builder

	oldLines, newLines := 0, 0
	for i, l := range h.Lines {
		selected := i == lineIdx
		switch {
		case l.Origin == diff.Context || (l.Origin == diff.Removed && !selected):
			oldLines++
			newLines++
			b.WriteByte(byte(diff.Context))
		case l.Origin == diff.Removed:
			oldLines++
			b.WriteByte(byte(diff.Removed))
		case l.Origin == diff.Added && !selected:
			continue
		default: // selected addition
			newLines++
			b.WriteByte(byte(diff.Added))
		}
		b.WriteString(l.Text)
		b.WriteByte('\n')
		if l.NoNewline {
			b.WriteString("\\ No newline at end of file\n")
		}
	}

	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, oldLines, h.OldStart, newLines)
	if h.FuncCtx != "" {
		header += " " + h.FuncCtx
	}
	return fd.FileHeader() + header + "\n" + b.String()
}
