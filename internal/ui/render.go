package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gex-tui/gex/internal/diff"
	"github.com/gex-tui/gex/internal/git"
	"github.com/gex-tui/gex/internal/items"
)

// RenderItem renders one outline row. collapsed marks an item whose
// children are currently hidden; selected rows get the cursor background
// across the full width.
func RenderItem(st Styles, it *items.Item, selected, collapsed bool, width int) string {
	indent := strings.Repeat("  ", it.Depth)

	var line string
	switch it.Kind {
	case items.KindHeader:
		line = st.SectionHeader.Render(it.Text)
	case items.KindFile:
		line = fileLine(st, it)
	case items.KindHunk:
		line = st.DiffHunkHeader.Render(it.Text)
	case items.KindLine:
		line = diffLine(st, it)
	case items.KindCommit:
		line = commitLine(st, it)
	case items.KindStash:
		line = st.StashName.Render(it.Meta) + " " + st.Text.Render(it.Text)
	case items.KindRef:
		line = refLine(st, it)
	default:
		line = st.Muted.Render(it.Text)
	}

	if collapsed {
		line += st.Muted.Render("…")
	}

	line = indent + line
	line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	if selected {
		line = st.Selected.Render(PadRight(line, width))
	}
	return line
}

func fileLine(st Styles, it *items.Item) string {
	var style = st.FileModified
	switch it.Status {
	case diff.StatusAdded, diff.StatusUntracked:
		style = st.FileAdded
	case diff.StatusDeleted:
		style = st.FileDeleted
	case diff.StatusRenamed, diff.StatusCopied:
		style = st.FileRenamed
	case diff.StatusUnmerged:
		style = st.FileConflict
	}
	line := style.Render(it.Status.String() + "  " + it.Text)
	if it.Meta != "" {
		line += " " + st.Muted.Render("("+it.Meta+")")
	}
	return line
}

func diffLine(st Styles, it *items.Item) string {
	switch it.Origin {
	case diff.Added:
		return st.DiffAdded.Render("+" + it.Text)
	case diff.Removed:
		return st.DiffRemoved.Render("-" + it.Text)
	default:
		return st.DiffContext.Render(" " + it.Text)
	}
}

func commitLine(st Styles, it *items.Item) string {
	parts := []string{st.CommitHash.Render(it.Meta)}
	if deco := refDecorations(st, it.Refs); deco != "" {
		parts = append(parts, deco)
	}
	parts = append(parts, st.Text.Render(it.Text))
	return strings.Join(parts, " ")
}

func refDecorations(st Styles, refs []git.Ref) string {
	if len(refs) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(refs))
	for _, r := range refs {
		switch r.Type {
		case git.RefTag:
			rendered = append(rendered, st.TagName.Render(r.Name))
		case git.RefRemoteBranch:
			rendered = append(rendered, st.RemoteName.Render(r.Name))
		default:
			rendered = append(rendered, st.BranchName.Render(r.Name))
		}
	}
	return st.Muted.Render("(") + strings.Join(rendered, st.Muted.Render(", ")) + st.Muted.Render(")")
}

func refLine(st Styles, it *items.Item) string {
	line := st.BranchName.Render(it.Text)
	if it.Meta != "" {
		line += " " + st.Muted.Render(it.Meta)
	}
	return line
}
