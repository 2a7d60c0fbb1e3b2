package ui

import (
	"fmt"
	"strings"

	"github.com/gex-tui/gex/internal/keybinds"
	"github.com/gex-tui/gex/internal/ops"
)

// RenderMenu renders a modal menu: its toggleable args, then its entries.
func RenderMenu(st Styles, m *ops.Menu) string {
	var b strings.Builder
	b.WriteString(st.PopupTitle.Render(m.Title))
	b.WriteString("\n")

	if len(m.Args) > 0 {
		b.WriteString("\n")
		for _, a := range m.Args {
			mark, style := "[ ]", st.ArgOff
			if a.On {
				mark, style = "[x]", st.ArgOn
			}
			fmt.Fprintf(&b, " %s %s %s %s\n",
				st.KeyBind.Render(a.Key),
				style.Render(mark),
				style.Render(a.Flag),
				st.KeyDesc.Render(a.Display))
		}
	}

	if len(m.Entries) > 0 {
		b.WriteString("\n")
		for _, e := range m.Entries {
			fmt.Fprintf(&b, " %s %s\n",
				st.KeyBind.Render(e.Key),
				st.KeyDesc.Render(e.Op.String()))
		}
	}

	return st.Popup.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderHelp renders the full keybind table for the help overlay.
func RenderHelp(st Styles, bindings []keybinds.Binding) string {
	var b strings.Builder
	b.WriteString(st.PopupTitle.Render("Help"))
	b.WriteString("\n\n")
	for _, kb := range bindings {
		scope := ""
		if !kb.Global {
			scope = " (" + kb.Screen.String() + ")"
		}
		fmt.Fprintf(&b, " %s %s%s\n",
			st.KeyBind.Render(PadRight(kb.Key, 9)),
			st.KeyDesc.Render(kb.Op.String()),
			st.Muted.Render(scope))
	}
	return st.Popup.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderPrompt renders the prompt overlay. input is the rendered text
// input, or a y/n hint for confirmations.
func RenderPrompt(st Styles, text, input string) string {
	return st.Popup.Render(st.PopupTitle.Render(text) + "\n" + input)
}

// RenderCommand renders one pending-command popup: the command line, its
// state, and the tail of its output.
func RenderCommand(st Styles, display, output string, running bool, code int, maxLines int) string {
	status := st.Muted.Render("running…")
	if !running {
		if code == 0 {
			status = st.ArgOn.Render("done")
		} else {
			status = st.ErrorTitle.Render(fmt.Sprintf("exit %d", code))
		}
	}

	b := st.PopupTitle.Render("$ "+display) + " " + status
	if out := tailLines(output, maxLines); out != "" {
		b += "\n" + st.Muted.Render(out)
	}
	return st.Popup.Render(b)
}

// RenderError renders the error popup.
func RenderError(st Styles, msg string) string {
	return st.Popup.Render(st.ErrorTitle.Render("Error") + "\n" + st.Text.Render(msg))
}

// tailLines returns the last n lines of s.
func tailLines(s string, n int) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
