package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// namedKeyTypes maps <name> tokens of the --keys flag to bubbletea key
// types.
var namedKeyTypes = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"space":     tea.KeySpace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"backspace": tea.KeyBackspace,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"ctrl+d":    tea.KeyCtrlD,
	"ctrl+u":    tea.KeyCtrlU,
}

// parseKeys turns a --keys string like "jjs<enter>" into key messages.
// Plain runes become rune keys; <name> tokens become named keys; unknown
// tokens are dropped.
func parseKeys(s string) []tea.Msg {
	var msgs []tea.Msg
	for len(s) > 0 {
		if s[0] == '<' {
			end := strings.IndexByte(s, '>')
			if end > 0 {
				name := s[1:end]
				s = s[end+1:]
				if kt, ok := namedKeyTypes[name]; ok {
					msgs = append(msgs, tea.KeyMsg{Type: kt})
				} else if strings.HasPrefix(name, "alt+") && len(name) > 4 {
					msgs = append(msgs, tea.KeyMsg{
						Type:  tea.KeyRunes,
						Runes: []rune(name[4:]),
						Alt:   true,
					})
				}
				continue
			}
		}
		r := []rune(s)
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: r[:1]})
		s = string(r[1:])
	}
	return msgs
}
