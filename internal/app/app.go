// Package app is the bubbletea event loop: it owns the screen stack, the
// modal overlays (menu, prompt, popups), and turns resolved operations
// into git calls or spawned commands.
package app

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gex-tui/gex/internal/command"
	"github.com/gex-tui/gex/internal/config"
	"github.com/gex-tui/gex/internal/git"
	"github.com/gex-tui/gex/internal/items"
	"github.com/gex-tui/gex/internal/keybinds"
	"github.com/gex-tui/gex/internal/ops"
	"github.com/gex-tui/gex/internal/screen"
	"github.com/gex-tui/gex/internal/ui"
)

// RefreshMsg asks the active screen to re-derive itself. Sent by the
// watcher, after command completion, and after sync mutations.
type RefreshMsg struct{}

type errMsg struct{ err error }

// execDoneMsg arrives when a subscreen command (editor) finishes.
type execDoneMsg struct{ err error }

// Options selects the root screen and startup behavior.
type Options struct {
	Root screen.Kind // KindStatus, KindLog, or KindShow
	Args []string    // forwarded to the root screen's git invocation
	Keys string      // key events injected at startup
}

// Model is the top-level bubbletea model.
type Model struct {
	git    git.Service
	cfg    *config.Config
	styles ui.Styles
	keys   *keybinds.Table
	runner *command.Runner

	stack  *screen.Stack
	menu   *ops.Menu
	prompt *ops.Prompt
	input  textinput.Model

	// popups holds spawned command records, oldest first; the newest
	// renders on top. Dismissing forgets the record only.
	popups []*command.PendingCommand
	errMsg string

	width, height int
	injected      []tea.Msg
}

// New builds the model and its root screen. Config keybind overrides are
// applied first; their errors surface on the first render.
func New(svc git.Service, cfg *config.Config, opts Options) (Model, error) {
	keys := keybinds.Defaults()
	for _, err := range keys.ApplyOverrides(cfg.Keybinds) {
		cfg.Errors = append(cfg.Errors, config.ConfigError{Key: "keybinds", Reason: err.Error()})
	}

	m := Model{
		git:      svc,
		cfg:      cfg,
		styles:   ui.DefaultStyles(),
		keys:     keys,
		runner:   command.NewRunner(svc.RepoRoot()),
		width:    80,
		height:   24,
		injected: parseKeys(opts.Keys),
	}
	m.input = textinput.New()
	m.input.CharLimit = 255

	root, err := m.buildScreen(opts.Root, opts.Args...)
	if err != nil {
		return Model{}, err
	}
	for _, id := range cfg.General.CollapsedSections {
		root.SetCollapsed(id, true)
	}
	m.stack = screen.NewStack(root)
	return m, nil
}

func (m Model) itemConfig() items.Config {
	return items.Config{
		RecentCommits:   m.cfg.General.MaxRecentCommits,
		AutoExpandHunks: m.cfg.General.AutoExpandHunks,
	}
}

// buildScreen constructs a screen whose refresh closure re-queries the
// service, so every refresh reflects live repository state.
func (m *Model) buildScreen(kind screen.Kind, args ...string) (*screen.Screen, error) {
	svc, icfg := m.git, m.itemConfig()
	var (
		title   string
		refresh screen.RefreshFunc
	)
	switch kind {
	case screen.KindLog:
		title = strings.TrimSpace("log " + strings.Join(args, " "))
		limit := m.cfg.General.MaxLogEntries
		refresh = func() ([]items.Item, error) { return items.BuildLog(svc, limit, args...) }
	case screen.KindShow:
		rev := args[0]
		title = "show " + rev
		refresh = func() ([]items.Item, error) { return items.BuildShow(svc, rev, icfg) }
	case screen.KindDiff:
		from, to := args[0], args[1]
		title = "diff " + from + ".." + to
		refresh = func() ([]items.Item, error) { return items.BuildDiff(svc, from, to, icfg) }
	case screen.KindStash:
		title = "stashes"
		refresh = func() ([]items.Item, error) { return items.BuildStash(svc) }
	case screen.KindRefs:
		title = "refs"
		refresh = func() ([]items.Item, error) { return items.BuildRefs(svc) }
	default:
		kind = screen.KindStatus
		title = "status"
		refresh = func() ([]items.Item, error) { return items.BuildStatus(svc, icfg) }
	}
	return screen.New(kind, title, m.contentHeight(), refresh)
}

// stashShowScreen is the diff screen for one stash entry.
func (m *Model) stashShowScreen(index int) (*screen.Screen, error) {
	svc, icfg := m.git, m.itemConfig()
	return screen.New(screen.KindDiff, fmt.Sprintf("stash@{%d}", index), m.contentHeight(),
		func() ([]items.Item, error) { return items.BuildStashShow(svc, index, icfg) })
}

// Init starts the runner listener and replays any injected keys.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.runner.Listen()}
	if len(m.injected) > 0 {
		replay := make([]tea.Cmd, len(m.injected))
		for i, msg := range m.injected {
			msg := msg
			replay[i] = func() tea.Msg { return msg }
		}
		cmds = append(cmds, tea.Sequence(replay...))
	}
	return tea.Batch(cmds...)
}

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.stack.SetHeight(m.contentHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case RefreshMsg:
		if err := m.stack.Top().Refresh(); err != nil {
			m.errMsg = err.Error()
		}
		return m, nil

	case command.OutputMsg:
		// The record already holds the chunk; redraw and keep listening.
		return m, m.runner.Listen()

	case command.DoneMsg:
		if err := m.stack.Top().Refresh(); err != nil {
			m.errMsg = err.Error()
		}
		return m, m.runner.Listen()

	case execDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		if err := m.stack.Top().Refresh(); err != nil {
			m.errMsg = err.Error()
		}
		return m, nil

	case errMsg:
		m.errMsg = msg.err.Error()
		return m, nil
	}
	return m, nil
}

// handleKey routes a key press: prompt first, then menu, then error and
// popup dismissal, then the keybind table.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.prompt != nil {
		return m.handlePromptKey(msg, key)
	}

	if m.menu != nil {
		return m.handleMenuKey(key)
	}

	if m.errMsg != "" {
		m.errMsg = ""
		return m, nil
	}

	if key == "esc" && m.dismissPopup() {
		return m, nil
	}

	op := m.keys.Resolve(m.stack.Top().Kind, key)
	return m.dispatch(op)
}

func (m Model) handlePromptKey(msg tea.KeyMsg, key string) (tea.Model, tea.Cmd) {
	p := m.prompt
	switch p.Kind {
	case ops.PromptConfirm:
		switch key {
		case "y", "Y", "enter":
			m.prompt = nil
			return m.runAction(p.Complete(""))
		default:
			// Any other key cancels silently.
			m.prompt = nil
			return m, nil
		}
	default: // PromptInput
		switch key {
		case "esc":
			m.prompt = nil
			return m, nil
		case "enter":
			value := m.input.Value()
			m.prompt = nil
			return m.runAction(p.Complete(value))
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
}

func (m Model) handleMenuKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "q":
		m.menu = nil
		return m, nil
	}
	if m.menu.Toggle(key) {
		return m, nil
	}
	if op, ok := m.menu.EntryFor(key); ok {
		flags := m.menu.EnabledFlags()
		m.menu = nil
		return m.dispatchWithFlags(op, flags)
	}
	return m, nil
}

// dismissPopup forgets the newest finished command popup. Running
// commands keep their popups; their processes are never killed here.
func (m *Model) dismissPopup() bool {
	for i := len(m.popups) - 1; i >= 0; i-- {
		if st, _ := m.popups[i].State(); st != command.StatusRunning {
			m.popups = append(m.popups[:i], m.popups[i+1:]...)
			return true
		}
	}
	return false
}

func (m Model) dispatch(op ops.Op) (tea.Model, tea.Cmd) {
	return m.dispatchWithFlags(op, nil)
}

func (m Model) dispatchWithFlags(op ops.Op, flags []string) (tea.Model, tea.Cmd) {
	top := m.stack.Top()

	switch op {
	case ops.OpNone:
		return m, nil

	// Navigation.
	case ops.OpSelectNext:
		top.MoveNext(screen.NavIncludeLines)
		return m, nil
	case ops.OpSelectPrev:
		top.MovePrev(screen.NavIncludeLines)
		return m, nil
	case ops.OpSectionNext:
		top.MoveNext(screen.NavSiblings)
		return m, nil
	case ops.OpSectionPrev:
		top.MovePrev(screen.NavSiblings)
		return m, nil
	case ops.OpParentSection:
		top.MoveParent()
		return m, nil
	case ops.OpHalfPageDown:
		top.HalfPageDown()
		return m, nil
	case ops.OpHalfPageUp:
		top.HalfPageUp()
		return m, nil
	case ops.OpMoveTop:
		top.MoveTop()
		return m, nil
	case ops.OpMoveBottom:
		top.MoveBottom()
		return m, nil
	case ops.OpToggleCollapse:
		top.ToggleCollapse()
		return m, nil

	case ops.OpQuit:
		if m.stack.Pop() {
			return m, nil
		}
		m.runner.KillAll()
		return m, tea.Quit

	case ops.OpRefresh:
		if err := top.Refresh(); err != nil {
			m.errMsg = err.Error()
		}
		return m, nil

	// Screen openers.
	case ops.OpShowLog:
		return m.pushScreen(screen.KindLog)
	case ops.OpShowRefs:
		return m.pushScreen(screen.KindRefs)
	case ops.OpShowStash:
		return m.pushScreen(screen.KindStash)

	case ops.OpShowOrOpen:
		return m.showOrOpen(top)

	case ops.OpLogOther:
		t := m.target(top)
		rev := t.Ref
		if rev == "" {
			rev = t.Commit
		}
		if rev == "" {
			return m, nil
		}
		return m.pushScreen(screen.KindLog, rev)
	}

	if kind := ops.MenuFor(op); kind != ops.MenuNone {
		m.menu = ops.NewMenu(kind)
		return m, nil
	}

	act, ok := ops.For(op, m.target(top), flags, ops.Behavior{
		ConfirmDestructive: m.cfg.General.ConfirmDestructive,
	})
	if !ok {
		return m, nil
	}
	return m.runAction(act)
}

// target returns the selected item's target, or an empty one.
func (m Model) target(top *screen.Screen) items.Target {
	if it := top.Selected(); it != nil {
		return it.Target
	}
	return items.Target{}
}

// showOrOpen opens a detail screen for commits and stashes and toggles
// collapse for everything else.
func (m Model) showOrOpen(top *screen.Screen) (tea.Model, tea.Cmd) {
	t := m.target(top)
	switch t.Kind {
	case items.TargetCommit:
		return m.pushScreen(screen.KindShow, t.Commit)
	case items.TargetStash:
		s, err := m.stashShowScreen(t.Stash)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.stack.Push(s)
		return m, nil
	default:
		top.ToggleCollapse()
		return m, nil
	}
}

func (m Model) pushScreen(kind screen.Kind, args ...string) (tea.Model, tea.Cmd) {
	s, err := m.buildScreen(kind, args...)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.stack.Push(s)
	return m, nil
}

// runAction executes a resolved action: opens its prompt, runs the sync
// mutation off the event loop, or spawns the command.
func (m Model) runAction(act ops.Action) (tea.Model, tea.Cmd) {
	switch {
	case act.Prompt != nil:
		m.prompt = act.Prompt
		if act.Prompt.Kind == ops.PromptInput {
			m.input.SetValue(act.Prompt.Default)
			m.input.Focus()
			m.input.CursorEnd()
		}
		return m, nil

	case act.Sync != nil:
		svc, run := m.git, act.Sync
		return m, func() tea.Msg {
			if err := run(svc); err != nil {
				return errMsg{err}
			}
			return RefreshMsg{}
		}

	case act.Interactive:
		cmd := exec.Command(act.Argv[0], act.Argv[1:]...)
		cmd.Dir = m.git.RepoRoot()
		if m.cfg.General.Editor != "" {
			cmd.Env = append(cmd.Environ(), "GIT_EDITOR="+m.cfg.General.Editor)
		}
		return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
			return execDoneMsg{err: err}
		})

	case len(act.Argv) > 0:
		pc, err := m.runner.Spawn(act.Argv)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.popups = append(m.popups, pc)
		return m, nil
	}
	return m, nil
}

func (m Model) contentHeight() int {
	h := m.height - 2 // title line + status bar
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the active screen with any overlays on top.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	top := m.stack.Top()
	var b strings.Builder
	b.WriteString(m.styles.SectionHeader.Render(top.Title))
	b.WriteString("\n")

	lines := top.Lines()
	start, height := top.Scroll(), m.contentHeight()
	for i := start; i < len(lines) && i < start+height; i++ {
		b.WriteString(ui.RenderItem(m.styles, lines[i], i == top.Cursor(), top.CollapsedAt(i), m.width))
		b.WriteString("\n")
	}

	body := strings.TrimRight(b.String(), "\n")
	view := lipgloss.NewStyle().Width(m.width).Height(m.height - 1).Render(body)
	view += "\n" + m.statusBar()

	if overlay := m.overlay(); overlay != "" {
		view = ui.Overlay(view, overlay, m.width, m.height)
	}
	return view
}

func (m Model) statusBar() string {
	parts := []string{m.git.RepoRoot()}
	if head, err := m.git.Head(); err == nil {
		parts = append(parts, head)
	}
	if n := m.runner.Running(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d running", n))
	}
	for _, ce := range m.cfg.Errors {
		parts = append(parts, ce.Error())
	}
	return m.styles.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}

// overlay returns the topmost modal to draw, if any.
func (m Model) overlay() string {
	if m.errMsg != "" {
		return ui.RenderError(m.styles, m.errMsg)
	}
	if m.prompt != nil {
		if m.prompt.Kind == ops.PromptConfirm {
			return ui.RenderPrompt(m.styles, m.prompt.Text, m.styles.Muted.Render("y/n"))
		}
		return ui.RenderPrompt(m.styles, m.prompt.Text, m.input.View())
	}
	if m.menu != nil {
		if m.menu.Kind == ops.MenuHelp {
			return ui.RenderHelp(m.styles, m.keys.Bindings())
		}
		return ui.RenderMenu(m.styles, m.menu)
	}
	if n := len(m.popups); n > 0 {
		pc := m.popups[n-1]
		st, code := pc.State()
		return ui.RenderCommand(m.styles, pc.Display(), pc.Output(),
			st == command.StatusRunning, code, 10)
	}
	return ""
}

// RenderOnce renders a single frame at the given size without starting
// the event loop, for the --print flag.
func (m Model) RenderOnce(width, height int) string {
	m.width, m.height = width, height
	m.stack.SetHeight(m.contentHeight())
	return m.View()
}
