// Package keybinds maps key presses to operations. Bindings are either
// global or scoped to one screen kind; screen-scoped bindings win over
// global ones for the same key. Config may rebind ops; invalid entries
// fall back to the defaults.
package keybinds

import (
	"fmt"
	"unicode/utf8"

	"github.com/gex-tui/gex/internal/ops"
	"github.com/gex-tui/gex/internal/screen"
)

// Binding ties one key to one op, globally or for a single screen kind.
type Binding struct {
	Global bool
	Screen screen.Kind
	Key    string
	Op     ops.Op
}

// Table is an ordered binding list. Order matters only for help display.
type Table struct {
	bindings []Binding
}

// Defaults returns the built-in binding table.
func Defaults() *Table {
	g := func(key string, op ops.Op) Binding {
		return Binding{Global: true, Key: key, Op: op}
	}
	return &Table{bindings: []Binding{
		g("j", ops.OpSelectNext),
		g("down", ops.OpSelectNext),
		g("k", ops.OpSelectPrev),
		g("up", ops.OpSelectPrev),
		g("alt+j", ops.OpSectionNext),
		g("alt+k", ops.OpSectionPrev),
		g("^", ops.OpParentSection),
		g("ctrl+d", ops.OpHalfPageDown),
		g("ctrl+u", ops.OpHalfPageUp),
		g("home", ops.OpMoveTop),
		g("G", ops.OpMoveBottom),
		g("end", ops.OpMoveBottom),
		g("tab", ops.OpToggleCollapse),
		g("enter", ops.OpShowOrOpen),
		g("q", ops.OpQuit),
		g("esc", ops.OpQuit),
		g("g", ops.OpRefresh),

		g("l", ops.OpShowLog),
		g("y", ops.OpShowRefs),
		g("Z", ops.OpShowStash),
		g("L", ops.OpLogOther),

		g("s", ops.OpStage),
		g("S", ops.OpStageAll),
		g("u", ops.OpUnstage),
		g("U", ops.OpUnstageAll),
		g("K", ops.OpDiscard),

		g("c", ops.OpMenuCommit),
		g("P", ops.OpMenuPush),
		g("F", ops.OpMenuPull),
		g("f", ops.OpMenuFetch),
		g("b", ops.OpMenuBranch),
		g("z", ops.OpMenuStash),
		g("r", ops.OpMenuRebase),
		g("X", ops.OpMenuReset),
		g("m", ops.OpMenuMerge),
		g("V", ops.OpMenuRevert),
		g("?", ops.OpMenuHelp),
	}}
}

// Resolve returns the op bound to key on the given screen, preferring a
// screen-scoped binding over a global one. Unbound keys yield OpNone.
func (t *Table) Resolve(kind screen.Kind, key string) ops.Op {
	found := ops.OpNone
	for _, b := range t.bindings {
		if b.Key != key {
			continue
		}
		if !b.Global && b.Screen == kind {
			return b.Op
		}
		if b.Global && found == ops.OpNone {
			found = b.Op
		}
	}
	return found
}

// Bindings returns the table for help rendering.
func (t *Table) Bindings() []Binding {
	return t.bindings
}

// Bind adds or replaces a binding for (scope, key).
func (t *Table) Bind(nb Binding) {
	for i, b := range t.bindings {
		if b.Key == nb.Key && b.Global == nb.Global && b.Screen == nb.Screen {
			t.bindings[i] = nb
			return
		}
	}
	t.bindings = append(t.bindings, nb)
}

// namedKeys are the non-rune key names accepted in config, matching the
// names bubbletea reports.
var namedKeys = map[string]bool{
	"enter": true, "esc": true, "tab": true, "space": true,
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pgup": true, "pgdown": true,
	"backspace": true, "delete": true,
}

func validKey(key string) bool {
	if utf8.RuneCountInString(key) == 1 {
		return true
	}
	if namedKeys[key] {
		return true
	}
	if len(key) > 5 && key[:5] == "ctrl+" {
		return true
	}
	return len(key) > 4 && key[:4] == "alt+"
}

// opsByName maps the config names of rebindable ops.
var opsByName = map[string]ops.Op{
	"select_next":      ops.OpSelectNext,
	"select_prev":      ops.OpSelectPrev,
	"section_next":     ops.OpSectionNext,
	"section_prev":     ops.OpSectionPrev,
	"parent_section":   ops.OpParentSection,
	"half_page_down":   ops.OpHalfPageDown,
	"half_page_up":     ops.OpHalfPageUp,
	"move_top":         ops.OpMoveTop,
	"move_bottom":      ops.OpMoveBottom,
	"toggle_collapse":  ops.OpToggleCollapse,
	"show":             ops.OpShowOrOpen,
	"quit":             ops.OpQuit,
	"refresh":          ops.OpRefresh,
	"log":              ops.OpShowLog,
	"refs":             ops.OpShowRefs,
	"stashes":          ops.OpShowStash,
	"log_other":        ops.OpLogOther,
	"stage":            ops.OpStage,
	"stage_all":        ops.OpStageAll,
	"unstage":          ops.OpUnstage,
	"unstage_all":      ops.OpUnstageAll,
	"discard":          ops.OpDiscard,
	"menu_commit":      ops.OpMenuCommit,
	"menu_push":        ops.OpMenuPush,
	"menu_pull":        ops.OpMenuPull,
	"menu_fetch":       ops.OpMenuFetch,
	"menu_branch":      ops.OpMenuBranch,
	"menu_stash":       ops.OpMenuStash,
	"menu_rebase":      ops.OpMenuRebase,
	"menu_reset":       ops.OpMenuReset,
	"menu_merge":       ops.OpMenuMerge,
	"menu_revert":      ops.OpMenuRevert,
	"menu_help":        ops.OpMenuHelp,
}

// ApplyOverrides rebinds ops named in the config map (op name -> key).
// Each invalid entry produces an error and leaves the default in place;
// valid entries replace every default binding of that op with one global
// binding for the new key.
func (t *Table) ApplyOverrides(overrides map[string]string) []error {
	var errs []error
	for name, key := range overrides {
		op, ok := opsByName[name]
		if !ok {
			errs = append(errs, fmt.Errorf("keybinds: unknown op %q", name))
			continue
		}
		if !validKey(key) {
			errs = append(errs, fmt.Errorf("keybinds: invalid key %q for %q", key, name))
			continue
		}
		kept := t.bindings[:0]
		for _, b := range t.bindings {
			if b.Op != op {
				kept = append(kept, b)
			}
		}
		t.bindings = append(kept, Binding{Global: true, Key: key, Op: op})
	}
	return errs
}
