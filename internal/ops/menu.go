package ops

// MenuKind names the modal menus.
type MenuKind int

const (
	MenuNone MenuKind = iota
	MenuCommit
	MenuPush
	MenuPull
	MenuFetch
	MenuBranch
	MenuStash
	MenuRebase
	MenuReset
	MenuMerge
	MenuRevert
	MenuHelp
)

// Arg is one toggleable command-line flag of a menu.
type Arg struct {
	Key     string // key that toggles it, e.g. "-f"
	Flag    string // literal flag substituted into the argv
	Display string
	On      bool
}

// Entry is one executable row of a menu.
type Entry struct {
	Key string
	Op  Op
}

// Menu is a modal overlay of toggleable args and executable entries. It
// sits outside the navigation stack: Esc dismisses it, executing an entry
// dismisses it and dispatches the entry's op with the enabled flags.
type Menu struct {
	Kind    MenuKind
	Title   string
	Args    []Arg
	Entries []Entry
}

// NewMenu builds the menu for a kind, args at their defaults. MenuHelp has
// no entries of its own; the app renders the keybind table instead.
func NewMenu(kind MenuKind) *Menu {
	switch kind {
	case MenuCommit:
		return &Menu{Kind: kind, Title: "Commit",
			Args: []Arg{
				{Key: "-a", Flag: "--all", Display: "stage all modified"},
				{Key: "-n", Flag: "--no-verify", Display: "skip hooks"},
			},
			Entries: []Entry{
				{Key: "c", Op: OpCommit},
				{Key: "a", Op: OpCommitAmend},
				{Key: "f", Op: OpCommitFixup},
			}}
	case MenuPush:
		return &Menu{Kind: kind, Title: "Push",
			Args: []Arg{
				{Key: "-f", Flag: "--force-with-lease", Display: "force with lease"},
				{Key: "-F", Flag: "--force", Display: "force"},
				{Key: "-n", Flag: "--no-verify", Display: "skip hooks"},
			},
			Entries: []Entry{{Key: "p", Op: OpPush}}}
	case MenuPull:
		return &Menu{Kind: kind, Title: "Pull",
			Args: []Arg{
				{Key: "-r", Flag: "--rebase", Display: "rebase onto upstream"},
			},
			Entries: []Entry{{Key: "p", Op: OpPull}}}
	case MenuFetch:
		return &Menu{Kind: kind, Title: "Fetch",
			Args: []Arg{
				{Key: "-p", Flag: "--prune", Display: "prune deleted refs"},
			},
			Entries: []Entry{{Key: "a", Op: OpFetchAll}}}
	case MenuBranch:
		return &Menu{Kind: kind, Title: "Branch",
			Entries: []Entry{
				{Key: "b", Op: OpCheckoutRef},
				{Key: "c", Op: OpCheckoutNewBranch},
				{Key: "K", Op: OpDeleteBranch},
			}}
	case MenuStash:
		return &Menu{Kind: kind, Title: "Stash",
			Args: []Arg{
				{Key: "-u", Flag: "--include-untracked", Display: "include untracked"},
			},
			Entries: []Entry{
				{Key: "s", Op: OpStashSave},
				{Key: "a", Op: OpStashApply},
				{Key: "p", Op: OpStashPop},
				{Key: "d", Op: OpStashDrop},
			}}
	case MenuRebase:
		return &Menu{Kind: kind, Title: "Rebase",
			Args: []Arg{
				{Key: "-a", Flag: "--autosquash", Display: "autosquash fixups"},
			},
			Entries: []Entry{{Key: "i", Op: OpRebaseInteractive}}}
	case MenuReset:
		return &Menu{Kind: kind, Title: "Reset",
			Entries: []Entry{
				{Key: "s", Op: OpResetSoft},
				{Key: "m", Op: OpResetMixed},
				{Key: "h", Op: OpResetHard},
			}}
	case MenuMerge:
		return &Menu{Kind: kind, Title: "Merge",
			Args: []Arg{
				{Key: "-f", Flag: "--ff-only", Display: "fast-forward only"},
				{Key: "-n", Flag: "--no-ff", Display: "no fast-forward"},
			},
			Entries: []Entry{
				{Key: "m", Op: OpMerge},
				{Key: "c", Op: OpMergeContinue},
				{Key: "a", Op: OpMergeAbort},
			}}
	case MenuRevert:
		return &Menu{Kind: kind, Title: "Revert",
			Args: []Arg{
				{Key: "-e", Flag: "--edit", Display: "edit commit message", On: true},
				{Key: "-s", Flag: "--signoff", Display: "add Signed-off-by line"},
			},
			Entries: []Entry{
				{Key: "v", Op: OpRevertCommit},
				{Key: "c", Op: OpRevertContinue},
				{Key: "a", Op: OpRevertAbort},
			}}
	case MenuHelp:
		return &Menu{Kind: kind, Title: "Help"}
	default:
		return nil
	}
}

// Toggle flips the arg bound to key and reports whether one matched.
func (m *Menu) Toggle(key string) bool {
	for i := range m.Args {
		if m.Args[i].Key == key {
			m.Args[i].On = !m.Args[i].On
			return true
		}
	}
	return false
}

// EntryFor returns the op bound to key within the menu.
func (m *Menu) EntryFor(key string) (Op, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Op, true
		}
	}
	return OpNone, false
}

// EnabledFlags returns the flags of the enabled args, in display order.
func (m *Menu) EnabledFlags() []string {
	var out []string
	for _, a := range m.Args {
		if a.On {
			out = append(out, a.Flag)
		}
	}
	return out
}

// MenuFor returns the menu a menu-op opens.
func MenuFor(op Op) MenuKind {
	switch op {
	case OpMenuCommit:
		return MenuCommit
	case OpMenuPush:
		return MenuPush
	case OpMenuPull:
		return MenuPull
	case OpMenuFetch:
		return MenuFetch
	case OpMenuBranch:
		return MenuBranch
	case OpMenuStash:
		return MenuStash
	case OpMenuRebase:
		return MenuRebase
	case OpMenuReset:
		return MenuReset
	case OpMenuMerge:
		return MenuMerge
	case OpMenuRevert:
		return MenuRevert
	case OpMenuHelp:
		return MenuHelp
	default:
		return MenuNone
	}
}
