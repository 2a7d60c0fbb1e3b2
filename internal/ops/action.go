package ops

import (
	"fmt"

	"github.com/gex-tui/gex/internal/diff"
	"github.com/gex-tui/gex/internal/git"
	"github.com/gex-tui/gex/internal/items"
)

// PromptKind distinguishes yes/no confirmation from free-text input.
type PromptKind int

const (
	PromptConfirm PromptKind = iota
	PromptInput
)

// Prompt must be answered before an action runs. Complete turns the
// answer into the final action; for confirmations the answer is ignored.
type Prompt struct {
	Kind    PromptKind
	Text    string
	Default string

	Complete func(answer string) Action
}

// Action is what executing an op amounts to. Exactly one of Prompt, Sync,
// or Argv is set. Sync actions are quick local mutations run against the
// service; Argv actions spawn git asynchronously; Interactive marks argv
// commands that need the terminal (an editor) and must run as a subscreen.
type Action struct {
	Prompt      *Prompt
	Sync        func(git.Service) error
	Argv        []string
	Interactive bool
}

// Behavior carries the config knobs action construction honors.
type Behavior struct {
	ConfirmDestructive bool
}

// For resolves an op against the current target and the enabled menu
// flags. It returns ok=false for ops the event loop handles itself
// (navigation, screen opening, menus) and for target ops whose target
// kind is not accepted.
func For(op Op, t items.Target, flags []string, b Behavior) (Action, bool) {
	if op.IsTargetOp() && !Accepts(op, t.Kind) {
		return Action{}, false
	}

	switch op {
	case OpStage:
		switch t.Kind {
		case items.TargetFile:
			path := t.Path
			return Action{Sync: func(s git.Service) error { return s.Stage(path) }}, true
		default:
			patch := t.Patch
			return Action{Sync: func(s git.Service) error { return s.ApplyPatch(patch, false, true) }}, true
		}

	case OpStageAll:
		return Action{Sync: git.Service.StageAll}, true

	case OpUnstage:
		switch t.Kind {
		case items.TargetFile:
			path := t.Path
			return Action{Sync: func(s git.Service) error { return s.Unstage(path) }}, true
		default:
			patch := t.Patch
			return Action{Sync: func(s git.Service) error { return s.ApplyPatch(patch, true, true) }}, true
		}

	case OpUnstageAll:
		return Action{Sync: git.Service.UnstageAll}, true

	case OpDiscard:
		var act Action
		switch t.Kind {
		case items.TargetFile:
			act = discardFile(t)
		default:
			patch := t.Patch
			act = Action{Sync: func(s git.Service) error { return s.ApplyPatch(patch, true, false) }}
		}
		return confirm(fmt.Sprintf("Discard changes to %s?", t.Path), act, b), true

	case OpCheckoutRef:
		rev := revOf(t)
		return Action{Sync: func(s git.Service) error { return s.Checkout(rev) }}, true

	case OpCommit:
		return Action{Argv: argv("commit", flags), Interactive: true}, true
	case OpCommitAmend:
		return Action{Argv: argv("commit", flags, "--amend"), Interactive: true}, true
	case OpCommitFixup:
		return Action{Argv: argv("commit", flags, "--fixup", t.Commit)}, true

	case OpPush:
		return Action{Argv: argv("push", flags)}, true
	case OpPull:
		return Action{Argv: argv("pull", flags)}, true
	case OpFetchAll:
		return Action{Argv: argv("fetch", flags, "--all")}, true

	case OpCheckoutNewBranch:
		return Action{Prompt: &Prompt{
			Kind: PromptInput,
			Text: "Create and checkout branch:",
			Complete: func(name string) Action {
				if name == "" {
					return Action{}
				}
				return Action{Argv: argv("checkout", nil, "-b", name)}
			},
		}}, true

	case OpStashSave:
		fl := flags
		return Action{Prompt: &Prompt{
			Kind: PromptInput,
			Text: "Stash message:",
			Complete: func(msg string) Action {
				tail := append([]string{"push"}, fl...)
				if msg != "" {
					tail = append(tail, "-m", msg)
				}
				return Action{Argv: argv("stash", nil, tail...)}
			},
		}}, true

	case OpStashApply:
		return Action{Argv: argv("stash", nil, "apply", stashRef(t))}, true
	case OpStashPop:
		return Action{Argv: argv("stash", nil, "pop", stashRef(t))}, true
	case OpStashDrop:
		act := Action{Argv: argv("stash", nil, "drop", stashRef(t))}
		return confirm(fmt.Sprintf("Drop %s?", stashRef(t)), act, b), true

	case OpResetSoft:
		return Action{Argv: argv("reset", nil, "--soft", t.Commit)}, true
	case OpResetMixed:
		return Action{Argv: argv("reset", nil, "--mixed", t.Commit)}, true
	case OpResetHard:
		act := Action{Argv: argv("reset", nil, "--hard", t.Commit)}
		return confirm(fmt.Sprintf("Hard reset to %s?", t.Commit), act, b), true

	case OpRebaseInteractive:
		return Action{Argv: argv("rebase", flags, "-i", t.Commit + "^"), Interactive: true}, true

	case OpMerge:
		fl := flags
		return Action{Prompt: &Prompt{
			Kind:    PromptInput,
			Text:    "Merge:",
			Default: revOf(t),
			Complete: func(rev string) Action {
				if rev == "" {
					return Action{}
				}
				return Action{Argv: argv("merge", fl, rev), Interactive: true}
			},
		}}, true
	case OpMergeContinue:
		return Action{Argv: argv("merge", nil, "--continue"), Interactive: true}, true
	case OpMergeAbort:
		return Action{Argv: argv("merge", nil, "--abort")}, true

	case OpRevertCommit:
		fl := flags
		return Action{Prompt: &Prompt{
			Kind:    PromptInput,
			Text:    "Revert commit:",
			Default: revOf(t),
			Complete: func(rev string) Action {
				if rev == "" {
					return Action{}
				}
				return Action{Argv: argv("revert", fl, rev), Interactive: true}
			},
		}}, true
	case OpRevertContinue:
		return Action{Argv: argv("revert", nil, "--continue"), Interactive: true}, true
	case OpRevertAbort:
		return Action{Argv: argv("revert", nil, "--abort")}, true

	case OpDeleteBranch:
		if t.Kind == items.TargetRef && t.Ref != "" {
			act := Action{Argv: argv("branch", nil, "-d", t.Ref)}
			return confirm(fmt.Sprintf("Delete branch %s?", t.Ref), act, b), true
		}
		return Action{Prompt: &Prompt{
			Kind: PromptInput,
			Text: "Delete branch:",
			Complete: func(name string) Action {
				if name == "" {
					return Action{}
				}
				return Action{Argv: argv("branch", nil, "-d", name)}
			},
		}}, true
	}

	return Action{}, false
}

// discardFile picks the undo a file's status calls for: untracked files
// are cleaned, newly added ones removed from index and worktree, renames
// moved back, and everything else restored from HEAD.
func discardFile(t items.Target) Action {
	path, oldPath := t.Path, t.OldPath
	if oldPath == "" {
		oldPath = path
	}
	switch t.Status {
	case diff.StatusUntracked:
		return Action{Sync: func(s git.Service) error { return s.Clean(path) }}
	case diff.StatusAdded:
		return Action{Sync: func(s git.Service) error { return s.Remove(path) }}
	case diff.StatusRenamed:
		return Action{Sync: func(s git.Service) error { return s.Rename(path, oldPath) }}
	default:
		return Action{Sync: func(s git.Service) error { return s.Discard(oldPath) }}
	}
}

// confirm wraps an action in a confirmation prompt unless confirmation is
// disabled in config.
func confirm(text string, act Action, b Behavior) Action {
	if !b.ConfirmDestructive {
		return act
	}
	return Action{Prompt: &Prompt{
		Kind:     PromptConfirm,
		Text:     text,
		Complete: func(string) Action { return act },
	}}
}

// argv assembles a git invocation: subcommand, enabled menu flags, then
// positional tail.
func argv(sub string, flags []string, tail ...string) []string {
	out := append([]string{"git", sub}, flags...)
	return append(out, tail...)
}

func stashRef(t items.Target) string {
	return fmt.Sprintf("stash@{%d}", t.Stash)
}

// revOf returns the revision named by a selected ref or commit, or "".
func revOf(t items.Target) string {
	if t.Ref != "" {
		return t.Ref
	}
	return t.Commit
}
