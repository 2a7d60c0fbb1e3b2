// Package ops defines the closed set of user operations, which targets
// they apply to, the modal menus that group them, and how an operation
// turns into a concrete action once its prompt is answered.
package ops

import (
	"github.com/gex-tui/gex/internal/items"
)

// Op enumerates every operation a key can be bound to.
type Op int

const (
	OpNone Op = iota

	// Navigation.
	OpSelectNext
	OpSelectPrev
	OpSectionNext
	OpSectionPrev
	OpParentSection
	OpHalfPageDown
	OpHalfPageUp
	OpToggleCollapse
	OpMoveTop
	OpMoveBottom

	// Stack.
	OpQuit
	OpRefresh

	// Screen openers.
	OpShowLog
	OpShowRefs
	OpShowStash
	OpShowOrOpen

	// Target operations.
	OpStage
	OpStageAll
	OpUnstage
	OpUnstageAll
	OpDiscard
	OpLogOther
	OpCommitFixup
	OpRebaseInteractive
	OpResetSoft
	OpResetMixed
	OpResetHard
	OpStashApply
	OpStashPop
	OpStashDrop
	OpCheckoutRef

	// Menus.
	OpMenuCommit
	OpMenuPush
	OpMenuPull
	OpMenuFetch
	OpMenuBranch
	OpMenuStash
	OpMenuRebase
	OpMenuReset
	OpMenuMerge
	OpMenuRevert
	OpMenuHelp

	// Prompted / asynchronous operations.
	OpCommit
	OpCommitAmend
	OpPush
	OpPull
	OpFetchAll
	OpCheckoutNewBranch
	OpDeleteBranch
	OpStashSave
	OpMerge
	OpMergeContinue
	OpMergeAbort
	OpRevertCommit
	OpRevertContinue
	OpRevertAbort
)

var opNames = map[Op]string{
	OpSelectNext:        "select next",
	OpSelectPrev:        "select previous",
	OpSectionNext:       "next sibling",
	OpSectionPrev:       "previous sibling",
	OpParentSection:     "parent",
	OpHalfPageDown:      "half page down",
	OpHalfPageUp:        "half page up",
	OpToggleCollapse:    "toggle section",
	OpMoveTop:           "go to top",
	OpMoveBottom:        "go to bottom",
	OpQuit:              "quit/close",
	OpRefresh:           "refresh",
	OpShowLog:           "log",
	OpShowRefs:          "show refs",
	OpShowStash:         "stashes",
	OpShowOrOpen:        "show",
	OpStage:             "stage",
	OpStageAll:          "stage all",
	OpUnstage:           "unstage",
	OpUnstageAll:        "unstage all",
	OpDiscard:           "discard",
	OpLogOther:          "log selected",
	OpCommitFixup:       "fixup",
	OpRebaseInteractive: "rebase interactively",
	OpResetSoft:         "reset soft",
	OpResetMixed:        "reset mixed",
	OpResetHard:         "reset hard",
	OpStashApply:        "apply stash",
	OpStashPop:          "pop stash",
	OpStashDrop:         "drop stash",
	OpCheckoutRef:       "checkout",
	OpMenuCommit:        "commit...",
	OpMenuPush:          "push...",
	OpMenuPull:          "pull...",
	OpMenuFetch:         "fetch...",
	OpMenuBranch:        "branch...",
	OpMenuStash:         "stash...",
	OpMenuRebase:        "rebase...",
	OpMenuReset:         "reset...",
	OpMenuMerge:         "merge...",
	OpMenuRevert:        "revert...",
	OpMenuHelp:          "help",
	OpCommit:            "commit",
	OpCommitAmend:       "amend",
	OpPush:              "push",
	OpPull:              "pull",
	OpFetchAll:          "fetch all",
	OpCheckoutNewBranch: "checkout new branch",
	OpDeleteBranch:      "delete branch",
	OpStashSave:         "stash worktree",
	OpMerge:             "merge",
	OpMergeContinue:     "continue merge",
	OpMergeAbort:        "abort merge",
	OpRevertCommit:      "revert commit",
	OpRevertContinue:    "continue revert",
	OpRevertAbort:       "abort revert",
}

func (op Op) String() string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return "none"
}

// IsTargetOp reports whether the op needs a selection to act on.
func (op Op) IsTargetOp() bool {
	switch op {
	case OpStage, OpUnstage, OpDiscard, OpLogOther, OpCommitFixup,
		OpRebaseInteractive, OpResetSoft, OpResetMixed, OpResetHard,
		OpStashApply, OpStashPop, OpStashDrop, OpCheckoutRef, OpShowOrOpen:
		return true
	}
	return false
}

// Accepts reports whether the op can act on a target of the given kind.
// Ops that don't need a target accept anything.
func Accepts(op Op, k items.TargetKind) bool {
	switch op {
	case OpStage, OpUnstage, OpDiscard:
		return k == items.TargetFile || k == items.TargetHunk || k == items.TargetLine
	case OpShowOrOpen:
		return k == items.TargetCommit || k == items.TargetStash ||
			k == items.TargetFile || k == items.TargetHunk || k == items.TargetLine
	case OpLogOther:
		return k == items.TargetCommit || k == items.TargetRef
	case OpCommitFixup, OpRebaseInteractive, OpResetSoft, OpResetMixed, OpResetHard:
		return k == items.TargetCommit
	case OpStashApply, OpStashPop, OpStashDrop:
		return k == items.TargetStash
	case OpCheckoutRef:
		return k == items.TargetRef || k == items.TargetCommit
	default:
		return true
	}
}
