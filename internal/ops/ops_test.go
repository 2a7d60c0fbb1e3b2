package ops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gex-tui/gex/internal/diff"
	"github.com/gex-tui/gex/internal/git"
	"github.com/gex-tui/gex/internal/items"
)

// recordingService captures which mutation a resolved sync action invokes.
// The embedded nil Service satisfies the interface; only overridden methods
// may be called.
type recordingService struct {
	git.Service
	calls []string
}

func (r *recordingService) Discard(paths ...string) error {
	r.calls = append(r.calls, "discard "+paths[0])
	return nil
}

func (r *recordingService) Clean(paths ...string) error {
	r.calls = append(r.calls, "clean "+paths[0])
	return nil
}

func (r *recordingService) Remove(paths ...string) error {
	r.calls = append(r.calls, "remove "+paths[0])
	return nil
}

func (r *recordingService) Rename(from, to string) error {
	r.calls = append(r.calls, "rename "+from+" "+to)
	return nil
}

func TestAcceptsTargetKinds(t *testing.T) {
	cases := []struct {
		op   Op
		kind items.TargetKind
		want bool
	}{
		{OpStage, items.TargetFile, true},
		{OpStage, items.TargetHunk, true},
		{OpStage, items.TargetLine, true},
		{OpStage, items.TargetCommit, false},
		{OpDiscard, items.TargetCommit, false},
		{OpResetHard, items.TargetCommit, true},
		{OpResetHard, items.TargetFile, false},
		{OpStashDrop, items.TargetStash, true},
		{OpStashDrop, items.TargetFile, false},
		{OpCheckoutRef, items.TargetRef, true},
		{OpCheckoutRef, items.TargetCommit, true},
		{OpCheckoutRef, items.TargetStash, false},
		{OpRefresh, items.TargetNone, true},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Accepts(c.op, c.kind), "%s / kind %d", c.op, c.kind)
	}
}

func TestForRejectsWrongTarget(t *testing.T) {
	_, ok := For(OpStage, items.Target{Kind: items.TargetCommit, Commit: "aaaa"}, nil, Behavior{})
	require.False(t, ok)
}

func TestForStageFileIsSync(t *testing.T) {
	act, ok := For(OpStage, items.Target{Kind: items.TargetFile, Path: "a.go"}, nil, Behavior{})
	require.True(t, ok)
	require.NotNil(t, act.Sync)
	require.Nil(t, act.Prompt)
	require.Empty(t, act.Argv)
}

func TestForDiscardPromptsWhenConfigured(t *testing.T) {
	tgt := items.Target{Kind: items.TargetFile, Path: "a.go"}

	act, ok := For(OpDiscard, tgt, nil, Behavior{ConfirmDestructive: true})
	require.True(t, ok)
	require.NotNil(t, act.Prompt)
	require.Equal(t, PromptConfirm, act.Prompt.Kind)
	require.Contains(t, act.Prompt.Text, "a.go")

	final := act.Prompt.Complete("")
	require.NotNil(t, final.Sync)

	// With confirmation disabled the action is immediate.
	act, ok = For(OpDiscard, tgt, nil, Behavior{})
	require.True(t, ok)
	require.Nil(t, act.Prompt)
	require.NotNil(t, act.Sync)
}

func TestForDiscardMatchesFileStatus(t *testing.T) {
	cases := []struct {
		target items.Target
		want   string
	}{
		{items.Target{Kind: items.TargetFile, Path: "notes.txt", OldPath: "notes.txt", Status: diff.StatusUntracked}, "clean notes.txt"},
		{items.Target{Kind: items.TargetFile, Path: "new.go", OldPath: "new.go", Status: diff.StatusAdded}, "remove new.go"},
		{items.Target{Kind: items.TargetFile, Path: "b.go", OldPath: "a.go", Status: diff.StatusRenamed}, "rename b.go a.go"},
		{items.Target{Kind: items.TargetFile, Path: "a.go", OldPath: "a.go", Status: diff.StatusModified}, "discard a.go"},
		{items.Target{Kind: items.TargetFile, Path: "gone.go", OldPath: "gone.go", Status: diff.StatusDeleted}, "discard gone.go"},
	}
	for _, c := range cases {
		act, ok := For(OpDiscard, c.target, nil, Behavior{})
		require.True(t, ok, c.want)
		require.NotNil(t, act.Sync, c.want)

		rec := &recordingService{}
		require.NoError(t, act.Sync(rec))
		require.Equal(t, []string{c.want}, rec.calls)
	}
}

func TestForPushCarriesMenuFlags(t *testing.T) {
	m := NewMenu(MenuPush)
	require.True(t, m.Toggle("-f"))

	act, ok := For(OpPush, items.Target{}, m.EnabledFlags(), Behavior{})
	require.True(t, ok)
	require.Equal(t, []string{"git", "push", "--force-with-lease"}, act.Argv)

	// Toggling again removes the flag.
	require.True(t, m.Toggle("-f"))
	act, _ = For(OpPush, items.Target{}, m.EnabledFlags(), Behavior{})
	require.Equal(t, []string{"git", "push"}, act.Argv)
}

func TestForStashSavePrompt(t *testing.T) {
	act, ok := For(OpStashSave, items.Target{}, []string{"--include-untracked"}, Behavior{})
	require.True(t, ok)
	require.NotNil(t, act.Prompt)
	require.Equal(t, PromptInput, act.Prompt.Kind)

	withMsg := act.Prompt.Complete("wip")
	require.Equal(t, []string{"git", "stash", "push", "--include-untracked", "-m", "wip"}, withMsg.Argv)

	plain := act.Prompt.Complete("")
	require.Equal(t, []string{"git", "stash", "push", "--include-untracked"}, plain.Argv)
}

func TestForCheckoutNewBranchEmptyCancels(t *testing.T) {
	act, ok := For(OpCheckoutNewBranch, items.Target{}, nil, Behavior{})
	require.True(t, ok)
	final := act.Prompt.Complete("")
	require.Empty(t, final.Argv)
	require.Nil(t, final.Sync)
}

func TestForInteractiveCommands(t *testing.T) {
	act, _ := For(OpCommit, items.Target{}, nil, Behavior{})
	require.True(t, act.Interactive)
	require.Equal(t, []string{"git", "commit"}, act.Argv)

	act, _ = For(OpRebaseInteractive, items.Target{Kind: items.TargetCommit, Commit: "aaaa"}, nil, Behavior{})
	require.True(t, act.Interactive)
	require.Equal(t, []string{"git", "rebase", "-i", "aaaa^"}, act.Argv)
}

func TestForMergePromptDefaultsToSelectedRev(t *testing.T) {
	act, ok := For(OpMerge, items.Target{Kind: items.TargetRef, Ref: "feature"}, []string{"--no-ff"}, Behavior{})
	require.True(t, ok)
	require.NotNil(t, act.Prompt)
	require.Equal(t, "feature", act.Prompt.Default)

	final := act.Prompt.Complete("feature")
	require.True(t, final.Interactive)
	require.Equal(t, []string{"git", "merge", "--no-ff", "feature"}, final.Argv)

	require.Empty(t, act.Prompt.Complete("").Argv)
}

func TestForRevertCarriesMenuDefaults(t *testing.T) {
	m := NewMenu(MenuRevert)
	require.Equal(t, []string{"--edit"}, m.EnabledFlags())

	act, ok := For(OpRevertCommit, items.Target{Kind: items.TargetCommit, Commit: "aaaa"}, m.EnabledFlags(), Behavior{})
	require.True(t, ok)
	require.Equal(t, "aaaa", act.Prompt.Default)
	require.Equal(t, []string{"git", "revert", "--edit", "aaaa"}, act.Prompt.Complete("aaaa").Argv)

	act, _ = For(OpRevertAbort, items.Target{}, nil, Behavior{})
	require.Equal(t, []string{"git", "revert", "--abort"}, act.Argv)
}

func TestForDeleteBranch(t *testing.T) {
	// On a branch item the op confirms and deletes that branch.
	act, ok := For(OpDeleteBranch, items.Target{Kind: items.TargetRef, Ref: "feature"}, nil, Behavior{ConfirmDestructive: true})
	require.True(t, ok)
	require.NotNil(t, act.Prompt)
	require.Equal(t, PromptConfirm, act.Prompt.Kind)
	require.Equal(t, []string{"git", "branch", "-d", "feature"}, act.Prompt.Complete("").Argv)

	// Elsewhere it asks which branch; an empty answer cancels.
	act, ok = For(OpDeleteBranch, items.Target{}, nil, Behavior{})
	require.True(t, ok)
	require.Equal(t, PromptInput, act.Prompt.Kind)
	require.Equal(t, []string{"git", "branch", "-d", "old"}, act.Prompt.Complete("old").Argv)
	require.Empty(t, act.Prompt.Complete("").Argv)
}

func TestMenuEntryLookup(t *testing.T) {
	m := NewMenu(MenuReset)
	op, ok := m.EntryFor("h")
	require.True(t, ok)
	require.Equal(t, OpResetHard, op)

	_, ok = m.EntryFor("z")
	require.False(t, ok)
}

func TestMenuForMapsEveryMenuOp(t *testing.T) {
	for _, op := range []Op{OpMenuCommit, OpMenuPush, OpMenuPull, OpMenuFetch,
		OpMenuBranch, OpMenuStash, OpMenuRebase, OpMenuReset, OpMenuMerge,
		OpMenuRevert, OpMenuHelp} {
		kind := MenuFor(op)
		require.NotEqual(t, MenuNone, kind, "%s", op)
		require.NotNil(t, NewMenu(kind), "%s", op)
	}
	require.Equal(t, MenuNone, MenuFor(OpStage))
}
