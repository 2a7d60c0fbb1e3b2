package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatusPaths(t *testing.T) {
	out := "?? new.txt\x00" +
		" M modified.go\x00" +
		"M  staged.go\x00" +
		"UU conflicted.go\x00" +
		"R  renamed.go\x00old-name.go\x00" +
		"?? dir/other.txt\x00"

	untracked, unmerged := ParseStatusPaths(out)
	require.Equal(t, []string{"new.txt", "dir/other.txt"}, untracked)
	require.Equal(t, []string{"conflicted.go"}, unmerged)
}

func TestParseStatusPathsEmpty(t *testing.T) {
	untracked, unmerged := ParseStatusPaths("")
	require.Empty(t, untracked)
	require.Empty(t, unmerged)
}

func TestParseLogOutput(t *testing.T) {
	entry := "abcdef1234567890\x00abcdef1\x00Ada\x001700000000\x002 weeks ago\x00" +
		"fix the thing\x00longer body\x00HEAD -> main, tag: v1.2.0, origin/main\x01"

	commits := ParseLogOutput(entry)
	require.Len(t, commits, 1)
	c := commits[0]
	require.Equal(t, "abcdef1234567890", c.Hash)
	require.Equal(t, "abcdef1", c.ShortHash)
	require.Equal(t, "Ada", c.Author)
	require.Equal(t, "fix the thing", c.Subject)
	require.Len(t, c.Refs, 3)
	require.Equal(t, RefHead, c.Refs[0].Type)
	require.Equal(t, "main", c.Refs[0].Name)
	require.Equal(t, RefTag, c.Refs[1].Type)
	require.Equal(t, "v1.2.0", c.Refs[1].Name)
	require.Equal(t, RefRemoteBranch, c.Refs[2].Type)
	require.Equal(t, "origin", c.Refs[2].Remote)
}

func TestParseStashList(t *testing.T) {
	out := "stash@{0}: On main: wip thing\n" +
		"stash@{1}: WIP on feature: 1234abc some subject\n"

	entries := ParseStashList(out)
	require.Len(t, entries, 2)
	require.Equal(t, 0, entries[0].Index)
	require.Equal(t, "wip thing", entries[0].Message)
	require.Equal(t, "main", entries[0].Branch)
	require.Equal(t, 1, entries[1].Index)
}

func TestParseBranchOutput(t *testing.T) {
	out := "*\x00main\x00abc1234\x00origin/main\x00latest subject\n" +
		" \x00remotes/origin/main\x00abc1234\x00\x00latest subject\n"

	branches := ParseBranchOutput(out)
	require.Len(t, branches, 2)
	require.True(t, branches[0].IsCurrent)
	require.Equal(t, "main", branches[0].Name)
	require.False(t, branches[0].IsRemote)
	require.True(t, branches[1].IsRemote)
	require.Equal(t, "origin/main", branches[1].Name)
}

func TestParseRemoteOutput(t *testing.T) {
	out := "origin\tgit@example.com:me/repo.git (fetch)\n" +
		"origin\tgit@example.com:me/repo.git (push)\n" +
		"upstream\thttps://example.com/them/repo.git (fetch)\n"

	remotes := ParseRemoteOutput(out)
	require.Len(t, remotes, 2)
	require.Equal(t, "origin", remotes[0].Name)
	require.Equal(t, "git@example.com:me/repo.git", remotes[0].PushURL)
	require.Equal(t, "upstream", remotes[1].Name)
	require.Empty(t, remotes[1].PushURL)
}
