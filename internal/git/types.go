package git

import "time"

// StatusResult is everything the status screen needs, gathered in one call:
// branch context, untracked/unmerged paths, and the raw unstaged/staged diff
// text (worktree vs index, index vs HEAD) ready for the diff parser.
type StatusResult struct {
	Branch   string
	Upstream string
	Ahead    int
	Behind   int
	Merging  bool
	Rebasing bool

	Untracked []string
	Unmerged  []string

	UnstagedDiff string
	StagedDiff   string
}

// RefType classifies a Git reference.
type RefType int

// Git reference types.
const (
	RefBranch RefType = iota
	RefRemoteBranch
	RefTag
	RefHead
)

// Ref is a Git reference (branch, tag, HEAD).
type Ref struct {
	Name   string
	Type   RefType
	Remote string
}

// Commit represents a single Git commit.
type Commit struct {
	Hash      string
	ShortHash string
	Author    string
	Date      time.Time
	RelDate   string
	Subject   string
	Body      string
	Refs      []Ref
}

// StashEntry represents a single stash entry.
type StashEntry struct {
	Index   int
	Message string
	Branch  string
}

// Branch represents a local or remote branch.
type Branch struct {
	Name      string
	IsCurrent bool
	IsRemote  bool
	Upstream  string
	Hash      string
	Subject   string
}

// Remote represents a configured Git remote.
type Remote struct {
	Name     string
	FetchURL string
	PushURL  string
}
