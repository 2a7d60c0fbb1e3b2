package git

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ── Log / commit parsing ────────────────────────────────────────────────────

const (
	logFormat    = "%H%x00%h%x00%an%x00%at%x00%ar%x00%s%x00%b%x00%D"
	logSeparator = "%x01"
)

// LogFormatFlag returns the --format flag for git log.
func LogFormatFlag() string {
	return fmt.Sprintf("--format=%s%s", logFormat, logSeparator)
}

// ParseLogOutput parses the raw output of git log using our custom format.
// Uses IndexByte scanning instead of Split to avoid allocating a large
// []string for repos with thousands of commits.
func ParseLogOutput(out string) []Commit {
	if len(out) == 0 {
		return nil
	}
	est := len(out) / 200
	if est < 8 {
		est = 8
	}
	commits := make([]Commit, 0, est)

	for len(out) > 0 {
		idx := strings.IndexByte(out, '\x01')
		var entry string
		if idx < 0 {
			entry = out
			out = ""
		} else {
			entry = out[:idx]
			out = out[idx+1:]
		}
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if c, ok := parseCommitEntry(entry); ok {
			commits = append(commits, c)
		}
	}
	return commits
}

func parseCommitEntry(entry string) (Commit, bool) {
	parts := strings.SplitN(entry, "\x00", 8)
	if len(parts) < 8 {
		return Commit{}, false
	}
	ts, _ := strconv.ParseInt(strings.TrimSpace(parts[3]), 10, 64)
	c := Commit{
		Hash:      strings.TrimSpace(parts[0]),
		ShortHash: strings.TrimSpace(parts[1]),
		Author:    strings.TrimSpace(parts[2]),
		Date:      time.Unix(ts, 0),
		RelDate:   strings.TrimSpace(parts[4]),
		Subject:   strings.TrimSpace(parts[5]),
		Body:      strings.TrimSpace(parts[6]),
	}
	if r := strings.TrimSpace(parts[7]); r != "" {
		c.Refs = ParseRefs(r)
	}
	return c, true
}

// ParseRefs parses the %D decoration string into typed Ref values.
func ParseRefs(raw string) []Ref {
	refs := make([]Ref, 0, 4)
	for _, r := range strings.Split(raw, ", ") {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		ref := Ref{Name: r}
		switch {
		case r == "HEAD":
			ref.Type = RefHead
		case strings.HasPrefix(r, "HEAD -> "):
			ref.Name = strings.TrimPrefix(r, "HEAD -> ")
			ref.Type = RefHead
		case strings.HasPrefix(r, "tag: "):
			ref.Name = strings.TrimPrefix(r, "tag: ")
			ref.Type = RefTag
		case strings.Contains(r, "/"):
			ref.Type = RefRemoteBranch
			parts := strings.SplitN(r, "/", 2)
			ref.Remote = parts[0]
			ref.Name = parts[1]
		default:
			ref.Type = RefBranch
		}
		refs = append(refs, ref)
	}
	return refs
}

// ── Status parsing ──────────────────────────────────────────────────────────

// ParseStatusPaths parses `git status --porcelain=v1 -z` and extracts the
// untracked and unmerged path lists. Staged/unstaged file state comes from
// the diff texts instead, so the rest of the porcelain entries are skipped.
func ParseStatusPaths(out string) (untracked, unmerged []string) {
	for len(out) > 0 {
		nul := strings.IndexByte(out, '\x00')
		var entry string
		if nul < 0 {
			entry = out
			out = ""
		} else {
			entry = out[:nul]
			out = out[nul+1:]
		}
		if len(entry) < 4 {
			continue
		}

		staging, worktree := entry[0], entry[1]
		path := entry[3:]

		// Renames/copies carry an extra NUL-separated original path.
		if staging == 'R' || staging == 'C' || worktree == 'R' || worktree == 'C' {
			if nul2 := strings.IndexByte(out, '\x00'); nul2 < 0 {
				out = ""
			} else {
				out = out[nul2+1:]
			}
		}

		switch {
		case staging == '?' && worktree == '?':
			untracked = append(untracked, path)
		case staging == 'U' || worktree == 'U',
			staging == 'A' && worktree == 'A',
			staging == 'D' && worktree == 'D':
			unmerged = append(unmerged, path)
		}
	}
	return untracked, unmerged
}

// ── Stash parsing ───────────────────────────────────────────────────────────

// ParseStashList parses `git stash list`.
func ParseStashList(out string) []StashEntry {
	if len(out) == 0 {
		return nil
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	entries := make([]StashEntry, 0, len(lines))
	for _, line := range lines {
		var idx int
		if _, err := fmt.Sscanf(line, "stash@{%d}", &idx); err != nil {
			continue
		}
		msg := line
		if colonIdx := strings.Index(line, ": "); colonIdx != -1 {
			rest := line[colonIdx+2:]
			if secondColon := strings.Index(rest, ": "); secondColon != -1 {
				msg = rest[secondColon+2:]
			} else {
				msg = rest
			}
		}
		branch := ""
		if strings.Contains(line, "On ") {
			parts := strings.SplitN(line, "On ", 2)
			if len(parts) == 2 {
				if colonIdx := strings.Index(parts[1], ":"); colonIdx != -1 {
					branch = parts[1][:colonIdx]
				}
			}
		}
		entries = append(entries, StashEntry{Index: idx, Message: msg, Branch: branch})
	}
	return entries
}

// ── Branch parsing ──────────────────────────────────────────────────────────

// ParseBranchOutput parses `git branch -a --format=...`.
func ParseBranchOutput(out string) []Branch {
	if len(out) == 0 {
		return nil
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	branches := make([]Branch, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, "\x00", 5)
		if len(parts) < 5 {
			continue
		}
		b := Branch{
			IsCurrent: strings.TrimSpace(parts[0]) == "*",
			Name:      strings.TrimSpace(parts[1]),
			Hash:      strings.TrimSpace(parts[2]),
			Upstream:  strings.TrimSpace(parts[3]),
			Subject:   strings.TrimSpace(parts[4]),
		}
		b.IsRemote = strings.HasPrefix(b.Name, "remotes/")
		if b.IsRemote {
			b.Name = strings.TrimPrefix(b.Name, "remotes/")
		}
		branches = append(branches, b)
	}
	return branches
}

// ── Remote parsing ──────────────────────────────────────────────────────────

// ParseRemoteOutput parses `git remote -v`.
func ParseRemoteOutput(out string) []Remote {
	if len(out) == 0 {
		return nil
	}
	seen := map[string]*Remote{}
	var order []string
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		name := fields[0]
		url := fields[1]
		kind := strings.Trim(fields[2], "()")
		r, ok := seen[name]
		if !ok {
			r = &Remote{Name: name}
			seen[name] = r
			order = append(order, name)
		}
		switch kind {
		case "fetch":
			r.FetchURL = url
		case "push":
			r.PushURL = url
		}
	}
	remotes := make([]Remote, 0, len(order))
	for _, name := range order {
		remotes = append(remotes, *seen[name])
	}
	return remotes
}
