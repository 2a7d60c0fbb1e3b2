package items

import (
	"fmt"
	"strings"

	"github.com/gex-tui/gex/internal/diff"
	"github.com/gex-tui/gex/internal/git"
)

// Config tunes tree construction.
type Config struct {
	// RecentCommits is how many commits the status screen lists.
	RecentCommits int
	// AutoExpandHunks shows hunk bodies without requiring expansion.
	AutoExpandHunks bool
}

// BuildStatus assembles the status screen: branch context, untracked and
// unmerged paths, unstaged and staged diffs, recent commits, and stashes.
// Empty sections are omitted entirely.
func BuildStatus(svc git.Service, cfg Config) ([]Item, error) {
	st, err := svc.Status()
	if err != nil {
		return nil, err
	}

	out := branchItems(st)

	if len(st.Untracked) > 0 {
		out = append(out, Blank(), Header("untracked", fmt.Sprintf("Untracked files (%d)", len(st.Untracked))))
		for _, path := range st.Untracked {
			out = append(out, Item{
				ID:     "untracked:" + path,
				Kind:   KindFile,
				Depth:  1,
				Status: diff.StatusUntracked,
				Text:   path,
				Target: Target{Kind: TargetFile, Path: path, OldPath: path, Status: diff.StatusUntracked},
			})
		}
	}

	if len(st.Unmerged) > 0 {
		out = append(out, Blank(), Header("unmerged", fmt.Sprintf("Unmerged paths (%d)", len(st.Unmerged))))
		for _, path := range st.Unmerged {
			out = append(out, Item{
				ID:     "unmerged:" + path,
				Kind:   KindFile,
				Depth:  1,
				Status: diff.StatusUnmerged,
				Text:   path,
				Target: Target{Kind: TargetFile, Path: path, OldPath: path, Status: diff.StatusUnmerged},
			})
		}
	}

	out = append(out, diffSection("unstaged", "Unstaged changes", st.UnstagedDiff, cfg)...)
	out = append(out, diffSection("staged", "Staged changes", st.StagedDiff, cfg)...)

	if cfg.RecentCommits > 0 {
		commits, err := svc.Log(cfg.RecentCommits)
		if err != nil {
			return nil, err
		}
		if len(commits) > 0 {
			out = append(out, Blank(), Header("recent", "Recent commits"))
			for _, c := range commits {
				out = append(out, commitItem(c, 1))
			}
		}
	}

	stashes, err := svc.StashList()
	if err != nil {
		return nil, err
	}
	if len(stashes) > 0 {
		out = append(out, Blank(), Header("stashes", "Stashes"))
		for _, s := range stashes {
			out = append(out, stashItem(s, 1))
		}
	}

	return out, nil
}

// BuildLog assembles the log screen, one item per commit. Extra args are
// forwarded to git log verbatim.
func BuildLog(svc git.Service, limit int, args ...string) ([]Item, error) {
	commits, err := svc.Log(limit, args...)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(commits))
	for _, c := range commits {
		out = append(out, commitItem(c, 0))
	}
	return out, nil
}

// BuildShow assembles the show screen for a single revision: commit
// metadata followed by its full diff.
func BuildShow(svc git.Service, rev string, cfg Config) ([]Item, error) {
	commits, err := svc.Log(1, rev)
	if err != nil {
		return nil, err
	}
	patch, err := svc.Show(rev)
	if err != nil {
		return nil, err
	}

	var out []Item
	if len(commits) > 0 {
		c := commits[0]
		out = append(out, Item{
			ID:     c.Hash,
			Kind:   KindCommit,
			Meta:   c.ShortHash,
			Text:   c.Subject,
			Refs:   c.Refs,
			Target: Target{Kind: TargetCommit, Commit: c.Hash},
		})
		out = append(out,
			PlainText("Author: "+c.Author, 0),
			PlainText("Date:   "+c.Date.Format("Mon Jan 2 15:04:05 2006 -0700"), 0),
		)
		if body := strings.TrimRight(c.Body, "\n"); body != "" {
			out = append(out, Blank())
			for _, line := range strings.Split(body, "\n") {
				out = append(out, PlainText("    "+line, 0))
			}
		}
		out = append(out, Blank())
	}

	files, errs := diff.Parse(patch)
	out = append(out, fileItems("show:"+rev, files, errs, 0, cfg)...)
	return out, nil
}

// BuildDiff assembles a diff screen for an arbitrary revision range.
func BuildDiff(svc git.Service, from, to string, cfg Config, paths ...string) ([]Item, error) {
	patch, err := svc.DiffRange(from, to, paths...)
	if err != nil {
		return nil, err
	}
	files, errs := diff.Parse(patch)
	return fileItems("diff:"+from+".."+to, files, errs, 0, cfg), nil
}

// BuildStash assembles the stash list screen.
func BuildStash(svc git.Service) ([]Item, error) {
	stashes, err := svc.StashList()
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(stashes))
	for _, s := range stashes {
		out = append(out, stashItem(s, 0))
	}
	return out, nil
}

// BuildStashShow assembles the diff screen for a single stash entry.
func BuildStashShow(svc git.Service, index int, cfg Config) ([]Item, error) {
	patch, err := svc.StashShow(index)
	if err != nil {
		return nil, err
	}
	files, errs := diff.Parse(patch)
	return fileItems(fmt.Sprintf("stash:%d", index), files, errs, 0, cfg), nil
}

// BuildRefs assembles the refs screen: local branches first, then each
// remote's branches under a header per remote.
func BuildRefs(svc git.Service) ([]Item, error) {
	branches, err := svc.Branches()
	if err != nil {
		return nil, err
	}
	remotes, err := svc.Remotes()
	if err != nil {
		return nil, err
	}

	out := []Item{Header("branches", "Branches")}
	for _, b := range branches {
		if b.IsRemote {
			continue
		}
		meta := b.Hash
		if b.IsCurrent {
			meta = "* " + meta
		}
		out = append(out, Item{
			ID:     "branch:" + b.Name,
			Kind:   KindRef,
			Depth:  1,
			Text:   b.Name,
			Meta:   meta,
			Target: Target{Kind: TargetRef, Ref: b.Name},
		})
	}

	for _, r := range remotes {
		out = append(out, Blank(), Item{
			ID:     "remote:" + r.Name,
			Kind:   KindHeader,
			Text:   "Remote " + r.Name + " (" + r.FetchURL + ")",
			Target: Target{Kind: TargetRemote, Remote: r.Name},
		})
		prefix := r.Name + "/"
		for _, b := range branches {
			if !b.IsRemote || !strings.HasPrefix(b.Name, prefix) {
				continue
			}
			out = append(out, Item{
				ID:     "branch:" + b.Name,
				Kind:   KindRef,
				Depth:  1,
				Text:   b.Name,
				Meta:   b.Hash,
				Target: Target{Kind: TargetRef, Ref: b.Name},
			})
		}
	}
	return out, nil
}

func branchItems(st *git.StatusResult) []Item {
	var out []Item
	switch {
	case st.Branch == "":
		out = append(out, PlainText("HEAD detached", 0))
	default:
		out = append(out, PlainText("On branch "+st.Branch, 0))
	}
	if st.Upstream != "" {
		switch {
		case st.Ahead > 0 && st.Behind > 0:
			out = append(out, PlainText(fmt.Sprintf("Diverged from %s by %d ahead, %d behind", st.Upstream, st.Ahead, st.Behind), 0))
		case st.Ahead > 0:
			out = append(out, PlainText(fmt.Sprintf("Ahead of %s by %d", st.Upstream, st.Ahead), 0))
		case st.Behind > 0:
			out = append(out, PlainText(fmt.Sprintf("Behind %s by %d", st.Upstream, st.Behind), 0))
		default:
			out = append(out, PlainText("Up to date with "+st.Upstream, 0))
		}
	}
	if st.Merging {
		out = append(out, PlainText("Merge in progress", 0))
	}
	if st.Rebasing {
		out = append(out, PlainText("Rebase in progress", 0))
	}
	return out
}

// diffSection parses one side of the status diff into a collapsible
// section. Returns nil when the diff is empty.
func diffSection(id, title, patch string, cfg Config) []Item {
	files, errs := diff.Parse(patch)
	if len(files) == 0 && len(errs) == 0 {
		return nil
	}
	out := []Item{Blank(), Header(id, fmt.Sprintf("%s (%d)", title, len(files)+len(errs)))}
	return append(out, fileItems(id, files, errs, 1, cfg)...)
}

// fileItems renders parsed file diffs (and any per-file parse failures) as
// file, hunk, and line items rooted at baseDepth. Item IDs are prefixed so
// the same path in two sections stays distinct.
func fileItems(prefix string, files []diff.FileDiff, errs []*diff.ParseError, baseDepth int, cfg Config) []Item {
	var out []Item
	for fi := range files {
		fd := &files[fi]
		fileID := prefix + ":" + fd.Path()
		text := fd.Path()
		if fd.Status == diff.StatusRenamed || fd.Status == diff.StatusCopied {
			text = fd.OldPath + " -> " + fd.NewPath
		}
		oldPath := fd.OldPath
		if oldPath == "" {
			oldPath = fd.Path()
		}
		out = append(out, Item{
			ID:     fileID,
			Kind:   KindFile,
			Depth:  baseDepth,
			Status: fd.Status,
			Text:   text,
			Target: Target{Kind: TargetFile, Path: fd.Path(), OldPath: oldPath, Status: fd.Status},
		})
		if fd.IsBinary {
			out = append(out, PlainText("(binary)", baseDepth+1))
			continue
		}
		for hi := range fd.Hunks {
			h := &fd.Hunks[hi]
			hunkID := fileID + ":" + h.Header()
			out = append(out, Item{
				ID:               hunkID,
				Kind:             KindHunk,
				Depth:            baseDepth + 1,
				DefaultCollapsed: !cfg.AutoExpandHunks,
				Text:             h.Header(),
				Target: Target{
					Kind:  TargetHunk,
					Path:  fd.Path(),
					Patch: HunkPatch(fd, h),
				},
			})
			for li, l := range h.Lines {
				it := Item{
					ID:     fmt.Sprintf("%s:%d", hunkID, li),
					Kind:   KindLine,
					Depth:  baseDepth + 2,
					Origin: l.Origin,
					Text:   l.Text,
				}
				if l.Origin != diff.Context {
					it.Target = Target{
						Kind:  TargetLine,
						Path:  fd.Path(),
						Patch: LinePatch(fd, h, li),
					}
				}
				out = append(out, it)
			}
		}
	}
	for _, pe := range errs {
		fileID := prefix + ":" + pe.Path
		out = append(out, Item{
			ID:     fileID,
			Kind:   KindFile,
			Depth:  baseDepth,
			Text:   pe.Path,
			Meta:   "unparsed",
			Target: Target{Kind: TargetFile, Path: pe.Path},
		})
		for _, line := range strings.Split(strings.TrimRight(pe.Raw, "\n"), "\n") {
			out = append(out, PlainText(line, baseDepth+1))
		}
	}
	return out
}

func commitItem(c git.Commit, depth int) Item {
	return Item{
		ID:     c.Hash,
		Kind:   KindCommit,
		Depth:  depth,
		Meta:   c.ShortHash,
		Text:   c.Subject,
		Refs:   c.Refs,
		Target: Target{Kind: TargetCommit, Commit: c.Hash},
	}
}

func stashItem(s git.StashEntry, depth int) Item {
	return Item{
		ID:     fmt.Sprintf("stash:%d", s.Index),
		Kind:   KindStash,
		Depth:  depth,
		Meta:   fmt.Sprintf("stash@{%d}", s.Index),
		Text:   s.Message,
		Target: Target{Kind: TargetStash, Stash: s.Index},
	}
}
