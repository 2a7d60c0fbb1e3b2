package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotARepo is returned when the path is not inside a Git repository.
var ErrNotARepo = errors.New("not a git repository")

// cmdTimeout is the maximum duration any single synchronous git command may
// run. Long-running network operations go through the async command engine
// instead and are not bound by this.
const cmdTimeout = 30 * time.Second

// CLIService implements Service by shelling out to the git CLI.
//   - GIT_OPTIONAL_LOCKS=0 on all read commands (no lock contention)
//   - Context-based timeouts prevent hangs
//   - Stdout/Stderr separated — stderr noise doesn't corrupt output
type CLIService struct {
	root   string // Absolute path to the repo root.
	gitDir string // Path to the .git directory.
}

// Compile-time check that CLIService implements Service.
var _ Service = (*CLIService)(nil)

// NewCLIService opens a Git repository at the given path.
func NewCLIService(path string) (*CLIService, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	topLevel, err := runGit(abs, nil, "", "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, ErrNotARepo
	}
	gitDir, err := runGit(abs, nil, "", "rev-parse", "--git-dir")
	if err != nil {
		return nil, fmt.Errorf("finding .git directory: %w", err)
	}
	gd := strings.TrimSpace(gitDir)
	if !filepath.IsAbs(gd) {
		gd = filepath.Join(strings.TrimSpace(topLevel), gd)
	}
	return &CLIService{
		root:   strings.TrimSpace(topLevel),
		gitDir: gd,
	}, nil
}

// RepoRoot returns the repository root path.
func (s *CLIService) RepoRoot() string { return s.root }

// GitDir returns the path to the .git directory.
func (s *CLIService) GitDir() string { return s.gitDir }

// ── helpers ─────────────────────────────────────────────────────────────────

// readEnv is the environment set on all read-only git commands.
// GIT_OPTIONAL_LOCKS=0 prevents git from acquiring optional locks,
// which matters in large repos where lock contention stalls readers.
var readEnv = []string{"GIT_OPTIONAL_LOCKS=0"}

// run executes a git command at the repo root with read-optimised env.
func (s *CLIService) run(args ...string) (string, error) {
	return runGit(s.root, readEnv, "", args...)
}

// runWrite executes a write git command (no optional-locks override).
func (s *CLIService) runWrite(args ...string) (string, error) {
	return runGit(s.root, nil, "", args...)
}

// runInput executes a git command with stdin content (for `git apply -`).
func (s *CLIService) runInput(input string, args ...string) (string, error) {
	return runGit(s.root, nil, input, args...)
}

// runGit executes a git command with a context timeout.
func runGit(dir string, extraEnv []string, stdin string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), errMsg, err)
	}
	return stdout.String(), nil
}

// ── Repository info ─────────────────────────────────────────────────────────

// Head returns the current HEAD ref, or a short hash when detached.
func (s *CLIService) Head() (string, error) {
	ref, err := s.run("symbolic-ref", "--short", "HEAD")
	if err != nil {
		hash, hashErr := s.run("rev-parse", "--short", "HEAD")
		if hashErr != nil {
			return "", fmt.Errorf("getting HEAD: %w", err)
		}
		return strings.TrimSpace(hash), nil
	}
	return strings.TrimSpace(ref), nil
}

func (s *CLIService) isMerging() bool {
	_, err := os.Stat(filepath.Join(s.gitDir, "MERGE_HEAD"))
	return err == nil
}

func (s *CLIService) isRebasing() bool {
	for _, sub := range []string{"rebase-merge", "rebase-apply"} {
		if info, err := os.Stat(filepath.Join(s.gitDir, sub)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func (s *CLIService) aheadBehind() (int, int) {
	out, err := s.run("rev-list", "--left-right", "--count", "HEAD...@{upstream}")
	if err != nil {
		return 0, 0 // no upstream is not an error
	}
	parts := strings.Fields(strings.TrimSpace(out))
	if len(parts) != 2 {
		return 0, 0
	}
	var ahead, behind int
	_, _ = fmt.Sscan(parts[0], &ahead)
	_, _ = fmt.Sscan(parts[1], &behind)
	return ahead, behind
}

func (s *CLIService) upstream() string {
	out, err := s.run("rev-parse", "--abbrev-ref", "@{upstream}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ── Status ──────────────────────────────────────────────────────────────────

// Status gathers the status screen's inputs: branch context, untracked and
// unmerged paths from porcelain output, and both diff texts. Every call
// re-derives from live queries — the worktree may be mutated externally at
// any time.
func (s *CLIService) Status() (*StatusResult, error) {
	res := &StatusResult{}

	out, err := s.run("status", "--porcelain=v1", "-z",
		"--no-optional-locks", "--untracked-files=normal")
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}
	res.Untracked, res.Unmerged = ParseStatusPaths(out)

	if res.UnstagedDiff, err = s.diff(false); err != nil {
		return nil, err
	}
	if res.StagedDiff, err = s.diff(true); err != nil {
		return nil, err
	}

	res.Branch, _ = s.Head()
	res.Upstream = s.upstream()
	res.Ahead, res.Behind = s.aheadBehind()
	res.Merging = s.isMerging()
	res.Rebasing = s.isRebasing()
	return res, nil
}

func (s *CLIService) diff(staged bool) (string, error) {
	args := []string{"diff", "--color=never", "--no-optional-locks", "--no-ext-diff"}
	if staged {
		args = append(args, "--cached")
	}
	return s.run(args...)
}

// ── Staging ─────────────────────────────────────────────────────────────────

// Stage stages the given paths. Staging an already-staged path is a no-op.
func (s *CLIService) Stage(paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	_, err := s.runWrite(args...)
	return err
}

// StageAll stages all changes including untracked files.
func (s *CLIService) StageAll() error { _, err := s.runWrite("add", "-A"); return err }

// Unstage unstages the given paths. Unstaging an already-unstaged path is a
// no-op.
func (s *CLIService) Unstage(paths ...string) error {
	args := append([]string{"reset", "HEAD", "--"}, paths...)
	_, err := s.runWrite(args...)
	return err
}

// UnstageAll unstages all changes.
func (s *CLIService) UnstageAll() error { _, err := s.runWrite("reset", "HEAD"); return err }

// ApplyPatch pipes patch text into `git apply` for hunk/line staging.
func (s *CLIService) ApplyPatch(patch string, reverse, cached bool) error {
	args := []string{"apply"}
	if reverse {
		args = append(args, "--reverse")
	}
	if cached {
		args = append(args, "--cached")
	}
	args = append(args, "-")
	_, err := s.runInput(patch, args...)
	return err
}

// Discard restores tracked paths from HEAD, dropping staged and unstaged
// changes. Fails on untracked paths; those go through Clean.
func (s *CLIService) Discard(paths ...string) error {
	args := append([]string{"checkout", "HEAD", "--"}, paths...)
	_, err := s.runWrite(args...)
	return err
}

// Clean deletes untracked files from the worktree.
func (s *CLIService) Clean(paths ...string) error {
	args := append([]string{"clean", "--force", "--"}, paths...)
	_, err := s.runWrite(args...)
	return err
}

// Remove unstages and deletes newly added files.
func (s *CLIService) Remove(paths ...string) error {
	args := append([]string{"rm", "--force", "--"}, paths...)
	_, err := s.runWrite(args...)
	return err
}

// Rename moves a file back, overwriting the destination.
func (s *CLIService) Rename(from, to string) error {
	_, err := s.runWrite("mv", "--force", from, to)
	return err
}

// Checkout switches to the given branch or revision.
func (s *CLIService) Checkout(ref string) error {
	_, err := s.runWrite("checkout", ref)
	return err
}

// ── History & refs ──────────────────────────────────────────────────────────

// Log returns the commit log; extra args are forwarded verbatim so the log
// screen can accept user-supplied revision ranges and filters.
func (s *CLIService) Log(limit int, args ...string) ([]Commit, error) {
	cmdArgs := []string{
		"log", fmt.Sprintf("--max-count=%d", limit),
		"--no-optional-locks", LogFormatFlag(),
	}
	cmdArgs = append(cmdArgs, args...)
	out, err := s.run(cmdArgs...)
	if err != nil {
		return nil, fmt.Errorf("getting log: %w", err)
	}
	return ParseLogOutput(out), nil
}

// Show returns the patch text for a single revision.
func (s *CLIService) Show(rev string) (string, error) {
	out, err := s.run("show", "--format=", "--patch", "--no-optional-locks", "--no-ext-diff", rev)
	if err != nil {
		return "", fmt.Errorf("showing %s: %w", rev, err)
	}
	return out, nil
}

// DiffRange returns the diff between two revisions, optionally path-limited.
func (s *CLIService) DiffRange(from, to string, paths ...string) (string, error) {
	args := []string{"diff", "--color=never", "--no-optional-locks", "--no-ext-diff", from + ".." + to}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	return s.run(args...)
}

// StashList returns stash entries.
func (s *CLIService) StashList() ([]StashEntry, error) {
	out, err := s.run("stash", "list")
	if err != nil {
		return nil, err
	}
	return ParseStashList(out), nil
}

// StashShow shows the diff for a stash entry.
func (s *CLIService) StashShow(index int) (string, error) {
	return s.run("stash", "show", "-p", fmt.Sprintf("stash@{%d}", index))
}

const branchFormat = "%(HEAD)%00%(refname:short)%00%(objectname:short)%00%(upstream:short)%00%(subject)"

// Branches returns all branches, most recently active first.
func (s *CLIService) Branches() ([]Branch, error) {
	out, err := s.run("branch", "-a", "--format="+branchFormat, "--sort=-committerdate")
	if err != nil {
		return nil, err
	}
	return ParseBranchOutput(out), nil
}

// Remotes returns all configured remotes.
func (s *CLIService) Remotes() ([]Remote, error) {
	out, err := s.run("remote", "-v")
	if err != nil {
		return nil, err
	}
	return ParseRemoteOutput(out), nil
}
