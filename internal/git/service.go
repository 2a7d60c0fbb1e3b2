package git

// Service defines the contract for all Git operations the outline engine
// consumes. Screens and ops depend on this interface, never on exec.Command
// directly, so the whole tree builder is testable against a fake.
type Service interface {
	// ── Repository info ──────────────────────────────────────────────
	RepoRoot() string
	GitDir() string
	Head() (string, error)

	// ── Status ───────────────────────────────────────────────────────
	Status() (*StatusResult, error)

	// ── Staging (synchronous local mutations) ────────────────────────
	Stage(paths ...string) error
	StageAll() error
	Unstage(paths ...string) error
	UnstageAll() error
	// ApplyPatch pipes patch text into `git apply` for hunk- and
	// line-level staging. cached targets the index, reverse unstages.
	ApplyPatch(patch string, reverse, cached bool) error
	// Discard restores tracked paths from HEAD. Untracked, newly added,
	// and renamed files need Clean, Remove, and Rename instead.
	Discard(paths ...string) error
	Clean(paths ...string) error
	Remove(paths ...string) error
	Rename(from, to string) error
	Checkout(ref string) error

	// ── History & refs (reads) ───────────────────────────────────────
	Log(limit int, args ...string) ([]Commit, error)
	Show(rev string) (string, error)
	DiffRange(from, to string, paths ...string) (string, error)
	StashList() ([]StashEntry, error)
	StashShow(index int) (string, error)
	Branches() ([]Branch, error)
	Remotes() ([]Remote, error)
}
