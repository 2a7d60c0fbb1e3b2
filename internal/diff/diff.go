// Package diff parses git's unified diff output into structured, addressable
// hunks and lines. Parsing is pure — no I/O — so the TUI builds its outline
// from the same text git printed, and tests run on literal strings.
package diff

import (
	"fmt"
	"strings"
)

// Status classifies what happened to a file in a diff.
type Status int

// File statuses as git reports them. StatusUntracked never appears in a
// diff header; it marks paths the status porcelain lists as untracked.
const (
	StatusModified Status = iota
	StatusAdded
	StatusDeleted
	StatusRenamed
	StatusCopied
	StatusUnmerged
	StatusUntracked
)

// String returns a lowercase label matching git's own wording.
func (s Status) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	case StatusCopied:
		return "copied"
	case StatusUnmerged:
		return "unmerged"
	case StatusUntracked:
		return "untracked"
	default:
		return "modified"
	}
}

// Origin is the first column of a hunk body line.
type Origin byte

// Line origins.
const (
	Context Origin = ' '
	Added   Origin = '+'
	Removed Origin = '-'
)

// Line is a single line of hunk content, without its origin prefix.
type Line struct {
	Origin    Origin
	Text      string
	NoNewline bool // set when followed by "\ No newline at end of file"
}

// Hunk is a contiguous block of changes anchored to old/new line ranges.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	FuncCtx  string // trailing function context from the @@ header, may be empty
	Lines    []Line
}

// Header reconstructs the "@@ -a,b +c,d @@" header line for this hunk.
func (h *Hunk) Header() string {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
	if h.FuncCtx != "" {
		header += " " + h.FuncCtx
	}
	return header
}

// Text reconstructs the hunk body including origin prefixes and newline
// markers, suitable for feeding back into `git apply`.
func (h *Hunk) Text() string {
	var b strings.Builder
	b.WriteString(h.Header())
	b.WriteByte('\n')
	for _, line := range h.Lines {
		b.WriteByte(byte(line.Origin))
		b.WriteString(line.Text)
		b.WriteByte('\n')
		if line.NoNewline {
			b.WriteString("\\ No newline at end of file\n")
		}
	}
	return b.String()
}

// FileDiff is one file's section of a diff.
type FileDiff struct {
	OldPath  string
	NewPath  string
	Status   Status
	IsBinary bool
	Hunks    []Hunk
}

// Path returns the path a user would act on: the new path, unless the file
// was deleted.
func (f *FileDiff) Path() string {
	if f.Status == StatusDeleted && f.OldPath != "" {
		return f.OldPath
	}
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

// FileHeader reconstructs enough of the file header for `git apply`.
func (f *FileDiff) FileHeader() string {
	oldP, newP := f.OldPath, f.NewPath
	if oldP == "" {
		oldP = newP
	}
	if newP == "" {
		newP = oldP
	}
	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", oldP, newP)
	switch f.Status {
	case StatusAdded:
		b.WriteString("--- /dev/null\n")
		fmt.Fprintf(&b, "+++ b/%s\n", newP)
	case StatusDeleted:
		fmt.Fprintf(&b, "--- a/%s\n", oldP)
		b.WriteString("+++ /dev/null\n")
	default:
		fmt.Fprintf(&b, "--- a/%s\n", oldP)
		fmt.Fprintf(&b, "+++ b/%s\n", newP)
	}
	return b.String()
}

// ParseError marks a file section whose hunk body contradicted its header.
// The caller is expected to fall back to displaying Raw for that file;
// sibling files in the same input are unaffected.
type ParseError struct {
	Path   string
	Raw    string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing diff for %s: %s", e.Path, e.Reason)
}
