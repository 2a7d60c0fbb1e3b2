// Package items defines the outline's display nodes and builds item trees
// from repository state. An Item is a single row of a screen; its Target is
// the semantic payload actions operate on.
package items

import (
	"github.com/gex-tui/gex/internal/diff"
	"github.com/gex-tui/gex/internal/git"
)

// TargetKind discriminates the closed set of action payloads.
type TargetKind int

// Target kinds. Actions declare which kinds they accept; an action whose
// kinds don't include the selection's kind is hidden.
const (
	TargetNone TargetKind = iota
	TargetFile
	TargetHunk
	TargetLine
	TargetCommit
	TargetStash
	TargetRef
	TargetRemote
)

// Target is the semantic subject of a user action. Exactly the fields
// implied by Kind are set; the rest stay zero.
type Target struct {
	Kind    TargetKind
	Path    string      // TargetFile; also set on hunk/line targets for context
	OldPath string      // TargetFile: pre-rename path, equals Path otherwise
	Status  diff.Status // TargetFile: what discarding the file must undo
	Patch   string      // TargetHunk, TargetLine: ready-to-apply patch text
	Commit  string      // TargetCommit: full hash
	Stash   int         // TargetStash
	Ref     string      // TargetRef
	Remote  string      // TargetRemote
}

// Kind discriminates item display variants.
type Kind int

// Item kinds. Render, keybind resolution, and action dispatch each switch
// exhaustively over these.
const (
	KindHeader Kind = iota
	KindFile
	KindHunk
	KindLine
	KindCommit
	KindStash
	KindRef
	KindText
)

// Item is one row of a screen's outline.
//
// ID is the stable identity that survives refreshes: section title, path,
// path+hunk header, commit hash, stash index, or ref name. The collapsed
// set and cursor restoration are both keyed by it.
type Item struct {
	ID               string
	Kind             Kind
	Depth            int
	Unselectable     bool
	DefaultCollapsed bool
	Target           Target

	Text   string      // pre-formatted main content
	Meta   string      // short hash / stash label / status word, kind-dependent
	Origin diff.Origin // KindLine only
	Status diff.Status // KindFile only
	Refs   []git.Ref   // KindCommit decorations
}

// Header makes an unindented section header item.
func Header(id, text string) Item {
	return Item{ID: id, Kind: KindHeader, Text: text}
}

// Blank is an unselectable spacer row.
func Blank() Item {
	return Item{ID: "", Kind: KindText, Unselectable: true}
}

// PlainText makes an unselectable text row at the given depth.
func PlainText(text string, depth int) Item {
	return Item{Kind: KindText, Text: text, Depth: depth, Unselectable: true}
}
