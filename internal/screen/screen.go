// Package screen maintains the cursor, scroll, and collapse state of one
// outline and projects its item tree onto visible lines.
package screen

import (
	"github.com/gex-tui/gex/internal/items"
)

// Kind names the screen variants the app can display.
type Kind int

// Screen kinds.
const (
	KindStatus Kind = iota
	KindLog
	KindShow
	KindDiff
	KindStash
	KindRefs
)

func (k Kind) String() string {
	switch k {
	case KindLog:
		return "log"
	case KindShow:
		return "show"
	case KindDiff:
		return "diff"
	case KindStash:
		return "stash"
	case KindRefs:
		return "refs"
	default:
		return "status"
	}
}

// NavMode selects which items cursor movement may land on.
type NavMode int

const (
	// NavNormal visits selectable items except individual diff lines.
	NavNormal NavMode = iota
	// NavSiblings visits items at the current depth or shallower.
	NavSiblings
	// NavIncludeLines visits every selectable item, diff lines included.
	NavIncludeLines
)

// RefreshFunc re-derives a screen's items from live repository state.
type RefreshFunc func() ([]items.Item, error)

// Screen is one navigable outline. The collapse overrides and the cursor
// are keyed by item ID so both survive Refresh.
type Screen struct {
	Kind    Kind
	Title   string
	refresh RefreshFunc

	items     []items.Item
	lineIndex []int // indices into items, in visible order
	cursor    int   // index into lineIndex
	scroll    int   // first visible line
	height    int

	// collapsed holds explicit per-item overrides; absent means the item's
	// DefaultCollapsed applies.
	collapsed map[string]bool
}

// New builds a screen and performs its initial refresh.
func New(kind Kind, title string, height int, refresh RefreshFunc) (*Screen, error) {
	s := &Screen{
		Kind:      kind,
		Title:     title,
		refresh:   refresh,
		height:    height,
		collapsed: make(map[string]bool),
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetCollapsed records an explicit collapse override, e.g. from the
// collapsed_sections config, and reprojects.
func (s *Screen) SetCollapsed(id string, collapsed bool) {
	s.collapsed[id] = collapsed
	s.rebuildIndex()
	s.moveFromUnselectable()
	s.scrollFit()
}

// Refresh re-derives the items and restores the cursor to the same item
// ID when it still exists, otherwise to the nearest preceding item that
// survived, otherwise to the top.
func (s *Screen) Refresh() error {
	var prevIDs []string
	if len(s.lineIndex) > 0 {
		for i := s.cursor; i >= 0; i-- {
			if id := s.items[s.lineIndex[i]].ID; id != "" {
				prevIDs = append(prevIDs, id)
			}
		}
	}

	next, err := s.refresh()
	if err != nil {
		return err
	}
	s.items = next
	s.rebuildIndex()

	s.cursor = 0
	for _, id := range prevIDs {
		if line, ok := s.findLine(id); ok {
			s.cursor = line
			break
		}
	}
	s.moveFromUnselectable()
	s.scrollFit()
	return nil
}

// rebuildIndex recomputes the visible-line projection. A collapsed item
// hides every following item of strictly greater depth.
func (s *Screen) rebuildIndex() {
	s.lineIndex = s.lineIndex[:0]
	hideBelow := -1
	for i := range s.items {
		it := &s.items[i]
		if hideBelow >= 0 {
			if it.Depth > hideBelow {
				continue
			}
			hideBelow = -1
		}
		s.lineIndex = append(s.lineIndex, i)
		if s.isCollapsed(it) {
			hideBelow = it.Depth
		}
	}
	if s.cursor >= len(s.lineIndex) {
		s.cursor = len(s.lineIndex) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *Screen) isCollapsed(it *items.Item) bool {
	if it.ID == "" {
		return false
	}
	if v, ok := s.collapsed[it.ID]; ok {
		return v
	}
	return it.DefaultCollapsed
}

func (s *Screen) findLine(id string) (int, bool) {
	for line, idx := range s.lineIndex {
		if s.items[idx].ID == id {
			return line, true
		}
	}
	return 0, false
}

// Selected returns the item under the cursor, or nil for an empty screen.
func (s *Screen) Selected() *items.Item {
	if len(s.lineIndex) == 0 {
		return nil
	}
	return &s.items[s.lineIndex[s.cursor]]
}

// Lines returns the visible items in order. The returned slice aliases the
// screen's state and is valid until the next Refresh or collapse change.
func (s *Screen) Lines() []*items.Item {
	out := make([]*items.Item, len(s.lineIndex))
	for i, idx := range s.lineIndex {
		out[i] = &s.items[idx]
	}
	return out
}

// Cursor returns the cursor's visible-line position.
func (s *Screen) Cursor() int { return s.cursor }

// Scroll returns the first visible line.
func (s *Screen) Scroll() int { return s.scroll }

// SetHeight updates the viewport height and keeps the cursor in view.
func (s *Screen) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	s.height = h
	s.scrollFit()
}

// eligible reports whether the cursor may rest on the given line in the
// given mode. fromDepth is the depth movement started at, used by
// NavSiblings.
func (s *Screen) eligible(line int, mode NavMode, fromDepth int) bool {
	it := &s.items[s.lineIndex[line]]
	if it.Unselectable {
		return false
	}
	switch mode {
	case NavSiblings:
		return it.Depth <= fromDepth
	case NavIncludeLines:
		return true
	default:
		return it.Kind != items.KindLine
	}
}

// MoveNext advances the cursor to the next eligible line, if any.
func (s *Screen) MoveNext(mode NavMode) {
	s.move(mode, 1)
}

// MovePrev moves the cursor to the previous eligible line, if any.
func (s *Screen) MovePrev(mode NavMode) {
	s.move(mode, -1)
}

func (s *Screen) move(mode NavMode, dir int) {
	if len(s.lineIndex) == 0 {
		return
	}
	fromDepth := s.items[s.lineIndex[s.cursor]].Depth
	for line := s.cursor + dir; line >= 0 && line < len(s.lineIndex); line += dir {
		if s.eligible(line, mode, fromDepth) {
			s.cursor = line
			s.scrollFit()
			return
		}
	}
}

// MoveParent moves the cursor to the nearest preceding line at a smaller
// depth, the selected item's parent in the outline.
func (s *Screen) MoveParent() {
	if len(s.lineIndex) == 0 {
		return
	}
	depth := s.items[s.lineIndex[s.cursor]].Depth
	for line := s.cursor - 1; line >= 0; line-- {
		it := &s.items[s.lineIndex[line]]
		if it.Depth < depth && !it.Unselectable {
			s.cursor = line
			s.scrollFit()
			return
		}
	}
}

// MoveTop puts the cursor on the first selectable line.
func (s *Screen) MoveTop() {
	s.cursor = 0
	s.moveFromUnselectable()
	s.scrollFit()
}

// MoveBottom puts the cursor on the last selectable line.
func (s *Screen) MoveBottom() {
	if len(s.lineIndex) == 0 {
		return
	}
	s.cursor = len(s.lineIndex) - 1
	if s.items[s.lineIndex[s.cursor]].Unselectable {
		s.move(NavIncludeLines, -1)
	}
	s.scrollFit()
}

// HalfPageDown scrolls the view down half a screen, dragging the cursor
// along so it stays visible.
func (s *Screen) HalfPageDown() {
	s.scroll += s.height / 2
	max := len(s.lineIndex) - 1
	if s.scroll > max {
		s.scroll = max
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
	if s.cursor < s.scroll {
		s.cursor = s.scroll
		s.moveFromUnselectable()
	}
}

// HalfPageUp scrolls the view up half a screen, dragging the cursor along.
func (s *Screen) HalfPageUp() {
	s.scroll -= s.height / 2
	if s.scroll < 0 {
		s.scroll = 0
	}
	if last := s.scroll + s.height - 1; s.cursor > last {
		s.cursor = last
		if s.items[s.lineIndex[s.cursor]].Unselectable {
			s.move(NavIncludeLines, -1)
		}
	}
}

// ToggleCollapse flips the collapse state of the item under the cursor.
// Items without children, or without an identity, are left alone; the
// cursor stays on the toggled item.
func (s *Screen) ToggleCollapse() {
	it := s.Selected()
	if it == nil || it.ID == "" || !s.hasChildren(s.lineIndex[s.cursor]) {
		return
	}
	s.collapsed[it.ID] = !s.isCollapsed(it)
	id := it.ID
	s.rebuildIndex()
	if line, ok := s.findLine(id); ok {
		s.cursor = line
	}
	s.scrollFit()
}

// CollapsedAt reports whether the visible line hides collapsed children.
func (s *Screen) CollapsedAt(line int) bool {
	idx := s.lineIndex[line]
	return s.hasChildren(idx) && s.isCollapsed(&s.items[idx])
}

func (s *Screen) hasChildren(idx int) bool {
	return idx+1 < len(s.items) && s.items[idx+1].Depth > s.items[idx].Depth
}

// moveFromUnselectable nudges the cursor off an unselectable line, looking
// forward first and then backward, matching what a fresh screen needs when
// its first lines are plain text.
func (s *Screen) moveFromUnselectable() {
	if len(s.lineIndex) == 0 {
		return
	}
	if !s.items[s.lineIndex[s.cursor]].Unselectable {
		return
	}
	for line := s.cursor + 1; line < len(s.lineIndex); line++ {
		if !s.items[s.lineIndex[line]].Unselectable {
			s.cursor = line
			return
		}
	}
	for line := s.cursor - 1; line >= 0; line-- {
		if !s.items[s.lineIndex[line]].Unselectable {
			s.cursor = line
			return
		}
	}
}

// scrollFit adjusts scroll so the cursor is on screen.
func (s *Screen) scrollFit() {
	if s.cursor < s.scroll {
		s.scroll = s.cursor
	}
	if s.height > 0 && s.cursor >= s.scroll+s.height {
		s.scroll = s.cursor - s.height + 1
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
}
