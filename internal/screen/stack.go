package screen

// Stack is the navigation history of screens. The bottom entry is the
// screen the app started on; popping the last screen means quit.
type Stack struct {
	screens []*Screen
}

// NewStack builds a stack with an initial screen.
func NewStack(root *Screen) *Stack {
	return &Stack{screens: []*Screen{root}}
}

// Top returns the active screen.
func (st *Stack) Top() *Screen {
	return st.screens[len(st.screens)-1]
}

// Push makes s the active screen.
func (st *Stack) Push(s *Screen) {
	st.screens = append(st.screens, s)
}

// Pop discards the active screen and returns true. Popping the last
// remaining screen is refused and returns false; the caller quits instead.
func (st *Stack) Pop() bool {
	if len(st.screens) <= 1 {
		return false
	}
	st.screens[len(st.screens)-1] = nil
	st.screens = st.screens[:len(st.screens)-1]
	return true
}

// Len returns the stack depth.
func (st *Stack) Len() int { return len(st.screens) }

// SetHeight propagates a viewport resize to every screen.
func (st *Stack) SetHeight(h int) {
	for _, s := range st.screens {
		s.SetHeight(h)
	}
}
