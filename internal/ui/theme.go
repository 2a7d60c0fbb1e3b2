package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds all colours for the application (Catppuccin Mocha palette).
type Theme struct {
	Bg           lipgloss.Color
	Surface      lipgloss.Color
	SurfaceHover lipgloss.Color
	Border       lipgloss.Color

	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	TextInverse lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color

	Added     lipgloss.Color
	Modified  lipgloss.Color
	Deleted   lipgloss.Color
	Renamed   lipgloss.Color
	Conflict  lipgloss.Color
	Untracked lipgloss.Color

	Error lipgloss.Color

	CommitHash  lipgloss.Color
	BranchLocal lipgloss.Color
	Tag         lipgloss.Color
	Remote      lipgloss.Color
	Stash       lipgloss.Color
}

// DarkTheme returns the default dark theme.
func DarkTheme() Theme {
	return Theme{
		Bg:           lipgloss.Color("#1e1e2e"),
		Surface:      lipgloss.Color("#282840"),
		SurfaceHover: lipgloss.Color("#313152"),
		Border:       lipgloss.Color("#3b3b5c"),

		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#9399b2"),
		TextSubtle:  lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),

		Added:     lipgloss.Color("#a6e3a1"),
		Modified:  lipgloss.Color("#f9e2af"),
		Deleted:   lipgloss.Color("#f38ba8"),
		Renamed:   lipgloss.Color("#89dceb"),
		Conflict:  lipgloss.Color("#fab387"),
		Untracked: lipgloss.Color("#9399b2"),

		Error: lipgloss.Color("#f38ba8"),

		CommitHash:  lipgloss.Color("#f9e2af"),
		BranchLocal: lipgloss.Color("#a6e3a1"),
		Tag:         lipgloss.Color("#f5c2e7"),
		Remote:      lipgloss.Color("#f38ba8"),
		Stash:       lipgloss.Color("#fab387"),
	}
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Outline rows
	SectionHeader lipgloss.Style
	Selected      lipgloss.Style
	Text          lipgloss.Style
	Muted         lipgloss.Style

	// Git file statuses
	FileAdded     lipgloss.Style
	FileModified  lipgloss.Style
	FileDeleted   lipgloss.Style
	FileRenamed   lipgloss.Style
	FileConflict  lipgloss.Style
	FileUntracked lipgloss.Style

	// Diff
	DiffAdded      lipgloss.Style
	DiffRemoved    lipgloss.Style
	DiffContext    lipgloss.Style
	DiffHunkHeader lipgloss.Style

	// Commit / refs
	CommitHash lipgloss.Style
	BranchName lipgloss.Style
	TagName    lipgloss.Style
	RemoteName lipgloss.Style
	StashName  lipgloss.Style

	// Overlays
	Popup      lipgloss.Style
	PopupTitle lipgloss.Style
	ErrorTitle lipgloss.Style
	KeyBind    lipgloss.Style
	KeyDesc    lipgloss.Style
	ArgOn      lipgloss.Style
	ArgOff     lipgloss.Style

	// Bottom bar
	StatusBar lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.SectionHeader = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.Selected = lipgloss.NewStyle().Background(t.SurfaceHover)
	s.Text = lipgloss.NewStyle().Foreground(t.Text)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)

	s.FileAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.FileModified = lipgloss.NewStyle().Foreground(t.Modified)
	s.FileDeleted = lipgloss.NewStyle().Foreground(t.Deleted).Strikethrough(true)
	s.FileRenamed = lipgloss.NewStyle().Foreground(t.Renamed)
	s.FileConflict = lipgloss.NewStyle().Foreground(t.Conflict).Bold(true)
	s.FileUntracked = lipgloss.NewStyle().Foreground(t.Untracked)

	s.DiffAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.DiffRemoved = lipgloss.NewStyle().Foreground(t.Deleted)
	s.DiffContext = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.DiffHunkHeader = lipgloss.NewStyle().Foreground(t.Secondary).Italic(true)

	s.CommitHash = lipgloss.NewStyle().Foreground(t.CommitHash)
	s.BranchName = lipgloss.NewStyle().Foreground(t.BranchLocal).Bold(true)
	s.TagName = lipgloss.NewStyle().Foreground(t.Tag).Bold(true)
	s.RemoteName = lipgloss.NewStyle().Foreground(t.Remote)
	s.StashName = lipgloss.NewStyle().Foreground(t.Stash)

	s.Popup = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1)
	s.PopupTitle = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.ErrorTitle = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.ArgOn = lipgloss.NewStyle().Foreground(t.Added).Bold(true)
	s.ArgOff = lipgloss.NewStyle().Foreground(t.TextSubtle)

	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
