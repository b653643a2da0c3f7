package sidebar

import (
	"strings"

	"chatshell/pkg/section"
	"chatshell/pkg/ui/components/utils"
	"chatshell/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
)

const (
	sidebarBorderSize  = 1
	sidebarPaddingH    = 1
	sidebarPaddingV    = 1
	sidebarFooterLabel = "Up/Down Move | Enter Open"
	defaultGroupLabel  = "Open Manipulator X"
)

// SelectSectionMsg asks the router to switch sections.
type SelectSectionMsg struct {
	Tag section.Tag
}

// Entry is a navigation link.
type Entry struct {
	Title string
	Tag   section.Tag
}

// Group is a labelled run of entries.
type Group struct {
	Label   string
	Entries []Entry
}

// DefaultGroups lists every known section under one heading.
func DefaultGroups() []Group {
	var entries []Entry
	for _, v := range section.Catalog() {
		entries = append(entries, Entry{Title: v.Title, Tag: v.Tag})
	}
	return []Group{{Label: defaultGroupLabel, Entries: entries}}
}

// Sidebar lists the sections and lets the user switch between them.
type Sidebar struct {
	groups  []Group
	entries []Entry // flattened, in display order
	cursor  int
	active  section.Tag
	visible bool
	focused bool
	width   int
	height  int
}

// NewSidebar creates a new sidebar component.
func NewSidebar(groups []Group) *Sidebar {
	s := &Sidebar{groups: groups, visible: true}
	for _, g := range groups {
		s.entries = append(s.entries, g.Entries...)
	}
	return s
}

// Show displays the sidebar.
func (s *Sidebar) Show() {
	s.visible = true
}

// Hide hides the sidebar and drops focus.
func (s *Sidebar) Hide() {
	s.visible = false
	s.focused = false
}

// Toggle flips visibility.
func (s *Sidebar) Toggle() {
	if s.visible {
		s.Hide()
	} else {
		s.Show()
	}
}

// IsVisible returns whether the sidebar is visible.
func (s *Sidebar) IsVisible() bool {
	return s.visible
}

// Focus moves keyboard focus to the sidebar and puts the cursor on the active entry.
func (s *Sidebar) Focus() {
	if !s.visible {
		return
	}
	s.focused = true
	if i := s.indexOf(s.active); i >= 0 {
		s.cursor = i
	}
}

// Blur removes keyboard focus.
func (s *Sidebar) Blur() {
	s.focused = false
}

// IsFocused returns whether the sidebar has keyboard focus.
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetActive marks the entry for tag as the current section.
// The root tag highlights the main chat entry.
func (s *Sidebar) SetActive(tag section.Tag) {
	if tag == section.Root {
		tag = section.MainChat
	}
	s.active = tag
}

// Active returns the highlighted section tag.
func (s *Sidebar) Active() section.Tag {
	return s.active
}

// Cursor returns the entry under the cursor.
func (s *Sidebar) Cursor() (Entry, bool) {
	if s.cursor < 0 || s.cursor >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[s.cursor], true
}

// SetSize sets the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the width the sidebar occupies, zero when hidden.
func (s *Sidebar) Width() int {
	if !s.visible {
		return 0
	}
	return s.width
}

// Update handles keyboard input while the sidebar is focused.
func (s *Sidebar) Update(msg tea.KeyPressMsg) tea.Cmd {
	if !s.visible || !s.focused {
		return nil
	}

	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.entries)-1 {
			s.cursor++
		}
	case "enter", "space":
		entry, ok := s.Cursor()
		if !ok {
			return nil
		}
		return func() tea.Msg {
			return SelectSectionMsg{Tag: entry.Tag}
		}
	case "esc":
		s.focused = false
	}
	return nil
}

// View renders the sidebar.
func (s *Sidebar) View() string {
	if !s.visible || s.width <= 0 || s.height <= 0 {
		return ""
	}

	contentWidth := s.width - sidebarBorderSize - 2*sidebarPaddingH
	contentHeight := s.height - 2*sidebarPaddingV
	if contentWidth <= 0 || contentHeight <= 0 {
		return ""
	}

	var lines []string
	index := 0
	for gi, g := range s.groups {
		if gi > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, styles.SidebarLabelStyle.Render(utils.TruncateToWidth(g.Label, contentWidth)))
		for _, e := range g.Entries {
			lines = append(lines, s.renderEntry(e, index, contentWidth))
			index++
		}
	}

	if s.focused && contentHeight > len(lines)+1 {
		for len(lines) < contentHeight-1 {
			lines = append(lines, "")
		}
		lines = append(lines, styles.FooterStyle.Render(utils.TruncateToWidth(sidebarFooterLabel, contentWidth)))
	}

	body := utils.FitLines(strings.Join(lines, "\n"), contentWidth, contentHeight)
	return styles.SidebarStyle.Render(body)
}

func (s *Sidebar) renderEntry(e Entry, index, width int) string {
	prefix := "  "
	if s.focused && index == s.cursor {
		prefix = "› "
	}
	text := utils.PadStyled(prefix+utils.TruncateToWidth(e.Title, width-2), width)

	switch {
	case e.Tag == s.active:
		return styles.ActiveStyle.Render(text)
	case s.focused && index == s.cursor:
		return styles.TitleStyle.Render(text)
	default:
		return styles.TextStyle.Render(text)
	}
}

func (s *Sidebar) indexOf(tag section.Tag) int {
	for i, e := range s.entries {
		if e.Tag == tag {
			return i
		}
	}
	return -1
}
