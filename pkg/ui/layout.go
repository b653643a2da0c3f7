package ui

import (
	"charm.land/lipgloss/v2"
)

const (
	statusBarHeight = 1
	headerHeight    = 1
	minMainWidth    = 30
)

// LayoutManager handles the overall UI layout
type LayoutManager struct {
	width        int
	height       int
	sidebarWidth int
}

// NewLayoutManager creates a new layout manager
func NewLayoutManager(sidebarWidth int) *LayoutManager {
	return &LayoutManager{
		width:        80,
		height:       24,
		sidebarWidth: sidebarWidth,
	}
}

// SetSize updates the layout dimensions
func (lm *LayoutManager) SetSize(width, height int) {
	lm.width = width
	lm.height = height
}

// SetSidebarWidth updates the width reserved for the sidebar.
func (lm *LayoutManager) SetSidebarWidth(width int) {
	lm.sidebarWidth = width
}

// SidebarWidth returns the sidebar column width. The sidebar gives way when
// the chat column would get too narrow.
func (lm *LayoutManager) SidebarWidth(visible bool) int {
	if !visible || lm.width-lm.sidebarWidth < minMainWidth {
		return 0
	}
	return lm.sidebarWidth
}

// MainWidth returns the chat column width.
func (lm *LayoutManager) MainWidth(sidebarVisible bool) int {
	return lm.width - lm.SidebarWidth(sidebarVisible)
}

// BodyHeight returns the height above the status bar.
func (lm *LayoutManager) BodyHeight() int {
	return max(lm.height-statusBarHeight, 0)
}

// PanelHeight returns the height left for the chat panel under the header
// and any open dropdown.
func (lm *LayoutManager) PanelHeight(dropdownHeight int) int {
	return max(lm.BodyHeight()-headerHeight-dropdownHeight, 0)
}

// RenderLayout combines the chat column, sidebar and status bar
func (lm *LayoutManager) RenderLayout(mainContent, sidebarContent, statusBarContent string) string {
	body := mainContent
	if sidebarContent != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, mainContent, sidebarContent)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		body,
		statusBarContent,
	)
}

// GetDimensions returns current width and height
func (lm *LayoutManager) GetDimensions() (width, height int) {
	return lm.width, lm.height
}
