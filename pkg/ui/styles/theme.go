// Package styles provides a centralized theme and style system for the chatshell UI.
// This enables consistent styling across all UI components and easy theming.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	// Primary accent color (purple)
	ColorAccent = lipgloss.Color("141")

	// Text colors
	ColorText       = lipgloss.Color("252") // Primary text
	ColorTextMuted  = lipgloss.Color("245") // Secondary/muted text
	ColorTextFaded  = lipgloss.Color("238") // Text on its way out
	ColorTextBright = lipgloss.Color("15")  // Bright/highlighted text

	// Semantic colors
	ColorError   = lipgloss.Color("196") // Error messages
	ColorWarning = lipgloss.Color("214") // Warning/recording
	ColorSuccess = lipgloss.Color("42")  // Success messages

	// Surfaces
	ColorBubble      = lipgloss.Color("235") // User message bubble
	ColorCard        = lipgloss.Color("234") // Suggestion card
	ColorHover       = lipgloss.Color("60")  // Active sidebar entry
	ColorPlaceholder = lipgloss.Color("240") // Placeholder text

	// Border colors
	ColorBorder      = lipgloss.Color("141") // Default border (matches accent)
	ColorBorderMuted = lipgloss.Color("62")  // Muted border
)

// Panel/Box styles
var (
	// BoxStyle is the default rounded box for overlays and panels
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	// BoxStyleCompact has less padding
	BoxStyleCompact = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)

// Text styles
var (
	// TitleStyle for panel/section titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// TextStyle for normal text
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// TextMutedStyle for secondary/helper text
	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	// TextFadedStyle renders content that is about to disappear
	TextFadedStyle = lipgloss.NewStyle().
			Foreground(ColorTextFaded)

	// TextBoldStyle for emphasized text
	TextBoldStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)
)

// Selection and highlighting
var (
	// SelectedStyle for highlighted/selected items
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(ColorAccent).
			Bold(true)

	// ActiveStyle marks the entry matching the current state
	ActiveStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(ColorHover)
)

// Chat styles
var (
	// UserBubbleStyle wraps messages the user sent
	UserBubbleStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorBubble).
			Padding(0, 1)

	// SenderStyle labels who wrote a message
	SenderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// PendingStyle for the waiting-for-reply indicator
	PendingStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	// CardStyle for suggestion cards
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderMuted).
			Background(ColorCard).
			Padding(0, 1)

	// InputBoxStyle frames the message composer
	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// InputBoxDisabledStyle frames the composer while input is locked
	InputBoxDisabledStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorTextFaded).
				Padding(0, 1)

	// RecordingStyle for the push-to-record indicator
	RecordingStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// PlaceholderStyle for placeholder text
	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorPlaceholder).
				Italic(true)
)

// Feedback styles
var (
	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// FooterStyle for footer/help text
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Status bar styles
var (
	// StatusBarStyle is the default status bar style (purple theme)
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	// StatusBarStyleCyan is the cyan theme variant
	StatusBarStyleCyan = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#00B8D4")).
				Padding(0, 1).
				Bold(true)

	// StatusBarStyleDark is the dark theme variant
	StatusBarStyleDark = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#D0D0D0")).
				Background(lipgloss.Color("#3C3C3C")).
				Padding(0, 1)
)

// Greeting banner styles
var (
	// BannerBorderStyle for banner box borders
	BannerBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("99"))

	// BannerTitleStyle for the banner headline
	BannerTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("219")).
				Bold(true)

	// BannerVersionStyle for version info (dimmed)
	BannerVersionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
)

// Sidebar styles
var (
	// SidebarStyle frames the navigation sidebar
	SidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(ColorBorderMuted).
			Padding(1, 1)

	// SidebarLabelStyle for group labels
	SidebarLabelStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Bold(true)
)
