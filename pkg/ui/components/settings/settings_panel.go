package settings

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"chatshell/pkg/config"
	"chatshell/pkg/ui/components/utils"
	"chatshell/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Field types
const (
	TypeString = "string"
	TypeInt    = "int"
	TypeBool   = "bool"
	TypeChoice = "choice"
)

// SettingField represents a single editable setting
type SettingField struct {
	Label   string
	Key     string
	Value   string
	Type    string
	Options []string // for TypeChoice
}

// SettingsSaveMsg is sent when settings should be saved
type SettingsSaveMsg struct {
	Config     config.Config
	ConfigPath string
}

// SettingsCloseMsg is sent when settings panel closes without changes
type SettingsCloseMsg struct{}

// SettingsPanel displays and edits configuration
type SettingsPanel struct {
	config     config.Config
	configPath string
	fields     []SettingField
	selected   int
	editing    bool
	editValue  string
	editCursor int
	changed    bool
	width      int
	height     int
	visible    bool
	errorMsg   string
	overrides  []string
}

// NewSettingsPanel creates a new settings panel
func NewSettingsPanel() *SettingsPanel {
	return &SettingsPanel{}
}

// Show displays the settings panel with the given config
func (sp *SettingsPanel) Show(cfg config.Config, configPath string) {
	sp.config = cfg
	sp.configPath = configPath
	sp.visible = true
	sp.selected = 0
	sp.editing = false
	sp.changed = false
	sp.errorMsg = ""
	sp.overrides = nil
	sp.buildFields()
}

// SetOverrides names the environment variables that win over saved values.
func (sp *SettingsPanel) SetOverrides(names []string) {
	sp.overrides = slices.Clone(names)
}

// buildFields creates the field list from config
func (sp *SettingsPanel) buildFields() {
	c := sp.config
	sp.fields = []SettingField{
		{Label: "Reply Text", Key: "reply_text", Value: c.Reply.Text, Type: TypeString},
		{Label: "Reply Delay (ms)", Key: "reply_delay", Value: strconv.Itoa(c.Reply.DelayMillis), Type: TypeInt},
		{Label: "Submit Policy", Key: "submit_policy", Value: c.SubmitPolicy, Type: TypeChoice,
			Options: []string{config.SubmitPolicyBlock, config.SubmitPolicyQueue}},
		{Label: "Banner Fade (ms)", Key: "banner_fade", Value: strconv.Itoa(c.Banner.FadeMillis), Type: TypeInt},
		{Label: "Sidebar Visible", Key: "sidebar_visible", Value: strconv.FormatBool(c.Sidebar.Visible), Type: TypeBool},
		{Label: "Sidebar Width", Key: "sidebar_width", Value: strconv.Itoa(c.Sidebar.Width), Type: TypeInt},
		{Label: "Speech Provider", Key: "speech_provider", Value: c.Speech.Provider, Type: TypeChoice,
			Options: []string{config.SpeechProviderNone, config.SpeechProviderScript, config.SpeechProviderCommand}},
		{Label: "Status Bar Theme", Key: "status_bar_theme", Value: c.StatusBar.Theme, Type: TypeChoice,
			Options: []string{"default", "cyan", "dark"}},
		{Label: "Log Level", Key: "log_level", Value: normalizeLogLevel(c.LogLevel), Type: TypeChoice,
			Options: logLevelOptions()},
		{Label: "Log Format", Key: "log_format", Value: strings.ToLower(strings.TrimSpace(c.LogFormat)), Type: TypeChoice,
			Options: []string{"json", "text"}},
	}
}

// Hide hides the panel
func (sp *SettingsPanel) Hide() {
	sp.visible = false
	sp.editing = false
}

// IsVisible returns whether the panel is visible
func (sp *SettingsPanel) IsVisible() bool {
	return sp.visible
}

// SetSize sets the panel dimensions
func (sp *SettingsPanel) SetSize(width, height int) {
	sp.width = width
	sp.height = height
}

// HasChanges returns whether settings have been modified
func (sp *SettingsPanel) HasChanges() bool {
	return sp.changed
}

// GetConfig returns the current config
func (sp *SettingsPanel) GetConfig() config.Config {
	return sp.config
}

// Update handles keyboard input for the settings panel
func (sp *SettingsPanel) Update(msg tea.KeyPressMsg) tea.Cmd {
	if !sp.visible {
		return nil
	}
	if sp.editing {
		return sp.handleEditMode(msg)
	}

	switch msg.String() {
	case "up":
		if sp.selected > 0 {
			sp.selected--
		}

	case "down":
		if sp.selected < len(sp.fields)-1 {
			sp.selected++
		}

	case "enter", "space":
		field := &sp.fields[sp.selected]
		switch field.Type {
		case TypeBool:
			field.Value = strconv.FormatBool(field.Value != "true")
			sp.commit(field)
		case TypeChoice:
			field.Value = nextOption(field.Options, field.Value)
			sp.commit(field)
		default:
			sp.editing = true
			sp.editValue = field.Value
			sp.editCursor = len([]rune(sp.editValue))
		}

	case "s":
		if sp.changed {
			return sp.saveAndClose()
		}

	case "esc":
		if sp.changed {
			return sp.saveAndClose()
		}
		sp.Hide()
		return func() tea.Msg {
			return SettingsCloseMsg{}
		}
	}

	return nil
}

func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	i := slices.Index(options, current)
	return options[(i+1)%len(options)]
}

// handleEditMode handles input when editing a field
func (sp *SettingsPanel) handleEditMode(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		field := &sp.fields[sp.selected]
		if validateValue(field.Type, sp.editValue) {
			field.Value = sp.editValue
			sp.commit(field)
			sp.errorMsg = ""
		} else {
			sp.errorMsg = "Invalid value for " + field.Label
		}
		sp.editing = false

	case "esc":
		sp.editing = false
		sp.errorMsg = ""

	case "backspace":
		runes := []rune(sp.editValue)
		sp.editCursor = min(sp.editCursor, len(runes))
		if sp.editCursor > 0 {
			runes = append(runes[:sp.editCursor-1], runes[sp.editCursor:]...)
			sp.editCursor--
			sp.editValue = string(runes)
		}

	case "left":
		if sp.editCursor > 0 {
			sp.editCursor--
		}

	case "right":
		if sp.editCursor < len([]rune(sp.editValue)) {
			sp.editCursor++
		}

	case "home":
		sp.editCursor = 0

	case "end":
		sp.editCursor = len([]rune(sp.editValue))

	default:
		text := strings.NewReplacer("\n", "", "\r", "").Replace(msg.Key().Text)
		if text == "" {
			return nil
		}
		runes := []rune(sp.editValue)
		sp.editCursor = min(sp.editCursor, len(runes))
		insert := []rune(text)
		runes = append(runes[:sp.editCursor], append(insert, runes[sp.editCursor:]...)...)
		sp.editCursor += len(insert)
		sp.editValue = string(runes)
	}
	return nil
}

// validateValue checks if a value is valid for its type
func validateValue(fieldType, value string) bool {
	switch fieldType {
	case TypeInt:
		v, err := strconv.Atoi(value)
		return err == nil && v >= 0
	case TypeBool:
		return value == "true" || value == "false"
	default:
		return true
	}
}

func (sp *SettingsPanel) commit(field *SettingField) {
	sp.changed = true
	sp.applyField(field)
}

// applyField updates the config with the field value
func (sp *SettingsPanel) applyField(field *SettingField) {
	atoi := func(s string, dst *int) {
		if v, err := strconv.Atoi(s); err == nil {
			*dst = v
		}
	}

	switch field.Key {
	case "reply_text":
		sp.config.Reply.Text = field.Value
	case "reply_delay":
		atoi(field.Value, &sp.config.Reply.DelayMillis)
	case "submit_policy":
		sp.config.SubmitPolicy = field.Value
	case "banner_fade":
		atoi(field.Value, &sp.config.Banner.FadeMillis)
	case "sidebar_visible":
		sp.config.Sidebar.Visible = field.Value == "true"
	case "sidebar_width":
		atoi(field.Value, &sp.config.Sidebar.Width)
	case "speech_provider":
		sp.config.Speech.Provider = field.Value
	case "status_bar_theme":
		sp.config.StatusBar.Theme = field.Value
	case "log_level":
		sp.config.LogLevel = field.Value
	case "log_format":
		sp.config.LogFormat = field.Value
	}
}

// saveAndClose validates the edited config, then hands it off for saving.
func (sp *SettingsPanel) saveAndClose() tea.Cmd {
	if err := sp.config.Validate(); err != nil {
		sp.errorMsg = err.Error()
		return nil
	}
	cfg := sp.config
	path := sp.configPath
	sp.Hide()
	return func() tea.Msg {
		return SettingsSaveMsg{Config: cfg, ConfigPath: path}
	}
}

// View renders the settings panel
func (sp *SettingsPanel) View() string {
	if !sp.visible {
		return ""
	}

	width := sp.width
	if width <= 0 {
		width = 80
	}
	// Border and padding take six columns.
	contentWidth := max(min(width-6, 70), 20)
	labelWidth := 20

	var lines []string
	lines = append(lines, styles.TitleStyle.Render("Settings"), "")

	for i, field := range sp.fields {
		value := field.Value
		if sp.editing && i == sp.selected {
			value = renderEditValue(sp.editValue, sp.editCursor)
		}
		label := fmt.Sprintf("%-*s", labelWidth, field.Label+":")
		valueWidth := max(contentWidth-labelWidth-3, 1)

		var line string
		switch {
		case i == sp.selected && sp.editing:
			line = "▶ " + styles.TextBoldStyle.Render(label) + " " + value
		case i == sp.selected:
			line = styles.SelectedStyle.Render(utils.PadStyled("  "+label+" "+utils.TruncateToWidth(value, valueWidth), contentWidth))
		default:
			line = "  " + styles.TextMutedStyle.Render(label) + " " + styles.TextStyle.Render(utils.TruncateToWidth(value, valueWidth))
		}
		lines = append(lines, line)
	}

	if len(sp.overrides) > 0 {
		note := "Overridden by environment: " + strings.Join(sp.overrides, ", ")
		lines = append(lines, "", styles.TextMutedStyle.Render(utils.TruncateToWidth(note, contentWidth)))
	}

	if sp.errorMsg != "" {
		lines = append(lines, "", styles.ErrorStyle.Render(utils.TruncateToWidth("! "+sp.errorMsg, contentWidth)))
	}

	lines = append(lines, "")
	if sp.editing {
		lines = append(lines, styles.FooterStyle.Render("Enter: Confirm • Esc: Cancel"))
	} else {
		hint := "↑↓ Navigate • Enter: Edit • Esc: Close"
		if sp.changed {
			hint = "↑↓ Navigate • Enter: Edit • s: Save • Esc: Save & Close"
		}
		lines = append(lines, styles.FooterStyle.Render(utils.TruncateToWidth(hint, contentWidth)))
	}

	body := utils.FitLines(strings.Join(lines, "\n"), contentWidth, len(lines))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.ColorBorder).
		Padding(0, 2).
		Render(body)
}

func renderEditValue(value string, cursor int) string {
	runes := []rune(value)
	cursor = min(max(cursor, 0), len(runes))
	if cursor == len(runes) {
		return value + "█"
	}
	return string(runes[:cursor]) + "█" + string(runes[cursor+1:])
}

func normalizeLogLevel(value string) string {
	level := strings.ToLower(strings.TrimSpace(value))
	if slices.Contains(logLevelOptions(), level) {
		return level
	}
	return "info"
}

func logLevelOptions() []string {
	return []string{"debug", "info", "warn", "error"}
}
