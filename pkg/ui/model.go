// Package ui is the terminal front end: a chat column that renders the active
// section, a navigation sidebar and a status bar.
package ui

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"chatshell/pkg/config"
	"chatshell/pkg/conversation"
	"chatshell/pkg/logging"
	"chatshell/pkg/section"
	"chatshell/pkg/speech"
	"chatshell/pkg/ui/components/chatpanel"
	"chatshell/pkg/ui/components/helppanel"
	"chatshell/pkg/ui/components/historypicker"
	"chatshell/pkg/ui/components/picker"
	"chatshell/pkg/ui/components/settings"
	"chatshell/pkg/ui/components/sidebar"
	"chatshell/pkg/ui/components/statusbar"
	"chatshell/pkg/ui/components/utils"
	"chatshell/pkg/ui/components/welcome"
	"chatshell/pkg/ui/styles"
	"chatshell/pkg/version"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Options wires the model to its collaborators. Nil fields are built from Config.
type Options struct {
	Config        config.Config
	Store         *conversation.Store
	Router        *section.Router
	Capture       *speech.Capture
	ConfigUpdates <-chan config.Config
	ConfigPath    string // where the settings panel saves; empty disables it
	Clipboard     io.Writer
}

// Model represents the Bubble Tea application state
type Model struct {
	cfg           config.Config
	store         *conversation.Store
	router        *section.Router
	capture       *speech.Capture
	configUpdates <-chan config.Config
	configPath    string
	clipboard     io.Writer

	// UI Components
	panel     *chatpanel.Panel
	banner    *welcome.Banner
	sidebar   *sidebar.Sidebar
	picker    *picker.ModelPicker
	history   *historypicker.HistoryPicker
	settings  *settings.SettingsPanel
	help      *helppanel.HelpPanel
	statusBar *statusbar.StatusBarView
	layout    *LayoutManager
	keys      KeyMap

	model       string
	speechDirty bool // recognizer config changed; swap at next Start
	ready       bool
	quitting    bool
	log         *slog.Logger
}

// NewModel creates the root model.
func NewModel(opts Options) Model {
	cfg := opts.Config

	store := opts.Store
	if store == nil {
		policy, err := conversation.ParsePolicy(cfg.SubmitPolicy)
		if err != nil {
			policy = conversation.PolicyBlock
		}
		store = conversation.NewStore(
			conversation.WithPolicy(policy),
			conversation.WithResponder(conversation.Canned(cfg.Reply.Text)),
		)
	}
	router := opts.Router
	if router == nil {
		router = section.NewRouter(section.Tag(cfg.InitialSection))
	}
	capture := opts.Capture
	if capture == nil {
		capture = speech.NewCapture(speech.FromConfig(cfg.Speech))
	}
	clipboard := opts.Clipboard
	if clipboard == nil {
		clipboard = os.Stdout
	}

	m := Model{
		cfg:           cfg,
		store:         store,
		router:        router,
		capture:       capture,
		configUpdates: opts.ConfigUpdates,
		configPath:    opts.ConfigPath,
		clipboard:     clipboard,
		panel:         chatpanel.New(),
		banner:        welcome.NewBanner(cfg.BannerFade()),
		sidebar:       sidebar.NewSidebar(sidebar.DefaultGroups()),
		picker:        picker.NewModelPicker(),
		history:       historypicker.NewHistoryPicker(),
		settings:      settings.NewSettingsPanel(),
		help:          helppanel.NewHelpPanel(),
		statusBar:     statusbar.NewStatusBarView(),
		layout:        NewLayoutManager(cfg.Sidebar.Width),
		keys:          DefaultKeyMap(),
		model:         initialModel(cfg),
		log:           logging.Component("ui"),
	}

	if !cfg.Sidebar.Visible {
		m.sidebar.Hide()
	}
	m.sidebar.SetActive(router.Current())
	m.statusBar.SetTheme(cfg.StatusBar.Theme)
	m.statusBar.SetModel(m.model)
	m.syncViews()

	return m
}

func initialModel(cfg config.Config) string {
	if cfg.DefaultModel != "" {
		return cfg.DefaultModel
	}
	if len(cfg.Models) > 0 {
		return cfg.Models[0]
	}
	return ""
}

// Init starts the background listeners.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForTranscript(m.capture.Results()),
		waitForConfig(m.configUpdates),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m, cmd = m.update(msg)
	if m.quitting {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.syncViews())
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.SetSize(msg.Width, msg.Height)
		m.ready = true
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		if m.overlayOpen() {
			return m, nil
		}
		return m, m.panel.UpdateScroll(msg)

	case tea.PasteMsg:
		if m.inputActive() && !m.inputLocked() {
			changed, cmd := m.panel.UpdateInput(msg)
			if changed {
				m.store.SetDraftInput(m.panel.Value())
			}
			return m, cmd
		}
		return m, nil

	case replyDueMsg:
		if reply, ok := m.store.ReceiveReply(msg.ticket); ok {
			m.log.Debug("reply delivered", slog.Uint64("ticket", uint64(msg.ticket)), slog.String("message_id", reply.ID))
		}
		return m, nil

	case spinner.TickMsg:
		return m, m.panel.UpdateSpinner(msg)

	case welcome.HideMsg:
		m.banner.Update(msg)
		return m, nil

	case sidebar.SelectSectionMsg:
		m.selectSection(msg.Tag)
		return m, m.panel.Focus()

	case picker.ModelSelectMsg:
		m.model = msg.Model
		m.statusBar.SetModel(msg.Model)
		m.log.Info("model selected", slog.String("model", msg.Model))
		return m, nil

	case transcriptMsg:
		if draft, ok := m.capture.Apply(msg.transcript); ok {
			m.store.SetDraftInput(draft)
		}
		return m, waitForTranscript(m.capture.Results())

	case configReloadedMsg:
		if msg.cfg.Equal(m.cfg) {
			return m, waitForConfig(m.configUpdates)
		}
		m = m.applyConfig(msg.cfg)
		notice := m.setNotice("Configuration reloaded")
		return m, tea.Batch(notice, waitForConfig(m.configUpdates))

	case historypicker.HistoryPickerSelectMsg:
		if m.inputActive() && !m.inputLocked() {
			m.store.SetDraftInput(msg.Prompt)
		}
		return m, m.panel.Focus()

	case historypicker.HistoryPickerCancelMsg:
		return m, m.panel.Focus()

	case helppanel.HelpPanelCloseMsg:
		return m, m.panel.Focus()

	case settings.SettingsSaveMsg:
		return m, saveConfig(msg.ConfigPath, msg.Config)

	case settings.SettingsCloseMsg:
		return m, m.panel.Focus()

	case configSavedMsg:
		if msg.err != nil {
			m.log.Error("save settings", slog.Any("error", msg.err))
			return m, m.setNotice("Could not save settings")
		}
		effective, err := config.ApplyEnv(msg.cfg)
		if err != nil {
			m.log.Warn("environment overrides ignored", slog.Any("error", err))
			effective = msg.cfg
		}
		m = m.applyConfig(effective)
		return m, tea.Batch(m.setNotice("Settings saved"), m.panel.Focus())

	case clipboardMsg:
		if msg.err != nil {
			m.log.Warn("clipboard copy failed", slog.Any("error", msg.err))
			return m, m.setNotice("Copy failed")
		}
		return m, m.setNotice("Copied last reply")

	case noticeExpiredMsg:
		if msg.gen == m.statusBar.MessageGen() {
			m.statusBar.SetMessage("")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}

	if m.picker.IsVisible() {
		return m, m.picker.Update(msg)
	}

	if m.history.IsVisible() {
		return m, m.history.Update(msg)
	}

	if m.settings.IsVisible() {
		return m, m.settings.Update(msg)
	}

	if m.help.IsVisible() {
		return m, m.help.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ToggleSidebar):
		m.sidebar.Toggle()
		if !m.sidebar.IsVisible() {
			return m, m.panel.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.ModelPicker):
		m.picker.Show(m.cfg.Models, m.model)
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		if m.configPath == "" {
			return m, m.setNotice("Settings are unavailable without a config file")
		}
		saved, err := config.Load(m.configPath)
		if err != nil {
			m.log.Error("load settings", slog.Any("error", err))
			return m, m.setNotice("Could not read the config file")
		}
		m.panel.Blur()
		m.sidebar.Blur()
		m.settings.Show(saved, m.configPath)
		m.settings.SetOverrides(config.EnvOverrides())
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.panel.Blur()
		m.sidebar.Blur()
		m.help.Show("Keys", m.keys.HelpText()+"\n\n"+version.Info())
		return m, nil

	case key.Matches(msg, m.keys.History):
		if !m.inputActive() || m.inputLocked() || m.capture.Recording() {
			return m, nil
		}
		m.history.Show("", historypicker.Prompts(m.store.Snapshot().Messages))
		return m, nil

	case key.Matches(msg, m.keys.Record):
		return m, m.toggleRecording()

	case key.Matches(msg, m.keys.CopyReply):
		reply, ok := m.store.Snapshot().LastFrom(conversation.SenderChatbot)
		if !ok {
			return m, m.setNotice("No reply to copy")
		}
		return m, copyToClipboard(m.clipboard, reply.Text)

	case key.Matches(msg, m.keys.FocusNext):
		return m, m.cycleFocus()

	case key.Matches(msg, m.keys.PageUp):
		m.panel.PageUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.panel.PageDown()
		return m, nil
	}

	if m.sidebar.IsFocused() {
		cmd := m.sidebar.Update(msg)
		if !m.sidebar.IsFocused() {
			return m, tea.Batch(cmd, m.panel.Focus())
		}
		return m, cmd
	}

	if !m.inputActive() {
		return m, nil
	}

	if key.Matches(msg, m.keys.Send) {
		return m, m.submit()
	}
	if m.inputLocked() {
		return m, nil
	}

	changed, cmd := m.panel.UpdateInput(msg)
	if changed {
		m.store.SetDraftInput(m.panel.Value())
	}
	return m, cmd
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	dropped := m.store.Cancel()
	if err := m.capture.Stop(); err != nil {
		m.log.Warn("stop recording on quit", slog.Any("error", err))
	}
	m.log.Info("quitting", slog.Int("pending_replies_dropped", dropped))
	return m, tea.Quit
}

// overlayOpen reports whether a picker or panel covers the conversation.
func (m Model) overlayOpen() bool {
	return m.picker.IsVisible() || m.history.IsVisible() ||
		m.settings.IsVisible() || m.help.IsVisible()
}

// inputActive reports whether keys reach the composer.
func (m Model) inputActive() bool {
	return !m.sidebar.IsFocused() && !m.settings.IsVisible() && !m.help.IsVisible() &&
		section.Known(m.router.Current())
}

// inputLocked reports whether the composer is disabled while a reply is pending.
func (m Model) inputLocked() bool {
	return m.store.Pending() && m.store.Policy() == conversation.PolicyBlock
}

func (m Model) submit() tea.Cmd {
	if m.capture.Recording() {
		return m.setNotice("Stop recording to send")
	}

	ticket, err := m.store.Submit(m.store.Draft())
	switch {
	case errors.Is(err, conversation.ErrEmptyInput):
		return nil
	case errors.Is(err, conversation.ErrReplyPending):
		m.log.Debug("submit ignored while reply pending")
		return nil
	case err != nil:
		m.log.Error("submit failed", slog.Any("error", err))
		return nil
	}

	m.log.Debug("message submitted", slog.Uint64("ticket", uint64(ticket)), slog.String("section", string(m.router.Current())))
	return tea.Batch(scheduleReply(ticket, m.cfg.ReplyDelay()), m.panel.SpinnerTick())
}

func (m *Model) toggleRecording() tea.Cmd {
	if m.capture.Recording() {
		if err := m.capture.Stop(); err != nil {
			m.log.Warn("stop recording", slog.Any("error", err))
			return m.setNotice("Recording stopped with an error")
		}
		return nil
	}

	if m.speechDirty {
		m.capture.SetRecognizer(speech.FromConfig(m.cfg.Speech))
		m.speechDirty = false
	}
	if err := m.capture.Start(m.store.Draft()); err != nil {
		m.log.Warn("start recording", slog.Any("error", err))
		if errors.Is(err, speech.ErrUnavailable) {
			return m.setNotice("Speech recognition is not available")
		}
		return m.setNotice("Could not start recording")
	}
	m.log.Debug("recording started")
	return nil
}

func (m Model) cycleFocus() tea.Cmd {
	if m.sidebar.IsFocused() {
		m.sidebar.Blur()
		return m.panel.Focus()
	}
	if m.layout.SidebarWidth(m.sidebar.IsVisible()) == 0 {
		return nil
	}
	m.panel.Blur()
	m.sidebar.Focus()
	return nil
}

func (m Model) selectSection(tag section.Tag) {
	prev := m.router.Current()
	m.router.Select(tag)
	m.sidebar.SetActive(tag)
	m.sidebar.Blur()
	if prev != tag {
		m.log.Info("section selected", slog.String("from", string(prev)), slog.String("to", string(tag)))
	}
}

func (m Model) setNotice(text string) tea.Cmd {
	m.statusBar.SetMessage(text)
	return expireNotice(m.statusBar.MessageGen())
}

func (m Model) applyConfig(cfg config.Config) Model {
	if policy, err := conversation.ParsePolicy(cfg.SubmitPolicy); err == nil {
		m.store.SetPolicy(policy)
	}
	m.store.SetResponder(conversation.Canned(cfg.Reply.Text))
	m.banner.SetFade(cfg.BannerFade())
	m.statusBar.SetTheme(cfg.StatusBar.Theme)
	m.layout.SetSidebarWidth(cfg.Sidebar.Width)
	if cfg.Sidebar.Visible != m.cfg.Sidebar.Visible {
		if cfg.Sidebar.Visible {
			m.sidebar.Show()
		} else {
			m.sidebar.Hide()
		}
	}
	if !speechEqual(m.cfg.Speech, cfg.Speech) {
		m.speechDirty = true
	}
	if !slices.Contains(cfg.Models, m.model) {
		m.model = initialModel(cfg)
		m.statusBar.SetModel(m.model)
	}
	if cfg.LogLevel != m.cfg.LogLevel || cfg.LogFormat != m.cfg.LogFormat || cfg.LogFile != m.cfg.LogFile {
		if _, err := logging.Reconfigure(cfg); err != nil {
			m.log.Warn("reconfigure logging", slog.Any("error", err))
		}
		m.log = logging.Component("ui")
	}
	m.cfg = cfg
	m.log.Info("configuration applied")
	return m
}

func speechEqual(a, b config.SpeechConfig) bool {
	return a.Provider == b.Provider &&
		a.IntervalMillis == b.IntervalMillis &&
		slices.Equal(a.Command, b.Command) &&
		slices.Equal(a.Script, b.Script)
}

// syncViews pushes store, router and capture state into the components.
func (m Model) syncViews() tea.Cmd {
	snap := m.store.Snapshot()
	m.panel.Sync(snap)
	m.statusBar.SetPending(snap.Pending)
	m.statusBar.SetRecording(m.capture.Recording())
	if v, ok := m.router.Active(); ok {
		m.statusBar.SetSection(v.Title)
	} else {
		m.statusBar.SetSection("")
	}
	return m.banner.Sync(!snap.Empty())
}

// View renders the UI
func (m Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// Render returns the full screen as a string.
func (m Model) Render() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	width, _ := m.layout.GetDimensions()
	sidebarVisible := m.sidebar.IsVisible()
	mainWidth := m.layout.MainWidth(sidebarVisible)
	bodyHeight := m.layout.BodyHeight()

	m.picker.SetSize(mainWidth, max(bodyHeight/2, 4))
	m.history.SetSize(mainWidth, max(bodyHeight/2, 8))
	dropdown := m.picker.View()
	if dropdown == "" {
		dropdown = m.history.View()
	}
	dropdownHeight := 0
	if dropdown != "" {
		dropdownHeight = lipgloss.Height(dropdown)
	}

	variant, known := m.router.Active()
	if overlay := m.overlayView(mainWidth, bodyHeight-1); overlay != "" {
		parts := []string{m.renderHeader(mainWidth, variant, known), overlay}
		return m.renderFrame(width, utils.FitLines(strings.Join(parts, "\n"), mainWidth, bodyHeight), bodyHeight)
	}

	m.panel.SetSize(mainWidth, m.layout.PanelHeight(dropdownHeight))
	panelView := m.panel.View(chatpanel.Props{
		Variant:   variant,
		Known:     known,
		Banner:    m.banner,
		Locked:    m.inputLocked(),
		Recording: m.capture.Recording(),
	})

	parts := []string{m.renderHeader(mainWidth, variant, known)}
	if dropdown != "" {
		parts = append(parts, dropdown)
	}
	parts = append(parts, panelView)
	return m.renderFrame(width, utils.FitLines(strings.Join(parts, "\n"), mainWidth, bodyHeight), bodyHeight)
}

// overlayView renders a panel that replaces the chat column, if one is open.
func (m Model) overlayView(width, height int) string {
	switch {
	case m.settings.IsVisible():
		m.settings.SetSize(width, height)
		return m.settings.View()
	case m.help.IsVisible():
		m.help.SetSize(width, height)
		return m.help.View()
	}
	return ""
}

// renderFrame places the main column next to the sidebar above the status bar.
func (m Model) renderFrame(width int, mainContent string, bodyHeight int) string {
	sidebarContent := ""
	if sw := m.layout.SidebarWidth(m.sidebar.IsVisible()); sw > 0 {
		m.sidebar.SetSize(sw, bodyHeight)
		sidebarContent = m.sidebar.View()
	}

	m.statusBar.SetWidth(width)
	return m.layout.RenderLayout(mainContent, sidebarContent, m.statusBar.Render())
}

func (m Model) renderHeader(width int, variant section.Variant, known bool) string {
	left := styles.TitleStyle.Render(m.model + " ▾")
	right := ""
	if known {
		right = styles.TextMutedStyle.Render(variant.Title)
	}
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return utils.FitLines(" "+left+strings.Repeat(" ", gap)+right, width, 1)
}
