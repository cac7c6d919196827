package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/smz3-tracker/internal/handlers"
	"github.com/jwebster45206/smz3-tracker/pkg/tracker"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

const (
	PlaceHolderText = "track hookshot, clear Link's House, missing Sahasrahla..."
	defaultPreset   = "(server default)"
	logLimit        = 12
)

// TrackerUI is the BubbleTea model that runs the console.
type TrackerUI struct {
	api       *APIClient
	session   *handlers.SessionResponse
	nodes     []tracker.NodeStatus
	filter    string
	region    string
	log       []string
	listView  viewport.Model
	metaView  viewport.Model
	textarea  textarea.Model
	ready     bool
	width     int
	height    int
	err       error
	loading   bool

	showPresetModal bool
	presets         []string
	selectedPreset  int
	loadingPresets  bool

	showQuitModal bool
}

type presetsLoadedMsg struct {
	presets []string
	err     error
}

type sessionCreatedMsg struct {
	session *handlers.SessionResponse
	err     error
}

type refreshedMsg struct {
	session *handlers.SessionResponse
	nodes   []tracker.NodeStatus
	err     error
}

type actionDoneMsg struct {
	action handlers.ActionRequest
	resp   *handlers.ActionResponse
	err    error
}

type missingMsg struct {
	query missingQuery
	resp  *handlers.MissingResponse
	err   error
}

var (
	listPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	regionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

// accessibilityStyles colors a node by how reachable it is.
var accessibilityStyles = map[world.Accessibility]lipgloss.Style{
	world.Unknown:           lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	world.Cleared:           lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
	world.Available:         lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
	world.AvailableWithKeys: lipgloss.NewStyle().Foreground(lipgloss.Color("43")),
	world.Relevant:          lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	world.RelevantWithKeys:  lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
	world.OutOfLogic:        lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
}

var accessibilityMarks = map[world.Accessibility]string{
	world.Unknown:           "?",
	world.Cleared:           "✓",
	world.Available:         "●",
	world.AvailableWithKeys: "◐",
	world.Relevant:          "◆",
	world.RelevantWithKeys:  "◇",
	world.OutOfLogic:        "✗",
}

func NewTrackerUI(api *APIClient) TrackerUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	listVp := viewport.New(50, 20)
	listVp.MouseWheelEnabled = true

	return TrackerUI{
		api:             api,
		textarea:        ta,
		listView:        listVp,
		metaView:        viewport.New(30, 20),
		showPresetModal: true,
		loadingPresets:  true,
	}
}

func (m TrackerUI) Init() tea.Cmd {
	return m.loadPresets()
}

// layout sizes the panels to the window.
func (m *TrackerUI) layout() {
	listWidth := int(float64(m.width)*0.65) - 2
	metaWidth := m.width - listWidth - 4
	m.listView.Width = listWidth - 2
	m.listView.Height = m.height - 5
	m.metaView.Width = metaWidth - 2
	m.metaView.Height = m.height - 2
	m.textarea.SetWidth(listWidth - 4)
}

func (m TrackerUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.showPresetModal {
		return m.updatePresetModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.listView, vpCmd = m.listView.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.render()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			return m.runCommand(input)
		}

	case refreshedMsg:
		m.loading = false
		if msg.err != nil {
			m.addLog(errorStyle.Render("Error: " + msg.err.Error()))
		} else {
			m.session = msg.session
			m.nodes = msg.nodes
		}
		m.render()

	case actionDoneMsg:
		if msg.err != nil {
			m.loading = false
			m.addLog(errorStyle.Render(fmt.Sprintf("%s failed: %v", msg.action.Type, msg.err)))
			m.render()
			return m, nil
		}
		m.addLog(describeAction(msg.action, msg.resp.Changes))
		m.session = &msg.resp.Session
		return m, m.refresh()

	case missingMsg:
		m.loading = false
		if msg.err != nil {
			m.addLog(errorStyle.Render("Error: " + msg.err.Error()))
		} else {
			m.addLog(describeMissing(msg.query, msg.resp))
		}
		m.render()
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.listView, vpCmd = m.listView.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m TrackerUI) runCommand(input string) (tea.Model, tea.Cmd) {
	cmd, err := parseCommand(input)
	if err != nil {
		m.addLog(errorStyle.Render(err.Error()))
		m.render()
		return m, nil
	}

	switch {
	case cmd.help:
		m.addLog(helpText)
		m.render()
		return m, nil
	case cmd.setFilter != nil:
		m.filter = *cmd.setFilter
		m.loading = true
		return m, m.refresh()
	case cmd.setRegion != nil:
		m.region = *cmd.setRegion
		m.loading = true
		return m, m.refresh()
	case cmd.missing != nil:
		m.loading = true
		return m, m.findMissing(*cmd.missing)
	default:
		m.loading = true
		return m, m.apply(*cmd.action)
	}
}

func (m *TrackerUI) addLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > logLimit {
		m.log = m.log[len(m.log)-logLimit:]
	}
}

func describeAction(action handlers.ActionRequest, changes []world.Change) string {
	subject := action.Value
	if action.Target != "" {
		subject = strings.TrimSpace(action.Target + " " + action.Value)
	}
	line := fmt.Sprintf("%s %s: %d changed", action.Type, subject, len(changes))
	for _, c := range changes {
		line += fmt.Sprintf("\n  %s %s → %s", c.Name, c.Previous, accessibilityStyles[c.Current].Render(c.Current.String()))
	}
	return line
}

func describeMissing(q missingQuery, resp *handlers.MissingResponse) string {
	switch {
	case resp.Satisfied:
		return fmt.Sprintf("%s is already in logic", resp.Node)
	case resp.Unsatisfiable:
		return errorStyle.Render(fmt.Sprintf("%s cannot be reached with any items", resp.Node))
	}
	line := fmt.Sprintf("%s needs %s", resp.Node, resp.Hint)
	if resp.Exhausted {
		line += loadingStyle.Render(" (search stopped early)")
	}
	return line
}

// render rebuilds both panels from the current state.
func (m *TrackerUI) render() {
	width := m.listView.Width - 2
	if width < 20 {
		width = 20
	}

	var list strings.Builder
	if m.session == nil {
		list.WriteString(loadingStyle.Render("Loading session..."))
	} else {
		lastRegion := ""
		for _, n := range m.nodes {
			if n.Region != lastRegion {
				if lastRegion != "" {
					list.WriteString("\n")
				}
				list.WriteString(regionStyle.Render(n.Region) + promptStyle.Render("  "+n.Area) + "\n")
				lastRegion = n.Region
			}
			list.WriteString(formatNode(n) + "\n")
		}
		if len(m.nodes) == 0 {
			list.WriteString(promptStyle.Render("Nothing matches the current filter."))
		}
	}
	m.listView.SetContent(list.String())
	m.metaView.SetContent(m.writeMetadata(m.metaView.Width))
}

func formatNode(n tracker.NodeStatus) string {
	style := accessibilityStyles[n.Accessibility]
	name := n.Name
	switch n.Node.Kind {
	case world.NodeBoss:
		name = "Boss: " + name
	case world.NodeReward:
		name = "Reward: " + name
	}
	line := style.Render(accessibilityMarks[n.Accessibility] + " " + name)
	if n.MarkedItem != "" {
		line += promptStyle.Render(" [" + n.MarkedItem + "]")
	}
	return "  " + line
}

func (m TrackerUI) writeMetadata(width int) string {
	if width < 10 {
		width = 10
	}
	var content strings.Builder
	content.WriteString(titleStyle.Render("SMZ3 TRACKER") + "\n\n")
	if m.session == nil {
		return content.String()
	}

	content.WriteString("Session:\n")
	content.WriteString(m.session.ID.String()[:8] + "...\n\n")
	content.WriteString(fmt.Sprintf("Keysanity: %s\n", m.session.Settings.Keysanity))
	content.WriteString(fmt.Sprintf("Crystals: %d  Pendants: %d\n\n",
		m.session.Progression.Crystals(), m.session.Progression.Pendants()))

	content.WriteString("Nodes:\n")
	for a := world.Cleared; a <= world.OutOfLogic; a++ {
		if n := m.session.Counts[a.String()]; n > 0 {
			content.WriteString(accessibilityStyles[a].Render(fmt.Sprintf("%s %-20s %d", accessibilityMarks[a], a, n)) + "\n")
		}
	}

	if m.filter != "" || m.region != "" {
		content.WriteString("\nShowing: ")
		content.WriteString(strings.TrimSpace(m.filter + " " + m.region))
		content.WriteString("\n")
	}

	var held []string
	for _, ic := range m.session.Progression.Items() {
		if ic.Count > 1 {
			held = append(held, fmt.Sprintf("%s ×%d", ic.Item, ic.Count))
		} else {
			held = append(held, ic.Item.String())
		}
	}
	content.WriteString("\nItems:\n")
	if len(held) == 0 {
		content.WriteString(promptStyle.Render("None yet") + "\n")
	} else {
		content.WriteString(wordwrap.String(strings.Join(held, ", "), width) + "\n")
	}

	if len(m.log) > 0 {
		content.WriteString("\n" + separatorStyle.Render(strings.Repeat("─", width)) + "\n")
		for _, line := range m.log {
			content.WriteString(wordwrap.String(line, width) + "\n")
		}
	}
	return content.String()
}

func (m TrackerUI) loadPresets() tea.Cmd {
	return func() tea.Msg {
		presets, err := m.api.ListPresets()
		return presetsLoadedMsg{presets, err}
	}
}

func (m TrackerUI) createSession(preset string) tea.Cmd {
	return func() tea.Msg {
		s, err := m.api.CreateSession(preset)
		return sessionCreatedMsg{s, err}
	}
}

func (m TrackerUI) refresh() tea.Cmd {
	id := m.session.ID
	q := url.Values{}
	if m.filter != "" {
		q.Set("accessibility", m.filter)
	}
	if m.region != "" {
		q.Set("region", m.region)
	}
	return func() tea.Msg {
		s, err := m.api.GetSession(id)
		if err != nil {
			return refreshedMsg{err: err}
		}
		locs, err := m.api.Locations(id, q)
		if err != nil {
			return refreshedMsg{err: err}
		}
		return refreshedMsg{session: s, nodes: locs.Nodes}
	}
}

func (m TrackerUI) apply(action handlers.ActionRequest) tea.Cmd {
	id := m.session.ID
	return func() tea.Msg {
		resp, err := m.api.Apply(id, action)
		return actionDoneMsg{action, resp, err}
	}
}

func (m TrackerUI) findMissing(q missingQuery) tea.Cmd {
	id := m.session.ID
	return func() tea.Msg {
		resp, err := m.api.Missing(id, q.kind, q.name)
		return missingMsg{q, resp, err}
	}
}

func (m TrackerUI) updatePresetModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case presetsLoadedMsg:
		m.loadingPresets = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.presets = append([]string{defaultPreset}, msg.presets...)
		}

	case sessionCreatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.session = msg.session
		m.showPresetModal = false
		if m.width > 0 && m.height > 0 {
			m.layout()
			m.ready = true
		}
		m.textarea.Focus()
		m.loading = true
		m.render()
		return m, tea.Batch(textarea.Blink, m.refresh())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.loadingPresets {
				return m, tea.Quit
			}
			m.showQuitModal = true
			return m, nil
		}
		if m.loadingPresets || m.err != nil || m.loading {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyUp:
			if m.selectedPreset > 0 {
				m.selectedPreset--
			}
		case tea.KeyDown:
			if m.selectedPreset < len(m.presets)-1 {
				m.selectedPreset++
			}
		case tea.KeyEnter:
			if len(m.presets) > 0 {
				preset := m.presets[m.selectedPreset]
				if preset == defaultPreset {
					preset = ""
				}
				m.loading = true
				return m, m.createSession(preset)
			}
		}
	}
	return m, nil
}

func (m TrackerUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.showPresetModal {
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}
	return m, nil
}

func (m TrackerUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Tracker?"))
	content.WriteString("\n\n")
	content.WriteString("The session stays saved on the server.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m TrackerUI) renderPresetModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	switch {
	case m.loadingPresets:
		content.WriteString(modalTitleStyle.Render("Loading Presets..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Please wait while we fetch settings presets..."))
	case m.err != nil:
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("%v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	case m.loading:
		content.WriteString(modalTitleStyle.Render("Creating Session..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Building the world..."))
	default:
		content.WriteString(modalTitleStyle.Render("Select Settings"))
		content.WriteString("\n\n")
		for i, preset := range m.presets {
			if i == m.selectedPreset {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", preset)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", preset)))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m TrackerUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.showPresetModal {
		return m.renderPresetModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	listWidth := int(float64(m.width)*0.65) - 2
	metaWidth := m.width - listWidth - 4

	status := ""
	if m.loading {
		status = loadingStyle.Render("working...")
	}

	listPanel := listPanelStyle.Width(listWidth).Height(m.height - 1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.listView.View(),
			separatorStyle.Render(strings.Repeat("─", listWidth-4))+" "+status,
			m.textarea.View(),
		),
	)
	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 1).Render(m.metaView.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPanel, metaPanel)
}
