// Package inspector implements C14: a read-only terminal browser over one
// resolved Configuration — profiles, their trigger matches, global
// variables, and the NonFatalErrorSet produced while loading it. Grounded
// on the teacher's pkg/explore, with the subject changed from scan
// findings to configuration objects.
package inspector

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/expando-dev/expando/pkg/config"
)

// pane tracks which list is currently focused.
type pane int

const (
	paneProfiles pane = iota
	paneTriggers
	paneGlobals
	paneErrors
)

// Model is the root Bubble Tea model for the inspector TUI.
type Model struct {
	data *inspectData

	focus        pane
	profileIndex int
	triggerIndex int
	globalIndex  int
	errorIndex   int

	width, height int
}

// New builds a Model over eng. It never mutates eng.
func New(eng *config.Engine) Model {
	return Model{data: loadData(eng), focus: paneProfiles}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.focus = (m.focus + 1) % 4
			return m, nil
		case "up", "k":
			m.moveSelection(-1)
			return m, nil
		case "down", "j":
			m.moveSelection(1)
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) moveSelection(delta int) {
	switch m.focus {
	case paneProfiles:
		m.profileIndex = clamp(m.profileIndex+delta, len(m.data.profiles))
		m.triggerIndex = 0
		m.globalIndex = 0
	case paneTriggers:
		m.triggerIndex = clamp(m.triggerIndex+delta, len(m.currentTriggers()))
	case paneGlobals:
		m.globalIndex = clamp(m.globalIndex+delta, len(m.currentGlobals()))
	case paneErrors:
		m.errorIndex = clamp(m.errorIndex+delta, len(m.data.errors))
	}
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m Model) currentProfile() profileRow {
	if len(m.data.profiles) == 0 {
		return profileRow{}
	}
	return m.data.profiles[m.profileIndex]
}

func (m Model) currentTriggers() []triggerRow {
	if len(m.data.profiles) == 0 {
		return nil
	}
	return m.data.triggersFor(m.currentProfile())
}

func (m Model) currentGlobals() []globalVarRow {
	if len(m.data.profiles) == 0 {
		return nil
	}
	return m.data.globalVarsFor(m.currentProfile())
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("expando inspector") + "\n\n")
	b.WriteString(m.renderProfiles())
	b.WriteString("\n")
	b.WriteString(m.renderTriggers())
	b.WriteString("\n")
	b.WriteString(m.renderGlobals())
	b.WriteString("\n")
	b.WriteString(m.renderErrors())
	b.WriteString("\n" + mutedStyle.Render("tab: switch pane · ↑/↓: move · q: quit"))

	return borderStyle.Render(b.String())
}

func (m Model) renderProfiles() string {
	var b strings.Builder
	b.WriteString(sectionHeader("Profiles", m.focus == paneProfiles))
	for i, row := range m.data.profiles {
		label := row.file.SourcePath
		if !row.isCustom {
			label += " (default)"
		}
		b.WriteString(renderRow(label, i == m.profileIndex && m.focus == paneProfiles))
	}
	return b.String()
}

func (m Model) renderTriggers() string {
	var b strings.Builder
	rows := m.currentTriggers()
	b.WriteString(sectionHeader(fmt.Sprintf("Triggers (%d)", len(rows)), m.focus == paneTriggers))
	for i, row := range rows {
		b.WriteString(renderRow(row.trigger, i == m.triggerIndex && m.focus == paneTriggers))
	}
	return b.String()
}

func (m Model) renderGlobals() string {
	var b strings.Builder
	rows := m.currentGlobals()
	b.WriteString(sectionHeader(fmt.Sprintf("Global variables (%d)", len(rows)), m.focus == paneGlobals))
	for i, row := range rows {
		b.WriteString(renderRow(fmt.Sprintf("%s (%s)", row.v.Name, row.v.Type), i == m.globalIndex && m.focus == paneGlobals))
	}
	return b.String()
}

func (m Model) renderErrors() string {
	var b strings.Builder
	b.WriteString(sectionHeader(fmt.Sprintf("Load errors (%d)", len(m.data.errors)), m.focus == paneErrors))
	for i, set := range m.data.errors {
		for _, rec := range set.Records {
			line := fmt.Sprintf("%s: %v", set.File, rec.Err)
			if rec.Severity.String() == "error" {
				line = errorStyle.Render(line)
			}
			b.WriteString(renderRow(line, i == m.errorIndex && m.focus == paneErrors))
		}
	}
	return b.String()
}

func sectionHeader(title string, focused bool) string {
	if focused {
		return accentStyle.Render("▸ "+title) + "\n"
	}
	return mutedStyle.Render("  "+title) + "\n"
}

func renderRow(text string, selected bool) string {
	if selected {
		return selectedRowStyle.Render("  "+text) + "\n"
	}
	return "  " + text + "\n"
}
