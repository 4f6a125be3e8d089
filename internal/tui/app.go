package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nycbus/busboard/internal/busapi"
	"github.com/nycbus/busboard/internal/config"
	"github.com/nycbus/busboard/internal/logging"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenCharts   Screen = "charts"
	ScreenSchedule Screen = "schedule"
)

// AppModel is the top-level coordinator model that routes messages to the
// active screen and handles screen switching.
type AppModel struct {
	// Current screen state
	CurrentScreen Screen

	// Screen models
	ChartsModel   ChartsModel
	ScheduleModel ScheduleModel

	// UI state
	Width  int
	Height int
}

// NewAppModel creates the application model.
func NewAppModel(client *busapi.Client, settings *config.Settings) AppModel {
	return AppModel{
		CurrentScreen: ScreenCharts,
		ChartsModel:   NewChartsModel(client),
		ScheduleModel: NewScheduleModel(client, settings),
	}
}

// Init starts both screens' initial data fetches.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.ChartsModel.Init(), m.ScheduleModel.Init())
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Propagate to all screens
		m.ChartsModel.Width = msg.Width
		m.ChartsModel.Height = msg.Height
		m.ScheduleModel.Width = msg.Width
		m.ScheduleModel.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			// Quit unless a screen needs the key (text entry, open overlay)
			if !m.activeScreenCapturesKeys() {
				return m, tea.Quit
			}

		case "tab":
			if !m.activeScreenCapturesKeys() {
				return m.switchScreen()
			}
		}
	}

	return m.updateCurrentScreen(msg)
}

// activeScreenCapturesKeys reports whether the active screen is in a state
// where plain keys must reach it (typing in a field or an open overlay).
func (m AppModel) activeScreenCapturesKeys() bool {
	switch m.CurrentScreen {
	case ScreenCharts:
		return m.ChartsModel.OverlayOpen()
	case ScreenSchedule:
		return m.ScheduleModel.Typing()
	}
	return false
}

// switchScreen toggles between the charts and schedule screens.
func (m AppModel) switchScreen() (tea.Model, tea.Cmd) {
	if m.CurrentScreen == ScreenCharts {
		m.CurrentScreen = ScreenSchedule
	} else {
		m.CurrentScreen = ScreenCharts
	}
	logging.Debug("switched screen")
	return m, nil
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenCharts:
		updated, c := m.ChartsModel.Update(msg)
		m.ChartsModel = updated
		cmd = c

	case ScreenSchedule:
		updated, c := m.ScheduleModel.Update(msg)
		m.ScheduleModel = updated
		cmd = c
	}

	return m, cmd
}

// View renders the active screen inside the application container.
func (m AppModel) View() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}

	tabs := m.renderTabs()

	var content, footer string
	switch m.CurrentScreen {
	case ScreenCharts:
		content = m.ChartsModel.BuildContent()
		footer = m.ChartsModel.FooterHelp()
	case ScreenSchedule:
		content = m.ScheduleModel.BuildContent()
		footer = m.ScheduleModel.FooterHelp()
	}

	screen := RenderApplicationContainer(tabs+"\n"+content, footer, m.Width, m.Height)

	// The zoom overlay replaces the whole frame while open
	if m.CurrentScreen == ScreenCharts && m.ChartsModel.OverlayOpen() {
		return m.ChartsModel.RenderOverlayView()
	}

	return screen
}

// renderTabs renders the screen switcher line.
func (m AppModel) renderTabs() string {
	charts := InactiveTabStyle.Render("Charts")
	schedule := InactiveTabStyle.Render("Schedule")
	if m.CurrentScreen == ScreenCharts {
		charts = ActiveTabStyle.Render("Charts")
	} else {
		schedule = ActiveTabStyle.Render("Schedule")
	}
	return charts + schedule
}

// Run starts the interactive interface. Mouse support is enabled so chart
// slides can be zoomed by clicking.
func Run(client *busapi.Client, settings *config.Settings) error {
	p := tea.NewProgram(
		NewAppModel(client, settings),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interface: %w", err)
	}
	return nil
}
