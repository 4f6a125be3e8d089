package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nycbus/busboard/internal/busapi"
	"github.com/nycbus/busboard/internal/config"
	"github.com/nycbus/busboard/internal/report"
	"github.com/nycbus/busboard/internal/widget"
)

// focusField identifies the focused element of the schedule form.
type focusField int

const (
	focusStop focusField = iota
	focusHour
	focusMinute
)

// maxVisibleStops caps the stop picker list height.
const maxVisibleStops = 8

// Messages for async schedule operations
type stopNamesMsg struct {
	names []string
}

type stopNamesErrMsg struct {
	err error
}

type scheduleResultMsg struct {
	schedule *busapi.StopSchedule
}

type scheduleErrMsg struct {
	err error
}

// ScheduleModel is the stop schedule query screen.
type ScheduleModel struct {
	client   *busapi.Client
	settings *config.Settings

	// Stop picker state
	StopNames    []string
	LoadingStops bool
	StopsErr     error
	Filter       textinput.Model
	Cursor       int
	SelectedStop string

	// Time steppers
	Hour       *widget.Stepper
	Minute     *widget.Stepper
	hourTyped  string
	minuteType string

	// Focus
	Focus focusField

	// Query state
	Fetching bool
	Result   *busapi.StopSchedule
	QueryErr error

	Spinner spinner.Model

	// UI state
	Width  int
	Height int
}

// NewScheduleModel creates the schedule screen. The steppers cover the
// hour and minute ranges; constructor errors are impossible for fixed
// valid bounds, so they are ignored here.
func NewScheduleModel(client *busapi.Client, settings *config.Settings) ScheduleModel {
	filter := textinput.New()
	filter.Placeholder = "type to filter stops"
	filter.CharLimit = 64
	filter.Width = 40
	filter.Focus()

	defaultHour, defaultMinute := 8, 0
	defaultStop := ""
	if settings != nil {
		defaultHour = settings.Defaults.Hour
		defaultMinute = settings.Defaults.Minute
		defaultStop = settings.Defaults.Stop
	}

	hour, _ := widget.NewStepper(0, 23, defaultHour)
	minute, _ := widget.NewStepper(0, 59, defaultMinute)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return ScheduleModel{
		client:       client,
		settings:     settings,
		LoadingStops: true,
		Filter:       filter,
		SelectedStop: defaultStop,
		Hour:         hour,
		Minute:       minute,
		Focus:        focusStop,
		Spinner:      s,
	}
}

// Init starts the stop name fetch.
func (m ScheduleModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.fetchStopNames())
}

// Typing reports whether plain keys must reach this screen.
func (m ScheduleModel) Typing() bool {
	return m.Focus == focusStop
}

// fetchStopNames requests the unique stop names from the backend.
func (m ScheduleModel) fetchStopNames() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		names, err := client.GetStopNames(ctx)
		if err != nil {
			return stopNamesErrMsg{err: err}
		}
		return stopNamesMsg{names: names.StopNames}
	}
}

// fetchSchedule requests the stop schedule for the current form values.
func (m ScheduleModel) fetchSchedule() tea.Cmd {
	client := m.client
	stop := m.SelectedStop
	hour := m.Hour.Value()
	minute := m.Minute.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		schedule, err := client.GetStopSchedule(ctx, stop, hour, minute)
		if err != nil {
			return scheduleErrMsg{err: err}
		}
		return scheduleResultMsg{schedule: schedule}
	}
}

// Update handles messages for the schedule screen.
func (m ScheduleModel) Update(msg tea.Msg) (ScheduleModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.LoadingStops && !m.Fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case stopNamesMsg:
		m.LoadingStops = false
		m.StopsErr = nil
		m.StopNames = m.orderStops(msg.names)
		return m, nil

	case stopNamesErrMsg:
		m.LoadingStops = false
		m.StopsErr = msg.err
		return m, nil

	case scheduleResultMsg:
		m.Fetching = false
		m.QueryErr = nil
		m.Result = msg.schedule
		return m, nil

	case scheduleErrMsg:
		m.Fetching = false
		m.QueryErr = msg.err
		m.Result = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// orderStops sorts names with the user's favorite stops first.
func (m ScheduleModel) orderStops(names []string) []string {
	ordered := make([]string, len(names))
	copy(ordered, names)
	if m.settings == nil {
		return ordered
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		fi := m.settings.IsFavorite(ordered[i])
		fj := m.settings.IsFavorite(ordered[j])
		if fi != fj {
			return fi
		}
		return false
	})
	return ordered
}

// handleKey routes keys by the focused form field.
func (m ScheduleModel) handleKey(msg tea.KeyMsg) (ScheduleModel, tea.Cmd) {
	switch m.Focus {
	case focusStop:
		return m.handleStopKey(msg)
	case focusHour:
		return m.handleStepperKey(msg, focusStop, focusMinute)
	case focusMinute:
		return m.handleStepperKey(msg, focusHour, focusStop)
	}
	return m, nil
}

// focusedStepper returns the stepper owning the focus plus its typed
// buffer. The buffer pointer targets the receiver copy, so callers must
// return that same copy for updates to stick.
func (m *ScheduleModel) focusedStepper() (*widget.Stepper, *string) {
	if m.Focus == focusHour {
		return m.Hour, &m.hourTyped
	}
	return m.Minute, &m.minuteType
}

// handleStopKey handles keys while the stop picker has focus.
func (m ScheduleModel) handleStopKey(msg tea.KeyMsg) (ScheduleModel, tea.Cmd) {
	filtered := m.filteredStops()

	switch msg.String() {
	case "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down":
		if m.Cursor < len(filtered)-1 {
			m.Cursor++
		}
		return m, nil
	case "enter":
		if len(filtered) > 0 && m.Cursor < len(filtered) {
			m.SelectedStop = filtered[m.Cursor]
			m.Filter.Blur()
			m.Focus = focusHour
		}
		return m, nil
	case "esc":
		if m.Filter.Value() != "" {
			m.Filter.SetValue("")
			m.Cursor = 0
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Filter, cmd = m.Filter.Update(msg)
	if m.Cursor >= len(m.filteredStops()) {
		m.Cursor = 0
	}
	return m, cmd
}

// handleStepperKey handles keys while an hour or minute stepper has focus.
// Up and down step with wraparound, digits feed the typed value, and
// moving focus settles the pending input.
func (m ScheduleModel) handleStepperKey(msg tea.KeyMsg, prev, next focusField) (ScheduleModel, tea.Cmd) {
	stepper, typed := m.focusedStepper()
	settle := func() {
		stepper.Handle(widget.Event{Action: widget.ActionBlur})
		*typed = ""
	}

	switch msg.String() {
	case "up", "+", "k":
		stepper.Handle(widget.Event{Action: widget.ActionIncrement})
		*typed = ""
		return m, nil
	case "down", "-", "j":
		stepper.Handle(widget.Event{Action: widget.ActionDecrement})
		*typed = ""
		return m, nil
	case "left":
		settle()
		m.Focus = prev
		if prev == focusStop {
			m.Filter.Focus()
		}
		return m, nil
	case "right":
		settle()
		m.Focus = next
		if next == focusStop {
			m.Filter.Focus()
		}
		return m, nil
	case "backspace":
		if *typed != "" {
			*typed = (*typed)[:len(*typed)-1]
			stepper.Handle(widget.Event{Action: widget.ActionInput, Text: *typed})
		}
		return m, nil
	case "enter":
		settle()
		return m.submit()
	case "esc":
		settle()
		m.Focus = focusStop
		m.Filter.Focus()
		return m, nil
	}

	if len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9' {
		*typed += string(msg.Runes)
		stepper.Handle(widget.Event{Action: widget.ActionInput, Text: *typed})
	}
	return m, nil
}

// submit runs the schedule query for the selected stop and time.
func (m ScheduleModel) submit() (ScheduleModel, tea.Cmd) {
	if m.SelectedStop == "" {
		m.QueryErr = fmt.Errorf("choose a stop first")
		return m, nil
	}
	m.Fetching = true
	m.QueryErr = nil
	m.Result = nil
	return m, tea.Batch(m.Spinner.Tick, m.fetchSchedule())
}

// filteredStops returns the stop names matching the filter text.
func (m ScheduleModel) filteredStops() []string {
	query := strings.ToUpper(strings.TrimSpace(m.Filter.Value()))
	if query == "" {
		return m.StopNames
	}
	var out []string
	for _, name := range m.StopNames {
		if strings.Contains(strings.ToUpper(name), query) {
			out = append(out, name)
		}
	}
	return out
}

// BuildContent renders the schedule screen body.
func (m ScheduleModel) BuildContent() string {
	if m.LoadingStops {
		return fmt.Sprintf("\n  %s Fetching stop names...\n", m.Spinner.View())
	}
	if m.StopsErr != nil {
		return "\n" + RenderError(busapi.ShortMessage(m.StopsErr))
	}

	sections := []string{
		RenderTitle("Next bus at a stop"),
		m.renderStopPicker(),
		"",
		m.renderTimeSteppers(),
		"",
		m.renderResult(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStopPicker renders the filter input and the matching stops.
func (m ScheduleModel) renderStopPicker() string {
	label := FieldLabelStyle.Render("  Stop: ")
	selected := BlurredFieldStyle.Render(m.SelectedStop)
	if m.SelectedStop == "" {
		selected = SubtitleStyle.Render("(none)")
	}

	lines := []string{label + selected}

	if m.Focus == focusStop {
		lines = append(lines, "  "+m.Filter.View())

		filtered := m.filteredStops()
		shown := filtered
		offset := 0
		if m.Cursor >= maxVisibleStops {
			offset = m.Cursor - maxVisibleStops + 1
		}
		if offset+maxVisibleStops < len(shown) {
			shown = shown[offset : offset+maxVisibleStops]
		} else if offset < len(shown) {
			shown = shown[offset:]
		}

		for i, name := range shown {
			idx := offset + i
			marker := "  "
			if m.settings != nil && m.settings.IsFavorite(name) {
				marker = FavoriteMarkerStyle.Render("★ ")
			}
			if idx == m.Cursor {
				lines = append(lines, SelectedListItemStyle.Render("  > "+marker+name))
			} else {
				lines = append(lines, ListItemStyle.Render("  "+marker+name))
			}
		}
		if len(filtered) == 0 {
			lines = append(lines, SubtitleStyle.Render("    no matching stops"))
		}
	}

	return strings.Join(lines, "\n")
}

// renderTimeSteppers renders the hour and minute fields.
func (m ScheduleModel) renderTimeSteppers() string {
	renderStepper := func(s *widget.Stepper, focused bool) string {
		text := s.String()
		if text == "" {
			text = "--"
		}
		if focused {
			return FocusedFieldStyle.Render("[" + text + "]")
		}
		return BlurredFieldStyle.Render(" " + text + " ")
	}

	hour := renderStepper(m.Hour, m.Focus == focusHour)
	minute := renderStepper(m.Minute, m.Focus == focusMinute)

	return FieldLabelStyle.Render("  Time: ") + hour +
		BlurredFieldStyle.Render(":") + minute +
		SubtitleStyle.Render("  (↑/↓ adjust, digits to type)")
}

// renderResult renders the query outcome area.
func (m ScheduleModel) renderResult() string {
	if m.Fetching {
		return fmt.Sprintf("  %s Fetching schedule...", m.Spinner.View())
	}
	if m.QueryErr != nil {
		return RenderError(busapi.ShortMessage(m.QueryErr))
	}
	if m.Result == nil {
		return RenderHelp("  pick a stop, set a time, press enter")
	}
	return report.RenderStopSchedule(m.Result)
}

// FooterHelp returns the context help line for the schedule screen.
func (m ScheduleModel) FooterHelp() string {
	if m.Focus == focusStop {
		return "type: filter • ↑/↓: choose • enter: select stop • esc: clear"
	}
	return "↑/↓: adjust • ←/→: field • enter: query • tab: charts • q: quit"
}
