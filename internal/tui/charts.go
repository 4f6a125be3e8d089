package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nycbus/busboard/internal/busapi"
	"github.com/nycbus/busboard/internal/report"
	"github.com/nycbus/busboard/internal/widget"
)

// topSlideCount is how many routes the worst/best slides show.
const topSlideCount = 10

// fetchTimeout bounds the chart data request.
const fetchTimeout = 30 * time.Second

// Messages for async chart loading
type chartDataMsg struct {
	chart *busapi.ChartData
}

type chartErrMsg struct {
	err error
}

// ChartsModel is the chart gallery screen.
type ChartsModel struct {
	client *busapi.Client

	// Loading state
	Loading bool
	Err     error
	Spinner spinner.Model

	// Gallery state, nil until data arrives
	Gallery *widget.Gallery

	// UI state
	Width  int
	Height int
}

// NewChartsModel creates the charts screen in its loading state.
func NewChartsModel(client *busapi.Client) ChartsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return ChartsModel{
		client:  client,
		Loading: true,
		Spinner: s,
	}
}

// Init starts the spinner and the chart data fetch.
func (m ChartsModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.fetchChartData())
}

// fetchChartData requests the aggregate delay data from the backend.
func (m ChartsModel) fetchChartData() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		chart, err := client.GetChartData(ctx)
		if err != nil {
			return chartErrMsg{err: err}
		}
		return chartDataMsg{chart: chart}
	}
}

// Update handles messages for the charts screen.
func (m ChartsModel) Update(msg tea.Msg) (ChartsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case chartDataMsg:
		m.Loading = false
		m.Err = nil
		gallery, err := widget.NewGallery(buildSlides(msg.chart, m.contentWidth()))
		if err != nil {
			m.Err = err
			return m, nil
		}
		m.Gallery = gallery
		return m, nil

	case chartErrMsg:
		m.Loading = false
		m.Err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

// handleKey maps keys to gallery actions.
func (m ChartsModel) handleKey(msg tea.KeyMsg) (ChartsModel, tea.Cmd) {
	if m.Gallery == nil {
		if msg.String() == "r" && m.Err != nil {
			m.Loading = true
			m.Err = nil
			return m, tea.Batch(m.Spinner.Tick, m.fetchChartData())
		}
		return m, nil
	}

	switch msg.String() {
	case "right", "l":
		m.Gallery.Handle(widget.Event{Action: widget.ActionNext})
	case "left", "h":
		m.Gallery.Handle(widget.Event{Action: widget.ActionPrev})
	case "enter", " ":
		m.Gallery.Handle(widget.Event{Action: widget.ActionClickSlide, Index: m.Gallery.Slider.Index()})
	case "esc":
		m.Gallery.Handle(widget.Event{Action: widget.ActionCancel})
	case "x":
		if m.Gallery.Modal.IsOpen() {
			m.Gallery.Handle(widget.Event{Action: widget.ActionClose})
		}
	case "r":
		if !m.Gallery.Modal.IsOpen() {
			m.Loading = true
			m.Err = nil
			m.Gallery = nil
			return m, tea.Batch(m.Spinner.Tick, m.fetchChartData())
		}
	}
	return m, nil
}

// handleMouse maps clicks to gallery actions. While the overlay is open a
// click inside the zoom box is ignored and a click outside closes it.
// While closed, a click on the slide body activates the current slide.
func (m ChartsModel) handleMouse(msg tea.MouseMsg) (ChartsModel, tea.Cmd) {
	if m.Gallery == nil {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if m.Gallery.Modal.IsOpen() {
		if m.insideZoomBox(msg.X, msg.Y) {
			return m, nil
		}
		m.Gallery.Handle(widget.Event{Action: widget.ActionBackdrop})
		return m, nil
	}

	m.Gallery.Handle(widget.Event{Action: widget.ActionClickSlide, Index: m.Gallery.Slider.Index()})
	return m, nil
}

// insideZoomBox reports whether terminal coordinates fall inside the
// centered zoom overlay box.
func (m ChartsModel) insideZoomBox(x, y int) bool {
	box := ZoomBoxStyle().Render(m.Gallery.Modal.Source())
	boxWidth := lipgloss.Width(box)
	boxHeight := lipgloss.Height(box)

	left := (m.Width - boxWidth) / 2
	top := (m.Height - boxHeight) / 2
	return x >= left && x < left+boxWidth && y >= top && y < top+boxHeight
}

// OverlayOpen reports whether the zoom overlay is showing.
func (m ChartsModel) OverlayOpen() bool {
	return m.Gallery != nil && m.Gallery.Modal.IsOpen()
}

// contentWidth is the width available for slide content.
func (m ChartsModel) contentWidth() int {
	if m.Width == 0 {
		return MinTerminalWidth - 8
	}
	return CalculateBoxWidth(m.Width)
}

// BuildContent renders the charts screen body.
func (m ChartsModel) BuildContent() string {
	if m.Loading {
		return fmt.Sprintf("\n  %s Fetching delay data...\n", m.Spinner.View())
	}
	if m.Err != nil {
		return "\n" + RenderError(busapi.ShortMessage(m.Err)) +
			"\n" + RenderHelp("  press r to retry")
	}
	if m.Gallery == nil {
		return ""
	}

	slider := m.Gallery.Slider
	current := slider.Current()

	title := RenderTitle(current.Title)
	position := RenderSubtitle(fmt.Sprintf("slide %d of %d", slider.Index()+1, slider.Len()))

	var nav []string
	if slider.CanPrev() {
		nav = append(nav, "← prev")
	}
	if slider.CanNext() {
		nav = append(nav, "next →")
	}
	navLine := RenderHelp("  " + strings.Join(nav, "   "))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		position,
		"",
		current.Source,
		"",
		m.renderSlideMarkers(),
		navLine,
	)
}

// renderSlideMarkers draws one marker per slide styled by its state.
func (m ChartsModel) renderSlideMarkers() string {
	slider := m.Gallery.Slider
	var markers []string
	for i := 0; i < slider.Len(); i++ {
		switch slider.StateOf(i) {
		case widget.StateActive:
			markers = append(markers, ActiveSlideMarkerStyle.Render("●"))
		case widget.StatePrevious:
			markers = append(markers, PreviousSlideMarkerStyle.Render("●"))
		default:
			markers = append(markers, UpcomingSlideMarkerStyle.Render("○"))
		}
	}
	return "  " + strings.Join(markers, " ")
}

// RenderOverlayView renders the full-screen zoom overlay.
func (m ChartsModel) RenderOverlayView() string {
	content := ZoomBoxStyle().Render(m.Gallery.Modal.Source())
	return RenderOverlay(content, m.Width, m.Height)
}

// FooterHelp returns the context help line for the charts screen.
func (m ChartsModel) FooterHelp() string {
	if m.OverlayOpen() {
		return "esc/x/click outside: close zoom"
	}
	return "←/→: slides • enter/click: zoom • r: refresh • tab: schedule • q: quit"
}

// buildSlides derives the gallery slides from the aggregate chart data.
func buildSlides(chart *busapi.ChartData, width int) []widget.Slide {
	pairs := chart.Pairs()

	byDelay := make([]busapi.RouteDelay, len(pairs))
	copy(byDelay, pairs)
	sort.Slice(byDelay, func(i, j int) bool {
		return byDelay[i].AvgDelay > byDelay[j].AvgDelay
	})

	worst := byDelay
	if len(worst) > topSlideCount {
		worst = worst[:topSlideCount]
	}

	best := make([]busapi.RouteDelay, len(byDelay))
	copy(best, byDelay)
	sort.Slice(best, func(i, j int) bool {
		return best[i].AvgDelay < best[j].AvgDelay
	})
	if len(best) > topSlideCount {
		best = best[:topSlideCount]
	}

	return []widget.Slide{
		{
			Title:  "Average delay by route",
			Source: report.RenderBarChart(pairs, width),
		},
		{
			Title:  fmt.Sprintf("Most delayed routes (top %d)", len(worst)),
			Source: report.RenderBarChart(worst, width),
		},
		{
			Title:  fmt.Sprintf("Most punctual routes (top %d)", len(best)),
			Source: report.RenderBarChart(best, width),
		},
		{
			Title:  "Delay distribution",
			Source: renderDelayHistogram(pairs, width),
		},
	}
}

// renderDelayHistogram buckets routes by average delay and draws a count
// bar per bucket.
func renderDelayHistogram(pairs []busapi.RouteDelay, width int) string {
	if len(pairs) == 0 {
		return SubtitleStyle.Render("  (no route data)")
	}

	buckets := []struct {
		label string
		min   float64
		max   float64
	}{
		{"early (< 0 min)", -1e9, 0},
		{"0-2 min", 0, 2},
		{"2-5 min", 2, 5},
		{"5-10 min", 5, 10},
		{"> 10 min", 10, 1e9},
	}

	counts := make([]int, len(buckets))
	maxCount := 1
	for _, p := range pairs {
		for i, b := range buckets {
			if p.AvgDelay >= b.min && p.AvgDelay < b.max {
				counts[i]++
				if counts[i] > maxCount {
					maxCount = counts[i]
				}
				break
			}
		}
	}

	barWidth := width - 30
	if barWidth < 10 {
		barWidth = 10
	}

	var lines []string
	for i, b := range buckets {
		n := counts[i] * barWidth / maxCount
		bar := lipgloss.NewStyle().Foreground(PrimaryColor).Render(strings.Repeat("█", n))
		label := FieldLabelStyle.Render(fmt.Sprintf("  %-16s", b.label))
		count := SubtitleStyle.Render(fmt.Sprintf(" %d routes", counts[i]))
		lines = append(lines, label+bar+count)
	}
	return strings.Join(lines, "\n")
}
