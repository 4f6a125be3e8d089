package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nycbus/busboard/internal/busapi"
)

// RenderBarChart draws a horizontal bar chart of average delay per route.
// Bar lengths scale to the largest absolute delay; colors encode severity.
func RenderBarChart(pairs []busapi.RouteDelay, width int) string {
	if len(pairs) == 0 {
		return ChartValueStyle.Render("  (no route data)")
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	labelWidth := 0
	maxAbs := 0.0
	for _, p := range pairs {
		if len(p.Route) > labelWidth {
			labelWidth = len(p.Route)
		}
		if abs := math.Abs(p.AvgDelay); abs > maxAbs {
			maxAbs = abs
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}

	// Leave room for "  label  bar  value"
	barWidth := width - labelWidth - 14
	if barWidth < 10 {
		barWidth = 10
	}

	var lines []string
	for _, p := range pairs {
		n := int(math.Round(math.Abs(p.AvgDelay) / maxAbs * float64(barWidth)))
		if n < 1 {
			n = 1
		}
		bar := lipgloss.NewStyle().
			Foreground(delayColor(p.AvgDelay)).
			Render(strings.Repeat("█", n))

		label := ChartLabelStyle.Render(fmt.Sprintf("  %-*s", labelWidth, p.Route))
		value := ChartValueStyle.Render(fmt.Sprintf(" %+.2f min", p.AvgDelay))
		lines = append(lines, label+"  "+bar+value)
	}
	return strings.Join(lines, "\n")
}

// RenderArrival formats a find-arrival response as key-value lines.
func RenderArrival(route string, hour int, arrival *busapi.ArrivalData) string {
	lines := []string{
		ResultKeyStyle.Render("  Route:") + " " + ResultValueStyle.Render(route),
		ResultKeyStyle.Render("  Hour:") + " " + ResultValueStyle.Render(fmt.Sprintf("%02d:00", hour)),
		ResultKeyStyle.Render("  First arrival:") + " " + ResultValueStyle.Render(arrival.ScheduledArrival),
		ResultKeyStyle.Render("  Average delay:") + " " +
			lipgloss.NewStyle().Foreground(delayColor(arrival.AverageDelay)).
				Render(fmt.Sprintf("%+.2f min", arrival.AverageDelay)),
	}
	return strings.Join(lines, "\n")
}

// RenderPrediction formats a predict-delay response as key-value lines.
func RenderPrediction(prediction *busapi.DelayPrediction) string {
	predicted := "unavailable"
	style := ResultValueStyle
	if prediction.PredictedDelayMinutes != nil {
		v := *prediction.PredictedDelayMinutes
		predicted = fmt.Sprintf("%+.2f min", v)
		style = lipgloss.NewStyle().Foreground(delayColor(v))
	}
	lines := []string{
		ResultKeyStyle.Render("  Time:") + " " + ResultValueStyle.Render(prediction.RequestedTime),
		ResultKeyStyle.Render("  Predicted delay:") + " " + style.Render(predicted),
		ResultKeyStyle.Render("  Message:") + " " + ResultValueStyle.Render(prediction.Message),
	}
	return strings.Join(lines, "\n")
}

// RenderStopSchedule formats a stop-schedule response as a table of routes.
func RenderStopSchedule(schedule *busapi.StopSchedule) string {
	var lines []string
	lines = append(lines,
		ResultKeyStyle.Render("  Stop:")+" "+ResultValueStyle.Render(schedule.StopName),
		ResultKeyStyle.Render("  Requested:")+" "+ResultValueStyle.Render(schedule.RequestedTime),
		"")

	header := fmt.Sprintf("  %-10s  %-20s  %-16s  %s",
		"ROUTE", "NEXT ARRIVAL", "BUS", "PREDICTION ERR")
	lines = append(lines, ChartValueStyle.Render(header))

	for _, info := range schedule.RoutesAtStop {
		arrival := "no upcoming bus"
		if info.NextScheduledArrival != nil {
			arrival = *info.NextScheduledArrival
		}
		bus := "-"
		if info.NextBusID != nil {
			bus = *info.NextBusID
		}
		predErr := "-"
		if info.AvgPredictionError != nil {
			predErr = fmt.Sprintf("%+.2f min", *info.AvgPredictionError)
		}
		lines = append(lines, ChartLabelStyle.Render(
			fmt.Sprintf("  %-10s  %-20s  %-16s  %s", info.Route, arrival, bus, predErr)))
	}
	return strings.Join(lines, "\n")
}

// RenderList formats a plain list of values (routes or stop names) in
// columns that fit the terminal width.
func RenderList(items []string, width int) string {
	if len(items) == 0 {
		return ChartValueStyle.Render("  (none)")
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	colWidth := 0
	for _, item := range items {
		if len(item) > colWidth {
			colWidth = len(item)
		}
	}
	colWidth += 2

	cols := (width - 2) / colWidth
	if cols < 1 {
		cols = 1
	}

	var lines []string
	for i := 0; i < len(items); i += cols {
		end := i + cols
		if end > len(items) {
			end = len(items)
		}
		var row strings.Builder
		row.WriteString("  ")
		for _, item := range items[i:end] {
			row.WriteString(fmt.Sprintf("%-*s", colWidth, item))
		}
		lines = append(lines, ChartLabelStyle.Render(strings.TrimRight(row.String(), " ")))
	}
	return strings.Join(lines, "\n")
}
