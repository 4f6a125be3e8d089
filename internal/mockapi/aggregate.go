package mockapi

import (
	"fmt"
	"math"
	"sort"

	"github.com/nycbus/busboard/internal/busapi"
)

// NoDataError reports a query that matched no records. The server maps it
// to a 404 response carrying the detail string.
type NoDataError struct {
	Detail string
}

func (e *NoDataError) Error() string {
	return e.Detail
}

// round2 rounds to two decimal places, matching the backend's presentation
// of delay values.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ChartData computes the average scheduled delay per route across the whole
// dataset, sorted by route name.
func (d *Dataset) ChartData() *busapi.ChartData {
	type stats struct {
		sum   float64
		count int
	}
	perRoute := make(map[string]*stats)
	for _, rec := range d.records {
		st, ok := perRoute[rec.Route]
		if !ok {
			st = &stats{}
			perRoute[rec.Route] = st
		}
		st.sum += rec.DelayMinutes
		st.count++
	}

	out := &busapi.ChartData{}
	for _, route := range d.routes {
		st, ok := perRoute[route]
		if !ok || st.count == 0 {
			continue
		}
		out.Routes = append(out.Routes, route)
		out.AvgDelays = append(out.AvgDelays, round2(st.sum/float64(st.count)))
	}
	return out
}

// FilterOptions returns the unique route names, sorted.
func (d *Dataset) FilterOptions() *busapi.FilterOptions {
	routes := make([]string, len(d.routes))
	copy(routes, d.routes)
	return &busapi.FilterOptions{Routes: routes}
}

// StopNames returns the unique stop names, sorted.
func (d *Dataset) StopNames() *busapi.StopNames {
	names := make([]string, len(d.stopNames))
	copy(names, d.stopNames)
	return &busapi.StopNames{StopNames: names}
}

// FindArrival averages the scheduled delay for a route at an hour of day
// and reports the first scheduled arrival seen. Returns NoDataError when
// nothing matches.
func (d *Dataset) FindArrival(route string, hour int) (*busapi.ArrivalData, error) {
	var (
		total float64
		count int
		first string
	)
	for _, rec := range d.records {
		if rec.Route != route || rec.Hour != hour {
			continue
		}
		total += rec.DelayMinutes
		count++
		if first == "" {
			first = rec.ScheduledArrival
		}
	}

	if count == 0 {
		return nil, &NoDataError{
			Detail: fmt.Sprintf("No arrival data found for route '%s' at hour %d", route, hour),
		}
	}

	return &busapi.ArrivalData{
		ScheduledArrival: first,
		AverageDelay:     round2(total / float64(count)),
	}, nil
}

// StopSchedule finds, for each route serving a stop, the next scheduled bus
// at or after the requested time of day, together with the average
// prediction error across all records sharing that exact scheduled arrival.
// The date component of the arrivals is ignored; only time of day matters.
func (d *Dataset) StopSchedule(stopName string, hour, minute int) (*busapi.StopSchedule, error) {
	perRoute := make(map[string][]Record)
	for _, rec := range d.records {
		if rec.StopName == stopName {
			perRoute[rec.Route] = append(perRoute[rec.Route], rec)
		}
	}
	if len(perRoute) == 0 {
		return nil, &NoDataError{
			Detail: fmt.Sprintf("No data found for stop name: '%s'", stopName),
		}
	}

	requestedMinutes := hour*60 + minute

	out := &busapi.StopSchedule{
		StopName:      stopName,
		RequestedTime: fmt.Sprintf("%02d:%02d", hour, minute),
	}

	for route, records := range perRoute {
		sorted := make([]Record, len(records))
		copy(sorted, records)
		// Stable so records sharing a scheduled arrival keep dataset order
		// and the first one is the reported next bus.
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].arrivalTime().Before(sorted[j].arrivalTime())
		})

		var next *Record
		for i := range sorted {
			at := sorted[i].arrivalTime()
			if at.Hour()*60+at.Minute() >= requestedMinutes {
				next = &sorted[i]
				break
			}
		}

		info := busapi.RouteSchedule{Route: route}
		if next != nil {
			busID := next.BusID
			arrival := next.ScheduledArrival
			info.NextBusID = &busID
			info.NextScheduledArrival = &arrival

			// Average the prediction error over every record that shares
			// the exact scheduled arrival string.
			var (
				total float64
				count int
			)
			for _, rec := range records {
				if rec.ScheduledArrival == arrival {
					total += rec.PredictionError
					count++
				}
			}
			if count > 0 {
				avg := round2(total / float64(count))
				info.AvgPredictionError = &avg
			}
		}
		out.RoutesAtStop = append(out.RoutesAtStop, info)
	}

	sort.Slice(out.RoutesAtStop, func(i, j int) bool {
		return out.RoutesAtStop[i].Route < out.RoutesAtStop[j].Route
	})
	return out, nil
}
