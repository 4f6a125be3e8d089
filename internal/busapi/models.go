package busapi

// ChartData is the response of /api/bus-data: parallel slices of route name
// and average scheduled delay in minutes, sorted by route name. A negative
// delay means the route tends to run early.
type ChartData struct {
	Routes    []string  `json:"routes"`
	AvgDelays []float64 `json:"avg_delays"`
}

// RouteDelay pairs one route with its average delay.
type RouteDelay struct {
	Route    string
	AvgDelay float64
}

// Pairs converts the parallel slices into route/delay pairs, dropping any
// trailing entries without a counterpart (the backend should never produce
// mismatched lengths, but a chart must not index out of range if it does).
func (c *ChartData) Pairs() []RouteDelay {
	n := len(c.Routes)
	if len(c.AvgDelays) < n {
		n = len(c.AvgDelays)
	}
	pairs := make([]RouteDelay, n)
	for i := 0; i < n; i++ {
		pairs[i] = RouteDelay{Route: c.Routes[i], AvgDelay: c.AvgDelays[i]}
	}
	return pairs
}

// FilterOptions is the response of /api/filter-options.
type FilterOptions struct {
	Routes []string `json:"routes"`
}

// StopNames is the response of /api/stop-names.
type StopNames struct {
	StopNames []string `json:"stop_names"`
}

// ArrivalData is the response of /api/find-arrival: the first scheduled
// arrival found for the route/hour and the average delay across all matching
// records.
type ArrivalData struct {
	ScheduledArrival string  `json:"scheduled_arrival"`
	AverageDelay     float64 `json:"average_delay"`
}

// RouteSchedule is one route's entry in a stop schedule: the next scheduled
// bus at or after the requested time, and the average prediction error over
// every record sharing that exact scheduled arrival. Pointer fields are nil
// when the backend found no upcoming bus for the route.
type RouteSchedule struct {
	Route                string   `json:"route"`
	AvgPredictionError   *float64 `json:"average_prediction_error_at_schedule"`
	NextBusID            *string  `json:"next_bus_id"`
	NextScheduledArrival *string  `json:"next_scheduled_arrival"`
}

// StopSchedule is the response of /api/stop-schedule, one RouteSchedule per
// route serving the stop, sorted by route name.
type StopSchedule struct {
	StopName      string          `json:"stop_name"`
	RequestedTime string          `json:"requested_time"`
	RoutesAtStop  []RouteSchedule `json:"routes_at_stop"`
}

// DelayPrediction is the response of /api/predict-delay. The predicted delay
// is nil when the backend's model could not produce a value; Message then
// carries the reason.
type DelayPrediction struct {
	RequestedTime         string   `json:"requested_time"`
	PredictedDelayMinutes *float64 `json:"predicted_delay_minutes"`
	Message               string   `json:"message"`
}
