package mockapi

import (
	"errors"
	"testing"
)

func TestChartData(t *testing.T) {
	chart := SampleDataset().ChartData()

	wantRoutes := []string{"B38", "B63", "M34-SBS", "M4", "M86-SBS", "Q60"}
	if len(chart.Routes) != len(wantRoutes) {
		t.Fatalf("routes = %v, want %v", chart.Routes, wantRoutes)
	}
	for i, route := range wantRoutes {
		if chart.Routes[i] != route {
			t.Errorf("routes[%d] = %q, want %q", i, chart.Routes[i], route)
		}
	}

	// M86-SBS has two records: (-0.07 + 0.33) / 2 = 0.13
	idx := 4
	if chart.AvgDelays[idx] != 0.13 {
		t.Errorf("avg delay for M86-SBS = %v, want 0.13", chart.AvgDelays[idx])
	}
	if len(chart.Routes) != len(chart.AvgDelays) {
		t.Errorf("routes and avg_delays lengths differ: %d vs %d", len(chart.Routes), len(chart.AvgDelays))
	}
}

func TestFilterOptionsSorted(t *testing.T) {
	opts := SampleDataset().FilterOptions()
	for i := 1; i < len(opts.Routes); i++ {
		if opts.Routes[i-1] >= opts.Routes[i] {
			t.Errorf("routes not sorted: %q before %q", opts.Routes[i-1], opts.Routes[i])
		}
	}
}

func TestFindArrival(t *testing.T) {
	ds := SampleDataset()

	arrival, err := ds.FindArrival("M86-SBS", 16)
	if err != nil {
		t.Fatalf("FindArrival() error = %v", err)
	}
	if arrival.AverageDelay != -0.07 {
		t.Errorf("average_delay = %v, want -0.07", arrival.AverageDelay)
	}
	if arrival.ScheduledArrival != "2025-04-05 16:10:52" {
		t.Errorf("scheduled_arrival = %q", arrival.ScheduledArrival)
	}
}

func TestFindArrivalNoRecords(t *testing.T) {
	_, err := SampleDataset().FindArrival("B63", 3)
	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("expected NoDataError, got %v", err)
	}
}

func TestStopSchedule(t *testing.T) {
	ds := SampleDataset()

	schedule, err := ds.StopSchedule("8 AV/W 86 ST", 16, 0)
	if err != nil {
		t.Fatalf("StopSchedule() error = %v", err)
	}
	if schedule.StopName != "8 AV/W 86 ST" || schedule.RequestedTime != "16:00" {
		t.Errorf("header = %+v", schedule)
	}
	if len(schedule.RoutesAtStop) != 1 {
		t.Fatalf("routes_at_stop = %+v", schedule.RoutesAtStop)
	}

	info := schedule.RoutesAtStop[0]
	if info.Route != "M86-SBS" {
		t.Errorf("route = %q", info.Route)
	}
	if info.NextScheduledArrival == nil || *info.NextScheduledArrival != "2025-04-05 16:10:52" {
		t.Errorf("next_scheduled_arrival = %v", info.NextScheduledArrival)
	}
	if info.NextBusID == nil || *info.NextBusID != "MTA NYCT_5511" {
		t.Errorf("next_bus_id = %v", info.NextBusID)
	}
	if info.AvgPredictionError == nil || *info.AvgPredictionError != 7.72 {
		t.Errorf("average_prediction_error_at_schedule = %v", info.AvgPredictionError)
	}
}

func TestStopScheduleNoUpcomingBus(t *testing.T) {
	// Latest arrival at this stop is 16:10:52, so 17:00 finds nothing.
	schedule, err := SampleDataset().StopSchedule("8 AV/W 86 ST", 17, 0)
	if err != nil {
		t.Fatalf("StopSchedule() error = %v", err)
	}
	if len(schedule.RoutesAtStop) != 1 {
		t.Fatalf("routes_at_stop = %+v", schedule.RoutesAtStop)
	}
	info := schedule.RoutesAtStop[0]
	if info.NextBusID != nil || info.NextScheduledArrival != nil || info.AvgPredictionError != nil {
		t.Errorf("expected nil fields when no upcoming bus, got %+v", info)
	}
}

func TestStopSchedulePicksEarliestAtOrAfter(t *testing.T) {
	// 15:30 is before both arrivals; the earlier one (15:56:52) wins.
	schedule, err := SampleDataset().StopSchedule("8 AV/W 86 ST", 15, 30)
	if err != nil {
		t.Fatalf("StopSchedule() error = %v", err)
	}
	info := schedule.RoutesAtStop[0]
	if info.NextScheduledArrival == nil || *info.NextScheduledArrival != "2025-04-05 15:56:52" {
		t.Errorf("next_scheduled_arrival = %v", info.NextScheduledArrival)
	}
}

func TestStopScheduleUnknownStop(t *testing.T) {
	_, err := SampleDataset().StopSchedule("NO SUCH STOP", 12, 0)
	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("expected NoDataError, got %v", err)
	}
}

func TestStopScheduleAveragesSharedArrivals(t *testing.T) {
	ds := newDataset([]Record{
		{StopName: "MAIN ST", BusID: "MTA_1", Route: "Q44", Hour: 9, DelayMinutes: 1, ScheduledArrival: "2025-04-05 09:15:00", PredictionError: 2.0},
		{StopName: "MAIN ST", BusID: "MTA_2", Route: "Q44", Hour: 9, DelayMinutes: 1, ScheduledArrival: "2025-04-05 09:15:00", PredictionError: 4.0},
		{StopName: "MAIN ST", BusID: "MTA_3", Route: "Q44", Hour: 10, DelayMinutes: 1, ScheduledArrival: "2025-04-05 10:15:00", PredictionError: 9.0},
	})

	schedule, err := ds.StopSchedule("MAIN ST", 9, 0)
	if err != nil {
		t.Fatalf("StopSchedule() error = %v", err)
	}
	info := schedule.RoutesAtStop[0]
	if info.AvgPredictionError == nil || *info.AvgPredictionError != 3.0 {
		t.Errorf("average over shared arrival = %v, want 3.0", info.AvgPredictionError)
	}
}

func TestStopScheduleTieKeepsDatasetOrder(t *testing.T) {
	// Two buses share the qualifying scheduled arrival; the one that appears
	// first in the dataset is the reported next bus.
	ds := newDataset([]Record{
		{StopName: "MAIN ST", BusID: "MTA_FIRST", Route: "Q44", Hour: 9, DelayMinutes: 1, ScheduledArrival: "2025-04-05 09:00:00", PredictionError: 1.0},
		{StopName: "MAIN ST", BusID: "MTA_SECOND", Route: "Q44", Hour: 9, DelayMinutes: 1, ScheduledArrival: "2025-04-05 09:00:00", PredictionError: 2.0},
		{StopName: "MAIN ST", BusID: "MTA_EARLY", Route: "Q44", Hour: 8, DelayMinutes: 1, ScheduledArrival: "2025-04-05 08:00:00", PredictionError: 3.0},
	})

	schedule, err := ds.StopSchedule("MAIN ST", 8, 30)
	if err != nil {
		t.Fatalf("StopSchedule() error = %v", err)
	}
	info := schedule.RoutesAtStop[0]
	if info.NextBusID == nil || *info.NextBusID != "MTA_FIRST" {
		t.Errorf("next_bus_id = %v, want MTA_FIRST", info.NextBusID)
	}
}
