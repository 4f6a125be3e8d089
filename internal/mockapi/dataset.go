package mockapi

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nycbus/busboard/internal/logging"
	"go.uber.org/zap"
)

// CSV column headers expected in a busDatabase export.
const (
	colStopName         = "stop_name"
	colBusID            = "bus_id"
	colRoute            = "published_line"
	colDelayMinutes     = "scheduled_delay_minutes"
	colHour             = "hour_of_day"
	colScheduledArrival = "scheduled_arrival"
	colPredictionError  = "prediction_error_minutes"
)

// arrivalLayout is the timestamp format used by the scheduled_arrival column.
const arrivalLayout = "2006-01-02 15:04:05"

// Record is one validated bus arrival observation.
type Record struct {
	StopName         string
	BusID            string
	Route            string
	Hour             int
	DelayMinutes     float64
	ScheduledArrival string
	PredictionError  float64
}

// arrivalTime returns the parsed scheduled arrival. Records are validated at
// load time, so parsing here cannot fail for records inside a Dataset.
func (r Record) arrivalTime() time.Time {
	t, _ := time.Parse(arrivalLayout, r.ScheduledArrival)
	return t
}

// Dataset holds the loaded records plus the derived unique-value caches.
type Dataset struct {
	records   []Record
	stopNames []string
	routes    []string
	curve     []curvePoint
}

// LoadCSV reads a busDatabase CSV export from disk. Rows that fail
// validation are skipped, matching how the production importer behaves.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	ds, err := parseRecords(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from %s: %w", path, err)
	}
	return ds, nil
}

// parseRecords reads CSV rows and keeps only the ones that pass validation.
func parseRecords(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// BOM from spreadsheet exports shows up on the first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	required := []string{
		colStopName, colBusID, colRoute,
		colDelayMinutes, colHour, colScheduledArrival, colPredictionError,
	}
	var missing []string
	for _, name := range required {
		if _, ok := colIndex[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	var (
		records []Record
		skipped int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		rec, ok := parseRow(row, colIndex)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	logging.Info("dataset loaded",
		zap.Int("records", len(records)),
		zap.Int("skipped", skipped),
	)

	if len(records) == 0 {
		if skipped > 0 {
			return nil, fmt.Errorf("dataset contains rows, but none passed validation")
		}
		return nil, fmt.Errorf("dataset contains no data rows")
	}

	return newDataset(records), nil
}

// parseRow validates one CSV row. The rules mirror the production importer:
// non-empty identity fields, hour in 0-23, finite delay and prediction
// error, and a parseable scheduled arrival timestamp.
func parseRow(row []string, colIndex map[string]int) (Record, bool) {
	field := func(name string) string {
		idx := colIndex[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	rec := Record{
		StopName:         field(colStopName),
		BusID:            field(colBusID),
		Route:            field(colRoute),
		ScheduledArrival: field(colScheduledArrival),
	}
	if rec.StopName == "" || rec.BusID == "" || rec.Route == "" || rec.ScheduledArrival == "" {
		return Record{}, false
	}

	hour, err := strconv.Atoi(field(colHour))
	if err != nil || hour < 0 || hour > 23 {
		return Record{}, false
	}
	rec.Hour = hour

	delay, err := strconv.ParseFloat(field(colDelayMinutes), 64)
	if err != nil || math.IsNaN(delay) || math.IsInf(delay, 0) {
		return Record{}, false
	}
	rec.DelayMinutes = delay

	predErr, err := strconv.ParseFloat(field(colPredictionError), 64)
	if err != nil || math.IsNaN(predErr) || math.IsInf(predErr, 0) {
		return Record{}, false
	}
	rec.PredictionError = predErr

	if len(rec.ScheduledArrival) < 16 {
		return Record{}, false
	}
	if _, err := time.Parse(arrivalLayout, rec.ScheduledArrival); err != nil {
		return Record{}, false
	}

	return rec, true
}

// newDataset builds the derived caches from a validated record set.
func newDataset(records []Record) *Dataset {
	stopSet := make(map[string]struct{})
	routeSet := make(map[string]struct{})
	for _, rec := range records {
		stopSet[rec.StopName] = struct{}{}
		routeSet[rec.Route] = struct{}{}
	}

	stopNames := make([]string, 0, len(stopSet))
	for name := range stopSet {
		stopNames = append(stopNames, name)
	}
	sort.Strings(stopNames)

	routes := make([]string, 0, len(routeSet))
	for route := range routeSet {
		routes = append(routes, route)
	}
	sort.Strings(routes)

	return &Dataset{
		records:   records,
		stopNames: stopNames,
		routes:    routes,
		curve:     fitDelayCurve(records),
	}
}

// Len returns the number of validated records in the dataset.
func (d *Dataset) Len() int {
	return len(d.records)
}

// SampleDataset returns a small built-in dataset covering a handful of
// routes and stops across the boroughs. Used when no CSV is supplied.
func SampleDataset() *Dataset {
	return newDataset([]Record{
		{StopName: "8 AV/W 86 ST", BusID: "MTA NYCT_5511", Route: "M86-SBS", Hour: 16, DelayMinutes: -0.07, ScheduledArrival: "2025-04-05 16:10:52", PredictionError: 7.72},
		{StopName: "8 AV/W 86 ST", BusID: "MTA NYCT_6144", Route: "M86-SBS", Hour: 15, DelayMinutes: 0.33, ScheduledArrival: "2025-04-05 15:56:52", PredictionError: 2.53},
		{StopName: "5 AV/9 ST", BusID: "MTA NYCT_4487", Route: "B63", Hour: 16, DelayMinutes: -0.75, ScheduledArrival: "2025-04-05 16:08:00", PredictionError: 0.27},
		{StopName: "BROADWAY/W 32 ST", BusID: "MTA NYCT_6022", Route: "M4", Hour: 16, DelayMinutes: 7.28, ScheduledArrival: "2025-04-05 16:15:00", PredictionError: 1.73},
		{StopName: "BROADWAY/W 32 ST", BusID: "MTA NYCT_5813", Route: "M34-SBS", Hour: 16, DelayMinutes: 5.70, ScheduledArrival: "2025-04-05 16:00:00", PredictionError: 1.45},
		{StopName: "QUEENS BLVD/71 AV", BusID: "MTA NYCT_7124", Route: "Q60", Hour: 16, DelayMinutes: 7.40, ScheduledArrival: "2025-04-05 16:30:00", PredictionError: 2.10},
		{StopName: "FLATBUSH AV/ATLANTIC AV", BusID: "MTA NYCT_3355", Route: "B38", Hour: 16, DelayMinutes: -3.42, ScheduledArrival: "2025-04-05 16:45:00", PredictionError: -0.62},
	})
}
