package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nycbus/busboard/internal/busapi"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(NewServer(SampleDataset(), "127.0.0.1:0").Handler())
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestServerRoot(t *testing.T) {
	server := newTestServer(t)

	var body map[string]string
	if status := getJSON(t, server.URL+"/", &body); status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if body["message"] == "" {
		t.Error("root endpoint should return a message")
	}
}

func TestServerBusData(t *testing.T) {
	server := newTestServer(t)

	var body struct {
		Routes    []string  `json:"routes"`
		AvgDelays []float64 `json:"avg_delays"`
	}
	if status := getJSON(t, server.URL+"/api/bus-data", &body); status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if len(body.Routes) != len(body.AvgDelays) || len(body.Routes) == 0 {
		t.Errorf("routes = %v, avg_delays = %v", body.Routes, body.AvgDelays)
	}
}

func TestServerFindArrival(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"Valid: matching records", "route=M86-SBS&hour=16", http.StatusOK},
		{"Not found: no records at hour", "route=M86-SBS&hour=3", http.StatusNotFound},
		{"Invalid: missing route", "hour=16", http.StatusUnprocessableEntity},
		{"Invalid: missing hour", "route=M86-SBS", http.StatusUnprocessableEntity},
		{"Invalid: hour out of range", "route=M86-SBS&hour=99", http.StatusUnprocessableEntity},
		{"Invalid: hour not numeric", "route=M86-SBS&hour=noon", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := getJSON(t, server.URL+"/api/find-arrival?"+tt.query, nil)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
		})
	}
}

func TestServerNotFoundCarriesDetail(t *testing.T) {
	server := newTestServer(t)

	var body struct {
		Detail string `json:"detail"`
	}
	status := getJSON(t, server.URL+"/api/find-arrival?route=ZZ99&hour=12", &body)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d", status)
	}
	if body.Detail == "" {
		t.Error("404 body should carry a detail message")
	}
}

func TestServerStopSchedule(t *testing.T) {
	server := newTestServer(t)

	var body struct {
		StopName     string `json:"stop_name"`
		RoutesAtStop []struct {
			Route string `json:"route"`
		} `json:"routes_at_stop"`
	}
	status := getJSON(t, server.URL+"/api/stop-schedule?stop_name=8+AV%2FW+86+ST&hour=15&minute=30", &body)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body.StopName != "8 AV/W 86 ST" || len(body.RoutesAtStop) != 1 {
		t.Errorf("body = %+v", body)
	}
}

func TestServerRejectsNonGET(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/bus-data", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestServerCORSHeaders(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/bus-data")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS allow-origin header")
	}
}

// The mock server must be a drop-in backend for the API client.
func TestServerWorksWithClient(t *testing.T) {
	server := newTestServer(t)

	// Exercised indirectly through plain HTTP here; the busapi package has
	// its own client tests. This guards the unknown-path behavior.
	status := getJSON(t, server.URL+"/api/no-such-endpoint", nil)
	if status != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", status)
	}
}

func TestServerPredictDelay(t *testing.T) {
	server := newTestServer(t)

	var body busapi.DelayPrediction
	status := getJSON(t, server.URL+"/api/predict-delay?time_str=16:00:00", &body)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body.RequestedTime != "16:00:00" {
		t.Errorf("requested_time = %q", body.RequestedTime)
	}
	if body.PredictedDelayMinutes == nil {
		t.Errorf("predicted_delay_minutes = nil, message %q", body.Message)
	}
	if body.Message != "Prediction successful." {
		t.Errorf("message = %q", body.Message)
	}
}

func TestServerPredictDelayValidation(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name  string
		query string
	}{
		{"Missing time_str", ""},
		{"Not zero padded", "?time_str=8:30:00"},
		{"Hour out of range", "?time_str=24:00:00"},
		{"Not a time", "?time_str=noon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]string
			status := getJSON(t, server.URL+"/api/predict-delay"+tt.query, &body)
			if status != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", status)
			}
			if body["detail"] == "" {
				t.Error("error body should carry a detail message")
			}
		})
	}
}
