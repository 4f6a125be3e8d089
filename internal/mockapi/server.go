package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/nycbus/busboard/internal/busapi"
	"github.com/nycbus/busboard/internal/logging"
	"go.uber.org/zap"
)

// Server serves the mock backend endpoints over HTTP.
type Server struct {
	dataset    *Dataset
	httpServer *http.Server
}

// NewServer creates a mock backend bound to addr (e.g. "127.0.0.1:8000").
func NewServer(dataset *Dataset, addr string) *Server {
	s := &Server{dataset: dataset}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the route table, also usable directly with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/api/bus-data", s.handleBusData)
	mux.HandleFunc("/api/filter-options", s.handleFilterOptions)
	mux.HandleFunc("/api/stop-names", s.handleStopNames)
	mux.HandleFunc("/api/find-arrival", s.handleFindArrival)
	mux.HandleFunc("/api/stop-schedule", s.handleStopSchedule)
	mux.HandleFunc("/api/predict-delay", s.handlePredictDelay)
	return s.withMiddleware(mux)
}

// ListenAndServe blocks serving requests until Shutdown is called.
func (s *Server) ListenAndServe() error {
	logging.Info("mock backend listening", zap.String("addr", s.httpServer.Addr))
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("mock backend shutting down")
	return s.httpServer.Shutdown(ctx)
}

// withMiddleware adds request logging, CORS headers for browser clients,
// and restricts the API to GET.
func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, r.URL.RawQuery)

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logging.LogHTTPResponse(r.RemoteAddr, r.URL.Path, rec.status, time.Since(start))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error("failed to encode response", zap.Error(err))
	}
}

// writeError mirrors the backend's error body shape: {"detail": "..."}.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Bus delay statistics mock API"})
}

func (s *Server) handleBusData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dataset.ChartData())
}

func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dataset.FilterOptions())
}

func (s *Server) handleStopNames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dataset.StopNames())
}

func (s *Server) handleFindArrival(w http.ResponseWriter, r *http.Request) {
	route := r.URL.Query().Get("route")
	if route == "" {
		writeError(w, http.StatusUnprocessableEntity, "query parameter 'route' is required")
		return
	}
	hour, ok := queryInt(w, r, "hour", 0, 23)
	if !ok {
		return
	}

	arrival, err := s.dataset.FindArrival(route, hour)
	if err != nil {
		var noData *NoDataError
		if errors.As(err, &noData) {
			writeError(w, http.StatusNotFound, noData.Detail)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, arrival)
}

func (s *Server) handleStopSchedule(w http.ResponseWriter, r *http.Request) {
	stopName := r.URL.Query().Get("stop_name")
	if stopName == "" {
		writeError(w, http.StatusUnprocessableEntity, "query parameter 'stop_name' is required")
		return
	}
	hour, ok := queryInt(w, r, "hour", 0, 23)
	if !ok {
		return
	}
	minute, ok := queryInt(w, r, "minute", 0, 59)
	if !ok {
		return
	}

	schedule, err := s.dataset.StopSchedule(stopName, hour, minute)
	if err != nil {
		var noData *NoDataError
		if errors.As(err, &noData) {
			writeError(w, http.StatusNotFound, noData.Detail)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

func (s *Server) handlePredictDelay(w http.ResponseWriter, r *http.Request) {
	timeStr := r.URL.Query().Get("time_str")
	if timeStr == "" {
		writeError(w, http.StatusUnprocessableEntity, "query parameter 'time_str' is required")
		return
	}
	if err := busapi.ValidateTimeOfDay(timeStr); err != nil {
		writeError(w, http.StatusUnprocessableEntity,
			"query parameter 'time_str' must match HH:MM:SS")
		return
	}
	writeJSON(w, http.StatusOK, s.dataset.PredictDelay(timeStr))
}

// queryInt parses a required integer query parameter and enforces its range.
// Writes a 422 response and returns false on failure.
func queryInt(w http.ResponseWriter, r *http.Request, name string, min, max int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("query parameter '%s' is required", name))
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("query parameter '%s' must be an integer between %d and %d", name, min, max))
		return 0, false
	}
	return v, true
}
