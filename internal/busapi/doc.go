// Package busapi is the HTTP client for the NYC bus delay statistics API.
//
// The backend aggregates recorded MTA arrivals into per-route delay
// statistics and exposes them as a small JSON API. This package wraps the
// six endpoints the UI consumes:
//
//   - GET /api/bus-data        average scheduled delay per route (chart data)
//   - GET /api/filter-options  unique route names
//   - GET /api/stop-names      unique stop names
//   - GET /api/find-arrival    average delay for a route at an hour
//   - GET /api/stop-schedule   next scheduled bus per route at a stop/time
//   - GET /api/predict-delay   modeled delay for an exact time of day
//
// # Reliability
//
// Requests are retried with exponential backoff when the failure is
// transient (timeouts, connection refused, 5xx). Chart and option data
// changes rarely, so GET responses for the list endpoints are cached for a
// short TTL to keep TUI screen switches snappy.
//
// # Errors
//
// All failures are returned as *APIError with a classified Type, which the
// UI layers use to pick short messages and troubleshooting hints. A 404 from
// find-arrival is classified ErrTypeNotFound: it means "no records for that
// route and hour", which is an answer, not an outage.
package busapi
