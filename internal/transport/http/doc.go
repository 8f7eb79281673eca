// Package http exposes the report workflow over a chi-routed JSON API.
//
// Routes:
//
//	GET  /health               liveness probe
//	GET  /metrics              Prometheus metrics
//	POST /api/reports          build and persist a summary report
//	GET  /api/reports          list recent report runs
//	GET  /api/reports/{id}     fetch one report run
//	GET  /api/summary          ad-hoc aggregation without persistence
package http
