// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package router provides the front http handler for the asset daemon.
package router

import (
	"net/http"
)

const (
	healthCheckPath = "/healthcheck"
	statsPath       = "/status"
	metricsPath     = "/metrics"
)

// DumbRouter is a basic, special purpose, http router
type DumbRouter struct {
	ServerName   string
	AddHeaders   map[string]string
	AssetHandler http.Handler
	// optional handlers. a nil handler leaves its path to AssetHandler.
	StatsHandler   http.Handler
	MetricsHandler http.Handler
	// answer /healthcheck instead of passing it to AssetHandler
	EnableHealthCheck bool
}

// SetHeaders sets the headers on the response
func (dr *DumbRouter) SetHeaders(w http.ResponseWriter) {
	h := w.Header()
	for k, v := range dr.AddHeaders {
		h.Set(k, v)
	}
	h.Set("Date", formattedDate.String())
	if dr.ServerName != "" {
		h.Set("Server", dr.ServerName)
	}
}

// HealthCheckHandler is HTTP handler for confirming the backend service
// is available from an external client, such as a load balancer.
func (dr *DumbRouter) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ServeHTTP fulfills the http server interface
func (dr *DumbRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// set some default headers
	dr.SetHeaders(w)

	if r.Method != http.MethodHead && r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Unsupported method", http.StatusNotImplemented)
		return
	}

	switch {
	case dr.EnableHealthCheck && r.URL.Path == healthCheckPath:
		dr.HealthCheckHandler(w, r)
	case dr.StatsHandler != nil && r.URL.Path == statsPath:
		dr.StatsHandler.ServeHTTP(w, r)
	case dr.MetricsHandler != nil && r.URL.Path == metricsPath:
		dr.MetricsHandler.ServeHTTP(w, r)
	case dr.AssetHandler != nil:
		dr.AssetHandler.ServeHTTP(w, r)
	default:
		http.Error(w, "404 Not Found", http.StatusNotFound)
	}
}
