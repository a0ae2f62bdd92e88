// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package assets provides an HTTP handler that serves static files out of
// a single public directory, with explicit url path to filesystem path
// translation.
package assets

// DefaultPort is the port the asset daemon listens on.
const DefaultPort = 8090

// PublicDirName is the name of the published assets directory, located as
// a sibling of the directory holding the executable.
const PublicDirName = "public"

// Config holds configuration data used when creating a Server with New.
type Config struct {
	// PublicDir is the root directory all served files are resolved under.
	PublicDir string
	// Keepalive enable/disable
	DisableKeepAlives bool
}

// MetricsCollector is the interface used to record served responses.
type MetricsCollector interface {
	AddServed()
	AddBytes(bc int64)
	AddNotFound()
}
