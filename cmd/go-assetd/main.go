// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// go-assetd daemon
package main

import (
	"fmt"
	"os"

	"github.com/cactus/go-assetd/pkg/assets"
	"github.com/cactus/go-assetd/pkg/httpd"
	"github.com/cactus/go-assetd/pkg/router"
	"github.com/cactus/go-assetd/pkg/stats"

	"github.com/alecthomas/kong"
	"github.com/cactus/mlog"
	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/version"
	"go.uber.org/automaxprocs/maxprocs"
)

// ServerName holds the server name string
const ServerName = "go-assetd"

// CLI holds ambient switches. The port and public directory are fixed.
type CLI struct {
	Version     kong.VersionFlag `name:"version" short:"V" help:"Print version information and quit"`
	Verbose     bool             `name:"verbose" short:"v" help:"Show verbose (debug) log level output"`
	NoLogTS     bool             `name:"no-log-ts" help:"Do not add a timestamp to logging"`
	LogJSON     bool             `name:"log-json" help:"Log in JSON format"`
	Stats       bool             `name:"stats" help:"Enable stats at /status"`
	Metrics     bool             `name:"metrics" help:"Enable Prometheus compatible metrics at /metrics"`
	HealthCheck bool             `name:"healthcheck" help:"Answer /healthcheck instead of serving it from the public directory"`
	MaxConns    int              `name:"max-conns" default:"0" help:"Maximum simultaneous client connections. 0 is unbounded, 1 handles one connection at a time"`
	NoKeepAlive bool             `name:"no-fk" help:"Disable frontend http keep-alive support"`
}

func main() {
	cli := CLI{}
	_ = kong.Parse(&cli,
		kong.Name(ServerName),
		kong.Description("Serve the public asset directory over http on port "+fmt.Sprint(assets.DefaultPort)),
		kong.UsageOnError(),
		kong.Vars{"version": version.Print(ServerName)},
	)

	// start out with a very bare logger that only prints
	// the message (no special format or log elements)
	mlog.SetFlags(0)

	if cli.LogJSON {
		mlog.SetEmitter(&mlog.FormatWriterJSON{})
	}

	// now configure a standard logger
	mlog.SetFlags(mlog.Lstd)
	if cli.NoLogTS {
		mlog.SetFlags(mlog.Flags() ^ mlog.Ltimestamp)
	}

	if cli.Verbose {
		mlog.SetFlags(mlog.Flags() | mlog.Ldebug)
		mlog.Debug("debug logging enabled")
	}

	if _, err := maxprocs.Set(maxprocs.Logger(mlog.Debugf)); err != nil {
		mlog.Printf("could not set GOMAXPROCS: %s", err)
	}

	publicDir, err := assets.DefaultPublicDir()
	if err != nil {
		mlog.Fatal("Could not resolve public dir: ", err)
	}

	if err := os.Chdir(publicDir); err != nil {
		mlog.Fatal("Could not enter public dir: ", err)
	}

	config := assets.Config{
		PublicDir:         publicDir,
		DisableKeepAlives: cli.NoKeepAlive,
	}

	server, err := assets.New(config)
	if err != nil {
		mlog.Fatal("Error creating asset server: ", err)
	}

	dumbrouter := &router.DumbRouter{
		ServerName:        ServerName,
		AssetHandler:      server,
		EnableHealthCheck: cli.HealthCheck,
	}

	if cli.Stats {
		ss := &stats.ServeStats{}
		server.SetMetricsCollector(ss)
		mlog.Printf("Enabling stats at /status")
		dumbrouter.StatsHandler = stats.Handler(ss)
	}

	if cli.Metrics {
		prometheus.MustRegister(versioncollector.NewCollector(assets.MetricNamespace))
		mlog.Printf("Enabling metrics at /metrics")
		dumbrouter.MetricsHandler = promhttp.Handler()
	}

	if mlog.HasDebug() {
		mlog.Debugm("serving", mlog.Map{"public_dir": publicDir, "port": assets.DefaultPort})
	}

	srv := &httpd.Server{
		Addr:              fmt.Sprintf(":%d", assets.DefaultPort),
		Handler:           dumbrouter,
		MaxConns:          cli.MaxConns,
		DisableKeepAlives: cli.NoKeepAlive,
	}
	if err := srv.Listen(); err != nil {
		mlog.Fatal(err)
	}

	// no shutdown handling; Serve only returns if the listener fails
	mlog.Fatal(srv.Serve())
}
