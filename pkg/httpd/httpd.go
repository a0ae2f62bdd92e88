// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package httpd binds the asset daemon's listening socket, announces it,
// and serves http on it.
package httpd

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/cactus/mlog"
	"golang.org/x/net/netutil"
)

const defaultReadTimeout = 30 * time.Second

// Server serves Handler on a TCP listener bound to Addr.
type Server struct {
	// Addr is the host:port to bind. An empty host binds all interfaces.
	Addr    string
	Handler http.Handler
	// MaxConns bounds the number of simultaneously accepted connections.
	// Zero means no bound.
	MaxConns int
	// ReadTimeout defaults to 30s when zero.
	ReadTimeout       time.Duration
	DisableKeepAlives bool
	// Stdout receives the startup line. Defaults to os.Stdout.
	Stdout io.Writer

	ln  net.Listener
	srv *http.Server
}

// Listen binds the listening socket and prints the single startup line.
// Nothing is printed if binding fails.
func (s *Server) Listen() error {
	if s.ln != nil {
		return errors.New("httpd: already listening")
	}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("could not bind %s: %w", s.Addr, err)
	}
	if s.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.MaxConns)
	}

	readTimeout := s.ReadTimeout
	if readTimeout == 0 {
		readTimeout = defaultReadTimeout
	}
	srv := &http.Server{
		Handler:     s.Handler,
		ReadTimeout: readTimeout,
	}
	srv.SetKeepAlivesEnabled(!s.DisableKeepAlives)

	s.ln = ln
	s.srv = srv

	if mlog.HasDebug() {
		mlog.Debugm("listener bound", mlog.Map{"addr": ln.Addr().String(), "max_conns": s.MaxConns})
	}

	out := s.Stdout
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "Serving assets at %s\n", s.URL())
	return nil
}

// Port returns the bound port, or 0 before Listen.
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	if addr, ok := s.ln.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// URL returns the local url the server is reachable at.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d/", s.Port())
}

// Serve accepts connections until the listener fails or Close is called,
// binding first if Listen has not been called. It always returns a non-nil
// error; http.ErrServerClosed after Close.
func (s *Server) Serve() error {
	if s.ln == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	return s.srv.Serve(s.ln)
}

// Close immediately closes the listener and any open connections.
func (s *Server) Close() error {
	if s.srv == nil {
		return nil
	}
	err := s.srv.Close()
	// Serve may not have taken ownership of the listener yet
	if lerr := s.ln.Close(); lerr != nil && !errors.Is(lerr, net.ErrClosed) && err == nil {
		err = lerr
	}
	return err
}
