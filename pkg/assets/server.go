// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package assets

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cactus/mlog"
)

// index documents tried, in order, when a directory is requested
var indexFiles = []string{"index.html", "index.htm"}

// A Server is an http.Handler that serves files out of a public directory.
type Server struct {
	config         *Config
	mapper         PathMapper
	metrics        MetricsCollector
	collectMetrics bool
}

// ServeHTTP translates the request path to a filesystem path, and serves
// the file, directory index, or directory listing found there.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if s.config.DisableKeepAlives {
		w.Header().Set("Connection", "close")
	}

	if mlog.HasDebug() {
		mlog.Debugm("client request", httpReqToMlogMap(req))
	}

	rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
	s.serve(rr, req)

	responsesTotal.WithLabelValues(strconv.Itoa(rr.status)).Inc()
	bytesServed.Add(float64(rr.written))
	if s.collectMetrics {
		s.metrics.AddServed()
		s.metrics.AddBytes(rr.written)
		if rr.status == http.StatusNotFound {
			s.metrics.AddNotFound()
		}
	}

	mlog.Infom("request", mlog.Map{
		"method":      req.Method,
		"path":        req.URL.Path,
		"status":      rr.status,
		"bytes":       rr.written,
		"remote_addr": req.RemoteAddr,
	})
}

func (s *Server) serve(w http.ResponseWriter, req *http.Request) {
	fpath, err := s.mapper(req.URL.Path)
	if err != nil {
		if errors.Is(err, ErrOutsidePublicDir) {
			pathRejected.Inc()
		}
		if mlog.HasDebug() {
			mlog.Debugm("path translation failed", mlog.Map{"path": req.URL.Path, "err": err})
		}
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	// #nosec G304 -- fpath is bounded by the mapper
	f, err := os.Open(fpath)
	if err != nil {
		if mlog.HasDebug() {
			mlog.Debugm("could not open file", mlog.Map{"file": fpath, "err": err})
		}
		msg, code := toHTTPError(err)
		http.Error(w, msg, code)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		msg, code := toHTTPError(err)
		http.Error(w, msg, code)
		return
	}

	switch mode := fi.Mode(); {
	case mode.IsDir():
		s.serveDir(w, req, fpath, f)
	case mode.IsRegular():
		// a file can not be addressed as a directory
		if strings.HasSuffix(req.URL.Path, "/") {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		http.ServeContent(w, req, fi.Name(), fi.ModTime(), f)
	default:
		http.Error(w, "File not found", http.StatusNotFound)
	}
}

func (s *Server) serveDir(w http.ResponseWriter, req *http.Request, dir string, f *os.File) {
	if !strings.HasSuffix(req.URL.Path, "/") {
		// collapse leading slashes, so the Location can never be read as
		// a scheme relative url pointing at another host
		u := url.URL{
			Path:     "/" + strings.TrimLeft(req.URL.Path, "/") + "/",
			RawQuery: req.URL.RawQuery,
		}
		http.Redirect(w, req, u.String(), http.StatusMovedPermanently)
		return
	}

	for _, index := range indexFiles {
		if s.serveIndex(w, req, filepath.Join(dir, index)) {
			return
		}
	}

	entries, err := f.ReadDir(-1)
	if err != nil {
		if mlog.HasDebug() {
			mlog.Debugm("could not list directory", mlog.Map{"dir": dir, "err": err})
		}
		http.Error(w, "No permission to list directory", http.StatusNotFound)
		return
	}

	body, err := newListing(req.URL.Path, entries).render()
	if err != nil {
		mlog.Printm("could not render listing", mlog.Map{"dir": dir, "err": err})
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if req.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(body); err != nil {
		responseFailed.Inc()
		if isBrokenPipe(err) {
			if mlog.HasDebug() {
				mlog.Debugm("error writing response", mlog.Map{"err": err, "req": req.URL.Path})
			}
			return
		}
		mlog.Printm("error writing response", mlog.Map{"err": err, "req": req.URL.Path})
	}
}

// serveIndex serves the index file at fpath, if it is a readable regular
// file. It reports whether a response was written.
func (s *Server) serveIndex(w http.ResponseWriter, req *http.Request, fpath string) bool {
	// #nosec G304 -- fpath is a fixed name under a mapped directory
	f, err := os.Open(fpath)
	if err != nil {
		return false
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil || !fi.Mode().IsRegular() {
		return false
	}
	http.ServeContent(w, req, fi.Name(), fi.ModTime(), f)
	return true
}

// SetMetricsCollector sets a MetricsCollector for the server.
func (s *Server) SetMetricsCollector(mc MetricsCollector) {
	if mc != nil {
		s.collectMetrics = true
		s.metrics = mc
	}
}

// NewWithMapper returns a new Server that translates request paths with
// mapper instead of the default PublicDirMapper.
func NewWithMapper(config Config, mapper PathMapper) (*Server, error) {
	if mapper == nil {
		return nil, errors.New("a path mapper is required")
	}
	return &Server{config: &config, mapper: mapper}, nil
}

// New returns a new Server serving files from config.PublicDir.
// Returns an error if Server could not be constructed.
func New(config Config) (*Server, error) {
	if config.PublicDir == "" {
		return nil, errors.New("a public directory is required")
	}
	dir, err := filepath.Abs(config.PublicDir)
	if err != nil {
		return nil, err
	}
	config.PublicDir = dir
	return NewWithMapper(config, PublicDirMapper(dir))
}
