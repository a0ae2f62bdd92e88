// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package assets

import (
	"errors"
	"io/fs"
	"net/http"
	"syscall"

	"github.com/cactus/mlog"
)

// responseRecorder tracks the status and body size of a response, for
// access logging and metrics.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	written     int64
	wroteHeader bool
}

func (rr *responseRecorder) WriteHeader(code int) {
	if !rr.wroteHeader {
		rr.status = code
		rr.wroteHeader = true
	}
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(p []byte) (int, error) {
	if !rr.wroteHeader {
		rr.WriteHeader(http.StatusOK)
	}
	n, err := rr.ResponseWriter.Write(p)
	rr.written += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rr *responseRecorder) Unwrap() http.ResponseWriter {
	return rr.ResponseWriter
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET)
}

// toHTTPError maps a filesystem open/stat error onto a response, the same
// way net/http's file server does.
func toHTTPError(err error) (string, int) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "File not found", http.StatusNotFound
	case errors.Is(err, fs.ErrPermission):
		return "Forbidden", http.StatusForbidden
	default:
		return "Internal Server Error", http.StatusInternalServerError
	}
}

func httpReqToMlogMap(req *http.Request) mlog.Map {
	return mlog.Map{
		"method":      req.Method,
		"path":        req.RequestURI,
		"proto":       req.Proto,
		"header":      req.Header,
		"host":        req.Host,
		"remote_addr": req.RemoteAddr,
	}
}
