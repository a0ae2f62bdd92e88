// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func pathEcho(w http.ResponseWriter, r *http.Request) {
	_, _ = io.WriteString(w, "asset:"+r.URL.Path)
}

func routeReq(dr *DumbRouter, method, target string) (*http.Response, string) {
	record := httptest.NewRecorder()
	dr.ServeHTTP(record, httptest.NewRequest(method, target, nil))
	resp := record.Result()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestDefaultHeaders(t *testing.T) {
	t.Parallel()
	dr := &DumbRouter{
		ServerName:   "go-assetd",
		AddHeaders:   map[string]string{"X-Content-Type-Options": "nosniff"},
		AssetHandler: http.HandlerFunc(pathEcho),
	}

	resp, body := routeReq(dr, "GET", "/index.html")
	assert.Check(t, is.Equal(200, resp.StatusCode))
	assert.Check(t, is.Equal("asset:/index.html", body))
	assert.Check(t, is.Equal("go-assetd", resp.Header.Get("Server")))
	assert.Check(t, is.Equal("nosniff", resp.Header.Get("X-Content-Type-Options")))
	assert.Check(t, resp.Header.Get("Date") != "")
}

func TestUnsupportedMethod(t *testing.T) {
	t.Parallel()
	dr := &DumbRouter{AssetHandler: http.HandlerFunc(pathEcho)}

	for _, method := range []string{"POST", "PUT", "DELETE", "PATCH", "OPTIONS"} {
		resp, body := routeReq(dr, method, "/index.html")
		assert.Check(t, is.Equal(501, resp.StatusCode), method)
		assert.Check(t, is.Equal("Unsupported method\n", body), method)
		assert.Check(t, is.Equal("GET, HEAD", resp.Header.Get("Allow")), method)
	}

	resp, _ := routeReq(dr, "HEAD", "/index.html")
	assert.Check(t, is.Equal(200, resp.StatusCode))
}

func TestOptionalEndpoints(t *testing.T) {
	t.Parallel()
	dr := &DumbRouter{AssetHandler: http.HandlerFunc(pathEcho)}

	// disabled endpoints fall through to the asset handler
	for _, p := range []string{"/healthcheck", "/status", "/metrics"} {
		_, body := routeReq(dr, "GET", p)
		assert.Check(t, is.Equal("asset:"+p, body))
	}

	dr.EnableHealthCheck = true
	dr.StatsHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "stats")
	})
	dr.MetricsHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "metrics")
	})

	resp, body := routeReq(dr, "GET", "/healthcheck")
	assert.Check(t, is.Equal(200, resp.StatusCode))
	assert.Check(t, is.Equal("", body))

	_, body = routeReq(dr, "GET", "/status")
	assert.Check(t, is.Equal("stats", body))

	_, body = routeReq(dr, "GET", "/metrics")
	assert.Check(t, is.Equal("metrics", body))
}

func TestNoAssetHandler(t *testing.T) {
	t.Parallel()
	dr := &DumbRouter{}

	resp, body := routeReq(dr, "GET", "/index.html")
	assert.Check(t, is.Equal(404, resp.StatusCode))
	assert.Check(t, is.Equal("404 Not Found\n", body))
}
