// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package assets

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"
)

const (
	indexBody  = "<html><body><h1>hello</h1></body></html>\n"
	styleBody  = "body { margin: 0; }\n"
	secretBody = "top secret, not published\n"
	blogBody   = "<p>blog index</p>\n"
)

var binaryBody = string([]byte{0x00, 0x01, 0x02, 0xfe, 0xff, 0x7f, 0x80, 0x0a})

// newFixture builds:
//
//	<root>/secret.txt
//	<root>/public/{index.html,style.css,data.bin}
//	<root>/public/docs/{readme.txt,alpha.txt,a b.txt,Zeta/}
//	<root>/public/blog/index.htm
//	<root>/public/empty/
func newFixture(t *testing.T) *fs.Dir {
	t.Helper()
	return fs.NewDir(t, "assetd",
		fs.WithFile("secret.txt", secretBody),
		fs.WithDir("public",
			fs.WithFile("index.html", indexBody),
			fs.WithFile("style.css", styleBody),
			fs.WithFile("data.bin", binaryBody),
			fs.WithDir("docs",
				fs.WithFile("readme.txt", "read me\n"),
				fs.WithFile("alpha.txt", "alpha\n"),
				fs.WithFile("a b.txt", "spaced\n"),
				fs.WithDir("Zeta"),
			),
			fs.WithDir("blog",
				fs.WithFile("index.htm", blogBody),
			),
			fs.WithDir("empty"),
		),
	)
}

func newFixtureServer(t *testing.T, dir *fs.Dir) *Server {
	t.Helper()
	s, err := New(Config{PublicDir: filepath.Join(dir.Path(), "public")})
	assert.NilError(t, err)
	return s
}

func doRequest(h http.Handler, method, target string, headers map[string]string) *http.Response {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	record := httptest.NewRecorder()
	h.ServeHTTP(record, req)
	return record.Result()
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	assert.NilError(t, err)
	return string(body)
}

func statusCodeAssert(t *testing.T, expected int, resp *http.Response) {
	t.Helper()
	assert.Check(t,
		is.Equal(expected, resp.StatusCode),
		"Expected %d but got '%d' instead",
		expected, resp.StatusCode,
	)
}

func headerAssert(t *testing.T, expected, name string, resp *http.Response) {
	t.Helper()
	assert.Check(t,
		is.Equal(expected, resp.Header.Get(name)),
		"Expected response header mismatch",
	)
}

type countingCollector struct {
	served   atomic.Uint64
	bytes    atomic.Int64
	notFound atomic.Uint64
}

func (c *countingCollector) AddServed()        { c.served.Add(1) }
func (c *countingCollector) AddBytes(bc int64) { c.bytes.Add(bc) }
func (c *countingCollector) AddNotFound()      { c.notFound.Add(1) }
