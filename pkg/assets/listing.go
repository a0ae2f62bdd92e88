// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package assets

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/url"
	"slices"
	"strings"
)

var listingTemplate = template.Must(template.New("listing").Parse(`<!DOCTYPE HTML>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Directory listing for {{.Path}}</title>
</head>
<body>
<h1>Directory listing for {{.Path}}</h1>
<hr>
<ul>
{{- range .Entries}}
<li><a href="{{.Href}}">{{.Name}}</a></li>
{{- end}}
</ul>
<hr>
</body>
</html>
`))

type listingEntry struct {
	Name string
	Href string
}

type listing struct {
	Path    string
	Entries []listingEntry
}

func newListing(urlPath string, entries []fs.DirEntry) *listing {
	// sort case insensitive, falling back to byte order for stability
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		if c := strings.Compare(strings.ToLower(a.Name()), strings.ToLower(b.Name())); c != 0 {
			return c
		}
		return strings.Compare(a.Name(), b.Name())
	})

	l := &listing{
		Path:    urlPath,
		Entries: make([]listingEntry, 0, len(entries)),
	}
	for _, e := range entries {
		name := e.Name()
		display := name
		// relative with a ./ prefix, so names containing a colon are never
		// read as a url scheme
		href := "./" + url.PathEscape(name)
		switch {
		case e.Type()&fs.ModeSymlink != 0:
			display += "@"
		case e.IsDir():
			display += "/"
			href += "/"
		}
		l.Entries = append(l.Entries, listingEntry{Name: display, Href: href})
	}
	return l
}

func (l *listing) render() ([]byte, error) {
	var buf bytes.Buffer
	if err := listingTemplate.Execute(&buf, l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
