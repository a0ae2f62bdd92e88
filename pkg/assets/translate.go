// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrOutsidePublicDir is returned by a PathMapper when the request path
	// would resolve to a location outside the public directory.
	ErrOutsidePublicDir = errors.New("path escapes public directory")
	// ErrInvalidPath is returned by a PathMapper for paths that can never
	// name a file (eg. embedded NUL bytes).
	ErrInvalidPath = errors.New("invalid request path")
)

// The PathMapper type is a function that translates a request url path
// into the filesystem path that should be served for it.
type PathMapper func(urlPath string) (string, error)

// PublicDirMapper returns a PathMapper that joins request paths onto root.
//
// All leading slashes are stripped from the url path before joining, and
// the cleaned remainder must stay inside root. An empty remainder maps to
// root itself.
func PublicDirMapper(root string) PathMapper {
	root = filepath.Clean(root)
	return func(urlPath string) (string, error) {
		if strings.IndexByte(urlPath, 0) >= 0 {
			return "", ErrInvalidPath
		}

		rel := strings.TrimLeft(urlPath, "/")
		if rel == "" {
			return root, nil
		}

		rel = filepath.Clean(filepath.FromSlash(rel))
		if rel == "." {
			return root, nil
		}
		if !filepath.IsLocal(rel) {
			return "", ErrOutsidePublicDir
		}
		return filepath.Join(root, rel), nil
	}
}

// ResolvePublicDir returns the absolute public directory for an executable
// located at exe: the PublicDirName directory one level above the one
// holding exe.
func ResolvePublicDir(exe string) (string, error) {
	exe, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("could not resolve executable path: %w", err)
	}
	dir, err := filepath.Abs(filepath.Join(filepath.Dir(exe), "..", PublicDirName))
	if err != nil {
		return "", fmt.Errorf("could not resolve public dir: %w", err)
	}
	return dir, nil
}

// DefaultPublicDir resolves the public directory relative to the running
// executable.
func DefaultPublicDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("could not locate executable: %w", err)
	}
	return ResolvePublicDir(exe)
}
