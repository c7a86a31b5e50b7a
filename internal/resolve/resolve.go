// CLASSIFICATION: COMMUNITY
// Filename: resolve.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package resolve maps request metadata onto files beneath a root folder.
// Everything here is a pure function of the request and Config.
package resolve

import (
	"errors"
	"path"
	"path/filepath"
	"strings"
)

const (
	// DefaultRoot is the folder served when none is configured.
	DefaultRoot = "./public"
	// DefaultMarker identifies the build-output folder in a module referer.
	DefaultMarker = "/src/"

	moduleExt    = ".js"
	indexDoc     = "index.html"
	plainType    = "text/plain"
	rootTarget   = "/"
	extSeparator = "."
)

// ErrOutsideRoot reports a resolved path that escapes the root folder.
var ErrOutsideRoot = errors.New("path outside root folder")

var contentTypes = map[string]string{
	"css":  "text/css",
	"js":   "text/javascript",
	"html": "text/html",
}

// Config holds the two values path resolution depends on.
type Config struct {
	Root   string
	Marker string
}

// WithDefaults fills empty fields with DefaultRoot and DefaultMarker.
func (c Config) WithDefaults() Config {
	if c.Root == "" {
		c.Root = DefaultRoot
	}
	if c.Marker == "" {
		c.Marker = DefaultMarker
	}
	return c
}

// IsModuleRequest reports whether referer names a script inside the
// build-output folder, i.e. the request is an ES module import.
func IsModuleRequest(referer, marker string) bool {
	if referer == "" {
		return false
	}
	return strings.Contains(referer, marker)
}

// Path returns the file a request path maps to. Module imports omit their
// extension, so ".js" is appended for them. No cleaning is done here; see
// Contains.
func (c Config) Path(urlPath string, module bool) string {
	switch {
	case module:
		return c.Root + urlPath + moduleExt
	case urlPath == rootTarget:
		return c.Root + urlPath + indexDoc
	default:
		return c.Root + urlPath
	}
}

// Contains returns ErrOutsideRoot when p, once cleaned, is not the root
// folder or a descendant of it.
func (c Config) Contains(p string) error {
	root := filepath.Clean(filepath.FromSlash(c.Root))
	rel, err := filepath.Rel(root, filepath.Clean(filepath.FromSlash(p)))
	if err != nil {
		return errors.Join(ErrOutsideRoot, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ErrOutsideRoot
	}
	return nil
}

// Extension returns the extension of the last element of p without its
// leading dot. Dot-files such as ".env" have no extension.
func Extension(p string) string {
	base := path.Base(filepath.ToSlash(p))
	i := strings.LastIndex(base, extSeparator)
	if i <= 0 {
		return ""
	}
	return base[i+1:]
}

// ContentType maps an extension onto a MIME type, falling back to
// text/plain.
func ContentType(ext string) string {
	if t, ok := contentTypes[ext]; ok {
		return t
	}
	return plainType
}
