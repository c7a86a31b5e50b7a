// CLASSIFICATION: COMMUNITY
// Filename: handler.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"io"
	"net/http"

	"esmserve/internal/fsread"
	"esmserve/internal/resolve"
)

const (
	faviconTarget = "/favicon.ico"
	// FailureBody is the only body a client sees when a file cannot be read.
	FailureBody = "There was an error getting the requested file."
)

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request) {
	// Browsers probe for a favicon on every page; skip the filesystem.
	if requestTarget(r) == faviconTarget {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	module := resolve.IsModuleRequest(r.Header.Get("Referer"), s.paths.Marker)
	name := s.paths.Path(r.URL.EscapedPath(), module)
	contentType := resolve.ContentType(resolve.Extension(name))

	if err := s.paths.Contains(name); err != nil {
		s.errorLog.Printf("%s: %v", name, err)
		writeFailure(w)
		return
	}

	var res fsread.Result
	select {
	case res = <-s.reader.Read(r.Context(), name):
	case <-r.Context().Done():
		s.errorLog.Printf("%s: %v", name, r.Context().Err())
		return
	}
	if res.Err != nil {
		s.errorLog.Printf("read: %v", res.Err)
		writeFailure(w)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Data); err != nil {
		s.errorLog.Printf("write %s: %v", name, err)
	}
}

func writeFailure(w http.ResponseWriter) {
	w.WriteHeader(http.StatusInternalServerError)
	io.WriteString(w, FailureBody)
}
