// CLASSIFICATION: COMMUNITY
// Filename: routes.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"io"
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(recoverMiddleware(s.errorLog))
	r.Use(requestLogger(s.accessLog))
	if s.logFile != nil {
		r.Use(accessLogger(s.logFile, s.errorLog))
	}

	// Every target is a file lookup, whatever the method.
	r.Handle("/*", stdhttp.HandlerFunc(s.serveFile))
	r.NotFound(s.serveFile)
	r.MethodNotAllowed(s.serveFile)
	return r
}

func recoverMiddleware(log Logger) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == stdhttp.ErrAbortHandler {
						panic(rec)
					}
					log.Printf("panic serving %s: %v", r.URL.Path, rec)
					writeFailure(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger writes "<method> <target>" before the request is handled.
func requestLogger(log Logger) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			log.Printf("%s %s", r.Method, requestTarget(r))
			next.ServeHTTP(w, r)
		})
	}
}

func accessLogger(out io.Writer, log Logger) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			next.ServeHTTP(w, r)
			rec := r.RemoteAddr + " " + r.Method + " " + r.URL.Path + "\n"
			if _, err := io.WriteString(out, rec); err != nil {
				log.Printf("access log: %v", err)
			}
		})
	}
}

// requestTarget returns the target as sent on the request line, path and
// query included.
func requestTarget(r *stdhttp.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}
	return r.URL.RequestURI()
}
