// CLASSIFICATION: COMMUNITY
// Filename: reader.go v0.2
// Date Modified: 2026-10-18
// Author: Lukas Bower

// Package fsread performs whole-file reads on behalf of request handlers.
// Each read runs in its own goroutine and delivers exactly one Result on
// the returned channel, so a handler can wait on it alongside its request
// context.
package fsread

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/time/rate"
)

// Result carries the outcome of a single read.
type Result struct {
	Data []byte
	Err  error
}

// Options bounds how reads are issued. The zero value reads without limits.
type Options struct {
	// MaxConcurrent caps in-flight reads. Zero means unbounded.
	MaxConcurrent int
	// Rate throttles reads per second. Zero means unlimited.
	Rate  rate.Limit
	Burst int
	// ReadFile defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

// Reader issues file reads. It is safe for concurrent use.
type Reader struct {
	sem      chan struct{}
	limiter  *rate.Limiter
	readFile func(string) ([]byte, error)
}

// New returns a ready-to-use reader.
func New(opts Options) *Reader {
	r := &Reader{readFile: opts.ReadFile}
	if r.readFile == nil {
		r.readFile = os.ReadFile
	}
	if opts.MaxConcurrent > 0 {
		r.sem = make(chan struct{}, opts.MaxConcurrent)
	}
	if opts.Rate > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(opts.Rate, burst)
	}
	return r
}

// Read reads name in a goroutine and returns a channel with the result.
// The file is read at most once. If ctx ends while the read is still
// waiting for a slot or a token, the result carries ctx.Err().
func (r *Reader) Read(ctx context.Context, name string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		ch <- r.read(ctx, name)
	}()
	return ch
}

func (r *Reader) read(ctx context.Context, name string) Result {
	if r.sem != nil {
		select {
		case r.sem <- struct{}{}:
			defer func() { <-r.sem }()
		case <-ctx.Done():
			return Result{Err: ctx.Err()}
		}
	}
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return Result{Err: fmt.Errorf("read throttle: %w", err)}
		}
	}
	data, err := r.readFile(name)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Data: data}
}
