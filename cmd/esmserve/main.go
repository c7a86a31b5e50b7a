// CLASSIFICATION: COMMUNITY
// Filename: main.go v0.6
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"esmserve/internal/tooling"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := tooling.Execute(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
