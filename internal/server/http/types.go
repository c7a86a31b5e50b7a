// CLASSIFICATION: COMMUNITY
// Filename: types.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"log"
	"os"
)

// Logger abstracts logging for the server.
type Logger interface {
	Printf(format string, v ...any)
}

// Request lines carry no prefix so stdout reads "<method> <target>".
func stdoutLogger() Logger { return log.New(os.Stdout, "", 0) }

func stderrLogger() Logger { return log.New(os.Stderr, "", log.LstdFlags) }
