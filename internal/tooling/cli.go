// CLASSIFICATION: COMMUNITY
// Filename: cli.go v0.3
// Date Modified: 2026-10-18
// Author: Lukas Bower
//
// ─────────────────────────────────────────────────────────────
// esmserve · Cobra CLI
//
// `esmserve` (or `esmserve serve`) serves the root folder; `esmserve
// version` prints the build version. The three core inputs (port,
// root folder, module marker) may also come from ESMSERVE_* variables,
// optionally loaded from a .env file. Flags given on the command line
// always win.
//
// Example:
//
//	esmserve --port 8080 --root ./dist --marker /build/
//
// ─────────────────────────────────────────────────────────────
package tooling

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	server "esmserve/internal/server/http"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/time/rate"
)

// Version is overridden at link time.
var Version = "v0.1.0"

const (
	envPort   = "ESMSERVE_PORT"
	envRoot   = "ESMSERVE_ROOT"
	envMarker = "ESMSERVE_MARKER"
)

type options struct {
	envFile   string
	bind      string
	port      int
	root      string
	marker    string
	logFile   string
	watch     bool
	maxReads  int
	readRate  float64
	readBurst int
}

// Runner starts a configured server. Tests replace it to inspect the
// resulting Config without binding a port.
type Runner func(ctx context.Context, cfg server.Config) error

// RunServer builds a server from cfg and serves until ctx is done.
func RunServer(ctx context.Context, cfg server.Config) error {
	srv, err := server.New(cfg)
	if err != nil {
		return err
	}
	if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// NewRootCommand returns the esmserve command tree.
func NewRootCommand(run Runner) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "esmserve",
		Short:         "Serve a folder of ES modules over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, opts, run)
		},
	}
	bindFlags(root.Flags(), opts)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the root folder (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, opts, run)
		},
	}
	bindFlags(serveCmd.Flags(), opts)
	root.AddCommand(serveCmd)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print esmserve version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "esmserve %s\n", Version)
		},
	})
	return root
}

func bindFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVar(&opts.envFile, "env-file", ".env", "optional file of ESMSERVE_* variables")
	fs.StringVar(&opts.bind, "bind", "", "bind address (empty for all interfaces)")
	fs.IntVarP(&opts.port, "port", "p", server.DefaultPort, "listen port")
	fs.StringVarP(&opts.root, "root", "r", "./public", "folder served to clients")
	fs.StringVar(&opts.marker, "marker", "/src/", "referer substring that marks module imports")
	fs.StringVar(&opts.logFile, "log-file", "", "append an access log to this file")
	fs.BoolVar(&opts.watch, "watch", false, "log changes under the root folder")
	fs.IntVar(&opts.maxReads, "max-reads", 0, "maximum concurrent file reads (0 for no limit)")
	fs.Float64Var(&opts.readRate, "read-rate", 0, "file reads per second (0 for no limit)")
	fs.IntVar(&opts.readBurst, "read-burst", 1, "burst allowed above --read-rate")
}

func serve(cmd *cobra.Command, opts *options, run Runner) error {
	if err := loadEnvFile(opts.envFile); err != nil {
		return err
	}
	if err := applyEnv(cmd.Flags(), opts); err != nil {
		return err
	}
	cfg := server.Config{
		Bind:               opts.bind,
		Port:               opts.port,
		Root:               opts.root,
		Marker:             opts.marker,
		LogFile:            opts.logFile,
		Watch:              opts.watch,
		MaxConcurrentReads: opts.maxReads,
		ReadRate:           rate.Limit(opts.readRate),
		ReadBurst:          opts.readBurst,
	}
	return run(cmd.Context(), cfg)
}

// loadEnvFile loads path into the environment. A missing default file is
// not an error. Variables already set are left untouched.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// applyEnv fills options whose flags were not given explicitly.
func applyEnv(fs *pflag.FlagSet, opts *options) error {
	if v, ok := os.LookupEnv(envPort); ok && !fs.Changed("port") {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", envPort, v)
		}
		opts.port = port
	}
	if v, ok := os.LookupEnv(envRoot); ok && !fs.Changed("root") {
		opts.root = v
	}
	if v, ok := os.LookupEnv(envMarker); ok && !fs.Changed("marker") {
		opts.marker = v
	}
	return nil
}

// Execute runs the CLI. Typically called from main().
func Execute(ctx context.Context, args []string, stderr io.Writer) int {
	cmd := NewRootCommand(RunServer)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
