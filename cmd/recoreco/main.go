// Command recoreco computes item-to-item recommendation indicators from a
// TSV interaction log, following the two-pass pipeline of SPEC_FULL.md.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pc3-labs/recoreco/internal/config"
	"github.com/pc3-labs/recoreco/internal/driver"
	"github.com/pc3-labs/recoreco/internal/obslog"
	"github.com/pc3-labs/recoreco/internal/rerrors"
	"github.com/pc3-labs/recoreco/internal/runid"
	"github.com/pc3-labs/recoreco/internal/server"
	"github.com/pc3-labs/recoreco/internal/telemetry"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("recoreco", flag.ContinueOnError)
	flags, err := config.ParseFlags(fs, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return rerrors.ExitCode(err)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return rerrors.ExitCode(err)
	}

	id := runid.New()
	log := obslog.New(id, obslog.Level(cfg.LogLevel))
	metrics := telemetry.New()

	d := driver.New(cfg, log, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var srv *server.Server
	if cfg.MetricsAddr != "" {
		srv = server.New(cfg.MetricsAddr, metrics.Registry, func() server.Status {
			return server.Status{RunID: id, CurrentPass: d.CurrentPass}
		})
		srvErrCh := srv.Start()
		log.Info("debug server listening on %s", cfg.MetricsAddr)
		go func() {
			if err := <-srvErrCh; err != nil {
				log.Warn("debug server error: %v", err)
			}
		}()
	}

	log.Info("starting run %s: input=%s output=%s", id, cfg.InputPath, cfg.OutputPath)
	runErr := d.Run(ctx)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}

	if runErr != nil {
		log.Error("run %s failed: %v", id, runErr)
		fmt.Fprintln(os.Stderr, runErr)
		return rerrors.ExitCode(runErr)
	}

	log.Info("run %s complete", id)
	return 0
}
