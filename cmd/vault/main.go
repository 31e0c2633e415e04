package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/identra-vault/internal/client"
	"github.com/MKhiriev/identra-vault/internal/config"
	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/models"
	"github.com/awnumar/memguard"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	// locked buffers are wiped on SIGINT/SIGTERM as well as on return
	memguard.CatchInterrupt()
	defer memguard.Purge()

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		return 2
	}

	log := logger.NewClientLogger("identra-vault", cfg.Log.Dir)
	log.Info().Str("version", build.BuildVersion()).Strs("args", commandName(args)).Msg("vault started")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	app, err := client.NewApp(ctx, cfg, build, log)
	if err != nil {
		log.Err(err).Msg("init client app error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Err(err).Msg("closing client app")
		}
	}()

	if err = app.Run(ctx, args); err != nil {
		app.ReportError(os.Stderr, err)
		return 1
	}
	return 0
}

// commandName keeps operands such as text to seal out of the log.
func commandName(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	return args[:1]
}
