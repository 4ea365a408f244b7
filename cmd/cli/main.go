package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/paydesk/paydesk/internal/buildinfo"
	"github.com/paydesk/paydesk/internal/client/cli"
	"github.com/paydesk/paydesk/internal/client/config"
	"github.com/paydesk/paydesk/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
