package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/adapter"
	"github.com/MKhiriev/go-task-manager/internal/client"
	"github.com/MKhiriev/go-task-manager/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fs := flag.NewFlagSet("task-client", flag.ExitOnError)
	address := fs.String("server", envOr("TASK_MANAGER_URL", "http://localhost:3000"), "task manager base URL")
	token := fs.String("token", os.Getenv("TASK_MANAGER_TOKEN"), "bearer token for authenticated commands")
	timeout := fs.Duration("timeout", 15*time.Second, "request timeout")
	logLevel := fs.String("log-level", "error", "log level")
	version := fs.Bool("version", false, "print build info and exit")
	fs.Parse(os.Args[1:])

	if *version {
		printBuildInfo()
		return
	}

	log := logger.NewLogger("task-client", *logLevel)

	api, err := adapter.NewHTTPAPIClient(*address, *timeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating api client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = client.NewApp(api, *token, os.Stdout, log).Run(ctx, fs.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
