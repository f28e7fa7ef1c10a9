package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/apiconfig/internal/application"
	"github.com/eugenenazirov/apiconfig/internal/config"
	"github.com/eugenenazirov/apiconfig/internal/logging"
)

// buildEnv is a dotenv document injected at link time:
//
//	go build -ldflags "-X 'main.buildEnv=MODE=production'" ./cmd/apiconfig
var buildEnv string

var signalNotify = signal.Notify

type cli struct {
	app          *kingpin.Application
	envFile      *string
	noProcessEnv *bool
	logLevel     *string

	show   *kingpin.CmdClause
	format *string

	get        *kingpin.CmdClause
	getKey     *string
	getDefault *string

	serve          *kingpin.CmdClause
	port           *string
	rateLimitRPS   *float64
	rateLimitBurst *int
}

func newCLI() *cli {
	c := &cli{}
	c.app = kingpin.New("apiconfig", "Resolves front-end API settings from the process and build-injected environments")
	c.envFile = c.app.Flag("env-file", "Build environment file (dotenv, or YAML when ending in .yaml/.yml)").ExistingFile()
	c.noProcessEnv = c.app.Flag("no-process-env", "Treat the process environment as unavailable").Bool()
	c.logLevel = c.app.Flag("log-level", "Log level").Default("info").Enum("debug", "info", "warn", "error")

	c.show = c.app.Command("show", "Print the resolved API settings")
	c.format = c.show.Flag("format", "Output format").Default("json").Enum("json", "yaml")

	c.get = c.app.Command("get", "Resolve a single environment key")
	c.getKey = c.get.Arg("key", "Environment key").Required().HintOptions(config.Keys()...).String()
	c.getDefault = c.get.Arg("default", "Value returned when the key is unset or empty").String()

	c.serve = c.app.Command("serve", "Serve the resolved API settings over HTTP").Default()
	c.port = c.serve.Flag("port", "HTTP port exposed by the service").String()
	c.rateLimitRPS = c.serve.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	c.rateLimitBurst = c.serve.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()
	return c
}

// overrides returns the serve flags that were set explicitly.
func (c *cli) overrides() *config.CLIOverrides {
	o := &config.CLIOverrides{}
	if *c.port != "" {
		o.Port = c.port
	}
	if *c.rateLimitRPS >= 0 {
		o.RateLimitRPS = c.rateLimitRPS
	}
	if *c.rateLimitBurst >= 0 {
		o.RateLimitBurst = c.rateLimitBurst
	}
	return o
}

func main() {
	c := newCLI()
	command := kingpin.MustParse(c.app.Parse(os.Args[1:]))

	logger, err := logging.New(*c.logLevel)
	c.app.FatalIfError(err, "initialize logger")
	defer func() {
		_ = logger.Sync()
	}()

	resolver, err := newResolver(buildEnv, *c.envFile, !*c.noProcessEnv, logger)
	c.app.FatalIfError(err, "resolve environment sources")

	switch command {
	case c.show.FullCommand():
		settings := config.NewAPIConfig(resolver).Snapshot()
		c.app.FatalIfError(writeSettings(os.Stdout, settings, *c.format), "write settings")
		return
	case c.get.FullCommand():
		fmt.Fprintln(os.Stdout, resolver.Resolve(*c.getKey, *c.getDefault))
		return
	}

	cfg, err := config.Load(resolver, c.overrides())
	c.app.FatalIfError(err, "load configuration")

	app := application.New(cfg, resolver, logger)
	app.Start()

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

// shutdown blocks until SIGINT or SIGTERM, then drains the config server
// within timeout and force-closes it if draining fails.
func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Info("stopping apiconfig server",
		zap.String("signal", sig.String()),
		zap.Duration("grace_period", timeout),
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
