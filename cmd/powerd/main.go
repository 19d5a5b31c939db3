// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"go.powermgr.io/power/core"
	"go.powermgr.io/power/logging"
	"go.powermgr.io/power/service"

	log "github.com/sirupsen/logrus"
)

type options struct {
	LogLevel         string        `long:"log-level" default:"info" description:"log level"`
	Config           string        `long:"config" description:"path to the YAML configuration file"`
	Listen           string        `long:"listen" description:"host:port of the power API"`
	ProbeInterval    time.Duration `long:"probe-interval" description:"interval between liveness probes"`
	ProbeTimeout     time.Duration `long:"probe-timeout" description:"timeout of one liveness probe"`
	ProbeMaxFailures int           `long:"probe-max-failures" description:"failed probes before a client is dropped"`
	ShutdownTimeout  time.Duration `long:"shutdown-timeout" description:"wait for async shutdown callbacks"`
}

func main() {
	opts := getCLIArgs()
	if err := logging.SetLogLevel(opts.LogLevel); err != nil {
		log.WithError(err).Fatal("Failed to set log level. Valid log levels are:", log.AllLevels)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	svc, err := service.NewBuilder(cfg).SetChangeListener(func(name string, effective core.ParameterSet) {
		log.WithField("policy", name).Infof("Effective parameters %s", effective)
	}).Build()
	if err != nil {
		log.WithError(err).Fatal("Failed to build service")
	}

	ctx, cancel := context.WithCancel(context.Background())
	go signalHandler(cancel)

	if err := svc.Run(ctx); err != nil {
		log.WithError(err).Fatal("powerd exited")
	}
	log.Info("powerd stopped")
}

func getCLIArgs() options {
	var opts options
	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(os.Args); err != nil {
		log.WithError(err).Fatal("Failed to parse command line arguments:", os.Args)
	}
	return opts
}

// loadConfig reads the configuration file, if any, and applies the flags
// that were set on top of it.
func loadConfig(opts options) (service.Config, error) {
	cfg := service.DefaultConfig()
	if opts.Config != "" {
		var err error
		if cfg, err = service.LoadConfig(opts.Config); err != nil {
			return cfg, err
		}
	}

	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}
	if opts.ProbeInterval > 0 {
		cfg.Probe.Interval = opts.ProbeInterval
	}
	if opts.ProbeTimeout > 0 {
		cfg.Probe.Timeout = opts.ProbeTimeout
	}
	if opts.ProbeMaxFailures > 0 {
		cfg.Probe.MaxFailures = opts.ProbeMaxFailures
	}
	if opts.ShutdownTimeout > 0 {
		cfg.Shutdown.CallbackTimeout = opts.ShutdownTimeout
	}
	return cfg, cfg.Validate()
}

// Trap SIGINT and SIGTERM signals and cancel the service context
func signalHandler(cancel context.CancelFunc) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	sigReceived := <-sig
	log.WithField("signal", sigReceived.String()).Info("Received signal")
	cancel()
}
