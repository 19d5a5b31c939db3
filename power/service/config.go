// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"go.powermgr.io/power/policy"
	"go.powermgr.io/power/remote"
	"go.powermgr.io/power/shutdown"
)

// DefaultListenAddress is where the power API listens when nothing else is configured.
const DefaultListenAddress = "127.0.0.1:9100"

// Config is the configuration file of powerd.
type Config struct {
	// Listen is the host:port of the power API.
	Listen string `yaml:"listen"`

	// Probe configures the liveness monitor of remote parties.
	Probe ProbeConfig `yaml:"probe"`

	// Shutdown configures the shutdown sequence.
	Shutdown ShutdownConfig `yaml:"shutdown"`

	// Policies declares the aggregators remote parties can vote on.
	Policies []policy.Config `yaml:"policies"`
}

// ProbeConfig configures liveness probing.
type ProbeConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxFailures int           `yaml:"maxFailures"`
}

// ShutdownConfig configures the shutdown sequence.
type ShutdownConfig struct {
	// CallbackTimeout bounds the wait for async shutdown callbacks.
	CallbackTimeout time.Duration `yaml:"callbackTimeout"`

	// RebootCommand and PowerOffCommand perform the transition. When empty
	// the transition is only logged.
	RebootCommand   []string `yaml:"rebootCommand"`
	PowerOffCommand []string `yaml:"powerOffCommand"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Listen: DefaultListenAddress,
		Probe: ProbeConfig{
			Interval:    remote.DefaultProbeInterval,
			Timeout:     remote.DefaultProbeTimeout,
			MaxFailures: remote.DefaultProbeMaxFailures,
		},
		Shutdown: ShutdownConfig{
			CallbackTimeout: shutdown.DefaultCallbackTimeout,
		},
	}
}

// LoadConfig reads path on top of DefaultConfig. Fields missing from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is empty")
	}
	if c.Probe.Interval < 0 || c.Probe.Timeout < 0 || c.Probe.MaxFailures < 0 {
		return fmt.Errorf("probe settings must not be negative")
	}
	if c.Shutdown.CallbackTimeout < 0 {
		return fmt.Errorf("shutdown callback timeout must not be negative")
	}
	return nil
}
