// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.powermgr.io/power/policy"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "powerd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
listen: 0.0.0.0:9200
probe:
  interval: 10s
  maxFailures: 5
shutdown:
  callbackTimeout: 1m
  rebootCommand: [systemctl, reboot]
policies:
  - name: display
    params: 2
    defaults: [false, true]
  - name: cpu
    params: 3
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9200", cfg.Listen)
	assert.Equal(t, 10*time.Second, cfg.Probe.Interval)
	assert.Equal(t, 2*time.Second, cfg.Probe.Timeout)
	assert.Equal(t, 5, cfg.Probe.MaxFailures)
	assert.Equal(t, time.Minute, cfg.Shutdown.CallbackTimeout)
	assert.Equal(t, []string{"systemctl", "reboot"}, cfg.Shutdown.RebootCommand)
	assert.Empty(t, cfg.Shutdown.PowerOffCommand)
	assert.Equal(t, []policy.Config{
		{Name: "display", Params: 2, Defaults: []bool{false, true}},
		{Name: "cpu", Params: 3},
	}, cfg.Policies)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "listen: [unterminated"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "shutdown:\n  callbackTimeout: -1s\n"))
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultListenAddress, cfg.Listen)
	assert.Equal(t, 5*time.Second, cfg.Probe.Interval)
	assert.Equal(t, 2*time.Second, cfg.Probe.Timeout)
	assert.Equal(t, 3, cfg.Probe.MaxFailures)
	assert.Equal(t, 30*time.Second, cfg.Shutdown.CallbackTimeout)
	assert.NoError(t, cfg.Validate())
}
