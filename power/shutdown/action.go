// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shutdown

import (
	"fmt"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// PowerAction performs the device power transition once every callback has
// been dispatched.
type PowerAction interface {
	Reboot(reason string) error
	Shutdown(reason string) error
}

// LogPowerAction only logs the transition. It is used when the service does
// not control the device itself.
type LogPowerAction struct{}

func (LogPowerAction) Reboot(reason string) error {
	log.WithField("reason", reason).Warn("Device reboot requested")
	return nil
}

func (LogPowerAction) Shutdown(reason string) error {
	log.WithField("reason", reason).Warn("Device shutdown requested")
	return nil
}

// ExecPowerAction runs a configured command for each transition, for example
// ["systemctl", "reboot"]. An empty command falls back to logging.
type ExecPowerAction struct {
	RebootCommand   []string
	ShutdownCommand []string
}

func (a ExecPowerAction) Reboot(reason string) error {
	return runPowerCommand(a.RebootCommand, reason, LogPowerAction{}.Reboot)
}

func (a ExecPowerAction) Shutdown(reason string) error {
	return runPowerCommand(a.ShutdownCommand, reason, LogPowerAction{}.Shutdown)
}

func runPowerCommand(argv []string, reason string, fallback func(string) error) error {
	if len(argv) == 0 {
		return fallback(reason)
	}

	command := exec.Command(argv[0], argv[1:]...)
	output, err := command.CombinedOutput()
	logger := log.WithField("reason", reason).WithField("command", strings.Join(argv, " "))
	if err != nil {
		logger.WithError(err).Errorf("Power command failed: %s", strings.TrimSpace(string(output)))
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	logger.Info("Power command completed")
	return nil
}
