// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shutdown

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.powermgr.io/power/metering"

	log "github.com/sirupsen/logrus"
)

// DefaultCallbackTimeout bounds the wait for async shutdown callbacks.
const DefaultCallbackTimeout = 30 * time.Second

// ErrShutdownInProgress is returned when a shutdown or reboot is already running.
var ErrShutdownInProgress = errors.New("ErrShutdownInProgress")

// ErrTakenOver is returned when a takeover callback claimed the shutdown.
var ErrTakenOver = errors.New("ErrTakenOver")

// Service runs the shutdown sequence: takeover callbacks, async callbacks
// (bounded by the callback timeout), sync callbacks, then the power action.
type Service struct {
	controller      *Controller
	action          PowerAction
	callbackTimeout time.Duration
	started         int32
}

// NewService returns a shutdown service. A non-positive timeout selects
// DefaultCallbackTimeout.
func NewService(controller *Controller, action PowerAction, callbackTimeout time.Duration) *Service {
	if callbackTimeout <= 0 {
		callbackTimeout = DefaultCallbackTimeout
	}
	if action == nil {
		action = LogPowerAction{}
	}
	return &Service{
		controller:      controller,
		action:          action,
		callbackTimeout: callbackTimeout,
	}
}

func (s *Service) Reboot(ctx context.Context, reason string) error {
	return s.RebootOrShutdown(ctx, reason, true)
}

func (s *Service) Shutdown(ctx context.Context, reason string) error {
	return s.RebootOrShutdown(ctx, reason, false)
}

// RebootOrShutdown runs the whole sequence. It returns ErrTakenOver without
// touching the device if a takeover callback claimed it.
func (s *Service) RebootOrShutdown(ctx context.Context, reason string, isReboot bool) error {
	if !atomic.CompareAndSwapInt32(&s.started, 0, 1) {
		log.Error("Shutdown is already running")
		return ErrShutdownInProgress
	}
	defer atomic.StoreInt32(&s.started, 0)

	log.WithField("reason", reason).Infof("Shutdown requested, reboot=%t", isReboot)

	if s.controller.TriggerTakeOver(isReboot) {
		log.Info("Shutdown taken over, device stays up")
		return ErrTakenOver
	}

	s.awaitAsyncCallbacks(ctx, isReboot)
	s.controller.TriggerSync(isReboot)

	if isReboot {
		return s.action.Reboot(reason)
	}
	return s.action.Shutdown(reason)
}

// InProgress reports whether a sequence is running.
func (s *Service) InProgress() bool {
	return atomic.LoadInt32(&s.started) == 1
}

func (s *Service) awaitAsyncCallbacks(ctx context.Context, isReboot bool) {
	profiler := &metering.DispatchProfiler{
		Stage:        "AsyncShutdown",
		NumCallbacks: s.controller.AsyncCallbackCount(),
		AvailableNs:  s.callbackTimeout.Nanoseconds(),
	}
	profiler.Start()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.controller.TriggerAsync(isReboot)
	}()

	timer := time.NewTimer(s.callbackTimeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		log.Warnf("Timeout: async shutdown callbacks still running after %d ms, proceeding", s.callbackTimeout.Milliseconds())
	case <-ctx.Done():
		log.WithError(ctx.Err()).Warn("Stopped waiting for async shutdown callbacks")
	}

	profiler.Stop()
	ms, timedOut := profiler.CalculateDispatchMs()
	log.Infof("%s: %d callbacks, %d ms, timed out: %t", profiler.Stage, profiler.NumCallbacks, ms, timedOut)
}
