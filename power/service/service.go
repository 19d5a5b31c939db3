// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package service wires the registries, the remote transport and the power
// API into a runnable daemon.
package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"go.powermgr.io/power/api"
	"go.powermgr.io/power/policy"
	"go.powermgr.io/power/remote"
	"go.powermgr.io/power/shutdown"
	"go.powermgr.io/power/suspend"

	log "github.com/sirupsen/logrus"
)

// Service is a fully wired powerd.
type Service struct {
	Pool               *remote.Pool
	Monitor            *remote.Monitor
	ShutdownController *shutdown.Controller
	ShutdownService    *shutdown.Service
	SuspendController  *suspend.Controller
	Policies           *policy.Registry
	Server             *api.Server
}

// Run listens and serves the API and the liveness monitor until ctx is
// cancelled or one of them fails.
func (s *Service) Run(ctx context.Context) error {
	if !s.Server.IsListening() {
		if err := s.Server.Listen(); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Server.Serve(ctx) })
	g.Go(func() error { return s.Monitor.Run(ctx) })

	log.Infof("powerd running, %d policies", len(s.Policies.Names()))
	return g.Wait()
}
