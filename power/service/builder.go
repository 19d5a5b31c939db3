// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"net/http"

	"go.powermgr.io/power/api"
	"go.powermgr.io/power/api/handler"
	"go.powermgr.io/power/policy"
	"go.powermgr.io/power/remote"
	"go.powermgr.io/power/shutdown"
	"go.powermgr.io/power/suspend"
)

// Builder assembles a Service from a Config.
type Builder struct {
	config     Config
	action     shutdown.PowerAction
	listener   policy.ChangeListener
	httpClient *http.Client
}

// NewBuilder returns a builder whose power action runs the configured
// commands.
func NewBuilder(config Config) *Builder {
	return &Builder{
		config: config,
		action: shutdown.ExecPowerAction{
			RebootCommand:   config.Shutdown.RebootCommand,
			ShutdownCommand: config.Shutdown.PowerOffCommand,
		},
	}
}

func (b *Builder) SetPowerAction(action shutdown.PowerAction) *Builder {
	b.action = action
	return b
}

func (b *Builder) SetChangeListener(listener policy.ChangeListener) *Builder {
	b.listener = listener
	return b
}

// SetHTTPClient sets the client used to call remote parties.
func (b *Builder) SetHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// Build wires every component. It fails only on invalid configuration.
func (b *Builder) Build() (*Service, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	policies := policy.NewRegistry(b.listener)
	if err := policies.Load(b.config.Policies); err != nil {
		return nil, err
	}

	pool := remote.NewPool(b.httpClient)
	shutdownController := shutdown.NewController()
	suspendController := suspend.NewController()
	shutdownService := shutdown.NewService(shutdownController, b.action, b.config.Shutdown.CallbackTimeout)

	s := &Service{
		Pool:               pool,
		Monitor:            remote.NewMonitor(pool, b.config.Probe.Interval, b.config.Probe.Timeout, b.config.Probe.MaxFailures),
		ShutdownController: shutdownController,
		ShutdownService:    shutdownService,
		SuspendController:  suspendController,
		Policies:           policies,
	}
	s.Server = api.NewServer(b.config.Listen, api.Dependencies{
		Pool:       pool,
		Registrars: handler.NewRegistrars(shutdownController, suspendController),
		Shutdown:   shutdownService,
		Suspend:    suspendController,
		Policies:   policies,
	})
	return s, nil
}
