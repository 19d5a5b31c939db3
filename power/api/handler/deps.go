// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"context"

	"go.powermgr.io/power/core"
	"go.powermgr.io/power/interop"
	"go.powermgr.io/power/remote"
)

// ClientPool resolves callback URLs and client ids to remote clients.
type ClientPool interface {
	Connect(callbackURL string) (*remote.Client, error)
	Lookup(id string) (*remote.Client, bool)
	Disconnect(id string) bool
}

// ShutdownService runs the shutdown sequence.
type ShutdownService interface {
	RebootOrShutdown(ctx context.Context, reason string, isReboot bool) error
}

// SuspendController runs suspend and wakeup.
type SuspendController interface {
	Suspend(reason interop.SuspendReason, forceSleep bool) bool
	Wakeup(forceSleep bool) bool
}

// PolicyRegistry resolves policy names to aggregators.
type PolicyRegistry interface {
	Get(name string) (*core.MultiInvokerAggregator, error)
	Names() []string
}
