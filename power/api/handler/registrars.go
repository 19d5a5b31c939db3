// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"go.powermgr.io/power/core"
	"go.powermgr.io/power/interop"
	"go.powermgr.io/power/remote"
	"go.powermgr.io/power/shutdown"
	"go.powermgr.io/power/suspend"
)

// Callback kinds accepted in /callbacks/{kind}.
const (
	KindTakeOverShutdown = "takeover-shutdown"
	KindSyncShutdown     = "sync-shutdown"
	KindAsyncShutdown    = "async-shutdown"
	KindTakeOverSuspend  = "takeover-suspend"
	KindSyncSleep        = "sync-sleep"
	KindWakeup           = "wakeup"
)

// Registrar adds a client to and removes it from one registry.
type Registrar struct {
	Add    func(client *remote.Client, priority core.Priority, caller interop.CallerIdentity)
	Remove func(client *remote.Client)
}

// Registrars maps callback kinds to their registrar.
type Registrars map[string]Registrar

// NewRegistrars binds every callback kind to the controller owning it.
func NewRegistrars(shutdownController *shutdown.Controller, suspendController *suspend.Controller) Registrars {
	return Registrars{
		KindTakeOverShutdown: {
			Add: func(c *remote.Client, p core.Priority, caller interop.CallerIdentity) {
				shutdownController.AddTakeOverCallback(c, p, caller)
			},
			Remove: func(c *remote.Client) { shutdownController.RemoveTakeOverCallback(c) },
		},
		KindSyncShutdown: {
			Add: func(c *remote.Client, p core.Priority, caller interop.CallerIdentity) {
				shutdownController.AddSyncCallback(c, p, caller)
			},
			Remove: func(c *remote.Client) { shutdownController.RemoveSyncCallback(c) },
		},
		KindAsyncShutdown: {
			Add: func(c *remote.Client, p core.Priority, caller interop.CallerIdentity) {
				shutdownController.AddAsyncCallback(c, p, caller)
			},
			Remove: func(c *remote.Client) { shutdownController.RemoveAsyncCallback(c) },
		},
		KindTakeOverSuspend: {
			Add: func(c *remote.Client, p core.Priority, caller interop.CallerIdentity) {
				suspendController.AddTakeOverCallback(c, p, caller)
			},
			Remove: func(c *remote.Client) { suspendController.RemoveTakeOverCallback(c) },
		},
		KindSyncSleep: {
			Add: func(c *remote.Client, p core.Priority, caller interop.CallerIdentity) {
				suspendController.AddSleepCallback(c, p, caller)
			},
			Remove: func(c *remote.Client) { suspendController.RemoveSleepCallback(c) },
		},
		KindWakeup: {
			Add: func(c *remote.Client, _ core.Priority, caller interop.CallerIdentity) {
				suspendController.AddWakeupCallback(c, caller)
			},
			Remove: func(c *remote.Client) { suspendController.RemoveWakeupCallback(c) },
		},
	}
}
