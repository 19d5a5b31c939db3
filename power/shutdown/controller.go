// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shutdown

import (
	"go.powermgr.io/power/core"
	"go.powermgr.io/power/dispatch"
	"go.powermgr.io/power/interop"
)

// Controller owns one registry per shutdown callback kind. The same remote
// party may be registered in several of them.
type Controller struct {
	takeOver *core.PriorityCallbackRegistry[interop.TakeOverShutdownCallback]
	sync     *core.PriorityCallbackRegistry[interop.SyncShutdownCallback]
	async    *core.PriorityCallbackRegistry[interop.AsyncShutdownCallback]
}

// NewController returns a controller with empty registries.
func NewController() *Controller {
	return &Controller{
		takeOver: core.NewPriorityCallbackRegistry[interop.TakeOverShutdownCallback]("TakeOverShutdown"),
		sync:     core.NewPriorityCallbackRegistry[interop.SyncShutdownCallback]("SyncShutdown"),
		async:    core.NewPriorityCallbackRegistry[interop.AsyncShutdownCallback]("AsyncShutdown"),
	}
}

func (c *Controller) AddTakeOverCallback(cb interop.TakeOverShutdownCallback, priority core.Priority, caller interop.CallerIdentity) {
	c.takeOver.AddCallback(cb, priority, caller)
}

func (c *Controller) RemoveTakeOverCallback(cb interop.TakeOverShutdownCallback) {
	c.takeOver.RemoveCallback(cb)
}

func (c *Controller) AddSyncCallback(cb interop.SyncShutdownCallback, priority core.Priority, caller interop.CallerIdentity) {
	c.sync.AddCallback(cb, priority, caller)
}

func (c *Controller) RemoveSyncCallback(cb interop.SyncShutdownCallback) {
	c.sync.RemoveCallback(cb)
}

func (c *Controller) AddAsyncCallback(cb interop.AsyncShutdownCallback, priority core.Priority, caller interop.CallerIdentity) {
	c.async.AddCallback(cb, priority, caller)
}

func (c *Controller) RemoveAsyncCallback(cb interop.AsyncShutdownCallback) {
	c.async.RemoveCallback(cb)
}

// FindCallerIdentity returns who registered a takeover callback.
func (c *Controller) FindCallerIdentity(cb interop.TakeOverShutdownCallback) interop.CallerIdentity {
	return c.takeOver.FindCallerIdentity(cb)
}

// TriggerTakeOver reports whether a registered party took over the shutdown.
func (c *Controller) TriggerTakeOver(isReboot bool) bool {
	return dispatch.TakeOver[interop.TakeOverShutdownCallback](c.takeOver, func(cb interop.TakeOverShutdownCallback) bool {
		return cb.OnTakeOverShutdown(isReboot)
	})
}

// TriggerSync blocks on every sync callback and returns how many were called.
func (c *Controller) TriggerSync(isReboot bool) int {
	return dispatch.Sync[interop.SyncShutdownCallback](c.sync, func(cb interop.SyncShutdownCallback) {
		cb.OnSyncShutdown(isReboot)
	})
}

// TriggerAsync calls every async callback and returns how many were called.
func (c *Controller) TriggerAsync(isReboot bool) int {
	return dispatch.Async[interop.AsyncShutdownCallback](c.async, func(cb interop.AsyncShutdownCallback) {
		cb.OnAsyncShutdown(isReboot)
	})
}

// AsyncCallbackCount returns the number of async registrations.
func (c *Controller) AsyncCallbackCount() int {
	return c.async.Len()
}
