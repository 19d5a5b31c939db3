// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package suspend dispatches suspend, sleep and wakeup notifications to
// registered remote parties.
package suspend

import (
	"sync"

	"go.powermgr.io/power/core"
	"go.powermgr.io/power/dispatch"
	"go.powermgr.io/power/interop"

	log "github.com/sirupsen/logrus"
)

// Controller owns the takeover-suspend and sync-sleep registries and the
// flat wakeup registry.
type Controller struct {
	takeOver *core.PriorityCallbackRegistry[interop.TakeOverSuspendCallback]
	sleep    *core.PriorityCallbackRegistry[interop.SyncSleepCallback]
	wakeup   *core.FlatCallbackRegistry[interop.WakeupCallback]

	mutex    sync.Mutex
	sleeping bool
}

// NewController returns a controller in the awake state.
func NewController() *Controller {
	return &Controller{
		takeOver: core.NewPriorityCallbackRegistry[interop.TakeOverSuspendCallback]("TakeOverSuspend"),
		sleep:    core.NewPriorityCallbackRegistry[interop.SyncSleepCallback]("SyncSleep"),
		wakeup:   core.NewFlatCallbackRegistry[interop.WakeupCallback]("Wakeup"),
	}
}

func (c *Controller) AddTakeOverCallback(cb interop.TakeOverSuspendCallback, priority core.Priority, caller interop.CallerIdentity) {
	c.takeOver.AddCallback(cb, priority, caller)
}

func (c *Controller) RemoveTakeOverCallback(cb interop.TakeOverSuspendCallback) {
	c.takeOver.RemoveCallback(cb)
}

// FindCallerIdentity returns who registered a takeover-suspend callback.
func (c *Controller) FindCallerIdentity(cb interop.TakeOverSuspendCallback) interop.CallerIdentity {
	return c.takeOver.FindCallerIdentity(cb)
}

func (c *Controller) AddSleepCallback(cb interop.SyncSleepCallback, priority core.Priority, caller interop.CallerIdentity) {
	c.sleep.AddCallback(cb, priority, caller)
}

func (c *Controller) RemoveSleepCallback(cb interop.SyncSleepCallback) {
	c.sleep.RemoveCallback(cb)
}

func (c *Controller) AddWakeupCallback(cb interop.WakeupCallback, caller interop.CallerIdentity) {
	c.wakeup.AddCallback(cb, caller)
}

func (c *Controller) RemoveWakeupCallback(cb interop.WakeupCallback) {
	c.wakeup.RemoveCallback(cb)
}

// TriggerTakeOverSuspend reports whether a registered party took over the suspend.
func (c *Controller) TriggerTakeOverSuspend(reason interop.SuspendReason) bool {
	return dispatch.TakeOver[interop.TakeOverSuspendCallback](c.takeOver, func(cb interop.TakeOverSuspendCallback) bool {
		return cb.OnTakeOverSuspend(reason)
	})
}

// TriggerSyncSleep blocks on every sleep callback.
func (c *Controller) TriggerSyncSleep(forceSleep bool) int {
	return dispatch.Sync[interop.SyncSleepCallback](c.sleep, func(cb interop.SyncSleepCallback) {
		cb.OnSyncSleep(forceSleep)
	})
}

// TriggerSyncWakeup blocks on every sleep callback's wakeup half.
func (c *Controller) TriggerSyncWakeup(forceSleep bool) int {
	return dispatch.Sync[interop.SyncSleepCallback](c.sleep, func(cb interop.SyncSleepCallback) {
		cb.OnSyncWakeup(forceSleep)
	})
}

// NotifyWakeup broadcasts a wakeup to the flat registry.
func (c *Controller) NotifyWakeup() {
	c.wakeup.Notify(func(cb interop.WakeupCallback) {
		cb.OnAsyncWakeup()
	})
}

// Suspend runs the takeover tiers and, unless someone took over, the sleep
// callbacks. It returns true when the device went to sleep.
func (c *Controller) Suspend(reason interop.SuspendReason, forceSleep bool) bool {
	logger := log.WithField("reason", reason.String())

	if c.TriggerTakeOverSuspend(reason) {
		logger.Info("Suspend taken over")
		return false
	}

	c.mutex.Lock()
	c.sleeping = true
	c.mutex.Unlock()

	n := c.TriggerSyncSleep(forceSleep)
	logger.Infof("Suspended, %d sleep callbacks notified", n)
	return true
}

// Wakeup notifies the sleep callbacks and then every wakeup listener. It is
// a no-op if the device is not sleeping.
func (c *Controller) Wakeup(forceSleep bool) bool {
	c.mutex.Lock()
	if !c.sleeping {
		c.mutex.Unlock()
		log.Debug("Wakeup ignored, not sleeping")
		return false
	}
	c.sleeping = false
	c.mutex.Unlock()

	c.TriggerSyncWakeup(forceSleep)
	c.NotifyWakeup()
	return true
}

// Sleeping reports whether the last Suspend has not been followed by a Wakeup.
func (c *Controller) Sleeping() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.sleeping
}
