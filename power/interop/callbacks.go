// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package interop

// TakeOverShutdownCallback is executed when the device is about to shut down
// or reboot. Returning true takes over the shutdown, which is then not carried
// out by the service.
type TakeOverShutdownCallback interface {
	RemoteClientHandle
	OnTakeOverShutdown(isReboot bool) bool
}

// SyncShutdownCallback blocks shutdown until the remote party returns.
type SyncShutdownCallback interface {
	RemoteClientHandle
	OnSyncShutdown(isReboot bool)
}

// AsyncShutdownCallback lets the remote party complete its shutdown work
// later. The service stops waiting after its own timeout.
type AsyncShutdownCallback interface {
	RemoteClientHandle
	OnAsyncShutdown(isReboot bool)
}

// TakeOverSuspendCallback is executed before the device suspends. Returning
// true takes over the suspend.
type TakeOverSuspendCallback interface {
	RemoteClientHandle
	OnTakeOverSuspend(reason SuspendReason) bool
}

// SyncSleepCallback is executed synchronously around sleep transitions.
type SyncSleepCallback interface {
	RemoteClientHandle
	OnSyncSleep(forceSleep bool)
	OnSyncWakeup(forceSleep bool)
}

// WakeupCallback is a one-way notification sent after the device wakes up.
type WakeupCallback interface {
	RemoteClientHandle
	OnAsyncWakeup()
}
