// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package remote

// Paths appended to a client's callback URL.
const (
	PathTakeOverShutdown = "/takeover-shutdown"
	PathSyncShutdown     = "/sync-shutdown"
	PathAsyncShutdown    = "/async-shutdown"
	PathTakeOverSuspend  = "/takeover-suspend"
	PathSyncSleep        = "/sync-sleep"
	PathSyncWakeup       = "/sync-wakeup"
	PathAsyncWakeup      = "/async-wakeup"
	PathPing             = "/ping"
)

// Event is the body POSTed to a callback path.
type Event struct {
	IsReboot   bool   `json:"isReboot,omitempty"`
	Reason     string `json:"reason,omitempty"`
	ForceSleep bool   `json:"forceSleep,omitempty"`
}

// TakeOverResponse is the reply expected from takeover paths.
type TakeOverResponse struct {
	TakeOver bool `json:"takeOver"`
}
