// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package suspend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go.powermgr.io/power/core"
	"go.powermgr.io/power/interop"
	"go.powermgr.io/power/testdata"
)

func TestSuspendTakenOverByHighTier(t *testing.T) {
	c := NewController()
	high := testdata.NewMockHandle("high")
	high.On("OnTakeOverSuspend", interop.SuspendReasonLid).Return(true)
	low := testdata.NewMockHandle("low")
	c.AddTakeOverCallback(high, core.PriorityHigh, interop.CallerIdentity{Pid: 1})
	c.AddTakeOverCallback(low, core.PriorityLow, interop.CallerIdentity{Pid: 2})

	sleeper := testdata.NewMockHandle("sleeper")
	c.AddSleepCallback(sleeper, core.PriorityDefault, interop.CallerIdentity{})

	assert.False(t, c.Suspend(interop.SuspendReasonLid, false))
	assert.False(t, c.Sleeping())
	low.AssertNotCalled(t, "OnTakeOverSuspend", mock.Anything)
	sleeper.AssertNotCalled(t, "OnSyncSleep", mock.Anything)
}

func TestSuspendAndWakeup(t *testing.T) {
	c := NewController()
	sleeper := testdata.NewMockHandle("sleeper")
	sleeper.On("OnSyncSleep", true).Return()
	sleeper.On("OnSyncWakeup", true).Return()
	c.AddSleepCallback(sleeper, core.PriorityLow, interop.CallerIdentity{})

	listener := testdata.NewMockHandle("listener")
	listener.On("OnAsyncWakeup").Return()
	c.AddWakeupCallback(listener, interop.CallerIdentity{Pid: 7, UID: 8})

	assert.True(t, c.Suspend(interop.SuspendReasonPowerKey, true))
	assert.True(t, c.Sleeping())
	sleeper.AssertNumberOfCalls(t, "OnSyncSleep", 1)

	assert.True(t, c.Wakeup(true))
	assert.False(t, c.Sleeping())
	sleeper.AssertNumberOfCalls(t, "OnSyncWakeup", 1)
	listener.AssertNumberOfCalls(t, "OnAsyncWakeup", 1)
}

func TestWakeupWhileAwakeIsNoop(t *testing.T) {
	c := NewController()
	listener := testdata.NewMockHandle("listener")
	c.AddWakeupCallback(listener, interop.CallerIdentity{})

	assert.False(t, c.Wakeup(false))
	listener.AssertNotCalled(t, "OnAsyncWakeup")
}

func TestNotifyWakeupSkipsDeadListener(t *testing.T) {
	c := NewController()
	alive := testdata.NewMockHandle("alive")
	alive.On("OnAsyncWakeup").Return()
	dead := testdata.NewMockHandle("dead")
	c.AddWakeupCallback(alive, interop.CallerIdentity{})
	c.AddWakeupCallback(dead, interop.CallerIdentity{})

	dead.Die()
	c.NotifyWakeup()

	alive.AssertNumberOfCalls(t, "OnAsyncWakeup", 1)
	dead.AssertNotCalled(t, "OnAsyncWakeup")
}

func TestRemoveCallbacks(t *testing.T) {
	c := NewController()
	h := testdata.NewMockHandle("a")
	c.AddTakeOverCallback(h, core.PriorityDefault, interop.CallerIdentity{Pid: 3, UID: 4})
	c.AddSleepCallback(h, core.PriorityDefault, interop.CallerIdentity{})
	c.AddWakeupCallback(h, interop.CallerIdentity{})
	assert.Equal(t, interop.CallerIdentity{Pid: 3, UID: 4}, c.FindCallerIdentity(h))

	c.RemoveTakeOverCallback(h)
	c.RemoveSleepCallback(h)
	c.RemoveWakeupCallback(h)

	assert.Equal(t, interop.CallerIdentity{}, c.FindCallerIdentity(h))
	assert.False(t, c.TriggerTakeOverSuspend(interop.SuspendReasonTimeout))
	assert.Equal(t, 0, c.TriggerSyncSleep(false))
	assert.Equal(t, 0, h.Subscribers())
}
