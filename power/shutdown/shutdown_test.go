// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shutdown

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go.powermgr.io/power/core"
	"go.powermgr.io/power/interop"
	"go.powermgr.io/power/testdata"
)

type mockPowerAction struct {
	mock.Mock
}

func (a *mockPowerAction) Reboot(reason string) error {
	return a.Called(reason).Error(0)
}

func (a *mockPowerAction) Shutdown(reason string) error {
	return a.Called(reason).Error(0)
}

func newAction() *mockPowerAction {
	action := &mockPowerAction{}
	action.On("Reboot", mock.Anything).Return(nil)
	action.On("Shutdown", mock.Anything).Return(nil)
	return action
}

func TestControllerKindsAreIndependent(t *testing.T) {
	c := NewController()
	h := testdata.NewMockHandle("a")
	h.On("OnSyncShutdown", true).Return()

	c.AddSyncCallback(h, core.PriorityDefault, interop.CallerIdentity{Pid: 10, UID: 20})

	assert.False(t, c.TriggerTakeOver(true))
	assert.Equal(t, 1, c.TriggerSync(true))
	assert.Equal(t, 0, c.TriggerAsync(true))
	h.AssertNumberOfCalls(t, "OnSyncShutdown", 1)
	h.AssertNotCalled(t, "OnTakeOverShutdown", mock.Anything)
}

func TestControllerFindCallerIdentity(t *testing.T) {
	c := NewController()
	h := testdata.NewMockHandle("a")
	c.AddTakeOverCallback(h, core.PriorityHigh, interop.CallerIdentity{Pid: 10, UID: 20})

	assert.Equal(t, interop.CallerIdentity{Pid: 10, UID: 20}, c.FindCallerIdentity(h))

	c.RemoveTakeOverCallback(h)
	assert.Equal(t, interop.CallerIdentity{}, c.FindCallerIdentity(h))
}

func TestControllerRemoveKinds(t *testing.T) {
	c := NewController()
	h := testdata.NewMockHandle("a")
	c.AddSyncCallback(h, core.PriorityLow, interop.CallerIdentity{})
	c.AddAsyncCallback(h, core.PriorityLow, interop.CallerIdentity{})

	c.RemoveSyncCallback(h)
	c.RemoveAsyncCallback(h)

	assert.Equal(t, 0, c.TriggerSync(false))
	assert.Equal(t, 0, c.TriggerAsync(false))
	assert.Equal(t, 0, h.Subscribers())
}

func TestShutdownRunsCallbacksThenAction(t *testing.T) {
	c := NewController()
	var order []string
	var mutex sync.Mutex
	record := func(name string) func(mock.Arguments) {
		return func(mock.Arguments) {
			mutex.Lock()
			defer mutex.Unlock()
			order = append(order, name)
		}
	}

	h := testdata.NewMockHandle("a")
	h.On("OnTakeOverShutdown", false).Return(false).Run(record("takeover"))
	h.On("OnAsyncShutdown", false).Return().Run(record("async"))
	h.On("OnSyncShutdown", false).Return().Run(record("sync"))
	c.AddTakeOverCallback(h, core.PriorityDefault, interop.CallerIdentity{})
	c.AddAsyncCallback(h, core.PriorityDefault, interop.CallerIdentity{})
	c.AddSyncCallback(h, core.PriorityDefault, interop.CallerIdentity{})

	action := newAction()
	s := NewService(c, action, time.Second)

	require.NoError(t, s.Shutdown(context.Background(), "test"))
	assert.Equal(t, []string{"takeover", "async", "sync"}, order)
	action.AssertCalled(t, "Shutdown", "test")
	action.AssertNotCalled(t, "Reboot", mock.Anything)
	assert.False(t, s.InProgress())
}

func TestShutdownTakenOver(t *testing.T) {
	c := NewController()
	h := testdata.NewMockHandle("a")
	h.On("OnTakeOverShutdown", true).Return(true)
	c.AddTakeOverCallback(h, core.PriorityHigh, interop.CallerIdentity{})

	waiter := testdata.NewMockHandle("b")
	c.AddSyncCallback(waiter, core.PriorityHigh, interop.CallerIdentity{})

	action := newAction()
	s := NewService(c, action, time.Second)

	assert.Equal(t, ErrTakenOver, s.Reboot(context.Background(), "update"))
	action.AssertNotCalled(t, "Reboot", mock.Anything)
	waiter.AssertNotCalled(t, "OnSyncShutdown", mock.Anything)
}

func TestShutdownAsyncTimeoutProceeds(t *testing.T) {
	c := NewController()
	release := make(chan time.Time)
	defer close(release)

	h := testdata.NewMockHandle("slow")
	h.On("OnAsyncShutdown", true).Return().WaitUntil(release)
	c.AddAsyncCallback(h, core.PriorityDefault, interop.CallerIdentity{})

	action := newAction()
	s := NewService(c, action, 20*time.Millisecond)

	require.NoError(t, s.Reboot(context.Background(), "slow"))
	action.AssertCalled(t, "Reboot", "slow")
}

func TestShutdownAlreadyInProgress(t *testing.T) {
	c := NewController()
	entered := make(chan struct{})
	release := make(chan struct{})

	h := testdata.NewMockHandle("a")
	h.On("OnSyncShutdown", false).Return().Run(func(mock.Arguments) {
		close(entered)
		<-release
	})
	c.AddSyncCallback(h, core.PriorityDefault, interop.CallerIdentity{})

	action := newAction()
	s := NewService(c, action, time.Second)

	done := make(chan error, 1)
	go func() { done <- s.Shutdown(context.Background(), "first") }()

	<-entered
	assert.True(t, s.InProgress())
	assert.Equal(t, ErrShutdownInProgress, s.Shutdown(context.Background(), "second"))

	close(release)
	require.NoError(t, <-done)
	action.AssertNumberOfCalls(t, "Shutdown", 1)
}

func TestShutdownDefaults(t *testing.T) {
	s := NewService(NewController(), nil, 0)
	assert.Equal(t, DefaultCallbackTimeout, s.callbackTimeout)
	assert.NoError(t, s.Shutdown(context.Background(), "nothing registered"))
}
