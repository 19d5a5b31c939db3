// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package testdata

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"go.powermgr.io/power/interop"
)

// MockHandle is a remote party implementing every callback kind. Liveness
// subscriptions are recorded and fired by Die.
type MockHandle struct {
	mock.Mock
	ID string

	mutex       sync.Mutex
	subscribers map[int]interop.LivenessLostFunc
	nextToken   int
}

// NewMockHandle returns a live handle with the given identity.
func NewMockHandle(id string) *MockHandle {
	return &MockHandle{ID: id, subscribers: make(map[int]interop.LivenessLostFunc)}
}

func (h *MockHandle) HandleID() string { return h.ID }

func (h *MockHandle) SubscribeLivenessLost(fn interop.LivenessLostFunc) func() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	token := h.nextToken
	h.nextToken++
	h.subscribers[token] = fn

	return func() {
		h.mutex.Lock()
		defer h.mutex.Unlock()
		delete(h.subscribers, token)
	}
}

// Subscribers returns the number of active liveness subscriptions.
func (h *MockHandle) Subscribers() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.subscribers)
}

// Die fires and clears every liveness subscription.
func (h *MockHandle) Die() {
	h.mutex.Lock()
	subscribers := h.subscribers
	h.subscribers = make(map[int]interop.LivenessLostFunc)
	h.mutex.Unlock()

	for _, fn := range subscribers {
		fn(h)
	}
}

func (h *MockHandle) OnTakeOverShutdown(isReboot bool) bool {
	return h.Called(isReboot).Bool(0)
}

func (h *MockHandle) OnSyncShutdown(isReboot bool) {
	h.Called(isReboot)
}

func (h *MockHandle) OnAsyncShutdown(isReboot bool) {
	h.Called(isReboot)
}

func (h *MockHandle) OnTakeOverSuspend(reason interop.SuspendReason) bool {
	return h.Called(reason).Bool(0)
}

func (h *MockHandle) OnSyncSleep(forceSleep bool) {
	h.Called(forceSleep)
}

func (h *MockHandle) OnSyncWakeup(forceSleep bool) {
	h.Called(forceSleep)
}

func (h *MockHandle) OnAsyncWakeup() {
	h.Called()
}
