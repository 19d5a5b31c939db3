// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.powermgr.io/power/core"
	"go.powermgr.io/power/interop"
)

type received struct {
	path  string
	event Event
}

type fakeParty struct {
	mutex    sync.Mutex
	events   []received
	takeOver bool
	status   int
}

func (f *fakeParty) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	if r.URL.Path == PathPing {
		w.WriteHeader(http.StatusOK)
		return
	}
	var event Event
	_ = json.NewDecoder(r.Body).Decode(&event)
	f.events = append(f.events, received{path: r.URL.Path, event: event})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(TakeOverResponse{TakeOver: f.takeOver})
}

func (f *fakeParty) received() []received {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]received(nil), f.events...)
}

func TestClientCallbacks(t *testing.T) {
	party := &fakeParty{takeOver: true}
	server := httptest.NewServer(party)
	defer server.Close()

	client, err := NewPool(server.Client()).Connect(server.URL)
	require.NoError(t, err)

	assert.True(t, client.OnTakeOverShutdown(true))
	client.OnSyncShutdown(false)
	client.OnAsyncShutdown(true)
	assert.True(t, client.OnTakeOverSuspend(interop.SuspendReasonLid))
	client.OnSyncSleep(true)
	client.OnSyncWakeup(false)
	client.OnAsyncWakeup()

	assert.Equal(t, []received{
		{path: PathTakeOverShutdown, event: Event{IsReboot: true}},
		{path: PathSyncShutdown, event: Event{}},
		{path: PathAsyncShutdown, event: Event{IsReboot: true}},
		{path: PathTakeOverSuspend, event: Event{Reason: "lid"}},
		{path: PathSyncSleep, event: Event{ForceSleep: true}},
		{path: PathSyncWakeup, event: Event{}},
		{path: PathAsyncWakeup, event: Event{}},
	}, party.received())
}

func TestClientTakeOverFailureIsRefusal(t *testing.T) {
	party := &fakeParty{takeOver: true, status: http.StatusInternalServerError}
	server := httptest.NewServer(party)
	defer server.Close()

	client, err := NewPool(server.Client()).Connect(server.URL)
	require.NoError(t, err)

	assert.False(t, client.OnTakeOverShutdown(false))
	assert.Error(t, client.Ping(context.Background()))
}

func TestClientPing(t *testing.T) {
	server := httptest.NewServer(&fakeParty{})
	defer server.Close()

	client, err := NewPool(server.Client()).Connect(server.URL)
	require.NoError(t, err)
	assert.NoError(t, client.Ping(context.Background()))
}

func TestSubscribeAfterDeathFiresAsynchronously(t *testing.T) {
	pool := NewPool(nil)
	client, err := pool.Connect("http://127.0.0.1:1/cb")
	require.NoError(t, err)
	require.True(t, pool.Disconnect(client.HandleID()))
	assert.False(t, client.Alive())

	fired := make(chan interop.RemoteClientHandle, 1)
	var mutex sync.Mutex
	mutex.Lock()
	client.SubscribeLivenessLost(func(h interop.RemoteClientHandle) {
		mutex.Lock()
		defer mutex.Unlock()
		fired <- h
	})
	mutex.Unlock()

	select {
	case h := <-fired:
		assert.Equal(t, client.HandleID(), h.HandleID())
	case <-time.After(time.Second):
		t.Fatal("liveness callback was not fired")
	}
}

func TestDisconnectCleansRegistries(t *testing.T) {
	pool := NewPool(nil)
	client, err := pool.Connect("http://127.0.0.1:1/cb")
	require.NoError(t, err)

	registry := core.NewPriorityCallbackRegistry[interop.SyncShutdownCallback]("SyncShutdown")
	registry.AddCallback(client, core.PriorityHigh, interop.CallerIdentity{Pid: 1, UID: 2})

	aggregator := core.NewMultiInvokerAggregator(2, 0, nil)
	aggregator.Set(client, 1, core.DefaultAppID, core.ParameterSet(0b01))
	require.Equal(t, core.ParameterSet(0b01), aggregator.Effective())

	require.True(t, pool.Disconnect(client.HandleID()))

	assert.Equal(t, 0, registry.Len())
	assert.Equal(t, core.ParameterSet(0), aggregator.Effective())
	assert.Equal(t, interop.CallerIdentity{}, registry.FindCallerIdentity(client))
}
