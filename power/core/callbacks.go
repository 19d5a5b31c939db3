// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"sync"

	"go.powermgr.io/power/interop"

	log "github.com/sirupsen/logrus"
)

// PriorityCallbackRegistry keeps remote callbacks of one kind in three
// priority tiers. Getters return snapshots so that callers can invoke
// remote parties without holding the registry lock.
//
// A handle may be registered in more than one tier; it is then dispatched
// once per tier.
type PriorityCallbackRegistry[C interop.RemoteClientHandle] struct {
	name    string
	mutex   sync.Mutex
	tiers   map[Priority]map[string]C
	watches map[string][]func()
	callers map[string]interop.CallerIdentity
}

// NewPriorityCallbackRegistry returns an empty registry. name is used in logs.
func NewPriorityCallbackRegistry[C interop.RemoteClientHandle](name string) *PriorityCallbackRegistry[C] {
	tiers := make(map[Priority]map[string]C, len(DispatchOrder))
	for _, p := range DispatchOrder {
		tiers[p] = make(map[string]C)
	}
	return &PriorityCallbackRegistry[C]{
		name:    name,
		tiers:   tiers,
		watches: make(map[string][]func()),
		callers: make(map[string]interop.CallerIdentity),
	}
}

// AddCallback inserts callback into the tier for priority. Adding a callback
// already present in that tier is a no-op. The caller identity of the first
// registration is kept.
func (r *PriorityCallbackRegistry[C]) AddCallback(callback C, priority Priority, caller interop.CallerIdentity) {
	if !interop.IsValidHandle(callback) {
		log.Warnf("%s: ignoring invalid callback", r.name)
		return
	}
	tier, found := r.tiers[priority]
	if !found {
		log.Warnf("%s: ignoring callback with invalid priority %s", r.name, priority)
		return
	}

	id := callback.HandleID()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, known := r.callers[id]; !known {
		r.callers[id] = caller
	}
	if _, present := tier[id]; present {
		log.Debugf("%s: callback %s already registered, priority=%s", r.name, id, priority)
		return
	}
	tier[id] = callback
	r.watches[id] = append(r.watches[id], callback.SubscribeLivenessLost(r.OnLivenessLost))

	log.Infof("%s: callback added, priority=%s, pid=%d, uid=%d", r.name, priority, caller.Pid, caller.UID)
}

// RemoveCallback removes callback from every tier. Unknown callbacks are ignored.
func (r *PriorityCallbackRegistry[C]) RemoveCallback(callback C) {
	if !interop.IsValidHandle(callback) {
		log.Warnf("%s: ignoring invalid callback", r.name)
		return
	}
	if r.remove(callback.HandleID()) {
		log.Infof("%s: callback %s removed", r.name, callback.HandleID())
	}
}

// OnLivenessLost removes the callback of a dead remote party from every tier.
func (r *PriorityCallbackRegistry[C]) OnLivenessLost(handle interop.RemoteClientHandle) {
	if !interop.IsValidHandle(handle) {
		log.Warnf("%s: liveness lost for an invalid handle", r.name)
		return
	}
	if r.remove(handle.HandleID()) {
		log.Warnf("%s: remote %s died, callback removed", r.name, handle.HandleID())
	} else {
		log.Warnf("%s: liveness lost for unknown handle %s", r.name, handle.HandleID())
	}
}

func (r *PriorityCallbackRegistry[C]) remove(id string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	removed := false
	for _, tier := range r.tiers {
		if _, present := tier[id]; present {
			delete(tier, id)
			removed = true
		}
	}
	for _, unwatch := range r.watches[id] {
		unwatch()
	}
	delete(r.watches, id)
	delete(r.callers, id)
	return removed
}

// Callbacks returns a snapshot of the tier for priority, ordered by handle identity.
func (r *PriorityCallbackRegistry[C]) Callbacks(priority Priority) []C {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	tier := r.tiers[priority]
	callbacks := make([]C, 0, len(tier))
	for _, cb := range tier {
		callbacks = append(callbacks, cb)
	}
	interop.SortByHandleID(callbacks)
	return callbacks
}

func (r *PriorityCallbackRegistry[C]) GetHighPriorityCallbacks() []C {
	return r.Callbacks(PriorityHigh)
}

func (r *PriorityCallbackRegistry[C]) GetDefaultPriorityCallbacks() []C {
	return r.Callbacks(PriorityDefault)
}

func (r *PriorityCallbackRegistry[C]) GetLowPriorityCallbacks() []C {
	return r.Callbacks(PriorityLow)
}

// FindCallerIdentity returns the identity recorded for callback, or the zero
// identity if it is not registered.
func (r *PriorityCallbackRegistry[C]) FindCallerIdentity(callback C) interop.CallerIdentity {
	if !interop.IsValidHandle(callback) {
		return interop.CallerIdentity{}
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.callers[callback.HandleID()]
}

// Len returns the number of registrations across all tiers.
func (r *PriorityCallbackRegistry[C]) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	n := 0
	for _, tier := range r.tiers {
		n += len(tier)
	}
	return n
}

// Name returns the registry name used in logs.
func (r *PriorityCallbackRegistry[C]) Name() string {
	return r.name
}
