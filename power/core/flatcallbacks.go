// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"sync"

	"go.powermgr.io/power/interop"

	log "github.com/sirupsen/logrus"
)

type flatEntry[C interop.RemoteClientHandle] struct {
	callback C
	caller   interop.CallerIdentity
	unwatch  func()
}

// FlatCallbackRegistry keeps broadcast-only callbacks with the identity of
// the caller that registered them.
type FlatCallbackRegistry[C interop.RemoteClientHandle] struct {
	name    string
	mutex   sync.Mutex
	entries map[string]*flatEntry[C]
}

// NewFlatCallbackRegistry returns an empty registry. name is used in logs.
func NewFlatCallbackRegistry[C interop.RemoteClientHandle](name string) *FlatCallbackRegistry[C] {
	return &FlatCallbackRegistry[C]{
		name:    name,
		entries: make(map[string]*flatEntry[C]),
	}
}

// AddCallback registers callback. Registering it again changes nothing.
func (r *FlatCallbackRegistry[C]) AddCallback(callback C, caller interop.CallerIdentity) {
	if !interop.IsValidHandle(callback) {
		log.Warnf("%s: ignoring invalid callback", r.name)
		return
	}
	id := callback.HandleID()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, present := r.entries[id]; present {
		return
	}
	r.entries[id] = &flatEntry[C]{
		callback: callback,
		caller:   caller,
		unwatch:  callback.SubscribeLivenessLost(r.OnLivenessLost),
	}
	log.Infof("%s: callback added, pid=%d, uid=%d", r.name, caller.Pid, caller.UID)
}

// RemoveCallback unregisters callback and stops watching its liveness.
func (r *FlatCallbackRegistry[C]) RemoveCallback(callback C) {
	if !interop.IsValidHandle(callback) {
		log.Warnf("%s: ignoring invalid callback", r.name)
		return
	}
	if !r.remove(callback.HandleID()) {
		log.Warnf("%s: callback %s not found", r.name, callback.HandleID())
	}
}

// OnLivenessLost removes the entry of the dead remote party only.
func (r *FlatCallbackRegistry[C]) OnLivenessLost(handle interop.RemoteClientHandle) {
	if !interop.IsValidHandle(handle) {
		log.Warnf("%s: liveness lost for an invalid handle", r.name)
		return
	}
	if r.remove(handle.HandleID()) {
		log.Warnf("%s: remote %s died, callback removed", r.name, handle.HandleID())
	}
}

func (r *FlatCallbackRegistry[C]) remove(id string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	entry, present := r.entries[id]
	if !present {
		return false
	}
	entry.unwatch()
	delete(r.entries, id)
	return true
}

// Notify calls notify for every registered callback. The entries are copied
// under the lock and called after it is released.
func (r *FlatCallbackRegistry[C]) Notify(notify func(C)) {
	r.mutex.Lock()
	snapshot := make([]flatEntry[C], 0, len(r.entries))
	for _, e := range r.entries {
		snapshot = append(snapshot, *e)
	}
	r.mutex.Unlock()

	for _, e := range snapshot {
		if !interop.IsValidHandle(e.callback) {
			log.Errorf("%s: null callback, pid=%d, uid=%d", r.name, e.caller.Pid, e.caller.UID)
			continue
		}
		log.Infof("%s: notifying pid=%d, uid=%d", r.name, e.caller.Pid, e.caller.UID)
		notify(e.callback)
	}
}

// FindCallerIdentity returns the identity recorded for callback, or the zero
// identity if it is not registered.
func (r *FlatCallbackRegistry[C]) FindCallerIdentity(callback C) interop.CallerIdentity {
	if !interop.IsValidHandle(callback) {
		return interop.CallerIdentity{}
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if e, present := r.entries[callback.HandleID()]; present {
		return e.caller
	}
	return interop.CallerIdentity{}
}

// Len returns the number of registered callbacks.
func (r *FlatCallbackRegistry[C]) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.entries)
}
