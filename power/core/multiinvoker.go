// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.powermgr.io/power/interop"

	log "github.com/sirupsen/logrus"
)

// ChangeFunc receives the effective parameters (aggregate resolved against
// the defaults) after every change. It runs while the aggregator lock is
// held: it must not call back into the same aggregator, or it deadlocks.
type ChangeFunc func(effective ParameterSet)

// MultiInvokerAggregator combines boolean parameters submitted by many
// independent callers into one result. Submissions are stored as deltas
// from the defaults, so bit i of the result is set iff at least one live
// submission disagrees with the default at index i.
type MultiInvokerAggregator struct {
	mutex         sync.Mutex
	paramCount    int
	defaultParams ParameterSet
	invokers      map[InvokerID]*Invoker
	byHandle      map[string]map[InvokerID]struct{}
	handles       map[InvokerID]*watchedHandle
	sum           []uint64
	result        Delta
	onChange      ChangeFunc
}

type watchedHandle struct {
	handle  interop.RemoteClientHandle
	unwatch func()
}

// NewMultiInvokerAggregator returns an empty aggregator. paramCount is
// clamped to MaxParamNumber.
func NewMultiInvokerAggregator(paramCount int, defaults ParameterSet, onChange ChangeFunc) *MultiInvokerAggregator {
	if paramCount > MaxParamNumber {
		paramCount = MaxParamNumber
	}
	if paramCount < 0 {
		paramCount = 0
	}
	return &MultiInvokerAggregator{
		paramCount:    paramCount,
		defaultParams: defaults,
		invokers:      make(map[InvokerID]*Invoker),
		byHandle:      make(map[string]map[InvokerID]struct{}),
		handles:       make(map[InvokerID]*watchedHandle),
		sum:           make([]uint64, paramCount),
		onChange:      onChange,
	}
}

// ParamCount returns the number of parameters tracked.
func (a *MultiInvokerAggregator) ParamCount() int {
	return a.paramCount
}

// Defaults returns the baseline parameters.
func (a *MultiInvokerAggregator) Defaults() ParameterSet {
	return a.defaultParams
}

// Set records input as the submission of (invokerID, appID). handle is the
// remote party of the invoker; the aggregator watches its liveness while the
// invoker contributes a non-zero delta.
func (a *MultiInvokerAggregator) Set(handle interop.RemoteClientHandle, invokerID InvokerID, appID AppID, input ParameterSet) {
	if !interop.IsValidHandle(handle) {
		log.Warnf("Ignoring parameters from invoker %d: invalid handle", invokerID)
		return
	}
	delta := DeltaFrom(input, a.defaultParams)

	a.mutex.Lock()
	defer a.mutex.Unlock()

	inv, found := a.invokers[invokerID]
	if !found {
		inv = newInvoker(a.paramCount)
		a.invokers[invokerID] = inv
		a.handles[invokerID] = &watchedHandle{handle: handle}
	}

	key := appID
	if key == DefaultAppID {
		key = AppID(invokerID)
	}

	previous := inv.GetResult()
	result := inv.SetValue(key, delta)
	a.result = accumulate(a.sum, a.result, previous, result)

	log.Infof("Invoker %d app %d: previous %s, result %s", invokerID, key, previous, result)

	watched := a.handles[invokerID]
	switch {
	case previous.IsZero() && !result.IsZero():
		a.watchUnsafe(invokerID, watched)
	case !previous.IsZero() && result.IsZero():
		a.unwatchUnsafe(invokerID, watched)
	}

	log.Debugf("Current invokers: %s", a.dumpUnsafe())
	a.notifyUnsafe()
}

// OnLivenessLost drops every invoker backed by handle and reports the new
// result once if anything was removed.
func (a *MultiInvokerAggregator) OnLivenessLost(handle interop.RemoteClientHandle) {
	if !interop.IsValidHandle(handle) {
		log.Warn("Liveness lost for an invalid handle")
		return
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	owners := a.byHandle[handle.HandleID()]
	if len(owners) == 0 {
		log.Warnf("Liveness lost for unknown handle %s", handle.HandleID())
		return
	}

	ids := make([]InvokerID, 0, len(owners))
	for id := range owners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	removed := false
	for _, id := range ids {
		log.Infof("Remote of invoker %d died", id)
		removed = a.removeInvokerUnsafe(id) || removed
	}
	if removed {
		log.Debugf("Current invokers: %s", a.dumpUnsafe())
		a.notifyUnsafe()
	}
}

// onInvokerDied is the liveness subscription of a single invoker. Other
// invokers sharing the same handle hold their own subscription.
func (a *MultiInvokerAggregator) onInvokerDied(invokerID InvokerID) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if !a.removeInvokerUnsafe(invokerID) {
		return
	}
	log.Infof("Remote of invoker %d died", invokerID)
	log.Debugf("Current invokers: %s", a.dumpUnsafe())
	a.notifyUnsafe()
}

// RemoveInvoker drops every submission of invokerID. It returns false if the
// invoker is unknown.
func (a *MultiInvokerAggregator) RemoveInvoker(invokerID InvokerID) bool {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.removeInvokerUnsafe(invokerID)
}

// GetResult returns the aggregate delta.
func (a *MultiInvokerAggregator) GetResult() Delta {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.result
}

// Effective returns the aggregate resolved against the defaults, the same
// value passed to ChangeFunc.
func (a *MultiInvokerAggregator) Effective() ParameterSet {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.result.Apply(a.defaultParams)
}

// Dump renders per index counts and per invoker detail.
func (a *MultiInvokerAggregator) Dump() string {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.dumpUnsafe()
}

func (a *MultiInvokerAggregator) removeInvokerUnsafe(invokerID InvokerID) bool {
	inv, found := a.invokers[invokerID]
	if !found {
		return false
	}

	a.result = accumulate(a.sum, a.result, inv.GetResult(), 0)

	if watched := a.handles[invokerID]; watched != nil {
		a.unwatchUnsafe(invokerID, watched)
	}
	delete(a.handles, invokerID)
	delete(a.invokers, invokerID)
	return true
}

func (a *MultiInvokerAggregator) watchUnsafe(invokerID InvokerID, watched *watchedHandle) {
	id := watched.handle.HandleID()
	owners, found := a.byHandle[id]
	if !found {
		owners = make(map[InvokerID]struct{})
		a.byHandle[id] = owners
	}
	owners[invokerID] = struct{}{}
	watched.unwatch = watched.handle.SubscribeLivenessLost(func(interop.RemoteClientHandle) {
		a.onInvokerDied(invokerID)
	})
}

func (a *MultiInvokerAggregator) unwatchUnsafe(invokerID InvokerID, watched *watchedHandle) {
	if watched.unwatch != nil {
		watched.unwatch()
		watched.unwatch = nil
	}
	id := watched.handle.HandleID()
	if owners, found := a.byHandle[id]; found {
		delete(owners, invokerID)
		if len(owners) == 0 {
			delete(a.byHandle, id)
		}
	}
}

func (a *MultiInvokerAggregator) notifyUnsafe() {
	if a.onChange != nil {
		a.onChange(a.result.Apply(a.defaultParams))
	}
}

func (a *MultiInvokerAggregator) dumpUnsafe() string {
	ids := make([]InvokerID, 0, len(a.invokers))
	for id := range a.invokers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d: {%s}", id, a.invokers[id].Dump()))
	}

	dump := dumpSums(a.sum)
	if len(parts) > 0 {
		dump += " " + strings.Join(parts, ", ")
	}
	return dump
}
