// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"time"

	"go.powermgr.io/power/core"
	"go.powermgr.io/power/interop"
	"go.powermgr.io/power/metering"

	log "github.com/sirupsen/logrus"
)

// Kind is the invocation contract of a registry.
type Kind int

const (
	KindTakeOver Kind = iota
	KindSync
	KindAsync
)

func (k Kind) String() string {
	switch k {
	case KindTakeOver:
		return "takeover"
	case KindSync:
		return "sync"
	case KindAsync:
		return "async"
	}
	return "unknown"
}

// Tiers is the read side of a priority registry.
type Tiers[C interop.RemoteClientHandle] interface {
	Name() string
	Callbacks(priority core.Priority) []C
}

// TakeOver runs the takeover protocol and reports whether any tier took over.
func TakeOver[C interop.RemoteClientHandle](tiers Tiers[C], call func(C) bool) bool {
	for _, priority := range core.DispatchOrder {
		tierResult := false
		for _, cb := range tiers.Callbacks(priority) {
			var took bool
			timed(tiers.Name(), KindTakeOver, priority, cb, func() { took = call(cb) })
			tierResult = tierResult || took
		}
		if tierResult {
			log.Infof("%s: taken over at priority %s", tiers.Name(), priority)
			return true
		}
	}
	return false
}

// Sync calls every callback, blocking on each, and returns how many were called.
func Sync[C interop.RemoteClientHandle](tiers Tiers[C], call func(C)) int {
	return visitAll(tiers, KindSync, call)
}

// Async calls every callback like Sync. Remote completion is not awaited here.
func Async[C interop.RemoteClientHandle](tiers Tiers[C], call func(C)) int {
	return visitAll(tiers, KindAsync, call)
}

func visitAll[C interop.RemoteClientHandle](tiers Tiers[C], kind Kind, call func(C)) int {
	called := 0
	for _, priority := range core.DispatchOrder {
		for _, cb := range tiers.Callbacks(priority) {
			timed(tiers.Name(), kind, priority, cb, func() { call(cb) })
			called++
		}
	}
	return called
}

func timed(name string, kind Kind, priority core.Priority, cb interop.RemoteClientHandle, fn func()) {
	start := metering.Monotime()
	fn()
	elapsed := time.Duration(metering.Monotime() - start)
	log.WithField("priority", priority.String()).
		WithField("kind", kind.String()).
		Debugf("%s: callback %s returned after %d ms", name, cb.HandleID(), elapsed.Milliseconds())
}
