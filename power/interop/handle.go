// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package interop

import (
	"reflect"
	"sort"
)

// RemoteClientHandle is an opaque reference to a remote party. Handles are
// compared and ordered by HandleID only; the transport behind them is not
// visible to the core.
type RemoteClientHandle interface {
	// HandleID returns the stable identity of the remote party. An empty
	// identity means the handle cannot be resolved.
	HandleID() string

	// SubscribeLivenessLost registers fn to be called once when the remote
	// party becomes unreachable. The returned function cancels the
	// subscription and is safe to call more than once.
	SubscribeLivenessLost(fn LivenessLostFunc) (unsubscribe func())
}

// LivenessLostFunc receives the handle whose remote party died.
type LivenessLostFunc func(handle RemoteClientHandle)

// CallerIdentity is the (pid, uid) pair supplied by a caller at registration
// time. It is kept for diagnostics only and never validated.
type CallerIdentity struct {
	Pid int32 `json:"pid"`
	UID int32 `json:"uid"`
}

// IsValidHandle reports whether h refers to a resolvable remote party.
func IsValidHandle(h RemoteClientHandle) bool {
	if h == nil {
		return false
	}
	if v := reflect.ValueOf(h); v.Kind() == reflect.Ptr && v.IsNil() {
		return false
	}
	return h.HandleID() != ""
}

// SortByHandleID orders handles by identity.
func SortByHandleID[H RemoteClientHandle](handles []H) {
	sort.Slice(handles, func(i, j int) bool {
		return handles[i].HandleID() < handles[j].HandleID()
	})
}
