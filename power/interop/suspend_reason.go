// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package interop

import "fmt"

// SuspendReason describes why the device is suspending.
type SuspendReason uint32

const (
	SuspendReasonApplication SuspendReason = iota
	SuspendReasonDeviceAdmin
	SuspendReasonTimeout
	SuspendReasonLid
	SuspendReasonPowerKey
	SuspendReasonHDMI
	SuspendReasonSleepKey
)

var suspendReasonNames = map[SuspendReason]string{
	SuspendReasonApplication: "application",
	SuspendReasonDeviceAdmin: "device_admin",
	SuspendReasonTimeout:     "timeout",
	SuspendReasonLid:         "lid",
	SuspendReasonPowerKey:    "power_key",
	SuspendReasonHDMI:        "hdmi",
	SuspendReasonSleepKey:    "sleep_key",
}

func (r SuspendReason) String() string {
	if name, ok := suspendReasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("SuspendReason(%d)", uint32(r))
}

// ParseSuspendReason maps a reason name back to its value.
func ParseSuspendReason(name string) (SuspendReason, error) {
	for r, n := range suspendReasonNames {
		if n == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown suspend reason %q", name)
}
