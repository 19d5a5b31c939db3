// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package metering

import (
	"time"
)

// Monotime returns the current time in nanoseconds.
func Monotime() int64 {
	// Wall and monotonic clocks get out of sync inside containers: https://github.com/golang/go/issues/27090
	return time.Now().UnixNano()
}

// DispatchProfiler measures one dispatch stage against the time available to it.
type DispatchProfiler struct {
	Stage        string
	NumCallbacks int
	AvailableNs  int64
	startTimeNs  int64
	endTimeNs    int64
}

func (p *DispatchProfiler) Start() {
	p.startTimeNs = Monotime()
}

func (p *DispatchProfiler) Stop() {
	p.endTimeNs = Monotime()
}

// CalculateDispatchMs returns the stage duration in milliseconds, capped at
// the available time, and whether the stage ran out of time.
func (p *DispatchProfiler) CalculateDispatchMs() (int64, bool) {
	var durationNs = p.endTimeNs - p.startTimeNs
	var durationMs int64
	timedOut := false

	if p.NumCallbacks == 0 || p.AvailableNs < 0 || durationNs < 0 {
		durationMs = 0
	} else if durationNs > p.AvailableNs {
		durationMs = p.AvailableNs / time.Millisecond.Nanoseconds()
		timedOut = true
	} else {
		durationMs = durationNs / time.Millisecond.Nanoseconds()
	}

	return durationMs, timedOut
}
