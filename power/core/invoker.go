// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"sort"
	"strings"
)

// InvokerID identifies one physical caller, usually its process id.
type InvokerID int32

// AppID distinguishes logical sub-clients of one invoker.
type AppID int32

// DefaultAppID makes the invoker's own id the submission key.
const DefaultAppID AppID = -1

// Invoker combines the submissions of the sub-clients of one caller. It is
// not safe for concurrent use; MultiInvokerAggregator provides locking.
type Invoker struct {
	paramCount  int
	submissions map[AppID]Delta
	sum         []uint64
	result      Delta
}

func newInvoker(paramCount int) *Invoker {
	return &Invoker{
		paramCount:  paramCount,
		submissions: make(map[AppID]Delta),
		sum:         make([]uint64, paramCount),
	}
}

// SetValue replaces the submission of appID and returns the invoker's new
// aggregate. An all-zero input withdraws the submission.
func (inv *Invoker) SetValue(appID AppID, input Delta) Delta {
	previous := inv.submissions[appID]
	inv.result = accumulate(inv.sum, inv.result, previous, input)

	if input.IsZero() {
		delete(inv.submissions, appID)
	} else {
		inv.submissions[appID] = input
	}
	return inv.result
}

// GetResult returns bit i set iff some sub-client has bit i set.
func (inv *Invoker) GetResult() Delta {
	return inv.result
}

// GetSum returns a copy of the per index contributor counts.
func (inv *Invoker) GetSum() []uint64 {
	return append([]uint64(nil), inv.sum...)
}

// Dump renders per index counts followed by each submission.
func (inv *Invoker) Dump() string {
	var b strings.Builder
	b.WriteString(dumpSums(inv.sum))

	ids := make([]AppID, 0, len(inv.submissions))
	for id := range inv.submissions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		fmt.Fprintf(&b, " %d: %s,", id, inv.submissions[id])
	}
	return strings.TrimSuffix(b.String(), ",")
}

// accumulate moves the contribution of one party from previous to current,
// updating counts in sum, and returns the recomputed aggregate.
func accumulate(sum []uint64, aggregate, previous, current Delta) Delta {
	for i := range sum {
		was, is := previous.Test(i), current.Test(i)
		switch {
		case was && !is:
			sum[i]--
		case !was && is:
			sum[i]++
		default:
			continue
		}
		aggregate = Delta(ParameterSet(aggregate).With(i, sum[i] > 0))
	}
	return aggregate
}

// dumpSums prints counts highest index first, matching ParameterSet.String.
func dumpSums(sum []uint64) string {
	parts := make([]string, 0, len(sum))
	for i := len(sum) - 1; i >= 0; i-- {
		parts = append(parts, fmt.Sprint(sum[i]))
	}
	return "sums:[" + strings.Join(parts, ", ") + "]"
}
