// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package core provides the registries that track remote parties of the power
service.

# Aggregation

MultiInvokerAggregator combines up to eight boolean parameters submitted by
many callers into one result. Each invoker (a process) may carry several
sub-clients identified by AppID. Submissions are stored as deltas from the
configured defaults:

	delta  = input XOR defaults
	result = OR of every live delta
	onChange(result XOR defaults)

Per index counters make withdrawal exact: bit i of the result stays set as
long as one contributor still has it set. While an invoker contributes a
non-zero delta the aggregator watches the liveness of its remote handle and
drops the invoker's contribution when the remote dies.

# Callback registries

PriorityCallbackRegistry keeps callbacks of one kind in HIGH, DEFAULT and LOW
tiers. FlatCallbackRegistry is the broadcast-only variant without tiers.
Registrations are removed explicitly or when the remote party dies.

Registry getters return snapshots, so dispatch never holds a registry lock
while calling out. The aggregator is the exception: its change callback runs
under the aggregator lock, which keeps notifications ordered with mutations.
*/
package core
