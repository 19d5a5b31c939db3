// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package dispatch drives a priority callback registry through one of the three
dispatch protocols.

# Tiers

Every protocol visits the HIGH tier, then DEFAULT, then LOW. Each tier is
snapshotted and the registry lock is released before any remote party is
called, so a callback may register or unregister while it is being invoked.

# Protocols

TakeOver calls every callback of a tier and ORs the results. A tier with a
positive result ends the pass; lower tiers are not visited.

Sync calls every callback of every tier, blocking on each.

Async has the same iteration as Sync. The remote party may finish its work
after returning; how long to wait for it is up to the caller.

None of the protocols has a timeout: a remote party that never returns blocks
the dispatching goroutine.
*/
package dispatch
