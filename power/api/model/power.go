// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

type ShutdownRequest struct {
	Reason string `json:"reason"`
	Reboot bool   `json:"reboot"`
}

type SuspendRequest struct {
	Reason string `json:"reason"`
	Force  bool   `json:"force"`
}

type SuspendResponse struct {
	Suspended bool `json:"suspended"`
}

type WakeupRequest struct {
	Force bool `json:"force"`
}

type WakeupResponse struct {
	WokeUp bool `json:"wokeUp"`
}
