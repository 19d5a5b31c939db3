// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

// RegisterCallbackRequest is the body of POST /callbacks/{kind}.
// Priority is one of HIGH, DEFAULT or LOW and defaults to DEFAULT. It is
// ignored for wakeup callbacks.
type RegisterCallbackRequest struct {
	CallbackURL string `json:"callbackUrl"`
	Priority    string `json:"priority,omitempty"`
	Pid         int32  `json:"pid"`
	UID         int32  `json:"uid"`
}

// RegisterCallbackResponse carries the identity the caller uses for later
// requests.
type RegisterCallbackResponse struct {
	ClientID string `json:"clientId"`
}
