// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

// SetPolicyRequest is one invoker's vote. Params[i] is parameter i. A
// missing AppID means the invoker votes for itself.
type SetPolicyRequest struct {
	ClientID  string `json:"clientId"`
	InvokerID int32  `json:"invokerId"`
	AppID     *int32 `json:"appId,omitempty"`
	Params    []bool `json:"params"`
}

// PolicyResponse describes the current state of a policy. Result is the
// aggregate delta from the defaults; Effective applies it to them.
type PolicyResponse struct {
	Name      string `json:"name"`
	Result    string `json:"result"`
	Defaults  []bool `json:"defaults"`
	Effective []bool `json:"effective"`
}

type PolicyDumpResponse struct {
	Name string `json:"name"`
	Dump string `json:"dump"`
}

type PolicyListResponse struct {
	Policies []string `json:"policies"`
}
