// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

const (
	errUnknownCallbackKind  = "UnknownCallbackKind"
	errInvalidPriority      = "InvalidPriority"
	errInvalidCallbackURL   = "InvalidCallbackURL"
	errClientNotFound       = "ClientNotFound"
	errShutdownTakenOver    = "ShutdownTakenOver"
	errShutdownInProgress   = "ShutdownInProgress"
	errInvalidSuspendReason = "InvalidSuspendReason"
	errPolicyNotFound       = "PolicyNotFound"
	errInvokerNotFound      = "InvokerNotFound"
	errInvalidInvokerID     = "InvalidInvokerID"
	errTooManyParams        = "TooManyParams"
)
