// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
powerd emits internal logs only: operational logs written to stderr through
logrus. Registration and removal of callbacks, liveness loss of remote
parties, dispatch timing and shutdown or suspend decisions are logged there.

The level is set once during startup with SetLogLevel, which also installs
InternalFormatter.
*/
package logging
