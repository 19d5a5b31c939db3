// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"errors"
	"fmt"
	"strings"
)

// Priority selects the tier a callback is registered in.
type Priority uint32

const (
	PriorityLow Priority = iota
	PriorityDefault
	PriorityHigh
)

// ErrInvalidPriority is returned when a priority name cannot be parsed.
var ErrInvalidPriority = errors.New("ErrInvalidPriority")

// DispatchOrder lists the tiers in the order they are dispatched.
var DispatchOrder = []Priority{PriorityHigh, PriorityDefault, PriorityLow}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityDefault:
		return "DEFAULT"
	case PriorityHigh:
		return "HIGH"
	}
	return fmt.Sprintf("Priority(%d)", uint32(p))
}

// Valid reports whether p names one of the three tiers.
func (p Priority) Valid() bool {
	return p <= PriorityHigh
}

// ParsePriority accepts the tier names case-insensitively. An empty name is
// the default tier.
func ParsePriority(name string) (Priority, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "LOW":
		return PriorityLow, nil
	case "", "DEFAULT":
		return PriorityDefault, nil
	case "HIGH":
		return PriorityHigh, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, name)
}
