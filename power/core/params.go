// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"errors"
	"strconv"
	"strings"
)

// MaxParamNumber is the capacity of a ParameterSet.
const MaxParamNumber = 8

// ErrTooManyParams is returned when more than MaxParamNumber flags are given.
var ErrTooManyParams = errors.New("ErrTooManyParams")

// ParameterSet is a fixed capacity set of boolean flags stored as a bitmask.
// Index 0 is the least significant bit.
type ParameterSet uint8

// ToParameterSet packs flags into a ParameterSet. The first flag becomes the
// most significant of the given ones, so ToParameterSet(true, false) == 0b10.
func ToParameterSet(flags ...bool) (ParameterSet, error) {
	if len(flags) > MaxParamNumber {
		return 0, ErrTooManyParams
	}
	var p ParameterSet
	for _, f := range flags {
		p <<= 1
		if f {
			p |= 1
		}
	}
	return p, nil
}

// Test reports whether flag i is set.
func (p ParameterSet) Test(i int) bool {
	return i >= 0 && i < MaxParamNumber && p&(1<<uint(i)) != 0
}

// With returns a copy of p with flag i set to v.
func (p ParameterSet) With(i int, v bool) ParameterSet {
	if i < 0 || i >= MaxParamNumber {
		return p
	}
	if v {
		return p | 1<<uint(i)
	}
	return p &^ (1 << uint(i))
}

// Xor returns the flags that differ between p and o.
func (p ParameterSet) Xor(o ParameterSet) ParameterSet { return p ^ o }

// And returns the flags set in both p and o.
func (p ParameterSet) And(o ParameterSet) ParameterSet { return p & o }

// IsZero reports whether no flag is set.
func (p ParameterSet) IsZero() bool { return p == 0 }

// Bools unpacks the first n flags, index 0 first.
func (p ParameterSet) Bools(n int) []bool {
	if n > MaxParamNumber {
		n = MaxParamNumber
	}
	out := make([]bool, n)
	for i := range out {
		out[i] = p.Test(i)
	}
	return out
}

// String renders all flags, index 7 leftmost.
func (p ParameterSet) String() string {
	s := strconv.FormatUint(uint64(p), 2)
	return strings.Repeat("0", MaxParamNumber-len(s)) + s
}

// Delta is a ParameterSet expressed relative to a baseline: a set bit means
// the flag differs from the baseline. A zero Delta agrees with the baseline.
type Delta ParameterSet

// DeltaFrom expresses p relative to baseline.
func DeltaFrom(p, baseline ParameterSet) Delta {
	return Delta(p ^ baseline)
}

// Apply resolves the delta against baseline.
func (d Delta) Apply(baseline ParameterSet) ParameterSet {
	return ParameterSet(d) ^ baseline
}

func (d Delta) Test(i int) bool { return ParameterSet(d).Test(i) }
func (d Delta) IsZero() bool    { return d == 0 }
func (d Delta) String() string  { return ParameterSet(d).String() }
