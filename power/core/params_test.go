// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToParameterSetOrder(t *testing.T) {
	p, err := ToParameterSet(true, false, true)
	require.NoError(t, err)
	assert.Equal(t, ParameterSet(0b101), p)
	assert.True(t, p.Test(0))
	assert.False(t, p.Test(1))
	assert.True(t, p.Test(2))
}

func TestToParameterSetTooMany(t *testing.T) {
	_, err := ToParameterSet(make([]bool, MaxParamNumber+1)...)
	assert.True(t, errors.Is(err, ErrTooManyParams))
}

func TestParameterSetString(t *testing.T) {
	assert.Equal(t, "10101010", ParameterSet(0b10101010).String())
	assert.Equal(t, "00000001", ParameterSet(1).String())
}

func TestParameterSetWithAndBools(t *testing.T) {
	p := ParameterSet(0).With(1, true).With(3, true).With(1, false)
	assert.Equal(t, ParameterSet(0b1000), p)
	assert.Equal(t, []bool{false, false, false, true}, p.Bools(4))
	assert.Equal(t, p, p.With(MaxParamNumber, true))
}

func TestDeltaRoundTrip(t *testing.T) {
	defaults := ParameterSet(0b0110)
	d := DeltaFrom(0b0110, defaults)
	assert.True(t, d.IsZero())

	d = DeltaFrom(0b0011, defaults)
	assert.Equal(t, Delta(0b0101), d)
	assert.Equal(t, ParameterSet(0b0011), d.Apply(defaults))
}
