// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package policy keeps the named aggregators that remote parties vote on.
package policy

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.powermgr.io/power/core"

	log "github.com/sirupsen/logrus"
)

var (
	ErrUnknownPolicy   = errors.New("ErrUnknownPolicy")
	ErrDuplicatePolicy = errors.New("ErrDuplicatePolicy")
	ErrInvalidPolicy   = errors.New("ErrInvalidPolicy")
)

// Config declares one policy. Defaults[i] is the default of parameter i.
type Config struct {
	Name     string `yaml:"name"`
	Params   int    `yaml:"params"`
	Defaults []bool `yaml:"defaults"`
}

// ChangeListener is told the effective value of a policy after every vote.
// It runs while the policy is locked and must not call back into it.
type ChangeListener func(name string, effective core.ParameterSet)

// FromBools builds a parameter set where flags[i] is parameter i.
func FromBools(flags []bool) (core.ParameterSet, error) {
	if len(flags) > core.MaxParamNumber {
		return 0, core.ErrTooManyParams
	}
	var p core.ParameterSet
	for i, v := range flags {
		p = p.With(i, v)
	}
	return p, nil
}

// Registry maps policy names to aggregators.
type Registry struct {
	mutex    sync.RWMutex
	policies map[string]*core.MultiInvokerAggregator
	listener ChangeListener
}

// NewRegistry returns an empty registry. listener may be nil.
func NewRegistry(listener ChangeListener) *Registry {
	return &Registry{
		policies: make(map[string]*core.MultiInvokerAggregator),
		listener: listener,
	}
}

// Add creates the aggregator for cfg.
func (r *Registry) Add(cfg Config) (*core.MultiInvokerAggregator, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidPolicy)
	}
	if cfg.Params <= 0 || cfg.Params > core.MaxParamNumber {
		return nil, fmt.Errorf("%w: %s has %d params, want 1..%d", ErrInvalidPolicy, cfg.Name, cfg.Params, core.MaxParamNumber)
	}
	if len(cfg.Defaults) > cfg.Params {
		return nil, fmt.Errorf("%w: %s has more defaults than params", ErrInvalidPolicy, cfg.Name)
	}
	defaults, err := FromBools(cfg.Defaults)
	if err != nil {
		return nil, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, present := r.policies[cfg.Name]; present {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePolicy, cfg.Name)
	}

	name := cfg.Name
	listener := r.listener
	aggregator := core.NewMultiInvokerAggregator(cfg.Params, defaults, func(effective core.ParameterSet) {
		log.WithField("policy", name).Debugf("Effective value %s", effective)
		if listener != nil {
			listener(name, effective)
		}
	})
	r.policies[name] = aggregator
	log.Infof("Policy %s added, params=%d, defaults=%s", name, cfg.Params, defaults)
	return aggregator, nil
}

// Get returns the aggregator registered under name.
func (r *Registry) Get(name string) (*core.MultiInvokerAggregator, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	aggregator, present := r.policies[name]
	if !present {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPolicy, name)
	}
	return aggregator, nil
}

// Names returns the registered policy names in sorted order.
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load adds every policy in configs and stops at the first error.
func (r *Registry) Load(configs []Config) error {
	for _, cfg := range configs {
		if _, err := r.Add(cfg); err != nil {
			return err
		}
	}
	return nil
}
