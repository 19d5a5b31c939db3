// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultProbeInterval    = 5 * time.Second
	DefaultProbeTimeout     = 2 * time.Second
	DefaultProbeMaxFailures = 3
)

// ProbeFunc checks one client.
type ProbeFunc func(ctx context.Context, client *Client) error

// Monitor pings every client of a pool and disconnects the ones that fail
// maxFailures probes in a row.
type Monitor struct {
	pool        *Pool
	probe       ProbeFunc
	interval    time.Duration
	timeout     time.Duration
	maxFailures int

	mutex    sync.Mutex
	failures map[string]int
}

// NewMonitor returns a monitor probing with Client.Ping. Non-positive
// arguments select the defaults.
func NewMonitor(pool *Pool, interval, timeout time.Duration, maxFailures int) *Monitor {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	if maxFailures <= 0 {
		maxFailures = DefaultProbeMaxFailures
	}
	return &Monitor{
		pool:        pool,
		probe:       func(ctx context.Context, c *Client) error { return c.Ping(ctx) },
		interval:    interval,
		timeout:     timeout,
		maxFailures: maxFailures,
		failures:    make(map[string]int),
	}
}

// SetProbe replaces the probe function.
func (m *Monitor) SetProbe(probe ProbeFunc) {
	m.probe = probe
}

// Run probes every interval until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	log.Infof("Liveness monitor started, interval %v", m.interval)
	for {
		select {
		case <-ticker.C:
			m.CheckAll(ctx)
		case <-ctx.Done():
			log.Info("Liveness monitor stopped")
			return nil
		}
	}
}

// CheckAll probes every client concurrently and returns the ids that were
// disconnected by this round.
func (m *Monitor) CheckAll(ctx context.Context) []string {
	clients := m.pool.Clients()

	var g errgroup.Group
	var mutex sync.Mutex
	var dead []string

	for _, client := range clients {
		client := client
		g.Go(func() error {
			if m.check(ctx, client) {
				mutex.Lock()
				dead = append(dead, client.HandleID())
				mutex.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	m.forgetMissing(clients)

	for _, id := range dead {
		m.pool.Disconnect(id)
	}
	return dead
}

// check returns true when the client reached maxFailures.
func (m *Monitor) check(ctx context.Context, client *Client) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.probe(probeCtx, client)
	id := client.HandleID()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err == nil {
		delete(m.failures, id)
		return false
	}

	m.failures[id]++
	log.WithError(err).Warnf("Probe %d/%d of %s failed", m.failures[id], m.maxFailures, id)
	if m.failures[id] < m.maxFailures {
		return false
	}
	delete(m.failures, id)
	return true
}

func (m *Monitor) forgetMissing(clients []*Client) {
	present := make(map[string]bool, len(clients))
	for _, client := range clients {
		present[client.HandleID()] = true
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	for id := range m.failures {
		if !present[id] {
			delete(m.failures, id)
		}
	}
}
