// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package remote is the HTTP transport to registered parties. A Client is
// the handle the registries and aggregators hold; its liveness is decided by
// the Pool and the Monitor.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"go.powermgr.io/power/interop"

	log "github.com/sirupsen/logrus"
)

// Client calls back a remote party at its callback URL.
type Client struct {
	ID  uuid.UUID
	URL string

	httpClient *http.Client

	mutex       sync.Mutex
	subscribers map[int]interop.LivenessLostFunc
	nextToken   int
	dead        bool
}

func newClient(url string, httpClient *http.Client) *Client {
	return &Client{
		ID:          uuid.New(),
		URL:         url,
		httpClient:  httpClient,
		subscribers: make(map[int]interop.LivenessLostFunc),
	}
}

func (c *Client) HandleID() string {
	return c.ID.String()
}

// SubscribeLivenessLost registers fn to run once when the client dies. If
// the client is already dead fn runs on another goroutine, so callers may
// subscribe while holding their own locks.
func (c *Client) SubscribeLivenessLost(fn interop.LivenessLostFunc) func() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.dead {
		go fn(c)
		return func() {}
	}

	token := c.nextToken
	c.nextToken++
	c.subscribers[token] = fn

	return func() {
		c.mutex.Lock()
		defer c.mutex.Unlock()
		delete(c.subscribers, token)
	}
}

// Alive reports whether the client has not been declared dead.
func (c *Client) Alive() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return !c.dead
}

// markDead fires every liveness subscription once. It returns false if the
// client was already dead.
func (c *Client) markDead() bool {
	c.mutex.Lock()
	if c.dead {
		c.mutex.Unlock()
		return false
	}
	c.dead = true
	subscribers := c.subscribers
	c.subscribers = make(map[int]interop.LivenessLostFunc)
	c.mutex.Unlock()

	for _, fn := range subscribers {
		fn(c)
	}
	return true
}

// Ping checks that the remote party answers.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+PathPing, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(ioutil.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("ping %s: %s", c.URL, resp.Status)
	}
	return nil
}

func (c *Client) OnTakeOverShutdown(isReboot bool) bool {
	return c.takeOver(PathTakeOverShutdown, Event{IsReboot: isReboot})
}

func (c *Client) OnSyncShutdown(isReboot bool) {
	c.notify(PathSyncShutdown, Event{IsReboot: isReboot})
}

func (c *Client) OnAsyncShutdown(isReboot bool) {
	c.notify(PathAsyncShutdown, Event{IsReboot: isReboot})
}

func (c *Client) OnTakeOverSuspend(reason interop.SuspendReason) bool {
	return c.takeOver(PathTakeOverSuspend, Event{Reason: reason.String()})
}

func (c *Client) OnSyncSleep(forceSleep bool) {
	c.notify(PathSyncSleep, Event{ForceSleep: forceSleep})
}

func (c *Client) OnSyncWakeup(forceSleep bool) {
	c.notify(PathSyncWakeup, Event{ForceSleep: forceSleep})
}

func (c *Client) OnAsyncWakeup() {
	c.notify(PathAsyncWakeup, Event{})
}

// takeOver treats any transport or decoding failure as a refusal.
func (c *Client) takeOver(path string, event Event) bool {
	var resp TakeOverResponse
	if err := c.post(path, event, &resp); err != nil {
		log.WithError(err).Warnf("Takeover call %s to %s failed", path, c.HandleID())
		return false
	}
	return resp.TakeOver
}

func (c *Client) notify(path string, event Event) {
	if err := c.post(path, event, nil); err != nil {
		log.WithError(err).Warnf("Callback %s to %s failed", path, c.HandleID())
	}
}

func (c *Client) post(path string, event Event, out interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Post(c.URL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(ioutil.Discard, resp.Body)
		return fmt.Errorf("%s%s: %s", c.URL, path, resp.Status)
	}
	if out == nil {
		_, _ = io.Copy(ioutil.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
