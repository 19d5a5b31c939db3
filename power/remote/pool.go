// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

var ErrInvalidCallbackURL = errors.New("ErrInvalidCallbackURL")

// Pool owns the live clients, one per callback URL.
type Pool struct {
	httpClient *http.Client

	mutex sync.Mutex
	byURL map[string]*Client
	byID  map[string]*Client
}

// NewPool returns an empty pool. A nil httpClient selects http.DefaultClient.
func NewPool(httpClient *http.Client) *Pool {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Pool{
		httpClient: httpClient,
		byURL:      make(map[string]*Client),
		byID:       make(map[string]*Client),
	}
}

// Connect returns the live client for callbackURL, creating it if needed.
func (p *Pool) Connect(callbackURL string) (*Client, error) {
	parsed, err := url.Parse(callbackURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCallbackURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCallbackURL, callbackURL)
	}
	normalized := parsed.Scheme + "://" + parsed.Host + strings.TrimRight(parsed.Path, "/")

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if client, found := p.byURL[normalized]; found {
		return client, nil
	}
	client := newClient(normalized, p.httpClient)
	p.byURL[normalized] = client
	p.byID[client.HandleID()] = client
	log.Infof("Client %s connected at %s", client.HandleID(), normalized)
	return client, nil
}

// Lookup returns the live client with the given id.
func (p *Pool) Lookup(id string) (*Client, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	client, found := p.byID[id]
	return client, found
}

// Disconnect declares the client dead and drops it from the pool. Every
// registry and aggregator watching it is told once.
func (p *Pool) Disconnect(id string) bool {
	p.mutex.Lock()
	client, found := p.byID[id]
	if found {
		delete(p.byID, id)
		delete(p.byURL, client.URL)
	}
	p.mutex.Unlock()

	if !found {
		return false
	}
	log.Warnf("Client %s at %s disconnected", id, client.URL)
	return client.markDead()
}

// Clients returns the live clients ordered by id.
func (p *Pool) Clients() []*Client {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	clients := make([]*Client, 0, len(p.byID))
	for _, client := range p.byID {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].HandleID() < clients[j].HandleID() })
	return clients
}

// Len returns the number of live clients.
func (p *Pool) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.byID)
}
