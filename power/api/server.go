// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package api serves the HTTP control surface of powerd.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi"

	log "github.com/sirupsen/logrus"
)

const version1 = "/v1"

// Server is the power API server
type Server struct {
	address  string
	server   *http.Server
	listener net.Listener
}

// NewServer creates a new power API server listening on address.
//
// Unlike net/http server's ListenAndServe, we separate Listen()
// and Serve(), so that the bound port is known before serving starts.
func NewServer(address string, deps Dependencies) *Server {
	router := chi.NewRouter()
	router.Mount(version1, NewRouter(deps))

	return &Server{
		address: address,
		server:  &http.Server{Handler: router},
	}
}

// Listen binds the listening socket.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	s.listener = ln
	s.address = ln.Addr().String()
	log.Infof("Power API server listening on %s", s.address)
	return nil
}

func (s *Server) IsListening() bool {
	return s.listener != nil
}

// Serve requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	errors := make(chan error, 1)
	go func() {
		errors <- s.server.Serve(s.listener)
	}()

	select {
	case err := <-errors:
		return err
	case <-ctx.Done():
		if err := s.server.Shutdown(context.Background()); err != nil {
			log.WithError(err).Warn("Power API server shutdown failed")
			return err
		}
		log.Info("Power API server closed")
		return nil
	}
}

// Address is the server's listening address
func (s *Server) Address() string {
	return s.address
}

// URL is full server url for specified endpoint
func (s *Server) URL(endpoint string) string {
	return fmt.Sprintf("http://%s%s%s", s.address, version1, endpoint)
}

// Close forcefully closes listeners & connections
func (s *Server) Close() error {
	return s.server.Close()
}
