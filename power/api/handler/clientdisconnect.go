// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"

	"github.com/go-chi/chi"

	"go.powermgr.io/power/api/rendering"
)

type clientDisconnectHandler struct {
	pool ClientPool
}

// ServeHTTP declares the client dead, which drops every registration and
// vote it holds.
func (h *clientDisconnectHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	clientID := chi.URLParam(request, "clientId")
	if !h.pool.Disconnect(clientID) {
		rendering.RenderNotFound(writer, request, errClientNotFound, "Client %s not found", clientID)
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}

// NewClientDisconnectHandler returns a new instance of http handler
// for serving DELETE /clients/{clientId}.
func NewClientDisconnectHandler(pool ClientPool) http.Handler {
	return &clientDisconnectHandler{pool: pool}
}
