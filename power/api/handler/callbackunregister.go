// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"go.powermgr.io/power/api/rendering"
)

type callbackUnregisterHandler struct {
	pool       ClientPool
	registrars Registrars
}

func (h *callbackUnregisterHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	kind := chi.URLParam(request, "kind")
	registrar, found := h.registrars[kind]
	if !found {
		rendering.RenderNotFound(writer, request, errUnknownCallbackKind, "Unknown callback kind %q", kind)
		return
	}

	clientID := chi.URLParam(request, "clientId")
	client, found := h.pool.Lookup(clientID)
	if !found {
		rendering.RenderNotFound(writer, request, errClientNotFound, "Client %s not found", clientID)
		return
	}

	registrar.Remove(client)
	log.Infof("Client %s unregistered %s callback", clientID, kind)
	writer.WriteHeader(http.StatusNoContent)
}

// NewCallbackUnregisterHandler returns a new instance of http handler
// for serving DELETE /callbacks/{kind}/{clientId}.
func NewCallbackUnregisterHandler(pool ClientPool, registrars Registrars) http.Handler {
	return &callbackUnregisterHandler{
		pool:       pool,
		registrars: registrars,
	}
}
