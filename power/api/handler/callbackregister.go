// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"go.powermgr.io/power/api/model"
	"go.powermgr.io/power/api/rendering"
	"go.powermgr.io/power/core"
	"go.powermgr.io/power/interop"
	"go.powermgr.io/power/remote"
)

type callbackRegisterHandler struct {
	pool       ClientPool
	registrars Registrars
}

func (h *callbackRegisterHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	kind := chi.URLParam(request, "kind")
	registrar, found := h.registrars[kind]
	if !found {
		rendering.RenderNotFound(writer, request, errUnknownCallbackKind, "Unknown callback kind %q", kind)
		return
	}

	var req model.RegisterCallbackRequest
	if err := render.DecodeJSON(request.Body, &req); err != nil {
		rendering.RenderInvalidRequestFormat(writer, request, err)
		return
	}

	priority, err := core.ParsePriority(req.Priority)
	if err != nil {
		rendering.RenderBadRequest(writer, request, errInvalidPriority, "Invalid priority %q", req.Priority)
		return
	}

	client, err := h.pool.Connect(req.CallbackURL)
	if err != nil {
		if errors.Is(err, remote.ErrInvalidCallbackURL) {
			rendering.RenderBadRequest(writer, request, errInvalidCallbackURL, "Invalid callback URL %q", req.CallbackURL)
			return
		}
		log.WithError(err).Error("Failed to connect client")
		rendering.RenderInternalServerError(writer, request)
		return
	}

	registrar.Add(client, priority, interop.CallerIdentity{Pid: req.Pid, UID: req.UID})
	log.Infof("Client %s registered %s callback, priority %s", client.HandleID(), kind, priority)

	if err := rendering.RenderJSON(http.StatusOK, writer, request, &model.RegisterCallbackResponse{ClientID: client.HandleID()}); err != nil {
		log.WithError(err).Warn("Error while rendering response")
	}
}

// NewCallbackRegisterHandler returns a new instance of http handler
// for serving POST /callbacks/{kind}.
func NewCallbackRegisterHandler(pool ClientPool, registrars Registrars) http.Handler {
	return &callbackRegisterHandler{
		pool:       pool,
		registrars: registrars,
	}
}
