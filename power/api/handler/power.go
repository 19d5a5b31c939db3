// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"go.powermgr.io/power/api/model"
	"go.powermgr.io/power/api/rendering"
	"go.powermgr.io/power/interop"
	"go.powermgr.io/power/shutdown"
)

type shutdownHandler struct {
	service ShutdownService
}

func (h *shutdownHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	var req model.ShutdownRequest
	if err := render.DecodeJSON(request.Body, &req); err != nil {
		rendering.RenderInvalidRequestFormat(writer, request, err)
		return
	}

	switch err := h.service.RebootOrShutdown(request.Context(), req.Reason, req.Reboot); err {
	case nil:
		rendering.RenderOK(writer, request)
	case shutdown.ErrTakenOver:
		rendering.RenderConflict(writer, request, errShutdownTakenOver, "Shutdown was taken over")
	case shutdown.ErrShutdownInProgress:
		rendering.RenderConflict(writer, request, errShutdownInProgress, "Shutdown is already running")
	default:
		log.WithError(err).Error("Power action failed")
		rendering.RenderInternalServerError(writer, request)
	}
}

// NewShutdownHandler returns a new instance of http handler
// for serving POST /power/shutdown.
func NewShutdownHandler(service ShutdownService) http.Handler {
	return &shutdownHandler{service: service}
}

type suspendHandler struct {
	controller SuspendController
}

func (h *suspendHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	var req model.SuspendRequest
	if err := render.DecodeJSON(request.Body, &req); err != nil {
		rendering.RenderInvalidRequestFormat(writer, request, err)
		return
	}

	reason, err := interop.ParseSuspendReason(req.Reason)
	if err != nil {
		rendering.RenderBadRequest(writer, request, errInvalidSuspendReason, "Invalid suspend reason %q", req.Reason)
		return
	}

	suspended := h.controller.Suspend(reason, req.Force)
	if err := rendering.RenderJSON(http.StatusOK, writer, request, &model.SuspendResponse{Suspended: suspended}); err != nil {
		log.WithError(err).Warn("Error while rendering response")
	}
}

// NewSuspendHandler returns a new instance of http handler
// for serving POST /power/suspend.
func NewSuspendHandler(controller SuspendController) http.Handler {
	return &suspendHandler{controller: controller}
}

type wakeupHandler struct {
	controller SuspendController
}

func (h *wakeupHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	var req model.WakeupRequest
	if err := render.DecodeJSON(request.Body, &req); err != nil {
		rendering.RenderInvalidRequestFormat(writer, request, err)
		return
	}

	wokeUp := h.controller.Wakeup(req.Force)
	if err := rendering.RenderJSON(http.StatusOK, writer, request, &model.WakeupResponse{WokeUp: wokeUp}); err != nil {
		log.WithError(err).Warn("Error while rendering response")
	}
}

// NewWakeupHandler returns a new instance of http handler
// for serving POST /power/wakeup.
func NewWakeupHandler(controller SuspendController) http.Handler {
	return &wakeupHandler{controller: controller}
}
