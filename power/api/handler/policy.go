// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"go.powermgr.io/power/api/model"
	"go.powermgr.io/power/api/rendering"
	"go.powermgr.io/power/core"
	"go.powermgr.io/power/policy"
)

func lookupPolicy(registry PolicyRegistry, writer http.ResponseWriter, request *http.Request) (string, *core.MultiInvokerAggregator, bool) {
	name := chi.URLParam(request, "name")
	aggregator, err := registry.Get(name)
	if err != nil {
		rendering.RenderNotFound(writer, request, errPolicyNotFound, "Policy %q not found", name)
		return name, nil, false
	}
	return name, aggregator, true
}

func renderPolicy(writer http.ResponseWriter, request *http.Request, name string, aggregator *core.MultiInvokerAggregator) {
	n := aggregator.ParamCount()
	resp := &model.PolicyResponse{
		Name:      name,
		Result:    aggregator.GetResult().String(),
		Defaults:  aggregator.Defaults().Bools(n),
		Effective: aggregator.Effective().Bools(n),
	}
	if err := rendering.RenderJSON(http.StatusOK, writer, request, resp); err != nil {
		log.WithError(err).Warn("Error while rendering response")
	}
}

type policyListHandler struct {
	registry PolicyRegistry
}

func (h *policyListHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if err := rendering.RenderJSON(http.StatusOK, writer, request, &model.PolicyListResponse{Policies: h.registry.Names()}); err != nil {
		log.WithError(err).Warn("Error while rendering response")
	}
}

// NewPolicyListHandler returns a new instance of http handler
// for serving GET /policies.
func NewPolicyListHandler(registry PolicyRegistry) http.Handler {
	return &policyListHandler{registry: registry}
}

type policyGetHandler struct {
	registry PolicyRegistry
}

func (h *policyGetHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	name, aggregator, ok := lookupPolicy(h.registry, writer, request)
	if !ok {
		return
	}
	renderPolicy(writer, request, name, aggregator)
}

// NewPolicyGetHandler returns a new instance of http handler
// for serving GET /policies/{name}.
func NewPolicyGetHandler(registry PolicyRegistry) http.Handler {
	return &policyGetHandler{registry: registry}
}

type policySetHandler struct {
	registry PolicyRegistry
	pool     ClientPool
}

func (h *policySetHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	name, aggregator, ok := lookupPolicy(h.registry, writer, request)
	if !ok {
		return
	}

	var req model.SetPolicyRequest
	if err := render.DecodeJSON(request.Body, &req); err != nil {
		rendering.RenderInvalidRequestFormat(writer, request, err)
		return
	}

	if len(req.Params) > aggregator.ParamCount() {
		rendering.RenderBadRequest(writer, request, errTooManyParams, "Policy %q takes %d params, got %d", name, aggregator.ParamCount(), len(req.Params))
		return
	}
	params, err := policy.FromBools(req.Params)
	if err != nil {
		rendering.RenderBadRequest(writer, request, errTooManyParams, "%s", err)
		return
	}

	client, found := h.pool.Lookup(req.ClientID)
	if !found {
		rendering.RenderNotFound(writer, request, errClientNotFound, "Client %s not found", req.ClientID)
		return
	}

	appID := core.DefaultAppID
	if req.AppID != nil {
		appID = core.AppID(*req.AppID)
	}

	aggregator.Set(client, core.InvokerID(req.InvokerID), appID, params)
	renderPolicy(writer, request, name, aggregator)
}

// NewPolicySetHandler returns a new instance of http handler
// for serving PUT /policies/{name}.
func NewPolicySetHandler(registry PolicyRegistry, pool ClientPool) http.Handler {
	return &policySetHandler{registry: registry, pool: pool}
}

type policyDumpHandler struct {
	registry PolicyRegistry
}

func (h *policyDumpHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	name, aggregator, ok := lookupPolicy(h.registry, writer, request)
	if !ok {
		return
	}
	if err := rendering.RenderJSON(http.StatusOK, writer, request, &model.PolicyDumpResponse{Name: name, Dump: aggregator.Dump()}); err != nil {
		log.WithError(err).Warn("Error while rendering response")
	}
}

// NewPolicyDumpHandler returns a new instance of http handler
// for serving GET /policies/{name}/dump.
func NewPolicyDumpHandler(registry PolicyRegistry) http.Handler {
	return &policyDumpHandler{registry: registry}
}

type invokerRemoveHandler struct {
	registry PolicyRegistry
}

// ServeHTTP drops every vote of an invoker without notifying listeners.
func (h *invokerRemoveHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	_, aggregator, ok := lookupPolicy(h.registry, writer, request)
	if !ok {
		return
	}

	raw := chi.URLParam(request, "invokerId")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		rendering.RenderBadRequest(writer, request, errInvalidInvokerID, "Invalid invoker id %q", raw)
		return
	}

	if !aggregator.RemoveInvoker(core.InvokerID(id)) {
		rendering.RenderNotFound(writer, request, errInvokerNotFound, "Invoker %d not found", id)
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}

// NewInvokerRemoveHandler returns a new instance of http handler
// for serving DELETE /policies/{name}/invokers/{invokerId}.
func NewInvokerRemoveHandler(registry PolicyRegistry) http.Handler {
	return &invokerRemoveHandler{registry: registry}
}
