// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"go.powermgr.io/power/api/handler"
)

// Dependencies are the services the power API exposes.
type Dependencies struct {
	Pool       handler.ClientPool
	Registrars handler.Registrars
	Shutdown   handler.ShutdownService
	Suspend    handler.SuspendController
	Policies   handler.PolicyRegistry
}

// NewRouter returns a new instance of chi router implementing the power API.
func NewRouter(deps Dependencies) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(AccessLogMiddleware())

	router.Get("/ping", handler.NewPingHandler().ServeHTTP)

	router.Post("/callbacks/{kind}", handler.NewCallbackRegisterHandler(deps.Pool, deps.Registrars).ServeHTTP)
	router.Delete("/callbacks/{kind}/{clientId}", handler.NewCallbackUnregisterHandler(deps.Pool, deps.Registrars).ServeHTTP)
	router.Delete("/clients/{clientId}", handler.NewClientDisconnectHandler(deps.Pool).ServeHTTP)

	router.Post("/power/shutdown", handler.NewShutdownHandler(deps.Shutdown).ServeHTTP)
	router.Post("/power/suspend", handler.NewSuspendHandler(deps.Suspend).ServeHTTP)
	router.Post("/power/wakeup", handler.NewWakeupHandler(deps.Suspend).ServeHTTP)

	router.Get("/policies", handler.NewPolicyListHandler(deps.Policies).ServeHTTP)
	router.Get("/policies/{name}", handler.NewPolicyGetHandler(deps.Policies).ServeHTTP)
	router.Put("/policies/{name}", handler.NewPolicySetHandler(deps.Policies, deps.Pool).ServeHTTP)
	router.Get("/policies/{name}/dump", handler.NewPolicyDumpHandler(deps.Policies).ServeHTTP)
	router.Delete("/policies/{name}/invokers/{invokerId}", handler.NewInvokerRemoveHandler(deps.Policies).ServeHTTP)

	return router
}
