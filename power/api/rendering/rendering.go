// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendering

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"

	"go.powermgr.io/power/api/model"
)

const (
	// ErrorTypeInternalServerError error type for internal server error
	ErrorTypeInternalServerError = "InternalServerError"
	// ErrorTypeInvalidRequestFormat error type for undecodable bodies
	ErrorTypeInvalidRequestFormat = "InvalidRequestFormat"
)

// RenderJSON writes v with the given status. Nothing is written if v cannot
// be encoded.
func RenderJSON(status int, w http.ResponseWriter, r *http.Request, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

// RenderAccepted writes a 202 status response.
func RenderAccepted(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, &model.StatusResponse{Status: "OK"})
}

// RenderOK writes a 200 status response.
func RenderOK(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &model.StatusResponse{Status: "OK"})
}
