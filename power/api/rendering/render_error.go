// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendering

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"go.powermgr.io/power/api/model"
)

// RenderErrorWithTypeMsg method for rendering error response
func RenderErrorWithTypeMsg(w http.ResponseWriter, r *http.Request, status int, errorType string, format string, args ...interface{}) {
	if err := RenderJSON(status, w, r, &model.ErrorResponse{
		ErrorType:    errorType,
		ErrorMessage: fmt.Sprintf(format, args...),
	}); err != nil {
		log.WithError(err).Warn("Error while rendering response")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// RenderBadRequest method for rendering error response
func RenderBadRequest(w http.ResponseWriter, r *http.Request, errorType string, format string, args ...interface{}) {
	RenderErrorWithTypeMsg(w, r, http.StatusBadRequest, errorType, format, args...)
}

// RenderNotFound method for rendering error response
func RenderNotFound(w http.ResponseWriter, r *http.Request, errorType string, format string, args ...interface{}) {
	RenderErrorWithTypeMsg(w, r, http.StatusNotFound, errorType, format, args...)
}

// RenderConflict method for rendering error response
func RenderConflict(w http.ResponseWriter, r *http.Request, errorType string, format string, args ...interface{}) {
	RenderErrorWithTypeMsg(w, r, http.StatusConflict, errorType, format, args...)
}

// RenderInternalServerError method for rendering error response
func RenderInternalServerError(w http.ResponseWriter, r *http.Request) {
	RenderErrorWithTypeMsg(w, r, http.StatusInternalServerError, ErrorTypeInternalServerError, "Internal Server Error")
}

// RenderInvalidRequestFormat renders an undecodable request body error
func RenderInvalidRequestFormat(w http.ResponseWriter, r *http.Request, err error) {
	RenderBadRequest(w, r, ErrorTypeInvalidRequestFormat, "%s", err)
}
