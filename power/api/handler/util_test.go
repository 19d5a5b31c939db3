// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/require"

	"go.powermgr.io/power/api/model"
)

func jsonReader(v interface{}) io.Reader {
	body, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bytes.NewReader(body)
}

func newRequest(method, target string, body io.Reader, params map[string]string) *http.Request {
	request := httptest.NewRequest(method, target, body)
	routeContext := chi.NewRouteContext()
	for k, v := range params {
		routeContext.URLParams.Add(k, v)
	}
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
}

func serve(h http.Handler, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	h.ServeHTTP(recorder, request)
	return recorder
}

func requireErrorType(t *testing.T, recorder *httptest.ResponseRecorder, status int, errorType string) {
	require.Equal(t, status, recorder.Code)
	var errorResponse model.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &errorResponse))
	require.Equal(t, errorType, errorResponse.ErrorType)
}
