// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go.powermgr.io/power/api/model"
	"go.powermgr.io/power/interop"
	"go.powermgr.io/power/shutdown"
)

type mockShutdownService struct {
	mock.Mock
}

func (s *mockShutdownService) RebootOrShutdown(ctx context.Context, reason string, isReboot bool) error {
	return s.Called(reason, isReboot).Error(0)
}

type mockSuspendController struct {
	mock.Mock
}

func (c *mockSuspendController) Suspend(reason interop.SuspendReason, forceSleep bool) bool {
	return c.Called(reason, forceSleep).Bool(0)
}

func (c *mockSuspendController) Wakeup(forceSleep bool) bool {
	return c.Called(forceSleep).Bool(0)
}

func TestShutdownHandler(t *testing.T) {
	service := &mockShutdownService{}
	service.On("RebootOrShutdown", "update", true).Return(nil)

	recorder := serve(NewShutdownHandler(service),
		newRequest("POST", "/power/shutdown", jsonReader(model.ShutdownRequest{Reason: "update", Reboot: true}), nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	service.AssertExpectations(t)
}

func TestShutdownHandlerErrors(t *testing.T) {
	cases := []struct {
		err       error
		status    int
		errorType string
	}{
		{shutdown.ErrTakenOver, http.StatusConflict, errShutdownTakenOver},
		{shutdown.ErrShutdownInProgress, http.StatusConflict, errShutdownInProgress},
		{errors.New("EIO"), http.StatusInternalServerError, "InternalServerError"},
	}
	for _, c := range cases {
		service := &mockShutdownService{}
		service.On("RebootOrShutdown", "user", false).Return(c.err)

		recorder := serve(NewShutdownHandler(service),
			newRequest("POST", "/power/shutdown", jsonReader(model.ShutdownRequest{Reason: "user"}), nil))
		requireErrorType(t, recorder, c.status, c.errorType)
	}
}

func TestSuspendHandler(t *testing.T) {
	controller := &mockSuspendController{}
	controller.On("Suspend", interop.SuspendReasonLid, true).Return(true)

	recorder := serve(NewSuspendHandler(controller),
		newRequest("POST", "/power/suspend", jsonReader(model.SuspendRequest{Reason: "lid", Force: true}), nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp model.SuspendResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.True(t, resp.Suspended)
}

func TestSuspendHandlerInvalidReason(t *testing.T) {
	controller := &mockSuspendController{}
	recorder := serve(NewSuspendHandler(controller),
		newRequest("POST", "/power/suspend", jsonReader(model.SuspendRequest{Reason: "boredom"}), nil))

	requireErrorType(t, recorder, http.StatusBadRequest, errInvalidSuspendReason)
	controller.AssertNotCalled(t, "Suspend", mock.Anything, mock.Anything)
}

func TestWakeupHandler(t *testing.T) {
	controller := &mockSuspendController{}
	controller.On("Wakeup", false).Return(false)

	recorder := serve(NewWakeupHandler(controller),
		newRequest("POST", "/power/wakeup", jsonReader(model.WakeupRequest{}), nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp model.WakeupResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.False(t, resp.WokeUp)
}
