package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func TestHandler_Root(t *testing.T) {
	_, api := humatest.New(t)
	NewHandler(nil).Register(api)

	resp := api.Get("/")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, runningMessage, body.Message)
}

func TestHandler_Health(t *testing.T) {
	_, api := humatest.New(t)
	NewHandler(stubPinger{}).Register(api)

	resp := api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestHandler_HealthDatabaseDown(t *testing.T) {
	_, api := humatest.New(t)
	NewHandler(stubPinger{err: errors.New("connection refused")}).Register(api)

	resp := api.Get("/health")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}
