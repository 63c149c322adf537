package main

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleHealthzReportsOK(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest("GET", "/healthz", nil)
	rw := httptest.NewRecorder()

	s.handleHealthz(rw, req)

	assert.Equal(t, "application/json", rw.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestWriteErrorEncodesPreStreamShape(t *testing.T) {
	rw := httptest.NewRecorder()
	writeError(rw, 502, "dependency_error", "upstream failed")

	assert.Equal(t, 502, rw.Code)
	perr := decodePreStreamError(t, rw.Body)
	assert.Equal(t, 502, perr.StatusCode)
	assert.Equal(t, "dependency_error", perr.ErrorType)
	assert.Equal(t, "upstream failed", perr.Message)
}
