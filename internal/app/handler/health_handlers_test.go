package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/mocks"
)

func TestHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewHealth(mocks.NewMockLinkManagerIface(ctrl), zap.NewNop())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)

	ts, err := time.Parse(time.RFC3339, body.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, 5*time.Second)
}

func TestPing(t *testing.T) {
	ctrl := gomock.NewController(t)
	links := mocks.NewMockLinkManagerIface(ctrl)
	h := NewHealth(links, zap.NewNop())

	links.EXPECT().PingContext(gomock.Any()).Return(nil)

	rec := httptest.NewRecorder()
	h.Ping(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPingStoreDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	links := mocks.NewMockLinkManagerIface(ctrl)
	h := NewHealth(links, zap.NewNop())

	links.EXPECT().PingContext(gomock.Any()).Return(errors.New("connection refused"))

	rec := httptest.NewRecorder()
	h.Ping(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"store unavailable"}`, rec.Body.String())
}
