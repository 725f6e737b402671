package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/models"
	"fjacquet/alert-extract/internal/parsererror"
)

func newUpstream(t *testing.T, routes map[string]func(http.ResponseWriter, *http.Request)) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestActOneClient_GetAlert(t *testing.T) {
	var gotAuth string
	srv := newUpstream(t, map[string]func(http.ResponseWriter, *http.Request){
		"/alerts/A-1": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"A-1","source":"rcm"}`))
		},
	})

	c := NewActOneClient(srv.URL+"/", "secret", time.Second, logging.NewMockLogger())
	alert, err := c.GetAlert(context.Background(), "A-1")
	require.NoError(t, err)
	require.NotNil(t, alert)

	assert.Equal(t, "A-1", alert.ID)
	assert.Equal(t, models.SourceRCM, alert.Source)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestActOneClient_GetAlertDefaults(t *testing.T) {
	srv := newUpstream(t, map[string]func(http.ResponseWriter, *http.Request){
		"/alerts/A-2": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		},
	})

	alert, err := NewActOneClient(srv.URL, "", 0, nil).GetAlert(context.Background(), "A-2")
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, "A-2", alert.ID)
	assert.Equal(t, models.SourceActOne, alert.Source)
}

func TestActOneClient_NotFound(t *testing.T) {
	srv := newUpstream(t, nil)
	c := NewActOneClient(srv.URL, "", time.Second, logging.NewMockLogger())

	alert, err := c.GetAlert(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, alert)

	xml, err := c.GetAlertXML(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Empty(t, xml)
}

func TestActOneClient_UpstreamFailure(t *testing.T) {
	srv := newUpstream(t, map[string]func(http.ResponseWriter, *http.Request){
		"/alerts/A-3": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "database down", http.StatusBadGateway)
		},
		"/alerts/A-4": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		},
	})
	c := NewActOneClient(srv.URL, "", time.Second, logging.NewMockLogger())

	_, err := c.GetAlert(context.Background(), "A-3")
	var srcErr *parsererror.SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "ACTONE", srcErr.System)
	assert.Equal(t, "A-3", srcErr.AlertID)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "database down")

	_, err = c.GetAlert(context.Background(), "A-4")
	assert.ErrorAs(t, err, &srcErr)
}

func TestActOneClient_GetAlertXML(t *testing.T) {
	srv := newUpstream(t, map[string]func(http.ResponseWriter, *http.Request){
		"/alerts/A-1/xml": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<Alert><Id>A-1</Id></Alert>`))
		},
	})

	xml, err := NewActOneClient(srv.URL, "", time.Second, logging.NewMockLogger()).
		GetAlertXML(context.Background(), "A-1")
	require.NoError(t, err)
	assert.Equal(t, `<Alert><Id>A-1</Id></Alert>`, xml)
}

func TestRCMClient_GetAlertXML(t *testing.T) {
	srv := newUpstream(t, map[string]func(http.ResponseWriter, *http.Request){
		"/alerts/R-9/xml": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<Case/>`))
		},
	})

	logger := logging.NewMockLogger()
	xml, err := NewRCMClient(srv.URL, "k", time.Second, logger).GetAlertXML(context.Background(), "R-9")
	require.NoError(t, err)
	assert.Equal(t, `<Case/>`, xml)

	entries := logger.GetEntriesByLevel("DEBUG")
	require.Len(t, entries, 1)
	system, _ := entries[0].FieldValue(logging.FieldSourceSystem)
	assert.Equal(t, "RCM", system)
}

func TestClient_EscapesAlertID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewRCMClient(srv.URL, "", time.Second, logging.NewMockLogger()).
		GetAlertXML(context.Background(), "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "/alerts/a%2Fb%20c/xml", gotPath)
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := newUpstream(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewActOneClient(srv.URL, "", time.Second, logging.NewMockLogger()).GetAlert(ctx, "x")
	var srcErr *parsererror.SourceError
	assert.ErrorAs(t, err, &srcErr)
	assert.ErrorIs(t, err, context.Canceled)
}
