package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/alert-extract/internal/config"
	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Output.Directory = filepath.Join(t.TempDir(), "out")
	cfg.Output.AutoSizeColumns = true
	cfg.Extraction.Concurrent = true
	cfg.Sources.TimeoutSeconds = 5
	cfg.Server.ReadTimeoutSeconds = 30
	cfg.Server.WriteTimeoutSeconds = 30
	return cfg
}

func TestNewContainer(t *testing.T) {
	_, err := NewContainer(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration cannot be nil")

	_, err = NewContainerWithLogger(testConfig(t), nil)
	assert.Error(t, err)

	c, err := NewContainer(testConfig(t))
	require.NoError(t, err)
	assert.NotNil(t, c.GetLogger())
	assert.NotNil(t, c.GetConfig())
	assert.NotNil(t, c.GetExtractor())
	assert.NotNil(t, c.GetWriter())
	assert.NotNil(t, c.GetStore())
	assert.NotNil(t, c.GetService())
	assert.NotNil(t, c.GetBatchRunner())
	assert.NoError(t, c.Close())
}

func TestNewContainer_NoSources(t *testing.T) {
	cfg := testConfig(t)
	c, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)

	assert.False(t, c.HasAlertSource())
	assert.Nil(t, c.GetRouter())
	assert.Equal(t, cfg.Output.Directory, c.GetStore().Root())

	resp := c.GetService().Extract(context.Background(), "A-1")
	assert.Equal(t, models.StatusError, resp.Status)
}

func TestNewContainer_DirectorySource(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sources.Directory = t.TempDir()
	cfg.Sources.ActOne.BaseURL = "http://unused.invalid"
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Sources.Directory, "rcm"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Sources.Directory, "rcm", "R-1.xml"),
		[]byte(`<Alert><Id>R-1</Id></Alert>`), 0600))

	c, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	require.True(t, c.HasAlertSource())

	resp := c.GetService().Extract(context.Background(), "R-1")
	require.True(t, resp.Succeeded(), resp.Message)
	assert.Equal(t, filepath.Join(cfg.Output.Directory, "Alert_R-1_Data.xlsx"), resp.FilePath)
}

func TestNewContainer_HTTPSources(t *testing.T) {
	actone := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/alerts/A-1":
			_, _ = w.Write([]byte(`{"id":"A-1","source":"RCM"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer actone.Close()
	rcm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<Alert><Id>A-1</Id></Alert>`))
	}))
	defer rcm.Close()

	cfg := testConfig(t)
	cfg.Sources.ActOne.BaseURL = actone.URL
	cfg.Sources.RCM.BaseURL = rcm.URL

	c, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)

	_, ok := c.GetRouter().Provider(models.SourceRCM)
	assert.True(t, ok)

	resp := c.GetService().Extract(context.Background(), "A-1")
	assert.True(t, resp.Succeeded(), resp.Message)
}
