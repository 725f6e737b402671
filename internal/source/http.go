package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/models"
	"fjacquet/alert-extract/internal/parsererror"
)

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 30 * time.Second

type apiClient struct {
	system     models.SourceSystem
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logging.Logger
}

func newAPIClient(system models.SourceSystem, baseURL, apiKey string, timeout time.Duration, logger logging.Logger) apiClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return apiClient{
		system:     system,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *apiClient) fail(alertID string, err error) error {
	return &parsererror.SourceError{System: string(c.system), AlertID: alertID, Err: err}
}

// get issues GET {base}/alerts/{id}{suffix}. A 404 reports found=false.
func (c *apiClient) get(ctx context.Context, alertID, suffix string) (body []byte, found bool, err error) {
	u := c.baseURL + "/alerts/" + url.PathEscape(alertID) + suffix
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false, c.fail(alertID, fmt.Errorf("create request: %w", err))
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, c.fail(alertID, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Upstream request completed",
		logging.F(logging.FieldSourceSystem, string(c.system)),
		logging.F(logging.FieldAlertID, alertID),
		logging.F(logging.FieldPath, req.URL.Path),
		logging.F(logging.FieldStatus, resp.StatusCode),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, false, c.fail(alertID, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, c.fail(alertID, fmt.Errorf("read body: %w", err))
	}
	return body, true, nil
}

func (c *apiClient) getXML(ctx context.Context, alertID string) (string, error) {
	body, found, err := c.get(ctx, alertID, "/xml")
	if err != nil || !found {
		return "", err
	}
	return string(body), nil
}

// ActOneClient talks to the primary alert-management API. It both looks up
// alerts and serves the XML of ActOne alerts.
type ActOneClient struct {
	apiClient
}

// NewActOneClient returns a client for the API at baseURL.
func NewActOneClient(baseURL, apiKey string, timeout time.Duration, logger logging.Logger) *ActOneClient {
	return &ActOneClient{apiClient: newAPIClient(models.SourceActOne, baseURL, apiKey, timeout, logger)}
}

type alertPayload struct {
	ID     string `json:"id"`
	Source string `json:"source"`
}

// GetAlert fetches GET {base}/alerts/{id}.
func (c *ActOneClient) GetAlert(ctx context.Context, alertID string) (*models.Alert, error) {
	body, found, err := c.get(ctx, alertID, "")
	if err != nil || !found {
		return nil, err
	}

	var payload alertPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, c.fail(alertID, fmt.Errorf("decode alert: %w", err))
	}
	if payload.ID == "" {
		payload.ID = alertID
	}
	return &models.Alert{ID: payload.ID, Source: models.ParseSourceSystem(payload.Source)}, nil
}

// GetAlertXML fetches GET {base}/alerts/{id}/xml.
func (c *ActOneClient) GetAlertXML(ctx context.Context, alertID string) (string, error) {
	return c.getXML(ctx, alertID)
}

// RCMClient serves the XML of case-management alerts.
type RCMClient struct {
	apiClient
}

// NewRCMClient returns a client for the API at baseURL.
func NewRCMClient(baseURL, apiKey string, timeout time.Duration, logger logging.Logger) *RCMClient {
	return &RCMClient{apiClient: newAPIClient(models.SourceRCM, baseURL, apiKey, timeout, logger)}
}

// GetAlertXML fetches GET {base}/alerts/{id}/xml.
func (c *RCMClient) GetAlertXML(ctx context.Context, alertID string) (string, error) {
	return c.getXML(ctx, alertID)
}
