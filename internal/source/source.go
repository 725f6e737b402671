// Package source locates alerts and fetches their XML payloads from the
// upstream alert systems.
package source

import (
	"context"
	"fmt"

	"fjacquet/alert-extract/internal/models"
	"fjacquet/alert-extract/internal/parsererror"
)

// AlertLookup resolves an alert id to its record. An unknown id yields a nil
// alert and a nil error.
type AlertLookup interface {
	GetAlert(ctx context.Context, alertID string) (*models.Alert, error)
}

// XMLProvider returns an alert's raw XML. An alert without XML yields "".
type XMLProvider interface {
	GetAlertXML(ctx context.Context, alertID string) (string, error)
}

// Router picks the XML provider matching an alert's source system.
type Router struct {
	providers map[models.SourceSystem]XMLProvider
}

// NewRouter returns a Router. rcm may be nil when no case-management system
// is configured; RCM alerts then fail with a *parsererror.SourceError.
func NewRouter(actone, rcm XMLProvider) *Router {
	r := &Router{providers: map[models.SourceSystem]XMLProvider{}}
	if actone != nil {
		r.providers[models.SourceActOne] = actone
	}
	if rcm != nil {
		r.providers[models.SourceRCM] = rcm
	}
	return r
}

// Provider returns the provider for system, if one is configured.
func (r *Router) Provider(system models.SourceSystem) (XMLProvider, bool) {
	p, ok := r.providers[system]
	return p, ok
}

// GetXML fetches the XML of alert from the system it belongs to.
func (r *Router) GetXML(ctx context.Context, alert *models.Alert) (string, error) {
	system := models.ParseSourceSystem(string(alert.Source))
	p, ok := r.Provider(system)
	if !ok {
		return "", &parsererror.SourceError{
			System:  string(system),
			AlertID: alert.ID,
			Err:     fmt.Errorf("no source configured"),
		}
	}
	return p.GetAlertXML(ctx, alert.ID)
}
