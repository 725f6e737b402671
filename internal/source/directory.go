package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/alert-extract/internal/fileutils"
	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/models"
	"fjacquet/alert-extract/internal/parsererror"
)

// DirectorySource serves alerts stored on disk as
// <root>/actone/<id>.xml and <root>/rcm/<id>.xml, optionally gzipped.
type DirectorySource struct {
	root   string
	logger logging.Logger
}

// NewDirectorySource returns a DirectorySource rooted at root.
func NewDirectorySource(root string, logger logging.Logger) *DirectorySource {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &DirectorySource{root: root, logger: logger}
}

func validID(alertID string) bool {
	return alertID != "" && alertID != "." && alertID != ".." &&
		!strings.ContainsAny(alertID, `/\`)
}

func (d *DirectorySource) dir(system models.SourceSystem) string {
	return filepath.Join(d.root, strings.ToLower(string(system)))
}

// locate returns the payload file of alertID within system, or "".
func (d *DirectorySource) locate(system models.SourceSystem, alertID string) string {
	if !validID(alertID) {
		return ""
	}
	base := filepath.Join(d.dir(system), alertID+".xml")
	for _, candidate := range []string{base, base + fileutils.GzipExtension} {
		if fileutils.FileExists(candidate) {
			return candidate
		}
	}
	return ""
}

// GetAlert reports an alert when a payload exists for it. ActOne payloads
// take precedence over RCM payloads with the same id.
func (d *DirectorySource) GetAlert(_ context.Context, alertID string) (*models.Alert, error) {
	for _, system := range []models.SourceSystem{models.SourceActOne, models.SourceRCM} {
		if d.locate(system, alertID) != "" {
			return &models.Alert{ID: alertID, Source: system}, nil
		}
	}
	return nil, nil
}

// Provider returns the XMLProvider for one system's subdirectory.
func (d *DirectorySource) Provider(system models.SourceSystem) XMLProvider {
	return &directoryProvider{source: d, system: system}
}

type directoryProvider struct {
	source *DirectorySource
	system models.SourceSystem
}

func (p *directoryProvider) GetAlertXML(_ context.Context, alertID string) (string, error) {
	path := p.source.locate(p.system, alertID)
	if path == "" {
		return "", nil
	}

	data, err := fileutils.ReadInput(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", &parsererror.SourceError{
			System:  string(p.system),
			AlertID: alertID,
			Err:     fmt.Errorf("read %s: %w", path, err),
		}
	}

	p.source.logger.Debug("Alert payload loaded",
		logging.F(logging.FieldSourceSystem, string(p.system)),
		logging.F(logging.FieldAlertID, alertID),
		logging.F(logging.FieldFile, path))
	return string(data), nil
}
