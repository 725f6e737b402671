// Package service is the request surface of the extractor: it fetches an
// alert's XML, flattens it, saves the workbook and serves it back.
package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"fjacquet/alert-extract/internal/artifact"
	"fjacquet/alert-extract/internal/extractor"
	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/models"
	"fjacquet/alert-extract/internal/parsererror"
	"fjacquet/alert-extract/internal/source"
	"fjacquet/alert-extract/internal/workbook"
)

// User-facing failure messages.
const (
	MsgAlertNotFound   = "Alert not found"
	MsgNoXMLContent    = "No XML content found for this alert"
	MsgProcessingError = "Error processing alert: "
)

// Service wires the alert sources to the extraction pipeline.
type Service struct {
	lookup    source.AlertLookup
	router    *source.Router
	extractor *extractor.Extractor
	writer    *workbook.Writer
	store     *artifact.Store
	logger    logging.Logger
}

// New returns a Service. lookup and router may be nil for a service that only
// handles local documents and downloads.
func New(
	lookup source.AlertLookup,
	router *source.Router,
	x *extractor.Extractor,
	writer *workbook.Writer,
	store *artifact.Store,
	logger logging.Logger,
) *Service {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Service{
		lookup:    lookup,
		router:    router,
		extractor: x,
		writer:    writer,
		store:     store,
		logger:    logger,
	}
}

// Extract runs the whole pipeline for one alert and reports the outcome in
// the uniform response shape. It never returns an error or panics.
func (s *Service) Extract(ctx context.Context, alertID string) (resp models.ExtractResponse) {
	log := s.logger.WithField(logging.FieldAlertID, alertID)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Extraction panicked", logging.F(logging.FieldError, r))
			resp = models.ExtractFailure(MsgProcessingError + "internal error")
		}
	}()

	path, err := s.ExtractAlert(ctx, alertID)
	if err != nil {
		resp = models.ExtractFailure(FailureMessage(err))
		log.WithError(err).Warn("Extraction failed")
		return resp
	}
	return models.ExtractSuccess(path, models.ArtifactName(alertID))
}

// FailureMessage maps an extraction error to its user-facing message.
func FailureMessage(err error) string {
	var notFound *parsererror.NotFoundError
	var empty *parsererror.EmptyPayloadError
	switch {
	case errors.As(err, &notFound):
		return MsgAlertNotFound
	case errors.As(err, &empty):
		return MsgNoXMLContent
	default:
		return MsgProcessingError + err.Error()
	}
}

// ExtractAlert is Extract with typed errors: *parsererror.NotFoundError,
// *parsererror.EmptyPayloadError, *parsererror.MalformedInputError,
// *parsererror.IOFailureError or *parsererror.SourceError. On success it
// returns the saved workbook's path.
func (s *Service) ExtractAlert(ctx context.Context, alertID string) (string, error) {
	start := time.Now()

	alert, content, err := s.FetchAlertXML(ctx, alertID)
	if err != nil {
		return "", err
	}

	res, err := s.extractor.ExtractString(alertID, content)
	if err != nil {
		return "", err
	}

	path, err := s.store.Save(models.ArtifactName(alertID), s.render(res))
	if err != nil {
		return "", err
	}

	s.logger.Info("Alert extracted",
		logging.F(logging.FieldAlertID, alertID),
		logging.F(logging.FieldSourceSystem, string(alert.Source)),
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return path, nil
}

// FetchAlertXML looks alertID up and returns its non-blank XML payload from
// the system the alert belongs to.
func (s *Service) FetchAlertXML(ctx context.Context, alertID string) (*models.Alert, string, error) {
	if s.lookup == nil || s.router == nil {
		return nil, "", &parsererror.SourceError{AlertID: alertID, Err: errors.New("no alert source configured")}
	}

	alert, err := s.lookup.GetAlert(ctx, alertID)
	if err != nil {
		return nil, "", err
	}
	if alert == nil {
		return nil, "", &parsererror.NotFoundError{AlertID: alertID}
	}

	content, err := s.router.GetXML(ctx, alert)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(content) == "" {
		return nil, "", &parsererror.EmptyPayloadError{AlertID: alertID, Source: string(alert.Source)}
	}
	return alert, content, nil
}

// ExtractDocument flattens a local XML document and writes its workbook to
// outputPath, or into the store when outputPath is empty.
func (s *Service) ExtractDocument(document, content, outputPath string) (*extractor.Result, string, error) {
	res, err := s.extractor.ExtractString(document, content)
	if err != nil {
		return nil, "", err
	}

	var path string
	if outputPath == "" {
		path, err = s.store.Save(models.DocumentArtifactName(document), s.render(res))
	} else {
		path, err = s.store.SaveTo(outputPath, s.render(res))
	}
	if err != nil {
		return nil, "", err
	}
	return res, path, nil
}

// Download returns the bytes of a previously saved artifact. Failures are
// *parsererror.ArtifactUnreadableError.
func (s *Service) Download(ref string) ([]byte, error) {
	return s.store.Open(ref)
}

func (s *Service) render(res *extractor.Result) func(io.Writer) error {
	return func(w io.Writer) error {
		return s.writer.Write(w, res.Tables())
	}
}
