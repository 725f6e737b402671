// Package container provides dependency injection for the alert-extract
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/alert-extract/internal/artifact"
	"fjacquet/alert-extract/internal/batch"
	"fjacquet/alert-extract/internal/config"
	"fjacquet/alert-extract/internal/extractor"
	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/models"
	"fjacquet/alert-extract/internal/service"
	"fjacquet/alert-extract/internal/source"
	"fjacquet/alert-extract/internal/workbook"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	lookup    source.AlertLookup
	router    *source.Router
	extractor *extractor.Extractor
	writer    *workbook.Writer
	store     *artifact.Store
	service   *service.Service
	batch     *batch.Runner
}

// NewContainer creates and wires all application dependencies, logging
// through a logrus logger built from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	lookup, router, origin := newSources(cfg, logger)

	x := extractor.New(logger, extractor.WithConcurrency(cfg.Extraction.Concurrent))
	writer := workbook.NewWriter(logger, cfg.Output.AutoSizeColumns)
	store := artifact.NewStore(cfg.Output.Directory, logger)
	svc := service.New(lookup, router, x, writer, store, logger)

	logger.Debug("Container initialized",
		logging.F("alert_source", origin),
		logging.F("output_directory", cfg.Output.Directory),
		logging.F("concurrent", cfg.Extraction.Concurrent))

	return &Container{
		logger:    logger,
		config:    cfg,
		lookup:    lookup,
		router:    router,
		extractor: x,
		writer:    writer,
		store:     store,
		service:   svc,
		batch:     batch.NewRunner(svc, logger),
	}, nil
}

// newSources picks the alert sources: a source directory wins over the HTTP
// APIs. Without either, lookup and router are nil.
func newSources(cfg *config.Config, logger logging.Logger) (source.AlertLookup, *source.Router, string) {
	if cfg.Sources.Directory != "" {
		dir := source.NewDirectorySource(cfg.Sources.Directory, logger)
		return dir, source.NewRouter(dir.Provider(models.SourceActOne), dir.Provider(models.SourceRCM)), "directory"
	}

	if cfg.Sources.ActOne.BaseURL == "" {
		return nil, nil, "none"
	}

	timeout := cfg.SourceTimeout()
	actone := source.NewActOneClient(cfg.Sources.ActOne.BaseURL, cfg.Sources.ActOne.APIKey, timeout, logger)
	var rcm source.XMLProvider
	if cfg.Sources.RCM.BaseURL != "" {
		rcm = source.NewRCMClient(cfg.Sources.RCM.BaseURL, cfg.Sources.RCM.APIKey, timeout, logger)
	}
	return actone, source.NewRouter(actone, rcm), "http"
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// HasAlertSource reports whether alerts can be looked up by id.
func (c *Container) HasAlertSource() bool {
	return c.lookup != nil
}

// GetRouter returns the XML provider router, or nil without alert sources.
func (c *Container) GetRouter() *source.Router {
	return c.router
}

// GetExtractor returns the flattening engine.
func (c *Container) GetExtractor() *extractor.Extractor {
	return c.extractor
}

// GetWriter returns the workbook writer.
func (c *Container) GetWriter() *workbook.Writer {
	return c.writer
}

// GetStore returns the artifact store.
func (c *Container) GetStore() *artifact.Store {
	return c.store
}

// GetService returns the extraction service.
func (c *Container) GetService() *service.Service {
	return c.service
}

// GetBatchRunner returns the directory batch runner.
func (c *Container) GetBatchRunner() *batch.Runner {
	return c.batch
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
