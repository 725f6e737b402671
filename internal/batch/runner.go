// Package batch extracts every alert XML document of a directory tree.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"fjacquet/alert-extract/internal/extractor"
	"fjacquet/alert-extract/internal/fileutils"
	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/models"
)

// ErrDuplicateOutput marks a document skipped because an earlier document of
// the run maps to the same workbook.
var ErrDuplicateOutput = errors.New("duplicate output")

// DocumentExtractor turns one XML document into a workbook at outputPath.
type DocumentExtractor interface {
	ExtractDocument(document, content, outputPath string) (*extractor.Result, string, error)
}

// FileResult is the outcome for one input document.
type FileResult struct {
	Input  string
	Output string
	Err    error
}

// Report summarizes a batch run. Files are sorted by input path.
type Report struct {
	Files    []FileResult
	Duration time.Duration
}

// Succeeded counts the documents that produced a workbook.
func (r *Report) Succeeded() int {
	n := 0
	for _, f := range r.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the documents that did not produce a workbook.
func (r *Report) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// Runner extracts the documents of a directory in parallel.
type Runner struct {
	extractor DocumentExtractor
	logger    logging.Logger
	workers   int
}

// NewRunner returns a Runner using one worker per CPU.
func NewRunner(x DocumentExtractor, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Runner{extractor: x, logger: logger, workers: runtime.GOMAXPROCS(0)}
}

// WithWorkers returns a copy of r limited to n concurrent documents.
func (r *Runner) WithWorkers(n int) *Runner {
	c := *r
	if n > 0 {
		c.workers = n
	}
	return &c
}

// FindDocuments lists the .xml and .xml.gz files under dir, sorted.
func FindDocuments(dir string) ([]string, error) {
	plain, err := fileutils.ListFilesWithExtension(dir, ".xml")
	if err != nil {
		return nil, err
	}
	compressed, err := fileutils.ListFilesWithExtension(dir, fileutils.GzipExtension)
	if err != nil {
		return nil, err
	}

	docs := plain
	for _, f := range compressed {
		if strings.EqualFold(filepath.Ext(strings.TrimSuffix(f, filepath.Ext(f))), ".xml") {
			docs = append(docs, f)
		}
	}
	sort.Strings(docs)
	return docs, nil
}

// outputFor mirrors input's position below inputDir under outputDir.
func outputFor(inputDir, outputDir, input string) string {
	rel, err := filepath.Rel(inputDir, filepath.Dir(input))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = "."
	}
	return filepath.Join(outputDir, rel, models.DocumentArtifactName(input))
}

// Run extracts every document under inputDir into outputDir. A failing
// document is recorded in the report and does not stop the others; only a
// cancelled context or an unreadable input directory fails the run. When two
// documents map to the same workbook (a.xml and a.xml.gz) the first in sorted
// order is extracted and the other fails with ErrDuplicateOutput.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string) (*Report, error) {
	start := time.Now()
	docs, err := FindDocuments(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list input documents: %w", err)
	}

	results := make([]FileResult, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	claimed := make(map[string]string, len(docs))
	for i, doc := range docs {
		output := outputFor(inputDir, outputDir, doc)
		if prev, ok := claimed[output]; ok {
			err := fmt.Errorf("output %s already produced by %s: %w",
				filepath.Base(output), filepath.Base(prev), ErrDuplicateOutput)
			results[i] = FileResult{Input: doc, Err: err}
			r.logger.WithError(err).Warn("Document extraction failed", logging.F(logging.FieldFile, doc))
			continue
		}
		claimed[output] = doc

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.runOne(doc, output)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Files: results, Duration: time.Since(start)}
	r.logger.Info("Batch extraction completed",
		logging.F("total_files", len(docs)),
		logging.F("succeeded", report.Succeeded()),
		logging.F("failed", len(report.Failed())),
		logging.F(logging.FieldDuration, report.Duration.Milliseconds()))
	return report, nil
}

func (r *Runner) runOne(input, output string) FileResult {
	res := FileResult{Input: input}

	content, err := fileutils.ReadInput(input)
	if err != nil {
		res.Err = err
	} else {
		_, res.Output, res.Err = r.extractor.ExtractDocument(input, string(content), output)
	}

	if res.Err != nil {
		r.logger.WithError(res.Err).Warn("Document extraction failed", logging.F(logging.FieldFile, input))
	} else {
		r.logger.Debug("Document extracted",
			logging.F(logging.FieldFile, input),
			logging.F(logging.FieldFileName, filepath.Base(res.Output)))
	}
	return res
}
