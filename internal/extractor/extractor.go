// Package extractor flattens alert XML into the three tables of an extraction:
// alert details, transactions and entities.
package extractor

import (
	"io"
	"time"

	"github.com/beevik/etree"
	"golang.org/x/sync/errgroup"

	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/parsererror"
	"fjacquet/alert-extract/internal/table"
	"fjacquet/alert-extract/internal/xmlutils"
)

// Sheet names, in output order.
const (
	SheetAlertDetails = "Alert Details"
	SheetTransactions = "Transactions"
	SheetEntities     = "Entities"
)

// Result holds the three tables extracted from one document.
type Result struct {
	AlertDetails *table.Table
	Transactions *table.Table
	Entities     *table.Table
}

// Tables returns the tables in sheet order.
func (r *Result) Tables() []*table.Table {
	return []*table.Table{r.AlertDetails, r.Transactions, r.Entities}
}

// Extractor runs the three flattening passes over a parsed document.
type Extractor struct {
	logger     logging.Logger
	concurrent bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConcurrency runs the passes in parallel. Output is identical either way.
func WithConcurrency(enabled bool) Option {
	return func(x *Extractor) {
		x.concurrent = enabled
	}
}

// New returns an Extractor. A nil logger falls back to an info-level logrus
// logger.
func New(logger logging.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	x := &Extractor{logger: logger}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// ExtractString parses content and extracts it. document names the payload in
// error messages. Parse failures are returned as *parsererror.MalformedInputError.
func (x *Extractor) ExtractString(document, content string) (*Result, error) {
	doc, err := xmlutils.Parse(content)
	if err != nil {
		return nil, &parsererror.MalformedInputError{Document: document, Err: err}
	}
	return x.Extract(doc), nil
}

// ExtractReader is ExtractString over a stream.
func (x *Extractor) ExtractReader(document string, r io.Reader) (*Result, error) {
	doc, err := xmlutils.ParseReader(r)
	if err != nil {
		return nil, &parsererror.MalformedInputError{Document: document, Err: err}
	}
	return x.Extract(doc), nil
}

// Extract builds the three tables from doc. Missing sections produce empty
// tables, never errors. doc is only read.
func (x *Extractor) Extract(doc *etree.Document) *Result {
	start := time.Now()
	scope := &doc.Element
	res := &Result{}

	passes := []func(){
		func() {
			var alert *etree.Element
			if found := ResolveTag(scope, AlertTags); len(found) > 0 {
				alert = found[0]
			}
			res.AlertDetails = AlertDetails(SheetAlertDetails, alert)
		},
		func() {
			res.Transactions = FlattenRecords(SheetTransactions, ResolveTag(scope, TransactionTags))
		},
		func() {
			res.Entities = FlattenRecords(SheetEntities, ResolveTag(scope, EntityTags))
		},
	}

	if x.concurrent {
		var g errgroup.Group
		for _, pass := range passes {
			g.Go(func() error {
				pass()
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for _, pass := range passes {
			pass()
		}
	}

	for _, t := range res.Tables() {
		x.logger.Debug("Sheet extracted",
			logging.F(logging.FieldSheet, t.Name()),
			logging.F(logging.FieldColumns, t.NumColumns()),
			logging.F(logging.FieldRows, t.NumRows()))
	}
	x.logger.Info("Extraction completed",
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return res
}
