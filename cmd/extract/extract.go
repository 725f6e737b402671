// Package extract implements the extract command.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fjacquet/alert-extract/cmd/root"
	"fjacquet/alert-extract/internal/container"
	"fjacquet/alert-extract/internal/extractor"
	"fjacquet/alert-extract/internal/fileutils"
	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/models"
	"fjacquet/alert-extract/internal/parsererror"
	"fjacquet/alert-extract/internal/xmlutils"
)

var (
	alertID string
	preview bool
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract one alert into an XLSX workbook",
	Long: `Extract one alert into an XLSX workbook with the sheets Alert Details,
Transactions and Entities.

The alert is read from a local XML file (-i, .xml or .xml.gz) or looked up by
id (--alert-id) in the configured alert sources.

Examples:
  alert-extract extract -i alert.xml -o alert.xlsx
  alert-extract extract --alert-id 12345
  alert-extract extract -i alert.xml.gz --preview`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVar(&alertID, "alert-id", "", "Alert id to fetch from the configured sources")
	Cmd.Flags().BoolVar(&preview, "preview", false, "Print the extracted tables as YAML instead of writing a workbook")
}

func run(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	return Execute(cmd.Context(), c, Options{
		AlertID:  alertID,
		Input:    root.SharedFlags.Input,
		Output:   root.SharedFlags.Output,
		Validate: root.SharedFlags.Validate,
		Preview:  preview,
	}, cmd.OutOrStdout())
}

// Options selects what extract reads and writes.
type Options struct {
	AlertID  string
	Input    string
	Output   string
	Validate bool
	Preview  bool
}

// Execute runs one extraction with the dependencies of c, writing the preview
// or a summary line to out.
func Execute(ctx context.Context, c *container.Container, opts Options, out io.Writer) error {
	if (opts.AlertID == "") == (opts.Input == "") {
		return fmt.Errorf("exactly one of --alert-id or --input is required")
	}
	logger := c.GetLogger()

	document, content, err := load(ctx, c, opts)
	if err != nil {
		return err
	}

	if opts.Validate {
		if err := validate(document, content); err != nil {
			return err
		}
		logger.Debug("Input validated", logging.F(logging.FieldFile, document))
	}

	if opts.Preview {
		res, err := c.GetExtractor().ExtractString(document, content)
		if err != nil {
			return err
		}
		return WritePreview(out, res)
	}

	output := opts.Output
	if output == "" && opts.AlertID != "" {
		output = c.GetStore().Path(models.ArtifactName(opts.AlertID))
	}
	res, path, err := c.GetService().ExtractDocument(document, content, output)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Wrote %s (%d transactions, %d entities)\n",
		path, res.Transactions.NumRows(), res.Entities.NumRows())
	return err
}

func load(ctx context.Context, c *container.Container, opts Options) (document, content string, err error) {
	if opts.Input != "" {
		data, err := fileutils.ReadInput(opts.Input)
		if err != nil {
			return "", "", &parsererror.IOFailureError{Op: "read input", Path: opts.Input, Err: err}
		}
		return opts.Input, string(data), nil
	}

	if err := c.GetConfig().ValidateSources(); err != nil {
		return "", "", err
	}
	_, content, err = c.GetService().FetchAlertXML(ctx, opts.AlertID)
	if err != nil {
		return "", "", err
	}
	return opts.AlertID, content, nil
}

// validate checks that the document contains at least one alert,
// transaction or entity element.
func validate(document, content string) error {
	var tags []string
	tags = append(tags, extractor.AlertTags...)
	tags = append(tags, extractor.TransactionTags...)
	tags = append(tags, extractor.EntityTags...)

	ok, err := xmlutils.ContainsAnyElement(bytes.NewReader([]byte(content)), tags...)
	if err != nil {
		return err
	}
	if !ok {
		return &parsererror.ValidationError{FilePath: document, Reason: "no alert, transaction or entity elements found"}
	}
	return nil
}

type previewSheet struct {
	Name    string     `yaml:"name"`
	Columns []string   `yaml:"columns"`
	Rows    [][]string `yaml:"rows"`
}

// WritePreview renders the tables of res as a YAML document.
func WritePreview(out io.Writer, res *extractor.Result) error {
	sheets := make([]previewSheet, 0, 3)
	for _, t := range res.Tables() {
		sheets = append(sheets, previewSheet{
			Name:    t.Name(),
			Columns: t.Columns(),
			Rows:    t.Records(),
		})
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(sheets); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return enc.Close()
}
