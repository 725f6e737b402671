// Package batch handles batch extraction of alert exports from a directory
package batch

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fjacquet/alert-extract/cmd/root"
	internalbatch "fjacquet/alert-extract/internal/batch"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract every alert export of a directory",
	Long: `Extract every .xml and .xml.gz alert export below an input directory into
one workbook each in the output directory. Subdirectories are mirrored.

Example:
  alert-extract batch -i exports/ -o workbooks/`,
	RunE: batchFunc,
}

var workers int

func init() {
	Cmd.Flags().IntVar(&workers, "workers", 0, "Documents extracted in parallel (default: number of CPUs)")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		return fmt.Errorf("input and output directories must be specified")
	}

	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	report, err := appContainer.GetBatchRunner().WithWorkers(workers).Run(cmd.Context(), inputDir, outputDir)
	if err != nil {
		return err
	}
	return PrintReport(cmd.OutOrStdout(), report)
}

// PrintReport writes a summary of report and fails when any document failed.
func PrintReport(out io.Writer, report *internalbatch.Report) error {
	for _, f := range report.Failed() {
		fmt.Fprintf(out, "FAILED %s: %v\n", f.Input, f.Err)
	}
	fmt.Fprintf(out, "Batch completed: %d of %d documents extracted in %s\n",
		report.Succeeded(), len(report.Files), report.Duration.Round(1e6))

	if n := len(report.Failed()); n > 0 {
		return fmt.Errorf("%d of %d documents failed", n, len(report.Files))
	}
	return nil
}
