// Package serve implements the serve command.
package serve

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fjacquet/alert-extract/cmd/root"
	"fjacquet/alert-extract/internal/api"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extraction API over HTTP",
	Long: `Serve the extraction API over HTTP:

  GET {base}/extract/{alertId}             extract an alert into a workbook
  GET {base}/download/{filePath}?fileName= download a generated workbook
  GET /health                              liveness probe

The base path defaults to /api/plugins/xml-extractor.`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	cfg := c.GetConfig()
	if err := cfg.ValidateSources(); err != nil {
		return err
	}

	listen := cfg.Server.Addr
	if addr != "" {
		listen = addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(c.GetService(), c.GetLogger(), cfg.Server.BasePath)
	return server.Run(ctx, listen, cfg.ReadTimeout(), cfg.WriteTimeout())
}
