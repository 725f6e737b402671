// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/alert-extract/internal/config"
	"fjacquet/alert-extract/internal/container"
	"fjacquet/alert-extract/internal/logging"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig *config.Config

	// AppContainer holds the wired application dependencies
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "alert-extract",
		Short: "Flatten alert XML into an Alert Details / Transactions / Entities workbook.",
		Long: `alert-extract turns the XML export of a financial-crime alert into an XLSX
workbook with three sheets: Alert Details, Transactions and Entities.

Alerts are read from a local file, from a directory of exports or from the
ActOne and RCM alert APIs. The serve command exposes the same extraction
over HTTP.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				_ = AppContainer.Close()
			}
		},
	}

	// SharedFlags holds the common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input XML file (or directory for batch)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output workbook (or directory for batch)")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Check that the input looks like an alert export before extracting")
}

// Initialize loads the .env file and the configuration and wires the
// application container.
func Initialize() error {
	config.LoadEnv()

	cfg, err := config.InitializeConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	Log = config.ConfigureLoggingFromConfig(cfg)

	c, err := container.NewContainerWithLogger(cfg, logging.NewLogrusAdapterFromLogger(Log))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	return nil
}

// GetLogrusAdapter returns the shared logger behind the logging.Logger interface
func GetLogrusAdapter() logging.Logger {
	if AppContainer != nil {
		return AppContainer.GetLogger()
	}
	return logging.NewLogrusAdapterFromLogger(Log)
}

// GetContainer returns the application container, or nil before Initialize.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the loaded configuration, or nil before Initialize.
func GetConfig() *config.Config {
	return AppConfig
}
