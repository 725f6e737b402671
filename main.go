package main

import (
	"fmt"
	"os"

	"fjacquet/alert-extract/cmd/batch"
	"fjacquet/alert-extract/cmd/extract"
	"fjacquet/alert-extract/cmd/root"
	"fjacquet/alert-extract/cmd/serve"
	"fjacquet/alert-extract/internal/config"
)

func init() {
	// .env first so its log settings apply before any logger is created
	config.LoadEnv()
	config.ConfigureLogging()

	root.Init()
	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
