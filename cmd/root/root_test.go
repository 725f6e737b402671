package root_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/alert-extract/cmd/root"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "alert-extract", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "workbook")
	assert.Contains(t, root.Cmd.Long, "Alert Details, Transactions and Entities")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
	}{
		{"input", "i"},
		{"output", "o"},
		{"validate", "v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := root.Cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestRootCommand_Run(t *testing.T) {
	assert.NotPanics(t, func() {
		root.Cmd.Run(&cobra.Command{}, []string{})
	})
}

func TestInitialize(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ALERT_EXTRACT_OUTPUT_DIRECTORY", t.TempDir())

	originalConfig, originalContainer := root.AppConfig, root.AppContainer
	defer func() {
		root.AppConfig, root.AppContainer = originalConfig, originalContainer
	}()

	require.NoError(t, root.Initialize())
	require.NotNil(t, root.GetConfig())
	require.NotNil(t, root.GetContainer())
	assert.NotNil(t, root.GetLogrusAdapter())
	assert.Equal(t, root.GetContainer().GetStore().Root(), root.GetConfig().Output.Directory)
}

func TestInitialize_InvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ALERT_EXTRACT_LOG_FORMAT", "xml")

	err := root.Initialize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestGetLogrusAdapter_BeforeInitialize(t *testing.T) {
	original := root.AppContainer
	defer func() { root.AppContainer = original }()

	root.AppContainer = nil
	assert.NotNil(t, root.GetLogrusAdapter())
}

func TestRootCommand_PersistentPostRun(t *testing.T) {
	original := root.AppContainer
	defer func() { root.AppContainer = original }()

	root.AppContainer = nil
	assert.NotPanics(t, func() {
		root.Cmd.PersistentPostRun(&cobra.Command{}, []string{})
	})
}

func TestCommonFlags_Structure(t *testing.T) {
	flags := root.CommonFlags{Input: "alert.xml", Output: "alert.xlsx", Validate: true}
	assert.Equal(t, "alert.xml", flags.Input)
	assert.Equal(t, "alert.xlsx", flags.Output)
	assert.True(t, flags.Validate)
}
