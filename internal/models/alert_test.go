package models

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSourceSystem(t *testing.T) {
	tests := []struct {
		raw      string
		expected SourceSystem
	}{
		{"RCM", SourceRCM},
		{"rcm", SourceRCM},
		{" Rcm ", SourceRCM},
		{"ACTONE", SourceActOne},
		{"ActOne", SourceActOne},
		{"", SourceActOne},
		{"other", SourceActOne},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSourceSystem(tt.raw))
		})
	}
}

func TestArtifactName(t *testing.T) {
	tests := map[string]string{
		"123":       "Alert_123_Data.xlsx",
		"A-1":       "Alert_A-1_Data.xlsx",
		"a/b":       "Alert_a_b_Data.xlsx",
		`..\x`:      "Alert_.._x_Data.xlsx",
		"../../etc": "Alert_.._.._etc_Data.xlsx",
		"id\nnext":  "Alert_id_next_Data.xlsx",
	}
	for in, want := range tests {
		got := ArtifactName(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, filepath.Base(got), in)
	}
}

func TestExtractResponse_JSON(t *testing.T) {
	ok, err := json.Marshal(ExtractSuccess("/tmp/x/Alert_1_Data.xlsx", "Alert_1_Data.xlsx"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","filePath":"/tmp/x/Alert_1_Data.xlsx","fileName":"Alert_1_Data.xlsx"}`, string(ok))

	fail, err := json.Marshal(ExtractFailure("Alert not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","message":"Alert not found"}`, string(fail))

	assert.True(t, ExtractSuccess("a", "b").Succeeded())
	assert.False(t, ExtractFailure("x").Succeeded())
}

func TestDocumentArtifactName(t *testing.T) {
	tests := map[string]string{
		"alert.xml":             "alert.xlsx",
		"/data/in/alert.xml.gz": "alert.xlsx",
		"case.XML.GZ":           "case.xlsx",
		"noext":                 "noext.xlsx",
		"":                      "output.xlsx",
	}
	for in, want := range tests {
		assert.Equal(t, want, DocumentArtifactName(in), in)
	}
}
