package models

import (
	"path/filepath"
	"strings"
	"unicode"
)

// SourceSystem identifies the upstream system holding an alert's XML.
type SourceSystem string

const (
	// SourceActOne is the primary alert-management system.
	SourceActOne SourceSystem = "ACTONE"
	// SourceRCM is the case-management system.
	SourceRCM SourceSystem = "RCM"
)

// ParseSourceSystem maps a raw source label to a SourceSystem. Only RCM is
// recognized explicitly; every other label belongs to ActOne.
func ParseSourceSystem(raw string) SourceSystem {
	if strings.EqualFold(strings.TrimSpace(raw), string(SourceRCM)) {
		return SourceRCM
	}
	return SourceActOne
}

// Alert is the upstream alert record needed to locate its XML payload.
type Alert struct {
	ID     string       `json:"id" yaml:"id"`
	Source SourceSystem `json:"source" yaml:"source"`
}

// ArtifactName is the download file name for an alert's workbook. Path
// separators and control characters in alertID become '_' so the name is
// always a single path element.
func ArtifactName(alertID string) string {
	return "Alert_" + strings.Map(fileNameRune, alertID) + "_Data.xlsx"
}

func fileNameRune(r rune) rune {
	if r == '/' || r == '\\' || unicode.IsControl(r) {
		return '_'
	}
	return r
}

// DocumentArtifactName is the workbook name for a local XML document:
// alert.xml and alert.xml.gz both become alert.xlsx.
func DocumentArtifactName(document string) string {
	base := filepath.Base(document)
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".gz") {
		base = strings.TrimSuffix(base, ext)
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "output"
	}
	return base + ".xlsx"
}
