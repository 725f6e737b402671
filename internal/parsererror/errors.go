// Package parsererror defines the typed failures raised while fetching,
// parsing and serializing alert XML. Callers classify them with errors.As.
package parsererror

import "fmt"

// NotFoundError means the alert identifier does not resolve to any alert.
type NotFoundError struct {
	AlertID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("alert %s not found", e.AlertID)
}

// EmptyPayloadError means the alert exists but carries no XML.
type EmptyPayloadError struct {
	AlertID string
	Source  string
}

func (e *EmptyPayloadError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("no XML content for alert %s in %s", e.AlertID, e.Source)
	}
	return fmt.Sprintf("no XML content for alert %s", e.AlertID)
}

// MalformedInputError means the XML payload could not be parsed.
type MalformedInputError struct {
	Document string
	Err      error
}

func (e *MalformedInputError) Error() string {
	if e.Document != "" {
		return fmt.Sprintf("malformed XML in %s: %v", e.Document, e.Err)
	}
	return fmt.Sprintf("malformed XML: %v", e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// IOFailureError means the output artifact could not be created or written.
type IOFailureError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOFailureError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOFailureError) Unwrap() error {
	return e.Err
}

// ArtifactUnreadableError means a requested artifact could not be read back.
type ArtifactUnreadableError struct {
	Ref string
	Err error
}

func (e *ArtifactUnreadableError) Error() string {
	return fmt.Sprintf("artifact '%s' is not readable: %v", e.Ref, e.Err)
}

func (e *ArtifactUnreadableError) Unwrap() error {
	return e.Err
}

// SourceError wraps a failure talking to an upstream alert system.
type SourceError struct {
	System  string
	AlertID string
	Err     error
}

func (e *SourceError) Error() string {
	if e.System == "" {
		return fmt.Sprintf("fetching alert %s: %v", e.AlertID, e.Err)
	}
	return fmt.Sprintf("%s: fetching alert %s: %v", e.System, e.AlertID, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ValidationError reports a document that parsed but does not look like an
// alert export.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}
