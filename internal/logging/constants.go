package logging

// Field names shared by every log line so extraction runs can be filtered
// by alert, sheet or request.
const (
	FieldAlertID      = "alert_id"
	FieldSourceSystem = "source_system"
	FieldSheet        = "sheet"
	FieldColumns      = "columns"
	FieldRows         = "rows"
	FieldFile         = "file_path"
	FieldFileName     = "file_name"
	FieldDuration     = "duration_ms"
	FieldStatus       = "status"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldRequestID    = "request_id"
	FieldError        = "error"
)
