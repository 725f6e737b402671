package models

// Extraction statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ExtractResponse is the uniform result of an extract request.
type ExtractResponse struct {
	Status   string `json:"status"`
	FilePath string `json:"filePath,omitempty"`
	FileName string `json:"fileName,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Succeeded reports a success status.
func (r ExtractResponse) Succeeded() bool {
	return r.Status == StatusSuccess
}

// ExtractSuccess builds a success response.
func ExtractSuccess(filePath, fileName string) ExtractResponse {
	return ExtractResponse{Status: StatusSuccess, FilePath: filePath, FileName: fileName}
}

// ExtractFailure builds an error response.
func ExtractFailure(message string) ExtractResponse {
	return ExtractResponse{Status: StatusError, Message: message}
}
