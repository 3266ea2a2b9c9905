package models

type APIError struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Fields    map[string]string      `json:"fields,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
