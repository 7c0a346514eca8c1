package dto

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	Pagination any    `json:"pagination,omitempty"`
	Filters    any    `json:"filters,omitempty"`
}

// ErrorResponse is the envelope shape of a failed request (swagger only).
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"User not found"`
	Error   string `json:"error,omitempty"`
}

type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
