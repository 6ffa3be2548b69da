package dto

import "time"

// APIResponse is the standard response envelope for every endpoint.
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-09-01T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse wraps an error detail in a failure envelope
func NewErrorResponse(detail *ErrorDetail) APIResponse {
	return APIResponse{
		Success:   false,
		Error:     detail,
		Timestamp: time.Now(),
	}
}

// PaginationInfo describes one page of a larger result set.
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"pageSize" example:"20"`
	TotalItems  int64 `json:"totalItems" example:"93"`
}
