package dto

import "github.com/reybeld94/terminal-api/internal/clock/domain"

// ClockInResponse is the API response for a clock-in. The collection id is
// null when no matching open collection could be located after the call.
type ClockInResponse struct {
	Status                string `json:"status"`
	WorkOrderCollectionID *int64 `json:"workOrderCollectionId"`
}

// ClockOutResponse is the API response for a clock-out.
type ClockOutResponse struct {
	Status string `json:"status"`
}

// FromClockInResult converts a use case result to an API response.
func FromClockInResult(result *domain.ClockResult) *ClockInResponse {
	return &ClockInResponse{
		Status:                result.Status,
		WorkOrderCollectionID: result.WorkOrderCollectionID,
	}
}

// FromClockOutResult converts a use case result to an API response.
func FromClockOutResult(result *domain.ClockResult) *ClockOutResponse {
	return &ClockOutResponse{Status: result.Status}
}
