// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	"time"

	"github.com/reybeld94/terminal-api/internal/user/domain"
)

// UserStatusResponse reports a user and their open work-order collection.
// The work-order fields are all null together when the user is not clocked
// in anywhere.
type UserStatusResponse struct {
	UserID                  int64      `json:"userId"`
	FirstName               string     `json:"firstName"`
	LastName                string     `json:"lastName"`
	WorkOrderCollectionID   *int64     `json:"workOrderCollectionId"`
	WorkOrderNumber         *string    `json:"workOrderNumber"`
	WorkOrderAssemblyNumber *int64     `json:"workOrderAssemblyNumber"`
	ClockInTime             *time.Time `json:"clockInTime"`
	PartNumber              *string    `json:"partNumber"`
	OperationCode           *string    `json:"operationCode"`
	OperationName           *string    `json:"operationName"`
}

// FromUserStatus converts a use case result to an API response.
func FromUserStatus(status *domain.UserStatus) *UserStatusResponse {
	response := &UserStatusResponse{
		UserID:    status.User.UserPK,
		FirstName: status.User.FirstName,
		LastName:  status.User.LastName,
	}

	if workOrder := status.ActiveWorkOrder; workOrder != nil {
		response.WorkOrderCollectionID = &workOrder.WorkOrderCollectionID
		response.WorkOrderNumber = &workOrder.WorkOrderNumber
		response.WorkOrderAssemblyNumber = &workOrder.WorkOrderAssemblyNumber
		response.ClockInTime = &workOrder.ClockInTime
		response.PartNumber = workOrder.PartNumber
		response.OperationCode = workOrder.OperationCode
		response.OperationName = workOrder.OperationName
	}

	return response
}
