// Package domain contains user and labor-status entities.
package domain

import "time"

// User is a shop-floor employee row.
type User struct {
	UserPK    int64
	FirstName string
	LastName  string
}

// ActiveWorkOrder is a snapshot of the work-order collection a user is
// currently clocked in on, joined with work order and operation metadata.
// The metadata fields come from outer joins and may be absent.
type ActiveWorkOrder struct {
	WorkOrderCollectionID   int64
	WorkOrderNumber         string
	WorkOrderAssemblyNumber int64
	ClockInTime             time.Time
	PartNumber              *string
	OperationCode           *string
	OperationName           *string
}

// UserStatus combines a user with their open work-order collection, if any.
type UserStatus struct {
	User            User
	ActiveWorkOrder *ActiveWorkOrder
}
