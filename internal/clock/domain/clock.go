// Package domain defines the core types for clock-in/clock-out operations
// against work orders.
package domain

import "time"

// Stored procedures invoked by the clock operations.
const (
	ClockInProcedure  = "usp_mie_api_ClockInWorkOrderAssembly"
	ClockOutProcedure = "usp_mie_api_ClockOutWorkOrderCollection"
)

// ProcedureTimeLayout is the timestamp format stored procedures expect:
// ISO-8601 in UTC with the offset suffix stripped and no fractional seconds.
const ProcedureTimeLayout = "2006-01-02T15:04:05"

// ProcedureParam is one positional stored-procedure parameter. The name is
// only used for logging; the database sees values in slice order.
type ProcedureParam struct {
	Name  string
	Value any
}

// ClockInInput carries a validated clock-in request. DeviceDate is nil when
// the terminal did not report a timestamp.
type ClockInInput struct {
	WorkOrderAssemblyID int64
	UserID              int64
	DivisionFK          int64
	DeviceDate          *time.Time
}

// ClockOutInput carries a validated clock-out request. Quantities are decimal
// strings to avoid float rounding on their way to the database.
type ClockOutInput struct {
	WorkOrderCollectionID int64
	Quantity              string
	QuantityScrapped      string
	ScrapReasonPK         int64
	Complete              bool
	Comment               string
	DeviceTime            *time.Time
	DivisionFK            int64
}

// ClockResult is the outcome of a clock operation. WorkOrderCollectionID is
// only populated for clock-in, and stays nil when no matching open collection
// row was found.
type ClockResult struct {
	Status                string
	WorkOrderCollectionID *int64
}

// NormalizeDeviceTime converts a terminal-reported timestamp to UTC, or falls
// back to now when the terminal sent none. Offset information is dropped at
// format time; procedures work in naive UTC.
func NormalizeDeviceTime(reported *time.Time, now time.Time) time.Time {
	if reported == nil {
		return now.UTC()
	}
	return reported.UTC()
}

// FormatProcedureTime renders a timestamp the way stored procedures expect it.
func FormatProcedureTime(t time.Time) string {
	return t.UTC().Format(ProcedureTimeLayout)
}

// BoolToInt renders a boolean as the 0/1 integer stored procedures expect.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
