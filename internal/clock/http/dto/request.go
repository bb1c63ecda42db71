// Package dto provides data transfer objects for the clock HTTP layer.
package dto

import (
	"encoding/json"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/reybeld94/terminal-api/internal/clock/domain"
	appvalidation "github.com/reybeld94/terminal-api/internal/validation"
)

// naiveTimeLayout parses timestamps terminals send without offset
// information; those are taken as UTC.
const naiveTimeLayout = "2006-01-02T15:04:05"

// Timestamp accepts both offset-bearing RFC 3339 timestamps and naive ones.
// Naive values are attached to UTC; offset-bearing values keep their instant
// and are converted later.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON parses the timestamp, trying RFC 3339 first and falling back
// to the naive layout.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		parsed, err = time.ParseInLocation(naiveTimeLayout, raw, time.UTC)
		if err != nil {
			return err
		}
	}

	t.Time = parsed
	return nil
}

// MarshalJSON renders the timestamp as RFC 3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// ClockInRequest represents the API request to clock an employee in on a
// work-order assembly.
type ClockInRequest struct {
	WorkOrderAssemblyID int64      `json:"workOrderAssemblyId"`
	UserID              int64      `json:"userId"`
	DivisionFK          int64      `json:"divisionFK"`
	DeviceDate          *Timestamp `json:"deviceDate"`
}

// Validate checks the clock-in request fields.
func (r *ClockInRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.WorkOrderAssemblyID, appvalidation.PositiveID),
		validation.Field(&r.UserID, appvalidation.PositiveID),
		validation.Field(&r.DivisionFK, appvalidation.PositiveID),
	)
	return appvalidation.WrapValidationError(err)
}

// ToClockInInput converts the request to a use case input.
func ToClockInInput(r ClockInRequest) *domain.ClockInInput {
	input := &domain.ClockInInput{
		WorkOrderAssemblyID: r.WorkOrderAssemblyID,
		UserID:              r.UserID,
		DivisionFK:          r.DivisionFK,
	}
	if r.DeviceDate != nil {
		input.DeviceDate = &r.DeviceDate.Time
	}
	return input
}

// ClockOutRequest represents the API request to clock an employee out of an
// open work-order collection.
type ClockOutRequest struct {
	WorkOrderCollectionID int64       `json:"workOrderCollectionId"`
	Quantity              json.Number `json:"quantity"`
	QuantityScrapped      json.Number `json:"quantityScrapped"`
	ScrapReasonPK         int64       `json:"scrapReasonPK"`
	Complete              bool        `json:"complete"`
	Comment               string      `json:"comment"`
	DeviceTime            *Timestamp  `json:"deviceTime"`
	DivisionFK            int64       `json:"divisionFK"`
}

// Validate checks the clock-out request fields. Quantities only need to be
// parseable decimals; negative values are a data-entry concern the procedures
// handle themselves.
func (r *ClockOutRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.WorkOrderCollectionID, appvalidation.PositiveID),
		validation.Field(&r.Quantity,
			validation.Required.Error("quantity is required"),
			appvalidation.Decimal{},
		),
		validation.Field(&r.QuantityScrapped,
			validation.Required.Error("quantityScrapped is required"),
			appvalidation.Decimal{},
		),
		validation.Field(&r.ScrapReasonPK,
			validation.Min(int64(0)).Error("must not be negative"),
		),
		validation.Field(&r.DivisionFK, appvalidation.PositiveID),
	)
	return appvalidation.WrapValidationError(err)
}

// ToClockOutInput converts the request to a use case input.
func ToClockOutInput(r ClockOutRequest) *domain.ClockOutInput {
	input := &domain.ClockOutInput{
		WorkOrderCollectionID: r.WorkOrderCollectionID,
		Quantity:              r.Quantity.String(),
		QuantityScrapped:      r.QuantityScrapped.String(),
		ScrapReasonPK:         r.ScrapReasonPK,
		Complete:              r.Complete,
		Comment:               r.Comment,
		DivisionFK:            r.DivisionFK,
	}
	if r.DeviceTime != nil {
		input.DeviceTime = &r.DeviceTime.Time
	}
	return input
}
