package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/reybeld94/terminal-api/internal/errors"
)

func TestTimestampUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "rfc3339 with offset",
			payload:  `"2024-03-15T08:30:00-04:00"`,
			expected: time.Date(2024, 3, 15, 8, 30, 0, 0, time.FixedZone("", -4*3600)),
		},
		{
			name:     "rfc3339 utc",
			payload:  `"2024-03-15T12:30:00Z"`,
			expected: time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC),
		},
		{
			name:     "naive treated as utc",
			payload:  `"2024-03-15T12:30:00"`,
			expected: time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			payload: `"not-a-time"`,
			wantErr: true,
		},
		{
			name:    "wrong type",
			payload: `12345`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.payload), &ts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, ts.Time.Equal(tt.expected), "got %s want %s", ts.Time, tt.expected)
		})
	}
}

func TestClockInRequestValidate(t *testing.T) {
	valid := ClockInRequest{WorkOrderAssemblyID: 10, UserID: 7, DivisionFK: 1}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*ClockInRequest)
		wantMsg string
	}{
		{
			name:    "missing assembly id",
			mutate:  func(r *ClockInRequest) { r.WorkOrderAssemblyID = 0 },
			wantMsg: "workOrderAssemblyId",
		},
		{
			name:    "negative user id",
			mutate:  func(r *ClockInRequest) { r.UserID = -3 },
			wantMsg: "userId",
		},
		{
			name:    "missing division",
			mutate:  func(r *ClockInRequest) { r.DivisionFK = 0 },
			wantMsg: "divisionFK",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClockInRequestToInput(t *testing.T) {
	reported := time.Date(2024, 3, 15, 8, 30, 0, 0, time.FixedZone("", -4*3600))
	req := ClockInRequest{
		WorkOrderAssemblyID: 10,
		UserID:              7,
		DivisionFK:          1,
		DeviceDate:          &Timestamp{Time: reported},
	}

	input := ToClockInInput(req)

	assert.Equal(t, int64(10), input.WorkOrderAssemblyID)
	assert.Equal(t, int64(7), input.UserID)
	assert.Equal(t, int64(1), input.DivisionFK)
	require.NotNil(t, input.DeviceDate)
	assert.True(t, input.DeviceDate.Equal(reported))

	req.DeviceDate = nil
	assert.Nil(t, ToClockInInput(req).DeviceDate)
}

func TestClockOutRequestValidate(t *testing.T) {
	valid := ClockOutRequest{
		WorkOrderCollectionID: 500,
		Quantity:              json.Number("12.5"),
		QuantityScrapped:      json.Number("0"),
		ScrapReasonPK:         0,
		DivisionFK:            1,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*ClockOutRequest)
		wantMsg string
	}{
		{
			name:    "missing collection id",
			mutate:  func(r *ClockOutRequest) { r.WorkOrderCollectionID = 0 },
			wantMsg: "workOrderCollectionId",
		},
		{
			name:    "missing quantity",
			mutate:  func(r *ClockOutRequest) { r.Quantity = "" },
			wantMsg: "quantity",
		},
		{
			name:    "missing quantity scrapped",
			mutate:  func(r *ClockOutRequest) { r.QuantityScrapped = "" },
			wantMsg: "quantityScrapped",
		},
		{
			name:    "negative scrap reason",
			mutate:  func(r *ClockOutRequest) { r.ScrapReasonPK = -1 },
			wantMsg: "scrapReasonPK",
		},
		{
			name:    "missing division",
			mutate:  func(r *ClockOutRequest) { r.DivisionFK = 0 },
			wantMsg: "divisionFK",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClockOutRequestToInput(t *testing.T) {
	reported := time.Date(2024, 3, 15, 16, 45, 0, 0, time.UTC)
	req := ClockOutRequest{
		WorkOrderCollectionID: 500,
		Quantity:              json.Number("12.5"),
		QuantityScrapped:      json.Number("1"),
		ScrapReasonPK:         3,
		Complete:              true,
		Comment:               "tooling change",
		DeviceTime:            &Timestamp{Time: reported},
		DivisionFK:            1,
	}

	input := ToClockOutInput(req)

	assert.Equal(t, int64(500), input.WorkOrderCollectionID)
	assert.Equal(t, "12.5", input.Quantity)
	assert.Equal(t, "1", input.QuantityScrapped)
	assert.Equal(t, int64(3), input.ScrapReasonPK)
	assert.True(t, input.Complete)
	assert.Equal(t, "tooling change", input.Comment)
	require.NotNil(t, input.DeviceTime)
	assert.True(t, input.DeviceTime.Equal(reported))
	assert.Equal(t, int64(1), input.DivisionFK)
}
