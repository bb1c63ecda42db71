package repository

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reybeld94/terminal-api/internal/clock/domain"
	apperrors "github.com/reybeld94/terminal-api/internal/errors"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, mock
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func clockInParams(deviceDate string) []domain.ProcedureParam {
	return []domain.ProcedureParam{
		{Name: "workOrderAssemblyId", Value: int64(17)},
		{Name: "userId", Value: int64(42)},
		{Name: "divisionFK", Value: int64(5)},
		{Name: "deviceDate", Value: deviceDate},
	}
}

func TestCall_StatusInFirstResultSet(t *testing.T) {
	db, mock := setupMockDB(t)
	gateway := NewMySQLProcedureGateway(db, testLogger())

	mock.ExpectQuery("CALL usp_mie_api_ClockInWorkOrderAssembly").
		WithArgs(int64(17), int64(42), int64(5), "2024-03-15T12:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"Status"}).AddRow("OK"))

	status, err := gateway.Call(
		context.Background(),
		domain.ClockInProcedure,
		clockInParams("2024-03-15T12:00:00"),
	)

	require.NoError(t, err)
	assert.Equal(t, "OK", status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCall_FirstFoundStatusWins(t *testing.T) {
	db, mock := setupMockDB(t)
	gateway := NewMySQLProcedureGateway(db, testLogger())

	first := sqlmock.NewRows([]string{"Status"}).AddRow("OK")
	second := sqlmock.NewRows([]string{"Status"}).AddRow("OVERRIDDEN")
	mock.ExpectQuery("CALL usp_mie_api_ClockOutWorkOrderCollection").
		WillReturnRows(first, second)

	status, err := gateway.Call(context.Background(), domain.ClockOutProcedure, nil)

	require.NoError(t, err)
	assert.Equal(t, "OK", status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCall_StatusInLaterResultSet(t *testing.T) {
	db, mock := setupMockDB(t)
	gateway := NewMySQLProcedureGateway(db, testLogger())

	// First set carries diagnostics only; status arrives in the second set.
	first := sqlmock.NewRows([]string{"RowsAffected"}).AddRow(int64(1))
	second := sqlmock.NewRows([]string{"Status"}).AddRow("OK")
	mock.ExpectQuery("CALL usp_mie_api_ClockInWorkOrderAssembly").
		WillReturnRows(first, second)

	status, err := gateway.Call(context.Background(), domain.ClockInProcedure, nil)

	require.NoError(t, err)
	assert.Equal(t, "OK", status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCall_CaseInsensitiveStatusColumn(t *testing.T) {
	db, mock := setupMockDB(t)
	gateway := NewMySQLProcedureGateway(db, testLogger())

	mock.ExpectQuery("CALL usp_mie_api_ClockInWorkOrderAssembly").
		WillReturnRows(sqlmock.NewRows([]string{"STATUS"}).AddRow("OK"))

	status, err := gateway.Call(context.Background(), domain.ClockInProcedure, nil)

	require.NoError(t, err)
	assert.Equal(t, "OK", status)
}

func TestCall_EmptyProcedureStatus(t *testing.T) {
	tests := []struct {
		name string
		rows *sqlmock.Rows
	}{
		{"no status column", sqlmock.NewRows([]string{"RowsAffected"}).AddRow(int64(1))},
		{"empty result set", sqlmock.NewRows([]string{"Status"})},
		{"null status value", sqlmock.NewRows([]string{"Status"}).AddRow(nil)},
		{"empty status string", sqlmock.NewRows([]string{"Status"}).AddRow("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			gateway := NewMySQLProcedureGateway(db, testLogger())

			mock.ExpectQuery("CALL usp_mie_api_ClockInWorkOrderAssembly").
				WillReturnRows(tt.rows)

			_, err := gateway.Call(context.Background(), domain.ClockInProcedure, nil)

			assert.ErrorIs(t, err, apperrors.ErrEmptyProcedureStatus)
		})
	}
}

func TestCall_DriverError(t *testing.T) {
	db, mock := setupMockDB(t)
	gateway := NewMySQLProcedureGateway(db, testLogger())

	mock.ExpectQuery("CALL usp_mie_api_ClockInWorkOrderAssembly").
		WillReturnError(apperrors.New("connection refused"))

	_, err := gateway.Call(context.Background(), domain.ClockInProcedure, nil)

	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.NotErrorIs(t, err, apperrors.ErrEmptyProcedureStatus)
}

func TestLatestCollectionID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMySQLCollectionRepository(db, testLogger())

	mock.ExpectQuery("SELECT wc.WorkOrderCollectionPK").
		WithArgs(int64(17), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"WorkOrderCollectionPK"}).AddRow(int64(999)))

	id, err := repo.LatestCollectionID(context.Background(), 42, 17)

	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(999), *id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestCollectionID_NoMatchingRow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMySQLCollectionRepository(db, testLogger())

	mock.ExpectQuery("SELECT wc.WorkOrderCollectionPK").
		WithArgs(int64(17), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"WorkOrderCollectionPK"}))

	id, err := repo.LatestCollectionID(context.Background(), 42, 17)

	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestLatestCollectionID_DriverError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMySQLCollectionRepository(db, testLogger())

	mock.ExpectQuery("SELECT wc.WorkOrderCollectionPK").
		WillReturnError(apperrors.New("timeout"))

	_, err := repo.LatestCollectionID(context.Background(), 42, 17)

	assert.ErrorIs(t, err, apperrors.ErrDatabase)
}
