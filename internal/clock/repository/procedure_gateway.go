// Package repository provides MySQL persistence for clock operations,
// including the stored-procedure gateway.
package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/reybeld94/terminal-api/internal/clock/domain"
	"github.com/reybeld94/terminal-api/internal/database"
	apperrors "github.com/reybeld94/terminal-api/internal/errors"
	"github.com/reybeld94/terminal-api/internal/httputil"
)

// statusColumn is the column procedures report their outcome in. Exact match
// is preferred; a case-insensitive fallback covers older procedures.
const statusColumn = "Status"

// MySQLProcedureGateway invokes stored procedures with positional parameters
// and extracts the status value from their result sets.
//
// Status extraction policy: the first status found wins. Later result sets are
// still fully drained (the protocol requires strict sequential draining before
// any further statement on the same session) but cannot override an
// already-captured status.
type MySQLProcedureGateway struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewMySQLProcedureGateway creates a gateway bound to the given database.
func NewMySQLProcedureGateway(db *sql.DB, logger *slog.Logger) *MySQLProcedureGateway {
	return &MySQLProcedureGateway{db: db, logger: logger}
}

// Call invokes the named procedure with the given positional parameters,
// consumes every result set, and returns the extracted status. Values must
// already be coerced by the caller: decimals as strings, booleans as 0/1
// integers, timestamps as ISO-8601 UTC strings without an offset suffix.
//
// A procedure that drains without yielding a status fails with
// ErrEmptyProcedureStatus; driver failures surface as ErrDatabase. The
// gateway never retries.
func (g *MySQLProcedureGateway) Call(
	ctx context.Context,
	name string,
	params []domain.ProcedureParam,
) (string, error) {
	paramMap := make(map[string]any, len(params))
	args := make([]any, len(params))
	placeholders := make([]string, len(params))
	for i, p := range params {
		paramMap[p.Name] = p.Value
		args[i] = p.Value
		placeholders[i] = "?"
	}

	g.logger.Info("stored_procedure.call",
		slog.String("request_id", httputil.RequestID(ctx)),
		slog.String("procedure", name),
		slog.Any("params", paramMap),
	)

	stmt := "CALL " + name + "(" + strings.Join(placeholders, ", ") + ")"

	querier := database.GetTx(ctx, g.db)
	rows, err := querier.QueryContext(ctx, stmt, args...)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrDatabase, "procedure %s failed: %v", name, err)
	}
	defer func() { _ = rows.Close() }()

	status, err := drainForStatus(rows)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrDatabase, "procedure %s result: %v", name, err)
	}
	if status == "" {
		return "", apperrors.Wrapf(apperrors.ErrEmptyProcedureStatus, "procedure %s", name)
	}

	g.logger.Info("stored_procedure.result",
		slog.String("request_id", httputil.RequestID(ctx)),
		slog.String("procedure", name),
		slog.String("status", status),
	)

	return status, nil
}

// drainForStatus walks every result set, capturing the status from the first
// row of the first set that exposes a status column, and fully consumes all
// remaining rows and sets.
func drainForStatus(rows *sql.Rows) (string, error) {
	status := ""

	for {
		columns, err := rows.Columns()
		if err != nil {
			return "", err
		}

		statusIdx := findStatusColumn(columns)

		if rows.Next() {
			if statusIdx >= 0 && status == "" {
				dest := make([]any, len(columns))
				for i := range dest {
					dest[i] = new(any)
				}
				if err := rows.Scan(dest...); err != nil {
					return "", err
				}
				status = asString(*dest[statusIdx].(*any))
			}
			// Drain the rest of the current result set
			for rows.Next() {
			}
		}
		if err := rows.Err(); err != nil {
			return "", err
		}

		if !rows.NextResultSet() {
			break
		}
	}

	if err := rows.Err(); err != nil {
		return "", err
	}
	return status, nil
}

// findStatusColumn returns the status column index, preferring an exact match
// over a case-insensitive one, or -1 when the set has no status column.
func findStatusColumn(columns []string) int {
	fallback := -1
	for i, col := range columns {
		if col == statusColumn {
			return i
		}
		if fallback < 0 && strings.EqualFold(col, statusColumn) {
			fallback = i
		}
	}
	return fallback
}

// asString renders a scanned cell as a string; drivers report text columns as
// either []byte or string.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return ""
	}
}
