package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sergioanunez/phase/internal/db"
	"github.com/sergioanunez/phase/internal/domain"
)

// homeColumns is the canonical SELECT column list for homes.
const homeColumns = `id, tenant_id, name, address, start_date,
		forecast_completion_date, forecast_total_working_days, forecast_computed_at,
		created_at, updated_at`

// SQLiteHomeRepo implements HomeRepo using a SQLite database.
type SQLiteHomeRepo struct {
	db db.DBTX
}

// NewSQLiteHomeRepo creates a new SQLiteHomeRepo.
func NewSQLiteHomeRepo(db db.DBTX) *SQLiteHomeRepo {
	return &SQLiteHomeRepo{db: db}
}

func (r *SQLiteHomeRepo) Create(ctx context.Context, h *domain.Home) error {
	query := `INSERT INTO homes (id, tenant_id, name, address, start_date,
		forecast_completion_date, forecast_total_working_days, forecast_computed_at,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.TenantID,
		h.Name,
		h.Address,
		nullableTimeToString(h.StartDate, dateLayout),
		nullableTimeToString(h.ForecastCompletionDate, dateLayout),
		nullableIntToValue(h.ForecastTotalWorkingDays),
		nullableTimeToString(h.ForecastComputedAt, time.RFC3339),
		h.CreatedAt.Format(time.RFC3339),
		h.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting home: %w", err)
	}
	return nil
}

func (r *SQLiteHomeRepo) GetByID(ctx context.Context, id string) (*domain.Home, error) {
	query := `SELECT ` + homeColumns + ` FROM homes WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanHome(row)
}

func (r *SQLiteHomeRepo) List(ctx context.Context, tenantID string) ([]*domain.Home, error) {
	query := `SELECT ` + homeColumns + ` FROM homes WHERE tenant_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing homes: %w", err)
	}
	defer rows.Close()

	var homes []*domain.Home
	for rows.Next() {
		h, err := scanHomeRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		homes = append(homes, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating homes: %w", err)
	}
	return homes, nil
}

func (r *SQLiteHomeRepo) Update(ctx context.Context, h *domain.Home) error {
	query := `UPDATE homes SET tenant_id = ?, name = ?, address = ?, start_date = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		h.TenantID,
		h.Name,
		h.Address,
		nullableTimeToString(h.StartDate, dateLayout),
		h.UpdatedAt.Format(time.RFC3339),
		h.ID,
	)
	if err != nil {
		return fmt.Errorf("updating home: %w", err)
	}
	return nil
}

func (r *SQLiteHomeRepo) UpdateForecast(ctx context.Context, homeID string, totalWorkingDays *int, completionDate *time.Time, computedAt time.Time) error {
	query := `UPDATE homes SET forecast_total_working_days = ?, forecast_completion_date = ?,
		forecast_computed_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableIntToValue(totalWorkingDays),
		nullableTimeToString(completionDate, dateLayout),
		computedAt.Format(time.RFC3339),
		computedAt.Format(time.RFC3339),
		homeID,
	)
	if err != nil {
		return fmt.Errorf("updating home forecast: %w", err)
	}
	return nil
}

func (r *SQLiteHomeRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM homes WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting home: %w", err)
	}
	return nil
}

// scanHome scans a single home from a *sql.Row.
func (r *SQLiteHomeRepo) scanHome(row *sql.Row) (*domain.Home, error) {
	h, err := scanHomeRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("home: %w", ErrNotFound)
		}
		return nil, err
	}
	return h, nil
}

// scanHomeRow scans one home using the given scan function.
func scanHomeRow(scan func(dest ...any) error) (*domain.Home, error) {
	var h domain.Home
	var startDateStr, completionStr, computedAtStr sql.NullString
	var totalDays sql.NullInt64
	var createdAtStr, updatedAtStr string

	err := scan(
		&h.ID, &h.TenantID, &h.Name, &h.Address, &startDateStr,
		&completionStr, &totalDays, &computedAtStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning home: %w", err)
	}

	h.StartDate = parseNullableTime(startDateStr, dateLayout)
	h.ForecastCompletionDate = parseNullableTime(completionStr, dateLayout)
	h.ForecastComputedAt = parseNullableTime(computedAtStr, time.RFC3339)
	if totalDays.Valid {
		v := int(totalDays.Int64)
		h.ForecastTotalWorkingDays = &v
	}

	var parseErr error
	h.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	h.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &h, nil
}
