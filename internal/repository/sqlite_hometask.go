package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sergioanunez/phase/internal/db"
	"github.com/sergioanunez/phase/internal/domain"
)

// homeTaskColumns is the canonical SELECT column list for home_tasks.
const homeTaskColumns = `id, home_id, template_item_id, name_snapshot,
		duration_days_snapshot, sort_order_snapshot, status, scheduled_date,
		forecast_early_start, forecast_early_finish, is_critical_path, blocked_by_count,
		created_at, updated_at`

// SQLiteHomeTaskRepo implements HomeTaskRepo using a SQLite database.
type SQLiteHomeTaskRepo struct {
	db db.DBTX
}

// NewSQLiteHomeTaskRepo creates a new SQLiteHomeTaskRepo.
func NewSQLiteHomeTaskRepo(db db.DBTX) *SQLiteHomeTaskRepo {
	return &SQLiteHomeTaskRepo{db: db}
}

func (r *SQLiteHomeTaskRepo) Create(ctx context.Context, t *domain.HomeTask) error {
	query := `INSERT INTO home_tasks (id, home_id, template_item_id, name_snapshot,
		duration_days_snapshot, sort_order_snapshot, status, scheduled_date,
		forecast_early_start, forecast_early_finish, is_critical_path, blocked_by_count,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.HomeID,
		t.TemplateItemID,
		t.NameSnapshot,
		t.DurationDaysSnapshot,
		t.SortOrderSnapshot,
		string(t.Status),
		nullableTimeToString(t.ScheduledDate, dateLayout),
		t.ForecastEarlyStartOffsetWorkingDays,
		t.ForecastEarlyFinishOffsetWorkingDays,
		boolToInt(t.IsCriticalPath),
		t.BlockedByCount,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting home task: %w", err)
	}
	return nil
}

func (r *SQLiteHomeTaskRepo) GetByID(ctx context.Context, id string) (*domain.HomeTask, error) {
	query := `SELECT ` + homeTaskColumns + ` FROM home_tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanHomeTaskRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("home task: %w", ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

func (r *SQLiteHomeTaskRepo) ListByHome(ctx context.Context, homeID string) ([]*domain.HomeTask, error) {
	query := `SELECT ` + homeTaskColumns + ` FROM home_tasks WHERE home_id = ?
		ORDER BY sort_order_snapshot, id`
	rows, err := r.db.QueryContext(ctx, query, homeID)
	if err != nil {
		return nil, fmt.Errorf("listing home tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.HomeTask
	for rows.Next() {
		t, err := scanHomeTaskRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating home tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteHomeTaskRepo) ListSnapshotsByHome(ctx context.Context, homeID string) ([]domain.TaskSnapshot, error) {
	// Snapshot fields come from the task row; category and gate topology
	// are read live from the template. Duration and sort order must never
	// be taken from the template here.
	query := `SELECT t.id, t.home_id, t.template_item_id, t.name_snapshot,
			t.duration_days_snapshot, t.sort_order_snapshot, t.status, t.scheduled_date,
			i.category, i.is_dependency, i.is_critical_gate, i.gate_scope, i.gate_block_mode, i.gate_name
		FROM home_tasks t
		JOIN work_template_items i ON t.template_item_id = i.id
		WHERE t.home_id = ?
		ORDER BY t.sort_order_snapshot, t.id`
	rows, err := r.db.QueryContext(ctx, query, homeID)
	if err != nil {
		return nil, fmt.Errorf("listing task snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.TaskSnapshot
	for rows.Next() {
		var s domain.TaskSnapshot
		var statusStr, gateScopeStr, gateBlockModeStr string
		var scheduledDateStr sql.NullString
		var isDependencyInt, isCriticalGateInt int

		err := rows.Scan(
			&s.ID, &s.HomeID, &s.TemplateItemID, &s.Name,
			&s.DurationDays, &s.SortOrder, &statusStr, &scheduledDateStr,
			&s.Category, &isDependencyInt, &isCriticalGateInt,
			&gateScopeStr, &gateBlockModeStr, &s.GateName,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task snapshot: %w", err)
		}

		s.Status = domain.TaskStatus(statusStr)
		s.ScheduledDate = parseNullableTime(scheduledDateStr, dateLayout)
		s.IsDependency = intToBool(isDependencyInt)
		s.IsCriticalGate = intToBool(isCriticalGateInt)
		s.GateScope = domain.GateScope(gateScopeStr)
		s.GateBlockMode = domain.GateBlockMode(gateBlockModeStr)
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *SQLiteHomeTaskRepo) Update(ctx context.Context, t *domain.HomeTask) error {
	query := `UPDATE home_tasks SET status = ?, scheduled_date = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		string(t.Status),
		nullableTimeToString(t.ScheduledDate, dateLayout),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating home task: %w", err)
	}
	return nil
}

func (r *SQLiteHomeTaskRepo) UpdateForecastFields(ctx context.Context, taskID string, earlyStart, earlyFinish int, critical bool, blockedByCount int) error {
	query := `UPDATE home_tasks SET forecast_early_start = ?, forecast_early_finish = ?,
		is_critical_path = ?, blocked_by_count = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		earlyStart,
		earlyFinish,
		boolToInt(critical),
		blockedByCount,
		taskID,
	)
	if err != nil {
		return fmt.Errorf("updating task forecast fields: %w", err)
	}
	return nil
}

func (r *SQLiteHomeTaskRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM home_tasks WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting home task: %w", err)
	}
	return nil
}

func scanHomeTaskRow(scan func(dest ...any) error) (*domain.HomeTask, error) {
	var t domain.HomeTask
	var statusStr string
	var scheduledDateStr sql.NullString
	var criticalInt int
	var createdAtStr, updatedAtStr string

	err := scan(
		&t.ID, &t.HomeID, &t.TemplateItemID, &t.NameSnapshot,
		&t.DurationDaysSnapshot, &t.SortOrderSnapshot, &statusStr, &scheduledDateStr,
		&t.ForecastEarlyStartOffsetWorkingDays, &t.ForecastEarlyFinishOffsetWorkingDays,
		&criticalInt, &t.BlockedByCount,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning home task: %w", err)
	}

	t.Status = domain.TaskStatus(statusStr)
	t.ScheduledDate = parseNullableTime(scheduledDateStr, dateLayout)
	t.IsCriticalPath = intToBool(criticalInt)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &t, nil
}
