package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sergioanunez/phase/internal/db"
	"github.com/sergioanunez/phase/internal/domain"
)

const punchItemColumns = `id, home_task_id, description, status, created_at, updated_at`

// SQLitePunchItemRepo implements PunchItemRepo using a SQLite database.
type SQLitePunchItemRepo struct {
	db db.DBTX
}

// NewSQLitePunchItemRepo creates a new SQLitePunchItemRepo.
func NewSQLitePunchItemRepo(db db.DBTX) *SQLitePunchItemRepo {
	return &SQLitePunchItemRepo{db: db}
}

func (r *SQLitePunchItemRepo) Create(ctx context.Context, p *domain.PunchItem) error {
	query := `INSERT INTO punch_items (id, home_task_id, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.HomeTaskID,
		p.Description,
		string(p.Status),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting punch item: %w", err)
	}
	return nil
}

func (r *SQLitePunchItemRepo) GetByID(ctx context.Context, id string) (*domain.PunchItem, error) {
	query := `SELECT ` + punchItemColumns + ` FROM punch_items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanPunchItemRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("punch item: %w", ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLitePunchItemRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.PunchItem, error) {
	query := `SELECT ` + punchItemColumns + ` FROM punch_items WHERE home_task_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing punch items: %w", err)
	}
	defer rows.Close()

	var items []*domain.PunchItem
	for rows.Next() {
		p, err := scanPunchItemRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating punch items: %w", err)
	}
	return items, nil
}

func (r *SQLitePunchItemRepo) Update(ctx context.Context, p *domain.PunchItem) error {
	query := `UPDATE punch_items SET description = ?, status = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Description,
		string(p.Status),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating punch item: %w", err)
	}
	return nil
}

func (r *SQLitePunchItemRepo) CountOutstanding(ctx context.Context, taskID string) (int, error) {
	query := `SELECT COUNT(*) FROM punch_items
		WHERE home_task_id = ? AND status IN ('open', 'ready_for_review')`
	var count int
	if err := r.db.QueryRowContext(ctx, query, taskID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting outstanding punch items: %w", err)
	}
	return count, nil
}

func (r *SQLitePunchItemRepo) CountOutstandingForTasks(ctx context.Context, taskIDs []string) (map[string]int, error) {
	counts := make(map[string]int)
	if len(taskIDs) == 0 {
		return counts, nil
	}

	placeholders := strings.Repeat("?,", len(taskIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := `SELECT home_task_id, COUNT(*) FROM punch_items
		WHERE home_task_id IN (` + placeholders + `)
		  AND status IN ('open', 'ready_for_review')
		GROUP BY home_task_id`

	args := make([]any, len(taskIDs))
	for i, id := range taskIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("counting outstanding punch items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID string
		var count int
		if err := rows.Scan(&taskID, &count); err != nil {
			return nil, fmt.Errorf("scanning punch count: %w", err)
		}
		counts[taskID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating punch counts: %w", err)
	}
	return counts, nil
}

func (r *SQLitePunchItemRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM punch_items WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting punch item: %w", err)
	}
	return nil
}

func scanPunchItemRow(scan func(dest ...any) error) (*domain.PunchItem, error) {
	var p domain.PunchItem
	var statusStr string
	var createdAtStr, updatedAtStr string

	err := scan(&p.ID, &p.HomeTaskID, &p.Description, &statusStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning punch item: %w", err)
	}

	p.Status = domain.PunchStatus(statusStr)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &p, nil
}
