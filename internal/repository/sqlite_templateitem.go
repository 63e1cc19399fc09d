package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sergioanunez/phase/internal/db"
	"github.com/sergioanunez/phase/internal/domain"
)

// templateItemColumns is the canonical SELECT column list for work_template_items.
const templateItemColumns = `id, tenant_id, name, default_duration_days, sort_order, category,
		is_dependency, is_critical_gate, gate_scope, gate_block_mode, gate_name,
		created_at, updated_at`

// SQLiteTemplateItemRepo implements TemplateItemRepo using a SQLite database.
type SQLiteTemplateItemRepo struct {
	db db.DBTX
}

// NewSQLiteTemplateItemRepo creates a new SQLiteTemplateItemRepo.
func NewSQLiteTemplateItemRepo(db db.DBTX) *SQLiteTemplateItemRepo {
	return &SQLiteTemplateItemRepo{db: db}
}

func (r *SQLiteTemplateItemRepo) Create(ctx context.Context, item *domain.WorkTemplateItem) error {
	query := `INSERT INTO work_template_items (id, tenant_id, name, default_duration_days, sort_order,
		category, is_dependency, is_critical_gate, gate_scope, gate_block_mode, gate_name,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.TenantID,
		item.Name,
		item.DefaultDurationDays,
		item.SortOrder,
		item.Category,
		boolToInt(item.IsDependency),
		boolToInt(item.IsCriticalGate),
		string(item.GateScope),
		string(item.GateBlockMode),
		item.GateName,
		item.CreatedAt.Format(time.RFC3339),
		item.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting template item: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateItemRepo) GetByID(ctx context.Context, id string) (*domain.WorkTemplateItem, error) {
	query := `SELECT ` + templateItemColumns + ` FROM work_template_items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	item, err := scanTemplateItemRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("template item: %w", ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

func (r *SQLiteTemplateItemRepo) List(ctx context.Context, tenantID string) ([]*domain.WorkTemplateItem, error) {
	query := `SELECT ` + templateItemColumns + ` FROM work_template_items
		WHERE tenant_id = ? ORDER BY sort_order, name`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing template items: %w", err)
	}
	defer rows.Close()

	var items []*domain.WorkTemplateItem
	for rows.Next() {
		item, err := scanTemplateItemRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating template items: %w", err)
	}
	return items, nil
}

func (r *SQLiteTemplateItemRepo) Update(ctx context.Context, item *domain.WorkTemplateItem) error {
	query := `UPDATE work_template_items SET name = ?, default_duration_days = ?, sort_order = ?,
		category = ?, is_dependency = ?, is_critical_gate = ?, gate_scope = ?, gate_block_mode = ?,
		gate_name = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		item.Name,
		item.DefaultDurationDays,
		item.SortOrder,
		item.Category,
		boolToInt(item.IsDependency),
		boolToInt(item.IsCriticalGate),
		string(item.GateScope),
		string(item.GateBlockMode),
		item.GateName,
		item.UpdatedAt.Format(time.RFC3339),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating template item: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateItemRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM work_template_items WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting template item: %w", err)
	}
	return nil
}

func scanTemplateItemRow(scan func(dest ...any) error) (*domain.WorkTemplateItem, error) {
	var item domain.WorkTemplateItem
	var gateScopeStr, gateBlockModeStr string
	var isDependencyInt, isCriticalGateInt int
	var createdAtStr, updatedAtStr string

	err := scan(
		&item.ID, &item.TenantID, &item.Name, &item.DefaultDurationDays, &item.SortOrder,
		&item.Category, &isDependencyInt, &isCriticalGateInt,
		&gateScopeStr, &gateBlockModeStr, &item.GateName,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning template item: %w", err)
	}

	item.IsDependency = intToBool(isDependencyInt)
	item.IsCriticalGate = intToBool(isCriticalGateInt)
	item.GateScope = domain.GateScope(gateScopeStr)
	item.GateBlockMode = domain.GateBlockMode(gateBlockModeStr)

	var parseErr error
	item.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	item.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &item, nil
}
