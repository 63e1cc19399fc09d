package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sergioanunez/phase/internal/db"
	"github.com/sergioanunez/phase/internal/domain"
)

const categoryGateColumns = `id, tenant_id, category_name, gate_scope, gate_block_mode, gate_name,
		created_at, updated_at`

// SQLiteCategoryGateRepo implements CategoryGateRepo using a SQLite database.
type SQLiteCategoryGateRepo struct {
	db db.DBTX
}

// NewSQLiteCategoryGateRepo creates a new SQLiteCategoryGateRepo.
func NewSQLiteCategoryGateRepo(db db.DBTX) *SQLiteCategoryGateRepo {
	return &SQLiteCategoryGateRepo{db: db}
}

func (r *SQLiteCategoryGateRepo) Create(ctx context.Context, g *domain.CategoryGate) error {
	query := `INSERT INTO category_gates (id, tenant_id, category_name, gate_scope, gate_block_mode,
		gate_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.TenantID,
		g.CategoryName,
		string(g.GateScope),
		string(g.GateBlockMode),
		g.GateName,
		g.CreatedAt.Format(time.RFC3339),
		g.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting category gate: %w", err)
	}
	return nil
}

func (r *SQLiteCategoryGateRepo) GetByID(ctx context.Context, id string) (*domain.CategoryGate, error) {
	query := `SELECT ` + categoryGateColumns + ` FROM category_gates WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	g, err := scanCategoryGateRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("category gate: %w", ErrNotFound)
		}
		return nil, err
	}
	return g, nil
}

func (r *SQLiteCategoryGateRepo) List(ctx context.Context, tenantID string) ([]*domain.CategoryGate, error) {
	query := `SELECT ` + categoryGateColumns + ` FROM category_gates WHERE tenant_id = ? ORDER BY category_name`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing category gates: %w", err)
	}
	defer rows.Close()

	var gates []*domain.CategoryGate
	for rows.Next() {
		g, err := scanCategoryGateRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		gates = append(gates, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category gates: %w", err)
	}
	return gates, nil
}

func (r *SQLiteCategoryGateRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM category_gates WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting category gate: %w", err)
	}
	return nil
}

func scanCategoryGateRow(scan func(dest ...any) error) (*domain.CategoryGate, error) {
	var g domain.CategoryGate
	var gateScopeStr, gateBlockModeStr string
	var createdAtStr, updatedAtStr string

	err := scan(
		&g.ID, &g.TenantID, &g.CategoryName, &gateScopeStr, &gateBlockModeStr, &g.GateName,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning category gate: %w", err)
	}

	g.GateScope = domain.GateScope(gateScopeStr)
	g.GateBlockMode = domain.GateBlockMode(gateBlockModeStr)

	var parseErr error
	g.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	g.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &g, nil
}
