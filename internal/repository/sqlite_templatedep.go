package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sergioanunez/phase/internal/db"
	"github.com/sergioanunez/phase/internal/domain"
)

// SQLiteTemplateDependencyRepo implements TemplateDependencyRepo using a SQLite database.
type SQLiteTemplateDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteTemplateDependencyRepo creates a new SQLiteTemplateDependencyRepo.
func NewSQLiteTemplateDependencyRepo(db db.DBTX) *SQLiteTemplateDependencyRepo {
	return &SQLiteTemplateDependencyRepo{db: db}
}

func (r *SQLiteTemplateDependencyRepo) Create(ctx context.Context, d *domain.TemplateDependency) error {
	query := `INSERT INTO template_dependencies (template_item_id, depends_on_item_id, tenant_id) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, d.TemplateItemID, d.DependsOnItemID, nullableStringToValue(d.TenantID))
	if err != nil {
		return fmt.Errorf("inserting template dependency: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateDependencyRepo) Delete(ctx context.Context, templateItemID, dependsOnItemID string) error {
	query := `DELETE FROM template_dependencies WHERE template_item_id = ? AND depends_on_item_id = ?`
	_, err := r.db.ExecContext(ctx, query, templateItemID, dependsOnItemID)
	if err != nil {
		return fmt.Errorf("deleting template dependency: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateDependencyRepo) ListForItems(ctx context.Context, templateItemIDs []string, tenantID string) ([]domain.TemplateDependency, error) {
	if len(templateItemIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(templateItemIDs))
	placeholders = placeholders[:len(placeholders)-1]

	// Global rows (NULL tenant) apply to every tenant and are always
	// returned alongside tenant-scoped rows.
	query := `SELECT template_item_id, depends_on_item_id, tenant_id
		FROM template_dependencies
		WHERE template_item_id IN (` + placeholders + `)
		  AND (tenant_id = ? OR tenant_id IS NULL)`

	args := make([]any, 0, len(templateItemIDs)+1)
	for _, id := range templateItemIDs {
		args = append(args, id)
	}
	args = append(args, tenantID)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing template dependencies: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

// scanDependencies scans multiple dependency rows from *sql.Rows.
func (r *SQLiteTemplateDependencyRepo) scanDependencies(rows *sql.Rows) ([]domain.TemplateDependency, error) {
	var deps []domain.TemplateDependency
	for rows.Next() {
		var d domain.TemplateDependency
		var tenant sql.NullString
		if err := rows.Scan(&d.TemplateItemID, &d.DependsOnItemID, &tenant); err != nil {
			return nil, fmt.Errorf("scanning template dependency: %w", err)
		}
		if tenant.Valid {
			v := tenant.String
			d.TenantID = &v
		}
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating template dependencies: %w", err)
	}
	return deps, nil
}
