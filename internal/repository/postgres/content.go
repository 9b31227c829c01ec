package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cfahub/internal/contentkind"
	"cfahub/internal/domain"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/repositories"
)

// PostgresContentRepository implements ContentRepository over the three
// content tables, resolving table names through the kind registry.
type PostgresContentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	kinds  *contentkind.Registry
}

// NewContentRepository creates a new content repository
func NewContentRepository(config *RepositoryConfig, kinds *contentkind.Registry) repositories.ContentRepository {
	return &PostgresContentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		kinds:  kinds,
	}
}

// columns returns the select list for a kind. Documents carry two extra URL
// columns; selecting NULL placeholders for the other kinds keeps one scan path.
func columns(m *contentkind.Mapping) string {
	if m.HasURL {
		return "id, owner_id, title, visibility, folder_id, group_id, external_url, preview_url, created_at"
	}
	return "id, owner_id, title, visibility, folder_id, group_id, NULL::text, NULL::text, created_at"
}

func scanContentItem(row pgx.Row, item *models.ContentItem) error {
	return row.Scan(
		&item.ID,
		&item.OwnerID,
		&item.Title,
		&item.Visibility,
		&item.FolderID,
		&item.GroupID,
		&item.ExternalURL,
		&item.PreviewURL,
		&item.CreatedAt,
	)
}

// List returns items most-recent-first
func (r *PostgresContentRepository) List(ctx context.Context, kind contentkind.Kind, filter repositories.ContentListFilter) ([]models.ContentItem, error) {
	m, err := r.kinds.Get(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
	`, columns(m), r.tables.Resolve(m.BaseTable))

	var args []interface{}
	var where []string

	if filter.TitleQuery != "" {
		args = append(args, "%"+filter.TitleQuery+"%")
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if len(filter.RawVisibilities) > 0 {
		args = append(args, filter.RawVisibilities)
		where = append(where, fmt.Sprintf("visibility = ANY($%d)", len(args)))
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY created_at DESC"

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	var items []models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		if err := scanContentItem(rows, &item); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", kind, err)
	}

	return items, nil
}

// GetByID retrieves a single item
func (r *PostgresContentRepository) GetByID(ctx context.Context, kind contentkind.Kind, id string) (*models.ContentItem, error) {
	m, err := r.kinds.Get(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, columns(m), r.tables.Resolve(m.BaseTable))

	executor := GetExecutor(ctx, r.pool)

	var item models.ContentItem
	if err := scanContentItem(executor.QueryRow(ctx, query, id), &item); err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}

	return &item, nil
}

// Create inserts an item and fills in its generated ID
func (r *PostgresContentRepository) Create(ctx context.Context, kind contentkind.Kind, item *models.ContentItem) error {
	m, err := r.kinds.Get(kind)
	if err != nil {
		return err
	}

	executor := GetExecutor(ctx, r.pool)

	if m.HasURL {
		query := fmt.Sprintf(`
			INSERT INTO %s (owner_id, title, visibility, folder_id, group_id, external_url, preview_url)
			VALUES ($1, $2, $3, $4, NULL, $5, $6)
			RETURNING id, created_at
		`, r.tables.Resolve(m.BaseTable))
		err = executor.QueryRow(ctx, query,
			item.OwnerID, item.Title, item.Visibility, item.FolderID, item.ExternalURL, item.PreviewURL,
		).Scan(&item.ID, &item.CreatedAt)
	} else {
		query := fmt.Sprintf(`
			INSERT INTO %s (owner_id, title, visibility, folder_id, group_id)
			VALUES ($1, $2, $3, $4, NULL)
			RETURNING id, created_at
		`, r.tables.Resolve(m.BaseTable))
		err = executor.QueryRow(ctx, query,
			item.OwnerID, item.Title, item.Visibility, item.FolderID,
		).Scan(&item.ID, &item.CreatedAt)
	}

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("%s references a missing folder or owner: %w", kind, domain.ErrValidation)
		}
		return fmt.Errorf("create %s: %w", kind, err)
	}

	return nil
}

// UpdateSettings applies the owner settings mutation and clears the legacy
// group_id column
func (r *PostgresContentRepository) UpdateSettings(ctx context.Context, kind contentkind.Kind, id, title, rawVisibility string, folderID *string) error {
	m, err := r.kinds.Get(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, visibility = $2, folder_id = $3, group_id = NULL
		WHERE id = $4
	`, r.tables.Resolve(m.BaseTable))

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, title, rawVisibility, folderID, id)
	if err != nil {
		return fmt.Errorf("update %s settings: %w", kind, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an item owned by ownerID
func (r *PostgresContentRepository) Delete(ctx context.Context, kind contentkind.Kind, id, ownerID string) error {
	m, err := r.kinds.Get(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Resolve(m.BaseTable))

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}

	return nil
}
