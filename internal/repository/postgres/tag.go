package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cfahub/internal/contentkind"
	"cfahub/internal/domain"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/repositories"
)

// PostgresTagRepository implements TagRepository over the tags table and the
// per-kind join tables.
type PostgresTagRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	kinds  *contentkind.Registry
}

// NewTagRepository creates a new tag repository
func NewTagRepository(config *RepositoryConfig, kinds *contentkind.Registry) repositories.TagRepository {
	return &PostgresTagRepository{
		pool:   config.Pool,
		tables: config.Tables,
		kinds:  kinds,
	}
}

// Create creates a new tag
func (r *PostgresTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id
	`, r.tables.Tags)

	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, tag.OwnerID, tag.Name, tag.Color).Scan(&tag.ID); err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("tag '%s': %w", tag.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create tag: %w", err)
	}

	return nil
}

// ListByOwner lists an owner's tags, name ascending
func (r *PostgresTagRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, name, color
		FROM %s
		WHERE owner_id = $1
		ORDER BY name ASC
	`, r.tables.Tags)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.OwnerID, &tag.Name, &tag.Color); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	return tags, nil
}

// LinksForItems returns the tag links of the given items
func (r *PostgresTagRepository) LinksForItems(ctx context.Context, kind contentkind.Kind, itemIDs []string) ([]models.TagLink, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	m, err := r.kinds.Get(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s, tag_id
		FROM %s
		WHERE %s = ANY($1)
	`, m.TagFK, r.tables.Resolve(m.TagTable), m.TagFK)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("list %s tag links: %w", kind, err)
	}
	defer rows.Close()

	var links []models.TagLink
	for rows.Next() {
		var link models.TagLink
		if err := rows.Scan(&link.ItemID, &link.TagID); err != nil {
			return nil, fmt.Errorf("scan tag link: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag links: %w", err)
	}

	return links, nil
}

// InsertLinks adds tag links to an item
func (r *PostgresTagRepository) InsertLinks(ctx context.Context, kind contentkind.Kind, ownerID, itemID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	m, err := r.kinds.Get(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, %s, tag_id)
		SELECT $1, $2, unnest($3::uuid[])
	`, r.tables.Resolve(m.TagTable), m.TagFK)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, ownerID, itemID, tagIDs); err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("tag link: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert %s tag links: %w", kind, err)
	}

	return nil
}

// DeleteLinks removes tag links from an item
func (r *PostgresTagRepository) DeleteLinks(ctx context.Context, kind contentkind.Kind, itemID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	m, err := r.kinds.Get(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND tag_id = ANY($2)
	`, r.tables.Resolve(m.TagTable), m.TagFK)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, itemID, tagIDs); err != nil {
		return fmt.Errorf("delete %s tag links: %w", kind, err)
	}

	return nil
}
