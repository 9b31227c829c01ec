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

// PostgresShareRepository implements ShareRepository over the per-kind share
// tables (document_shares, flashcard_set_shares, quiz_set_shares).
type PostgresShareRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	kinds  *contentkind.Registry
}

// NewShareRepository creates a new share repository
func NewShareRepository(config *RepositoryConfig, kinds *contentkind.Registry) repositories.ShareRepository {
	return &PostgresShareRepository{
		pool:   config.Pool,
		tables: config.Tables,
		kinds:  kinds,
	}
}

// GrantedGroupIDs returns the group ids the item is shared with
func (r *PostgresShareRepository) GrantedGroupIDs(ctx context.Context, kind contentkind.Kind, itemID string) ([]string, error) {
	m, err := r.kinds.Get(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT group_id
		FROM %s
		WHERE %s = $1
	`, r.tables.Resolve(m.ShareTable), m.ShareFK)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list %s grants: %w", kind, err)
	}
	defer rows.Close()

	var groupIDs []string
	for rows.Next() {
		var groupID string
		if err := rows.Scan(&groupID); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		groupIDs = append(groupIDs, groupID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grants: %w", err)
	}

	return groupIDs, nil
}

// GrantsForItems returns the grants of the given items in one query
func (r *PostgresShareRepository) GrantsForItems(ctx context.Context, kind contentkind.Kind, itemIDs []string) ([]models.ShareGrant, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	m, err := r.kinds.Get(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s, group_id
		FROM %s
		WHERE %s = ANY($1)
	`, m.ShareFK, r.tables.Resolve(m.ShareTable), m.ShareFK)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("list %s grants: %w", kind, err)
	}
	defer rows.Close()

	var grants []models.ShareGrant
	for rows.Next() {
		var grant models.ShareGrant
		if err := rows.Scan(&grant.ItemID, &grant.GroupID); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		grants = append(grants, grant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grants: %w", err)
	}

	return grants, nil
}

// Insert adds grants for the given groups
func (r *PostgresShareRepository) Insert(ctx context.Context, kind contentkind.Kind, itemID string, groupIDs []string) error {
	if len(groupIDs) == 0 {
		return nil
	}

	m, err := r.kinds.Get(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, group_id)
		SELECT $1, unnest($2::uuid[])
	`, r.tables.Resolve(m.ShareTable), m.ShareFK)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, itemID, groupIDs); err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("share grant: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert %s grants: %w", kind, err)
	}

	return nil
}

// Delete removes grants for the given groups only
func (r *PostgresShareRepository) Delete(ctx context.Context, kind contentkind.Kind, itemID string, groupIDs []string) error {
	if len(groupIDs) == 0 {
		return nil
	}

	m, err := r.kinds.Get(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND group_id = ANY($2)
	`, r.tables.Resolve(m.ShareTable), m.ShareFK)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, itemID, groupIDs); err != nil {
		return fmt.Errorf("delete %s grants: %w", kind, err)
	}

	return nil
}

// DeleteAll removes every grant for the item
func (r *PostgresShareRepository) DeleteAll(ctx context.Context, kind contentkind.Kind, itemID string) error {
	m, err := r.kinds.Get(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1
	`, r.tables.Resolve(m.ShareTable), m.ShareFK)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, itemID); err != nil {
		return fmt.Errorf("delete all %s grants: %w", kind, err)
	}

	return nil
}
