package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cfahub/internal/domain"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/repositories"
)

// PostgresGroupRepository implements the GroupRepository interface
type PostgresGroupRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(config *RepositoryConfig) repositories.GroupRepository {
	return &PostgresGroupRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a study group
func (r *PostgresGroupRepository) Create(ctx context.Context, group *models.StudyGroup) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, invite_code, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.StudyGroups)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		group.Name,
		group.InviteCode,
		group.CreatedBy,
	).Scan(&group.ID, &group.CreatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("invite code collision: %w", domain.ErrConflict)
		}
		return fmt.Errorf("create group: %w", err)
	}

	return nil
}

// GetByInviteCode retrieves a group by its invite code
func (r *PostgresGroupRepository) GetByInviteCode(ctx context.Context, code string) (*models.StudyGroup, error) {
	query := fmt.Sprintf(`
		SELECT id, name, invite_code, created_by, created_at
		FROM %s
		WHERE invite_code = $1
	`, r.tables.StudyGroups)

	executor := GetExecutor(ctx, r.pool)

	var group models.StudyGroup
	err := executor.QueryRow(ctx, query, code).Scan(
		&group.ID,
		&group.Name,
		&group.InviteCode,
		&group.CreatedBy,
		&group.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("invite code: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get group by invite code: %w", err)
	}

	return &group, nil
}

// AddMember records a membership
func (r *PostgresGroupRepository) AddMember(ctx context.Context, userID, groupID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, group_id)
		VALUES ($1, $2)
	`, r.tables.GroupMemberships)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, userID, groupID); err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("already a member of group %s: %w", groupID, domain.ErrConflict)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("group %s: %w", groupID, domain.ErrNotFound)
		}
		return fmt.Errorf("add member: %w", err)
	}

	return nil
}

// ListMemberships lists a user's memberships with the joined group rows
func (r *PostgresGroupRepository) ListMemberships(ctx context.Context, userID string) ([]models.GroupMembership, error) {
	query := fmt.Sprintf(`
		SELECT m.user_id, m.group_id, g.id, g.name, g.invite_code, g.created_by, g.created_at
		FROM %s m
		JOIN %s g ON g.id = m.group_id
		WHERE m.user_id = $1
		ORDER BY g.name ASC
	`, r.tables.GroupMemberships, r.tables.StudyGroups)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []models.GroupMembership
	for rows.Next() {
		var membership models.GroupMembership
		var group models.StudyGroup
		err := rows.Scan(
			&membership.UserID,
			&membership.GroupID,
			&group.ID,
			&group.Name,
			&group.InviteCode,
			&group.CreatedBy,
			&group.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		membership.Group = &group
		memberships = append(memberships, membership)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}

	return memberships, nil
}

// MemberGroupIDs returns the ids of all groups the user belongs to
func (r *PostgresGroupRepository) MemberGroupIDs(ctx context.Context, userID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT group_id
		FROM %s
		WHERE user_id = $1
	`, r.tables.GroupMemberships)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list member group ids: %w", err)
	}
	defer rows.Close()

	var groupIDs []string
	for rows.Next() {
		var groupID string
		if err := rows.Scan(&groupID); err != nil {
			return nil, fmt.Errorf("scan group id: %w", err)
		}
		groupIDs = append(groupIDs, groupID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate member group ids: %w", err)
	}

	return groupIDs, nil
}

// PostgresProfileRepository implements the ProfileRepository interface
type PostgresProfileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(config *RepositoryConfig) repositories.ProfileRepository {
	return &PostgresProfileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Get retrieves the user's profile. A user who never saved a preference has
// no row yet; that reads as an empty profile, not an error.
func (r *PostgresProfileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT id, active_group_id
		FROM %s
		WHERE id = $1
	`, r.tables.Profiles)

	executor := GetExecutor(ctx, r.pool)

	var profile models.Profile
	err := executor.QueryRow(ctx, query, userID).Scan(&profile.UserID, &profile.ActiveGroupID)
	if err != nil {
		if isPgNoRowsError(err) {
			return &models.Profile{UserID: userID}, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &profile, nil
}

// SetActiveGroup upserts the preselected share target
func (r *PostgresProfileRepository) SetActiveGroup(ctx context.Context, userID string, groupID *string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, active_group_id)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET active_group_id = EXCLUDED.active_group_id
	`, r.tables.Profiles)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, userID, groupID); err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("active group: %w", domain.ErrValidation)
		}
		return fmt.Errorf("set active group: %w", err)
	}

	return nil
}
