package service

import (
	"context"
	"strings"

	"cfahub/internal/config"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/repositories"
)

// FolderPathResolver computes display paths ("A / B / C") for folders by
// walking parent chains over a read snapshot. The schema does not enforce
// acyclicity, so walks are bounded at config.MaxFolderDepth; a chain that
// hits the bound is truncated at the walked prefix rather than looping.
type FolderPathResolver struct {
	folderRepo repositories.FolderRepository
}

// NewFolderPathResolver creates a new folder path resolver
func NewFolderPathResolver(folderRepo repositories.FolderRepository) *FolderPathResolver {
	return &FolderPathResolver{folderRepo: folderRepo}
}

// PathSeparator joins folder names into a display path.
const PathSeparator = " / "

// ResolvePaths returns the display path of each requested folder id.
// Dangling ids (folder deleted since the referencing row was read) are
// simply absent from the result; callers treat missing as root level.
func (r *FolderPathResolver) ResolvePaths(ctx context.Context, folderIDs []string) (map[string]string, error) {
	folders := make(map[string]*models.Folder)

	// Batch-fetch the requested folders, then each round of missing
	// parents, until the ancestor closure is loaded.
	missing := dedupe(folderIDs)
	for round := 0; len(missing) > 0 && round < config.MaxFolderDepth; round++ {
		fetched, err := r.folderRepo.GetByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		if len(fetched) == 0 {
			break
		}
		for i := range fetched {
			folders[fetched[i].ID] = &fetched[i]
		}

		missing = missing[:0]
		for _, f := range folders {
			if f.ParentID != nil {
				if _, ok := folders[*f.ParentID]; !ok {
					missing = append(missing, *f.ParentID)
				}
			}
		}
		missing = dedupe(missing)
	}

	return BuildPaths(folders, folderIDs), nil
}

// BuildPaths walks the loaded folder map and joins names root to leaf.
func BuildPaths(folders map[string]*models.Folder, folderIDs []string) map[string]string {
	paths := make(map[string]string, len(folderIDs))
	for _, id := range dedupe(folderIDs) {
		folder, ok := folders[id]
		if !ok {
			continue // dangling reference
		}

		segments := []string{folder.Name}
		current := folder
		for depth := 0; current.ParentID != nil && depth < config.MaxFolderDepth; depth++ {
			parent, ok := folders[*current.ParentID]
			if !ok {
				break // dangling parent; keep the walked prefix
			}
			segments = append(segments, parent.Name)
			current = parent
		}

		// Reverse to root-first order.
		for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
			segments[i], segments[j] = segments[j], segments[i]
		}
		paths[id] = strings.Join(segments, PathSeparator)
	}
	return paths
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
