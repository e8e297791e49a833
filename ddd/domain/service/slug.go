package service

import (
	"context"
	"fmt"

	"blog-service/ddd/domain/entity"
)

const maxSlugAttempts = 10000

// SlugChecker is the part of the article store needed to resolve slug collisions.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string, excludeID uint64) (bool, error)
}

// UniqueSlug slugifies title and appends -1, -2, ... until the candidate is
// not used by any article other than excludeID (0 excludes nothing).
func UniqueSlug(ctx context.Context, store SlugChecker, title string, excludeID uint64) (string, error) {
	base := entity.Slugify(title)
	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		exists, err := store.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugAttempts)
}
