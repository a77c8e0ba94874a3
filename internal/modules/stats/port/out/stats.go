package out

import (
	"context"

	"firstthought/internal/modules/stats/domain"
)

// SessionSource reads the stored sessions and their tag counts.
type SessionSource interface {
	Sessions(ctx context.Context) ([]domain.Session, error)
	TagCounts(ctx context.Context) ([]domain.TagCount, error)
}
