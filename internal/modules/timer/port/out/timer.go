package out

import (
	"context"

	"firstthought/internal/modules/timer/domain"
)

type StateStore interface {
	Load(ctx context.Context) (domain.State, error)
	Save(ctx context.Context, state domain.State) error
}
