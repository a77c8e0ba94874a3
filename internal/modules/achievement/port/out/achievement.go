package out

import (
	"context"

	"firstthought/internal/modules/achievement/domain"
)

type LedgerStore interface {
	Load(ctx context.Context) (domain.Ledger, error)
	Save(ctx context.Context, ledger domain.Ledger) error
}
