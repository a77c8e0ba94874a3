package in

import (
	"context"

	"firstthought/internal/modules/stats/dto"
)

type Usecase interface {
	Period(ctx context.Context, input dto.PeriodInput) (dto.PeriodOutput, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	Calendar(ctx context.Context, input dto.CalendarInput) ([]dto.DayTotalOutput, error)
	Cloud(ctx context.Context) ([]dto.CloudWordOutput, error)
}
