package in

import (
	"context"

	statsdto "firstthought/internal/modules/stats/dto"
	statsin "firstthought/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Period(ctx context.Context, period string) (statsdto.PeriodOutput, error) {
	return h.usecase.Period(ctx, statsdto.PeriodInput{Period: period})
}

func (h CLIHandler) Summary(ctx context.Context) (statsdto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Calendar(ctx context.Context, days int) ([]statsdto.DayTotalOutput, error) {
	return h.usecase.Calendar(ctx, statsdto.CalendarInput{Days: days})
}

func (h CLIHandler) Cloud(ctx context.Context) ([]statsdto.CloudWordOutput, error) {
	return h.usecase.Cloud(ctx)
}
