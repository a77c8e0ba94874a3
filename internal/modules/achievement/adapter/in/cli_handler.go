package in

import (
	"context"

	achievementdto "firstthought/internal/modules/achievement/dto"
	achievementin "firstthought/internal/modules/achievement/port/in"
)

type CLIHandler struct {
	usecase achievementin.Usecase
}

func NewCLIHandler(usecase achievementin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Progress(ctx context.Context, period string, sessions []achievementdto.SessionInput) (achievementdto.ProgressOutput, error) {
	return h.usecase.Progress(ctx, achievementdto.ProgressInput{Period: period, Sessions: sessions})
}

func (h CLIHandler) Catalog(ctx context.Context) ([]achievementdto.MilestoneOutput, error) {
	return h.usecase.Catalog(ctx)
}
