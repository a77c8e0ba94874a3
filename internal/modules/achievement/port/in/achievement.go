package in

import (
	"context"

	"firstthought/internal/modules/achievement/dto"
)

type Usecase interface {
	Evaluate(ctx context.Context, input dto.EvaluateInput) (dto.EvaluateOutput, error)
	Progress(ctx context.Context, input dto.ProgressInput) (dto.ProgressOutput, error)
	Catalog(ctx context.Context) ([]dto.MilestoneOutput, error)
}
