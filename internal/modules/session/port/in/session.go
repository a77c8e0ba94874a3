package in

import (
	"context"

	"firstthought/internal/modules/session/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error)
	Add(ctx context.Context, input dto.AddInput) (dto.AddOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.UpdateOutput, error)
	Delete(ctx context.Context, input dto.DeleteInput) (dto.DeleteOutput, error)
	Clear(ctx context.Context) error
	List(ctx context.Context) (dto.ListOutput, error)
	Suggest(ctx context.Context, input dto.SuggestInput) ([]dto.TagFrequencyOutput, error)
	LoadExample(ctx context.Context) (dto.ListOutput, error)
	History(ctx context.Context, input dto.HistoryInput) (dto.HistoryOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
}
