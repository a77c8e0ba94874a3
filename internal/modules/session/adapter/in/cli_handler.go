package in

import (
	"context"
	"time"
	"unicode/utf8"

	sessiondto "firstthought/internal/modules/session/dto"
	sessionin "firstthought/internal/modules/session/port/in"
	"firstthought/internal/platform/tagword"
)

type CLIHandler struct {
	usecase   sessionin.Usecase
	minPrefix int
}

// NewCLIHandler wraps the usecase for the command line and the TUI. Prefixes
// shorter than minPrefix get no suggestions.
func NewCLIHandler(usecase sessionin.Usecase, minPrefix int) CLIHandler {
	return CLIHandler{usecase: usecase, minPrefix: minPrefix}
}

func (h CLIHandler) Record(ctx context.Context, tag string) (sessiondto.RecordOutput, error) {
	return h.usecase.Record(ctx, sessiondto.RecordInput{Tag: tag})
}

func (h CLIHandler) Add(ctx context.Context, startedAt, endedAt time.Time, tag string) (sessiondto.AddOutput, error) {
	return h.usecase.Add(ctx, sessiondto.AddInput{
		StartedAt:  startedAt,
		EndedAt:    endedAt,
		DurationMs: endedAt.Sub(startedAt).Milliseconds(),
		Tag:        tag,
	})
}

func (h CLIHandler) Retag(ctx context.Context, id, tag string) (bool, error) {
	out, err := h.usecase.Update(ctx, sessiondto.UpdateInput{ID: id, Tag: tag})
	return out.Found, err
}

func (h CLIHandler) Delete(ctx context.Context, id string) (bool, error) {
	out, err := h.usecase.Delete(ctx, sessiondto.DeleteInput{ID: id})
	return out.Found, err
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}

func (h CLIHandler) List(ctx context.Context) (sessiondto.ListOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Suggest(ctx context.Context, prefix string) ([]sessiondto.TagFrequencyOutput, error) {
	prefix = tagword.Normalize(prefix)
	if utf8.RuneCountInString(prefix) < h.minPrefix {
		return nil, nil
	}
	return h.usecase.Suggest(ctx, sessiondto.SuggestInput{Prefix: prefix})
}

func (h CLIHandler) LoadExample(ctx context.Context) (sessiondto.ListOutput, error) {
	return h.usecase.LoadExample(ctx)
}

func (h CLIHandler) History(ctx context.Context, days int) (sessiondto.HistoryOutput, error) {
	return h.usecase.History(ctx, sessiondto.HistoryInput{Days: days})
}

func (h CLIHandler) Export(ctx context.Context, dir string) (sessiondto.ExportOutput, error) {
	return h.usecase.Export(ctx, sessiondto.ExportInput{Dir: dir})
}

func (h CLIHandler) Reindex(ctx context.Context) (sessiondto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}
