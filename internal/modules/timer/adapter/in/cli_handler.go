package in

import (
	"context"

	timerdto "firstthought/internal/modules/timer/dto"
	timerin "firstthought/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (timerdto.StateOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) (timerdto.StateOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Complete(ctx context.Context) (timerdto.StateOutput, error) {
	return h.usecase.Complete(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) (timerdto.StateOutput, error) {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (timerdto.StateOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Visibility(ctx context.Context, foreground bool) (timerdto.VisibilityOutput, error) {
	return h.usecase.ObserveVisibility(ctx, timerdto.VisibilityInput{Foreground: foreground})
}
