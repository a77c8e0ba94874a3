package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	achievementinadapter "firstthought/internal/modules/achievement/adapter/in"
	achievementoutadapter "firstthought/internal/modules/achievement/adapter/out"
	achievementdto "firstthought/internal/modules/achievement/dto"
	achievementservice "firstthought/internal/modules/achievement/service"
	achievementusecase "firstthought/internal/modules/achievement/usecase"
	sessioninadapter "firstthought/internal/modules/session/adapter/in"
	sessionoutadapter "firstthought/internal/modules/session/adapter/out"
	sessionservice "firstthought/internal/modules/session/service"
	sessionusecase "firstthought/internal/modules/session/usecase"
	statsinadapter "firstthought/internal/modules/stats/adapter/in"
	statsoutadapter "firstthought/internal/modules/stats/adapter/out"
	statsservice "firstthought/internal/modules/stats/service"
	statsusecase "firstthought/internal/modules/stats/usecase"
	timerinadapter "firstthought/internal/modules/timer/adapter/in"
	timeroutadapter "firstthought/internal/modules/timer/adapter/out"
	timerservice "firstthought/internal/modules/timer/service"
	timerusecase "firstthought/internal/modules/timer/usecase"
	"firstthought/internal/platform/clock"
	"firstthought/internal/platform/config"
	"firstthought/internal/platform/id"
	"firstthought/internal/platform/validation"
	uiapp "firstthought/internal/ui/app"
)

type App struct {
	Config         config.Config
	Logger         *slog.Logger
	TimerCLI       timerinadapter.CLIHandler
	SessionCLI     sessioninadapter.CLIHandler
	AchievementCLI achievementinadapter.CLIHandler
	StatsCLI       statsinadapter.CLIHandler

	closers []func() error
}

// Options lets tests swap the clock and id source.
type Options struct {
	Clock clock.Clock
	IDs   id.Generator
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	return NewWithOptions(cfg, logger, Options{})
}

func NewWithOptions(cfg config.Config, logger *slog.Logger, opts Options) (*App, error) {
	var clk clock.Clock = clock.SystemClock{}
	if opts.Clock != nil {
		clk = opts.Clock
	}
	var ids id.Generator = id.UUID{}
	if opts.IDs != nil {
		ids = opts.IDs
	}

	timerSvc := timerservice.NewTimerService(clk, timeroutadapter.NewFileStateStore(cfg.TimerPath), logger.With("module", "timer"))
	timerUC := timerusecase.NewInteractor(timerSvc, logger.With("module", "timer"))

	achievementSvc := achievementservice.NewAchievementService(clk,
		achievementoutadapter.NewFileLedgerStore(cfg.AchievementsPath), logger.With("module", "achievement"))
	achievementUC := achievementusecase.NewInteractor(achievementSvc, logger.With("module", "achievement"))

	historyProjector, err := sessionoutadapter.NewSQLiteHistoryProjector(cfg.DBPath, clk.Now().Location())
	if err != nil {
		return nil, fmt.Errorf("new history projector: %w", err)
	}
	sessionSvc := sessionservice.NewSessionService(
		clk,
		ids,
		sessionoutadapter.NewFileSnapshotStore(cfg.SessionsPath),
		historyProjector,
		sessionoutadapter.NewMarkdownExporter(),
		logger.With("module", "session"),
		nil,
	)
	sessionUC := sessionusecase.NewInteractor(sessionSvc, timerUC, achievementUC, validation.New(), logger.With("module", "session"))

	statsUC := statsusecase.NewInteractor(statsservice.NewStatsService(clk,
		statsoutadapter.NewSessionSourceAdapter(sessionUC)))

	return &App{
		Config:         cfg,
		Logger:         logger,
		TimerCLI:       timerinadapter.NewCLIHandler(timerUC),
		SessionCLI:     sessioninadapter.NewCLIHandler(sessionUC, cfg.SuggestionMinPrefix),
		AchievementCLI: achievementinadapter.NewCLIHandler(achievementUC),
		StatsCLI:       statsinadapter.NewCLIHandler(statsUC),
		closers:        []func() error{historyProjector.Close},
	}, nil
}

// Close releases the history database.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// AchievementProgress reports milestone progress for a period over the
// stored sessions.
func (a *App) AchievementProgress(ctx context.Context, period string) (achievementdto.ProgressOutput, error) {
	list, err := a.SessionCLI.List(ctx)
	if err != nil {
		return achievementdto.ProgressOutput{}, err
	}
	sessions := make([]achievementdto.SessionInput, 0, len(list.Sessions))
	for _, s := range list.Sessions {
		sessions = append(sessions, achievementdto.SessionInput{ID: s.ID, DurationMs: s.DurationMs, CreatedAt: s.CreatedAt})
	}
	return a.AchievementCLI.Progress(ctx, period, sessions)
}

// RunTUI starts the full-screen interface. Focus reporting lets the timer
// notice when the user leaves the terminal and comes back.
func RunTUI(app *App) error {
	model := uiapp.NewModel(app.TimerCLI, app.SessionCLI, app.StatsCLI, uiapp.Options{
		ShareURL:    app.Config.ShareURL,
		HistoryDays: app.Config.HistoryDays,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := program.Run()
	return err
}
