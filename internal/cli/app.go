package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"fintrack/internal/api"
	"fintrack/internal/config"
	"fintrack/internal/dashboard"
	"fintrack/internal/insights"
	"fintrack/internal/log"
	"fintrack/internal/render"
	"fintrack/internal/session"
	"fintrack/internal/storage"
)

// App holds everything a subcommand needs.
type App struct {
	Config *config.Config
	KV     storage.KV
	Client *api.Client
	Logger *log.Logger

	Sessions     *session.Store
	Auth         *dashboard.Auth
	Home         *dashboard.Home
	Analyzer     *dashboard.Analyzer
	Transactions *dashboard.Transactions
	Budgets      *dashboard.Budgets
	Preferences  *dashboard.Preferences

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	in *bufio.Reader
}

// NewApp builds the controllers on top of kv. Extra api options are applied
// after the configured timeout.
func NewApp(cfg *config.Config, kv storage.KV, logger *log.Logger, opts ...api.Option) *App {
	if logger == nil {
		logger = log.Discard()
	}
	apiOpts := append([]api.Option{api.WithTimeout(cfg.RequestTimeout), api.WithLogger(logger)}, opts...)
	client := api.NewClient(cfg.APIBaseURL, apiOpts...)
	sessions := session.NewStore(kv, logger)

	return &App{
		Config:       cfg,
		KV:           kv,
		Client:       client,
		Logger:       logger,
		Sessions:     sessions,
		Auth:         dashboard.NewAuth(client, sessions, logger),
		Home:         dashboard.NewHome(client, logger),
		Analyzer:     dashboard.NewAnalyzer(client, insights.NewCache(kv, logger), cfg.InsightTTL, logger),
		Transactions: dashboard.NewTransactions(client, logger),
		Budgets:      dashboard.NewBudgets(client, logger),
		Preferences:  dashboard.NewPreferences(kv),
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}
}

// renderer picks the stored theme; a storage error falls back to light.
func (a *App) renderer(ctx context.Context) *render.Renderer {
	theme, err := a.Preferences.Theme(ctx)
	if err != nil {
		a.Logger.WarnContext(ctx, "Theme unavailable", log.FieldError, err)
	}
	return render.New(render.ThemeFor(theme))
}

func (a *App) Close() error {
	m := a.Client.Metrics()
	a.Logger.Debug("API usage", "requests", m.TotalRequests, "failed", m.FailedRequests)
	if a.KV != nil {
		return a.KV.Close()
	}
	return nil
}
