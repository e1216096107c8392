package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/ragdesk/internal/config"
	"github.com/five82/ragdesk/internal/logging"
	"github.com/five82/ragdesk/internal/prefs"
	"github.com/five82/ragdesk/internal/ragapi"
	"github.com/five82/ragdesk/internal/state"
	"github.com/five82/ragdesk/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/ragdesk/prefs.toml
	APIURL     string // overrides config and environment when set
}

// Run boots the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}

	logger, err := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := ragapi.NewClient(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	logger.Info("ragdesk starting",
		zap.String("api", client.BaseURL()),
		zap.Duration("status_poll", cfg.StatusPoll),
		zap.Duration("request_timeout", cfg.RequestTimeout),
	)

	store := &state.Store{}
	poller := NewPoller(store, client, cfg.StatusPoll, logger.Named("poller"))
	poller.Start(ctx)

	userPrefs := prefs.Load(opts.PrefsPath)

	err = ui.Run(ui.Options{
		Context:   ctx,
		API:       client,
		Store:     store,
		Poller:    poller,
		Config:    cfg,
		Logger:    logger,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
	logger.Info("ragdesk stopped", zap.Error(err))
	return err
}
