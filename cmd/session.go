package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/Lumos-Labs-HQ/tabledesk/internal/config"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/console"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/database"
	"github.com/Lumos-Labs-HQ/tabledesk/internal/logging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// session is the process-wide database handle and the console built on it.
type session struct {
	cfg     *config.Config
	adapter database.DatabaseAdapter
	console *console.Service
	log     *slog.Logger
	flush   func()
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if override, _ := cmd.Flags().GetString("db"); override != "" {
		os.Setenv(cfg.Database.URLEnv, override)
	}

	log, flush := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.SeqURL)

	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		flush()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	adapter, err := database.Open(ctx, cfg.Database.Provider, dbURL)
	if err != nil {
		flush()
		return nil, err
	}
	log.Debug("connected", "provider", cfg.Database.Provider, "url", maskDBURL(dbURL))

	return &session{
		cfg:     cfg,
		adapter: adapter,
		console: console.NewService(adapter, cfg.Reports, log, time.Now),
		log:     log,
		flush:   flush,
	}, nil
}

func (s *session) Close() {
	s.adapter.Close()
	s.flush()
}

// noData prints the "no data available" warning and reports whether err was that condition.
func noData(err error) bool {
	if errors.Is(err, console.ErrNoData) {
		color.Yellow("⚠️  %s", console.ErrNoData)
		return true
	}
	return false
}

// maskDBURL hides the credentials of a database URL for display. Strings
// that do not parse as a URL with a host are masked entirely.
func maskDBURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	if u.User != nil {
		u.User = url.User("***")
	}
	return u.Redacted()
}
