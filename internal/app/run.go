package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidface/cli/internal/api"
	"github.com/vidface/cli/internal/generate"
	"github.com/vidface/cli/internal/model"
	"github.com/vidface/cli/internal/session"
	"github.com/vidface/cli/internal/store"
)

// Options configures application startup.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// DataPath overrides the default local cache location.
	DataPath string
}

// Run wires the configuration, local cache, session, API client, and
// generation workflow together and runs the terminal UI until the
// context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	dataPath := opts.DataPath
	if dataPath == "" {
		dataPath = model.DefaultDataPath()
	}
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	st, err := store.NewSQLiteStore(dataPath)
	if err != nil {
		return err
	}
	defer st.Close()

	sess := session.New()

	client := api.NewClient(cfg.Backend.BaseURL, sess)
	if cfg.Backend.RequestTimeoutSec > 0 {
		client.SetTimeout(time.Duration(cfg.Backend.RequestTimeoutSec) * time.Second)
	}

	wcfg := generate.DefaultConfig()
	if cfg.Generate.Language != "" {
		wcfg.Language = cfg.Generate.Language
	}
	if cfg.Generate.DefaultAvatarID > 0 {
		wcfg.DefaultAvatarID = cfg.Generate.DefaultAvatarID
	}
	if cfg.Generate.SubmitTimeoutSec > 0 {
		wcfg.SubmitTimeout = time.Duration(cfg.Generate.SubmitTimeoutSec) * time.Second
	}
	if cfg.Generate.MaxPollAttempts > 0 {
		wcfg.MaxAttempts = cfg.Generate.MaxPollAttempts
	}
	workflow := generate.New(client, sess, wcfg)

	m := New(sess, client, st, workflow)
	m.reviewsView.SetInterval(time.Duration(cfg.Display.CarouselIntervalSec) * time.Second)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// A rejected credential can surface from any request goroutine; the
	// listener injects it into the Bubble Tea loop.
	sess.SetOnInvalidate(func() {
		p.Send(SessionInvalidatedMsg{})
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
