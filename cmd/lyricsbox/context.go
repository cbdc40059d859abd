package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/lyricsbox/lyricsbox/internal/config"
	"github.com/lyricsbox/lyricsbox/internal/logging"
	"github.com/lyricsbox/lyricsbox/internal/search"
	"github.com/lyricsbox/lyricsbox/internal/store"
)

type commandContext struct {
	configFlag   *string
	sourceFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, sourceFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		sourceFlag:   sourceFlag,
		logLevelFlag: logLevelFlag,
	}
}

// ensureConfig loads the configuration once and applies command-line overrides.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if src := flagValue(c.sourceFlag); src != "" {
			cfg.Data.Source = src
		}
		if lvl := flagValue(c.logLevelFlag); lvl != "" {
			cfg.Logging.Level = strings.ToLower(lvl)
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(out io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, out)
}

// session is everything a search-driven command needs.
type session struct {
	cfg    *config.Config
	log    *slog.Logger
	store  *store.Store
	search *search.Orchestrator
	close  func() error
}

// openSession wires the configured data source into a store and orchestrator. Logs go
// to logOut.
func (c *commandContext) openSession(logOut io.Writer) (*session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	log, err := c.logger(logOut)
	if err != nil {
		return nil, err
	}
	fetcher, closer, err := openSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("open data source: %w", err)
	}
	st := store.New(fetcher, log.With(logging.FieldComponent, "store"))
	orch := search.New(st, search.WithLogger(log.With(logging.FieldComponent, "search")))
	return &session{cfg: cfg, log: log, store: st, search: orch, close: closer}, nil
}

func flagValue(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
