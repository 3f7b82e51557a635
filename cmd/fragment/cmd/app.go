package cmd

import (
	"context"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/fragment/foundation/core/log"
	"github.com/msto63/fragment/foundation/fragment"
	mdwast "github.com/msto63/fragment/foundation/fragment/ast"
	"github.com/msto63/fragment/internal/history"
	"github.com/msto63/fragment/pkg/core/config"
	"github.com/msto63/fragment/pkg/core/logging"
)

// app bundles what every command needs for one invocation
type app struct {
	cfg    *config.Config
	logger *mdwlog.Logger
	engine *fragment.Engine
	runID  string
	store  history.Store
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Resolve(cfgFile)
	if err != nil {
		return nil, err
	}

	level := cfg.General.LogLevel
	if verbose {
		cfg.Parser.Trace = true
		level = "trace"
	}
	if logLevel != "" {
		level = logLevel
	}
	format := cfg.General.LogFormat
	if logFormat != "" {
		format = logFormat
	}

	runID := logging.NewRunID()
	logger := logging.NewLogger(logging.LoggerConfig{
		Name:   "fragment",
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
		RunID:  runID,
	})
	if cfg.Source != "" {
		logger.Debug("config loaded", mdwlog.Fields{"path": cfg.Source})
	}

	engine := fragment.New(fragment.Options{
		Logger:              logger,
		Trace:               cfg.Parser.Trace,
		Precedence:          cfg.Precedence(),
		WarnDuplicateParams: cfg.Parser.WarnDuplicateParams,
	})

	return &app{cfg: cfg, logger: logger, engine: engine, runID: runID}, nil
}

// history opens the parse history store on first use
func (a *app) history() (history.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := history.NewSQLiteStore(history.Config{Path: a.cfg.History.Path})
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

// record stores a parse result; failures are logged, not returned
func (a *app) record(source string, nodes []mdwast.Node, parseErr error) {
	store, err := a.history()
	if err != nil {
		a.logger.WarnWithErr("history unavailable", err)
		return
	}
	if _, err := store.RecordUnit(context.Background(), a.runID, source, nodes, parseErr); err != nil {
		a.logger.WarnWithErr("failed to record parse", err, mdwlog.Fields{"source": source})
	}
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}
