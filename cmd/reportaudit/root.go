package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kiranshivaraju/reportaudit/internal/ai"
	"github.com/kiranshivaraju/reportaudit/internal/audit"
	"github.com/kiranshivaraju/reportaudit/internal/config"
	"github.com/kiranshivaraju/reportaudit/internal/history"
	"github.com/kiranshivaraju/reportaudit/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries what every subcommand needs once the root has initialised.
type app struct {
	cfgPath      string
	verbose      bool
	addrOverride string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "reportaudit",
		Short:         "Audit technician field reports for safety, quality and client readiness",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg

			if a.logger == nil {
				zc := zap.NewProductionConfig()
				if a.verbose {
					zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
				}
				logger, err := zc.Build()
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				a.logger = logger
			}
			zap.ReplaceGlobals(a.logger)
			a.logger.Debug("config loaded",
				zap.String("ai_provider", cfg.AI.Provider),
				zap.String("history_backend", cfg.History.Backend),
			)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "Config file (default $REPORTAUDIT_CONFIG or reportaudit.yaml)")

	root.AddCommand(
		newAuditCmd(a),
		newHistoryCmd(a),
		newExportCmd(a),
		newRenderCmd(a),
		newSampleCmd(a),
		newServeCmd(a),
	)
	return root
}

// openHistory opens the configured backend and loads the log. A failed load
// is logged and the store is returned anyway: it reads as empty and refuses
// to append, so the slot is never overwritten blindly.
func (a *app) openHistory(ctx context.Context) (*history.Store, func(), error) {
	kv, err := storage.Open(ctx, a.cfg.History)
	if err != nil {
		return nil, nil, fmt.Errorf("open history backend: %w", err)
	}
	st := history.New(kv, a.cfg.History.Slot, a.logger)
	if _, err := st.Load(ctx); err != nil {
		a.logger.Warn("history unavailable, continuing with an empty view",
			zap.String("backend", a.cfg.History.Backend),
			zap.Error(err),
		)
	}
	return st, func() { _ = kv.Close() }, nil
}

func (a *app) newService(st *history.Store) (*audit.Service, error) {
	provider, err := ai.NewProvider(a.cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("create AI provider: %w", err)
	}
	a.logger.Debug("AI provider initialized", zap.String("provider", provider.Name()))
	return audit.NewService(provider, st, a.cfg.AI.FallbackCredential(), a.cfg.AI.InferenceTimeout, a.logger), nil
}

// readInput returns the text of path, of stdin when path is "-", or args
// joined by spaces. With neither it reads stdin.
func readInput(cmd *cobra.Command, path string, args []string) (string, error) {
	switch {
	case path == "-":
		return readAll(cmd.InOrStdin())
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		return readAll(cmd.InOrStdin())
	}
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
