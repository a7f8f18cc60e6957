package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	app "github.com/mohammadpnp/backoffice-import/internal/application/importing"
	"github.com/mohammadpnp/backoffice-import/internal/bootstrap"
	"github.com/mohammadpnp/backoffice-import/internal/config"
	"github.com/mohammadpnp/backoffice-import/internal/infrastructure/db"
	"github.com/mohammadpnp/backoffice-import/internal/infrastructure/file"
	"github.com/mohammadpnp/backoffice-import/internal/infrastructure/session"
)

type runOutput struct {
	Command    string `json:"command"`
	DurationMS int64  `json:"duration_ms"`
	Committed  bool   `json:"committed"`
	Preview    any    `json:"preview"`
	Summary    any    `json:"summary,omitempty"`
}

func newRunCmd() *cobra.Command {
	var (
		actedBy  string
		yes      bool
		showRows bool
	)

	cmd := &cobra.Command{
		Use:   "run <domain> <file>",
		Short: "Preview a file and, with --yes, commit it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(config.DefaultEnvFiles)
			if err != nil {
				return err
			}
			logger := cfg.NewLogger()

			payload, err := file.NewLocalSource(cfg.Import.BaseDir, cfg.Import.MaxFileBytes).ReadFile(ctx, args[1])
			if err != nil {
				return err
			}

			poolCfg := db.DefaultPoolConfig()
			poolCfg.MaxConns = cfg.DBMaxConns
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, poolCfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			gormDB, err := db.OpenGorm(cfg.DatabaseURL)
			if err != nil {
				return err
			}

			useCases, err := bootstrap.NewImportUseCases(bootstrap.ImportDeps{
				DB:       gormDB,
				Pool:     pool,
				Sessions: session.NewMemoryStore(1, time.Hour),
				Logger:   logger,
			})
			if err != nil {
				return err
			}

			start := time.Now()
			preview, err := useCases.Preview.Execute(ctx, app.PreviewImportInput{
				Domain:   args[0],
				FileName: filepath.Base(args[1]),
				Payload:  payload,
				ActedBy:  actedBy,
			})
			if err != nil {
				return err
			}
			if !showRows {
				preview.Rows = nil
			}

			out := runOutput{Command: "import run", Preview: preview}
			if !yes {
				if err := useCases.Cancel.Execute(ctx, app.CancelImportInput{SessionID: preview.SessionID}); err != nil {
					return err
				}
				out.DurationMS = time.Since(start).Milliseconds()
				return writeJSON(cmd.OutOrStdout(), out)
			}

			summary, commitErr := useCases.Commit.Execute(ctx, app.CommitImportInput{SessionID: preview.SessionID, ActedBy: actedBy})
			out.Committed = commitErr == nil
			out.Summary = summary
			out.DurationMS = time.Since(start).Milliseconds()
			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if commitErr != nil {
				return fmt.Errorf("commit: %w", commitErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&actedBy, "user", "", "Acting user recorded in the import log (required)")
	cmd.Flags().BoolVar(&yes, "yes", false, "Commit after the preview (default preview only)")
	cmd.Flags().BoolVar(&showRows, "rows", false, "Include per-row results in the output")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
