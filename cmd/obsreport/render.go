package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nao1215/obsreport/internal/config"
	"github.com/nao1215/obsreport/internal/database"
	"github.com/nao1215/obsreport/internal/input"
	"github.com/nao1215/obsreport/internal/log"
	"github.com/nao1215/obsreport/internal/model"
	"github.com/nao1215/obsreport/internal/report"
	"github.com/spf13/cobra"
)

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render lookup results in the selected output format",
		Long: `Render reads one or more result files and prints them in the selected format.

Result files are YAML or JSON lists of targets, each carrying the outcome
reported by every queried site. See 'obsreport render --help' for flags.

Examples:
  # Human-readable report on stdout
  obsreport render -i results.yaml

  # Defanged report, safe to paste into a ticket
  obsreport render -i results.yaml -f D --no-color -o ticket.txt

  # JSON lines from several files
  obsreport render -i monday.yaml -i tuesday.json -f J

  # Per-site summary without saving the run
  obsreport render -i results.yaml -f s --no-history`,
		Args: cobra.NoArgs,
		RunE: runRenderCmd,
	}

	cmd.Flags().StringSliceP("input", "i", nil,
		"Result file to render (repeatable, or comma separated)")
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Output format: N (normal), J (JSON), D (defanged), S (short)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to specified file path (creates directories if needed)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .obsreport in current or home directory)")
	cmd.Flags().String("db-dir", "",
		"Directory of the history database (default: XDG data directory)")
	cmd.Flags().Bool("no-color", false, "Disable ANSI colors in N and D output")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")
	cmd.Flags().Bool("json-log", false, "Emit logs as JSON")

	return cmd
}

// runRenderCmd executes the render command.
func runRenderCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg)
	slog.SetDefault(logger)

	return runRender(cmd.Context(), cfg, cmd.OutOrStdout(), logger)
}

// buildConfig layers explicitly set flags over the configuration file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit --config must exist; a missing default file is fine.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if cfg.InputFiles, err = flags.GetStringSlice("input"); err != nil {
		return nil, err
	}
	if flags.Changed("format") {
		if cfg.Format, err = flags.GetString("format"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		if cfg.OutputFile, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return nil, err
		}
	}

	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return nil, err
	}
	if noColor {
		cfg.Color = false
	}

	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.SaveHistory = false
	}

	jsonLog, err := flags.GetBool("json-log")
	if err != nil {
		return nil, err
	}
	cfg.JSONLog = cfg.JSONLog || jsonLog
	cfg.Verbose = cfg.Verbose || getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the secure structured logger for cfg.
func setupLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.JSONLog {
		return log.NewSecureJSONLogger(w, cfg.Verbose)
	}
	return log.NewSecureLogger(w, cfg.Verbose)
}

// runRender selects the renderer, loads the input, and writes the output.
// The format is resolved before any input is read so a bad code fails fast.
func runRender(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	renderer, err := report.Select(cfg.Format, report.WithColor(cfg.Color))
	if err != nil {
		// err already reads "unsupported output format: ...".
		return err
	}
	logger.Debug("format selected", "format", renderer.Format().String())

	rows, err := input.NewLoader(input.WithLogger(logger)).Load(ctx, cfg.InputFiles)
	if err != nil {
		return fmt.Errorf("invalid result data: %w", err)
	}
	logger.Info("results loaded", "files", len(cfg.InputFiles), "targets", len(rows))
	for _, row := range rows {
		logger.Debug("target loaded", "target", row.Target, "sites", len(row.Outcomes))
	}

	rendered, err := renderer.Render(rows)
	if err != nil {
		if errors.Is(err, model.ErrMalformedItem) {
			return fmt.Errorf("invalid result data: %w", err)
		}
		return fmt.Errorf("failed to render results: %w", err)
	}

	if err := writeOutput(cfg.OutputFile, stdout, rendered); err != nil {
		return err
	}

	if cfg.SaveHistory {
		// The output is already written; a history failure only warrants a warning.
		if err := saveHistory(ctx, cfg, rows, renderer.Format(), logger); err != nil {
			logger.Warn("failed to record render history", "error", err)
		}
	}
	return nil
}

// writeOutput writes rendered to the output file, or stdout when path is empty.
func writeOutput(path string, stdout io.Writer, rendered string) error {
	if path == "" {
		_, err := io.WriteString(stdout, rendered)
		return err
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(rendered), 0600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// saveHistory stores the run's JSON records in the history database.
func saveHistory(ctx context.Context, cfg *config.Config, rows []model.TargetRow, format report.Format, logger *slog.Logger) error {
	records, err := report.NewJSON().Records(rows)
	if err != nil {
		return err
	}
	encoded, err := report.EncodeRecords(records)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	run, err := db.SaveRun(ctx, database.Run{
		Format:      format.Code(),
		TargetCount: len(rows),
		Inputs:      cfg.InputFiles,
		Records:     encoded,
	})
	if err != nil {
		return err
	}

	logger.Info("render recorded", "id", run.ID, "dir", cfg.DBDir)
	return nil
}
