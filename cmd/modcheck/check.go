package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jieyouxu/modio-modcheck/internal/config"
	"github.com/jieyouxu/modio-modcheck/internal/database"
	applog "github.com/jieyouxu/modio-modcheck/internal/log"
	"github.com/jieyouxu/modio-modcheck/internal/model"
	"github.com/jieyouxu/modio-modcheck/internal/modio"
	"github.com/jieyouxu/modio-modcheck/internal/modlist"
	"github.com/jieyouxu/modio-modcheck/internal/reconcile"
	"github.com/jieyouxu/modio-modcheck/internal/report"
)

// runCheckCmd executes the check on the root command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags and the optional .modcheck file
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration before touching any file or the network
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with credential redaction
	logger := applog.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCheck(ctx, cfg, logger)
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

// buildConfig creates a Config from cobra command flags.
// Precedence: flags > .modcheck file > built-in defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	// A .env file may supply MODIO_ACCESS_TOKEN
	config.LoadEnvFiles()

	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the optional config file first so flags can override it.
	// If the user explicitly specified a path, a missing file is an error;
	// otherwise the file is simply optional.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.Apply(file)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.UserID, err = cmd.Flags().GetInt64("id")
	if err != nil {
		return nil, err
	}

	cfg.AccessTokenPath, err = cmd.Flags().GetString("access-token")
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("game-id") {
		cfg.GameID, err = cmd.Flags().GetInt64("game-id")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("api-host") {
		cfg.APIHost, err = cmd.Flags().GetString("api-host")
		if err != nil {
			return nil, err
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.NoSave, err = cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}

	cfg.NoProgress, err = cmd.Flags().GetBool("no-progress")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if len(args) > 0 {
		cfg.ModListPath = args[0]
	}

	return cfg, nil
}

// runCheck executes the reconciliation run.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	token, err := loadAccessToken(cfg)
	if err != nil {
		return err
	}

	tokens, err := modlist.ParseFile(cfg.ModListPath)
	if err != nil {
		return err
	}

	logger.Info("starting check",
		"modList", cfg.ModListPath,
		"references", len(tokens),
		"gameID", cfg.GameID,
	)

	// An empty list needs no authentication and no lookups: the report is
	// empty and the run succeeds.
	if len(tokens) == 0 {
		return outputReport(cfg, model.NewReport(cfg.ModListPath, cfg.GameID))
	}

	client := modio.NewClient(cfg.APIHost, cfg.UserID, token,
		modio.WithTimeout(cfg.Timeout),
		modio.WithUserAgent(cfg.UserAgent),
	)

	// Outright token rejection is fatal before any per-mod lookup
	if err := client.VerifyToken(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	logger.Info("access token verified")

	// Open the history database unless saving is disabled.
	// The stored names from previous runs feed rename detection.
	var db *database.HistoryDB
	if !cfg.NoSave {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Info("history database opened", "dir", cfg.DBDir)
	}

	opts := []reconcile.Option{
		reconcile.WithLogger(logger),
	}
	if db != nil {
		opts = append(opts, reconcile.WithNameStore(db))
	}
	if !cfg.NoProgress {
		opts = append(opts, reconcile.WithProgress(func(index, total int, entry model.Entry) {
			fmt.Printf("[%d/%d] %s: %s\n", index+1, total, entry.Reference, entry.Classification.Describe())
		}))
	}

	rec := reconcile.New(client, cfg.GameID, opts...)

	checkReport, err := rec.Run(ctx, cfg.ModListPath, tokens)
	if err != nil {
		return err
	}

	if err := outputReport(cfg, checkReport); err != nil {
		return err
	}

	if db != nil {
		runID, err := db.SaveRun(ctx, checkReport)
		if err != nil {
			logger.Error("failed to save run", "error", err)
		} else {
			logger.Info("run saved", "runID", runID)
		}
	}

	// Exit 0 regardless of how many mods were flagged: a completed check
	// is a successful run.
	return nil
}

// loadAccessToken reads the bearer token from the token file, falling back
// to the MODIO_ACCESS_TOKEN environment variable.
func loadAccessToken(cfg *config.Config) (string, error) {
	if cfg.AccessTokenPath != "" {
		data, err := os.ReadFile(cfg.AccessTokenPath) //nolint:gosec // User-provided token path is intentional
		if err != nil {
			return "", fmt.Errorf("failed to read access token: %w", err)
		}
		token := strings.TrimSpace(string(data))
		if token == "" {
			return "", fmt.Errorf("access token file %s is empty", cfg.AccessTokenPath)
		}
		return token, nil
	}

	if token := strings.TrimSpace(os.Getenv(config.AccessTokenEnv)); token != "" {
		return token, nil
	}

	return "", config.ErrNoAccessToken
}

// outputReport outputs the report in the requested format.
func outputReport(cfg *config.Config, checkReport *model.Report) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}

	_, err := writer.Write(checkReport)
	return err
}
