package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/numline/internal/app"
	"github.com/abhisek/numline/internal/config"
)

// appCfg is resolved once per invocation by the root pre-run hook.
var appCfg config.Config

// logSink is closed by the root post-run hook.
var logSink io.Closer

var rootCmd = &cobra.Command{
	Use:   "numline",
	Short: "Number line practice in the terminal",
	Long:  "Numline: a short adaptive lesson on finding numbers on a number line.",

	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		logger, closer, err := newLogger(cfg)
		if err != nil {
			return err
		}
		appCfg = cfg
		logSink = closer

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(ctxlog.With(ctx, logger))
		logger.Debug("configuration resolved",
			"questions", cfg.TotalQuestions, "seed", cfg.Seed, "command", cmd.Name())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logSink == nil {
			return nil
		}
		err := logSink.Close()
		logSink = nil
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().Int("questions", 0, "Questions per lesson (overrides NUMLINE_QUESTIONS)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Seed for the question sequence; 0 picks one at random (overrides NUMLINE_SEED)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file (overrides NUMLINE_LOG_FILE)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides NUMLINE_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("env-file", "", "Load settings from this env file instead of .env")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig returns the configuration using flags (highest priority),
// then NUMLINE_* env vars, then the env file, then the defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("questions") {
		cfg.TotalQuestions, _ = flags.GetInt("questions")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds a text logger writing to cfg.LogFile, or a discard
// logger when no file is set. The TUI owns the terminal, so logs never go
// to stderr.
func newLogger(cfg config.Config) (*slog.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), nil, nil
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", cfg.LogFile))
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

// runApp launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	return app.Run(ctx, app.Options{
		Config: appCfg,
		Logger: ctxlog.From(ctx),
	})
}
