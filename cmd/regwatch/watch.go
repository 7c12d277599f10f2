package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ukaji3/regwatch-go/pkg/regwatch/config"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/events"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/watch"
)

type watchOptions struct {
	configPath string
	envFile    string
}

func newWatchCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the registry workbook and deliver changes until interrupted",
		Long: `watch reads its settings from the environment (REG_WORKBOOK_PATH,
TGBOT_APP_URL, ...), a .env file in the working directory, or a YAML file
given with --config. It stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "dotenv file to read instead of ./.env")
	cmd.MarkFlagsMutuallyExclusive("config", "env-file")

	return cmd
}

func loadConfig(opts *watchOptions) (config.Config, error) {
	switch {
	case opts.configPath != "":
		return config.FromFile(opts.configPath)
	case opts.envFile != "":
		return config.FromEnvFile(opts.envFile)
	default:
		return config.FromEnv()
	}
}

func runWatch(cmd *cobra.Command, opts *watchOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger := setupLogger(os.Stderr, cfg.LogLevel, cfg.Production())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(cfg, watch.Deps{Sink: events.Zerolog(logger)})
	if err := w.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Watcher stopped")
		return err
	}
	logger.Info().Msg("Watcher stopped")
	return nil
}
