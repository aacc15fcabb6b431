package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"contentportal/internal/app"
	"contentportal/internal/infra"
)

// Global flag values.
var (
	flagJSON bool
	flagEnv  string
)

// runtime is opened by PersistentPreRunE for commands that need the store.
var runtime *app.Runtime

var rootCmd = &cobra.Command{
	Use:           "contentctl",
	Short:         "Operate the content portal record store",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return openRuntime(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if runtime != nil {
			runtime.Close()
			runtime = nil
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env-file", ".env", "optional dotenv file to load before reading the environment")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(videoCmd)
	rootCmd.AddCommand(migrateCmd)
}

func openRuntime(cmd *cobra.Command) error {
	if flagEnv != "" {
		_ = godotenv.Load(flagEnv)
	}
	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)
	rt, err := app.New(cmd.Context(), cfg, &logger, app.Options{})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	runtime = rt
	return nil
}
