package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/simforge/simforge/internal/config"
)

var (
	cfgFile string
	logger  zerolog.Logger

	rootCmd = &cobra.Command{
		Use:   "simforge",
		Short: "Simforge - build, inspect and deploy HTTP simulation documents",
		Long: `Simforge builds simulation documents for an external HTTP matching
engine: request matchers paired with canned responses, plus delay
settings. It can generate simulations from OpenAPI specs, validate and
serve existing ones, and push them to a running engine's admin API.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger()
		},
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./simforge.yaml)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(wipeCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
}

// initConfig layers SIMFORGE_* environment variables over the config
// file (or built-in defaults when no file is present).
func initConfig() {
	cfg := config.Default()

	path := cfgFile
	if path == "" {
		path = "simforge.yaml"
	}
	loaded, err := config.Load(path)
	switch {
	case err == nil:
		cfg = loaded
		fmt.Fprintln(os.Stderr, "Using config file:", path)
	case cfgFile != "":
		fmt.Fprintln(os.Stderr, "Warning: could not load config file:", err)
	}

	viper.SetEnvPrefix("SIMFORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("engine.adminUrl", cfg.Engine.AdminURL)
	viper.SetDefault("engine.timeout", cfg.Engine.Timeout)
	viper.SetDefault("serve.host", cfg.Serve.Host)
	viper.SetDefault("serve.port", cfg.Serve.Port)
	viper.SetDefault("serve.watch", cfg.Serve.Watch)
	viper.SetDefault("logging.level", cfg.Logging.Level)
	viper.SetDefault("logging.format", cfg.Logging.Format)
}

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if viper.GetString("logging.format") == "json" {
		log = zerolog.New(os.Stderr)
	} else {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return log.Level(level).With().Timestamp().Logger()
}
