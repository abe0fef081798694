package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"lpnu-schedule/internal/components/telemetry"
	"lpnu-schedule/internal/scrapers/lpnu"
	"lpnu-schedule/pkg/configutil"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type DatabaseConfig struct {
	// File is a sqlite path or a libsql url.
	File string `json:"file"`
}

type Config struct {
	BaseUrl           string         `json:"base_url"`
	RequestsPerSecond float64        `json:"requests_per_second"`
	TimeoutSeconds    int            `json:"timeout_seconds"`
	UserAgent         string         `json:"user_agent"`
	CloudflareBypass  bool           `json:"cloudflare_bypass"`
	Concurrency       int            `json:"concurrency"`
	Database          DatabaseConfig `json:"database"`
}

func defaultConfig() Config {
	return Config{
		BaseUrl:           lpnu.DefaultBaseUrl,
		RequestsPerSecond: 2,
		TimeoutSeconds:    30,
		Concurrency:       4,
		Database:          DatabaseConfig{File: "schedule.db"},
	}
}

var (
	configPath string
	verbose    bool
	dumpDir    string

	cfg       Config
	tel       telemetry.API = telemetry.NoopAPI{}
	providers telemetry.Telemetry
	client    *lpnu.Client
)

var rootCmd = &cobra.Command{
	Use:   "lpnu-cli",
	Short: "lpnu-cli scrapes the public class schedule of Lviv Polytechnic.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		var err error
		cfg, err = loadConfig(configPath)
		if err != nil {
			return err
		}

		providers, err = telemetry.SetupFromEnv(cmd.Context(), "lpnu-cli")
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to setup telemetry", "err", err)
		}
		tel = telemetry.NewSlogAPI()

		client, err = lpnu.NewClient(lpnu.ClientOptions{
			BaseUrl:           cfg.BaseUrl,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
			UserAgent:         cfg.UserAgent,
			CloudflareBypass:  cfg.CloudflareBypass,
			DumpDir:           dumpDir,
		}, tel)
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		err := providers.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	},
}

// loadConfig reads the config file over the defaults, a missing file is not an error.
func loadConfig(path string) (Config, error) {
	out := defaultConfig()
	read, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "path", path)
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("read config: %w", err)
	}
	err = mergeConfig(&out, read)
	if err != nil {
		return out, fmt.Errorf("read config: %w", err)
	}
	return out, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "The config file to read.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	rootCmd.PersistentFlags().StringVar(&dumpDir, "dump-dir", "", "Write every fetched page to this directory.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
