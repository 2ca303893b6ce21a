package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aweris/crafty"
	"github.com/aweris/crafty/internal/catalog"
	"github.com/aweris/crafty/internal/pacman"
	"github.com/aweris/crafty/internal/remote"
)

var rootCmd = &cobra.Command{
	Use:          "crafty",
	Short:        "Tool to manage ArchCraft packages from GitHub",
	Long:         "Install, upgrade, search and remove ArchCraft packages straight from the GitHub package repository.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.AddConfigPath(configDir())
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("CRAFTY")
	viper.AutomaticEnv()

	viper.SetDefault("catalog_url", catalog.DefaultURL)
	viper.SetDefault("download_url", crafty.DefaultDownloadURL)
	viper.SetDefault("prefix", catalog.DefaultPrefix)
	viper.SetDefault("ledger_path", crafty.DefaultLedgerPath)
	viper.SetDefault("tmp_dir", os.TempDir())
	viper.SetDefault("pacman", "pacman")
	viper.SetDefault("sudo", true)
	viper.SetDefault("noconfirm", false)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("user_agent", remote.DefaultUserAgent)

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "crafty")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "crafty")
	}
	return ".crafty"
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// newManager builds the manager from configuration. Tests replace it.
var newManager = func(cmd *cobra.Command) (*crafty.Manager, error) {
	logger, err := newLogger(viper.GetString("log_level"))
	if err != nil {
		return nil, err
	}

	ledgerPath, err := crafty.ExpandPath(viper.GetString("ledger_path"))
	if err != nil {
		return nil, fmt.Errorf("resolve ledger path: %w", err)
	}
	tmpDir, err := crafty.ExpandPath(viper.GetString("tmp_dir"))
	if err != nil {
		return nil, fmt.Errorf("resolve tmp dir: %w", err)
	}

	r := remote.NewHTTPRemote(
		remote.WithUserAgent(viper.GetString("user_agent")),
		remote.WithLogger(logger),
	)

	pm := pacman.New(
		pacman.WithBinary(viper.GetString("pacman")),
		pacman.WithSudo(viper.GetBool("sudo")),
		pacman.WithNoConfirm(viper.GetBool("noconfirm")),
		pacman.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
		pacman.WithLogger(logger),
	)

	return crafty.New(
		crafty.WithSource(catalog.NewFetcher(r, viper.GetString("catalog_url"))),
		crafty.WithDownloader(r),
		crafty.WithInstaller(pm),
		crafty.WithDownloadURL(viper.GetString("download_url")),
		crafty.WithPrefix(viper.GetString("prefix")),
		crafty.WithLedgerPath(ledgerPath),
		crafty.WithTmpDir(tmpDir),
		crafty.WithOutput(cmd.OutOrStdout()),
		crafty.WithLogger(logger),
	)
}
