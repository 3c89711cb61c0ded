package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ana-sthesia/shroom-game/internal/game"
	"github.com/Ana-sthesia/shroom-game/internal/ledger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shroom-game",
	Short: "Mushroom Maniac, a grid chase played in chat",
	Long: `shroom-game runs Mushroom Maniac, a timed chase on a 10x10 board.
The player walks around eating mushrooms while a raven hunts the same
mushrooms, and the player with them. Meet the quota before the minute
runs out to level up; every finished round puts its score on the
leaderboard.

Run the Telegram bot with "shroom-game bot", or play a local round in
the terminal with "shroom-game play".`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.shroom-game.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for persisted scores (default is $XDG_DATA_HOME/shroom-game)")
	rootCmd.PersistentFlags().String("settings", "", "YAML file overriding the game rules")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")
	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("settings_file", rootCmd.PersistentFlags().Lookup("settings"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".shroom-game")
	}

	viper.SetDefault("log_level", "info")
	viper.SetDefault("ledger_backend", "file")

	viper.SetEnvPrefix("shroom")
	viper.AutomaticEnv()
	// honor the classic bot variable alongside SHROOM_TELEGRAM_TOKEN
	_ = viper.BindEnv("telegram_token", "SHROOM_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")

	_ = viper.ReadInConfig()

	setupLogging()
}

func setupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(viper.GetString("log_level"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

// dataDir resolves the directory for persisted state, preferring the
// configured value and falling back to the XDG data home.
func dataDir() (string, error) {
	if dir := viper.GetString("data_dir"); dir != "" {
		return dir, nil
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "shroom-game"), nil
}

// loadSettings returns the game rules, merging an optional settings
// file over the defaults.
func loadSettings() (game.Settings, error) {
	path := viper.GetString("settings_file")
	if path == "" {
		return game.DefaultSettings(), nil
	}
	return game.LoadSettings(path)
}

// buildLedger opens the configured score backend. The returned closer
// is a no-op for the file backend.
func buildLedger() (ledger.Ledger, func() error, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, nil, err
	}
	switch backend := viper.GetString("ledger_backend"); backend {
	case "sqlite":
		led, err := ledger.OpenSQLLedger(filepath.Join(dir, "scores.db"))
		if err != nil {
			return nil, nil, err
		}
		return led, led.Close, nil
	case "", "file":
		return ledger.NewFileLedger(filepath.Join(dir, "scores.json")), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown ledger_backend %q (want file or sqlite)", backend)
	}
}
