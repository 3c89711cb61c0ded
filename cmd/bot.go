package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ana-sthesia/shroom-game/internal/httpserver"
	"github.com/Ana-sthesia/shroom-game/internal/session"
	"github.com/Ana-sthesia/shroom-game/internal/telegram"
)

var botToken string

// botCmd represents the bot command
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	Long: `Starts the long-polling Telegram worker. Every chat gets its own
round: /start begins one, the inline arrows move the player, and
finished rounds land on the shared leaderboard (/leaderboard).

Needs a bot token, via --token, the telegram_token config key or the
TELEGRAM_BOT_TOKEN environment variable. When none is set the command
walks you through creating one.`,
	Run: func(cmd *cobra.Command, args []string) {
		token := resolveToken()
		if token == "" {
			fmt.Println("No Telegram token configured, cannot start the bot.")
			os.Exit(1)
		}

		settings, err := loadSettings()
		if err != nil {
			fmt.Printf("Error loading settings: %v\n", err)
			os.Exit(1)
		}

		led, closeLedger, err := buildLedger()
		if err != nil {
			fmt.Printf("Error opening score ledger: %v\n", err)
			os.Exit(1)
		}
		defer closeLedger()

		registry := session.NewRegistry(led, settings)

		if addr := viper.GetString("status_addr"); addr != "" {
			srv := httpserver.New(registry, led)
			go func() {
				log.Info().Str("addr", addr).Msg("status server listening")
				if err := srv.Start(addr); err != nil {
					log.Error().Err(err).Msg("status server stopped")
				}
			}()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		bot := telegram.NewBot(token, registry, led)
		if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Printf("Bot stopped: %v\n", err)
			os.Exit(1)
		}
		log.Info().Msg("shutting down")
	},
}

// resolveToken returns the bot token, walking the user through BotFather
// and saving the result when none is configured yet.
func resolveToken() string {
	if botToken != "" {
		saveToken(botToken)
		return botToken
	}
	if token := viper.GetString("telegram_token"); token != "" {
		return token
	}

	fmt.Println("---")
	fmt.Println("Create your Telegram Bot & Get Token")
	fmt.Println("Open Telegram and search for the official @BotFather.")
	fmt.Println("Send the /newbot command and follow the prompts to name your bot and choose a unique username.")
	fmt.Println("BotFather will provide you with an HTTP API token. Store this token securely, as it is required for all API interactions.")
	fmt.Println("For playing in a group, add the bot to the group so everyone can press the move buttons.")
	fmt.Println("---")
	fmt.Print("token: ")

	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		if token := strings.TrimSpace(scanner.Text()); token != "" {
			saveToken(token)
			return token
		}
	}
	return ""
}

// saveToken persists the token so the next run does not ask again.
func saveToken(token string) {
	viper.Set("telegram_token", token)
	err := viper.WriteConfig()
	if err != nil {
		// If config file doesn't exist, WriteConfig typically fails.
		err = viper.SafeWriteConfig()
		if err != nil {
			home, _ := os.UserHomeDir()
			err = viper.WriteConfigAs(home + "/.shroom-game.yaml")
		}
	}
	if err != nil {
		log.Warn().Err(err).Msg("could not save telegram token")
	}
}

func init() {
	rootCmd.AddCommand(botCmd)

	botCmd.Flags().StringVarP(&botToken, "token", "t", "", "Telegram bot API token")
	botCmd.Flags().String("status-addr", "", "listen address for the HTTP status server (e.g. :8080)")
	_ = viper.BindPFlag("status_addr", botCmd.Flags().Lookup("status-addr"))
}
