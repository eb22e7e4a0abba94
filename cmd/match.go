package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/elp-logistics/market-radar/internal/logger"
	"github.com/elp-logistics/market-radar/internal/match"
	"github.com/elp-logistics/market-radar/internal/storage"
	"github.com/elp-logistics/market-radar/internal/telegram"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Fill in the tenant questionnaire interactively and print the best listings",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().Int64("chat-id", 0, "persist the answers as this chat's tenant profile")
}

func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	profile, err := promptProfile()
	if err != nil {
		logger.Fatal("reading the questionnaire", zap.Error(err))
	}

	store, err := storage.Open(ctx, config.DBPath)
	if err != nil {
		logger.Fatal("opening the database", zap.Error(err), zap.String("path", config.DBPath))
	}
	defer store.Close()

	chatID, _ := cmd.Flags().GetInt64("chat-id")
	if chatID != 0 {
		profile.ChatID = chatID
		if err := store.UpsertTenantProfile(ctx, profile); err != nil {
			logger.Fatal("saving the tenant profile", zap.Error(err))
		}
		logger.Info("tenant profile saved", zap.Int64("chat_id", chatID))
	}

	listings, err := store.Listings(ctx, 200)
	if err != nil {
		logger.Fatal("listing the inventory", zap.Error(err))
	}
	if len(listings) == 0 {
		fmt.Println("База объявлений пока пуста. Импорт: market-radar listings import <file>")
		return
	}

	results := match.Rank(profile, listings)
	if !match.HasMatch(results) {
		fmt.Println("Подходящих вариантов нет. Попробуйте расширить бюджет или сменить район.")
		return
	}

	for i, r := range results {
		reasons := ""
		if len(r.Reasons) > 0 {
			reasons = " (" + strings.Join(r.Reasons, ", ") + ")"
		}
		fmt.Printf("%d. %s, %s, %d тг, совпадение %d%s\n",
			i+1, r.Listing.District, r.Listing.PropertyType, r.Listing.Price, r.Score, reasons)
		if r.Listing.URL != "" {
			fmt.Printf("   %s\n", r.Listing.URL)
		}
	}
}

// promptProfile drives the same transition function the bot uses, one
// prompt per questionnaire step.
func promptProfile() (storage.TenantProfile, error) {
	session := telegram.Session{}
	question := telegram.FirstQuestion()

	for {
		prompt := promptui.Prompt{Label: question}
		answer, err := prompt.Run()
		if err != nil {
			return storage.TenantProfile{}, err
		}

		next, reply, done := telegram.Advance(session, answer)
		session = next
		if done {
			return session.Profile, nil
		}
		question = reply
	}
}
