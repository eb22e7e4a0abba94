package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofrs/flock"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/elp-logistics/market-radar/internal/logger"
	"github.com/elp-logistics/market-radar/internal/radar"
	"github.com/elp-logistics/market-radar/internal/scoring"
	"github.com/elp-logistics/market-radar/internal/secrets"
	"github.com/elp-logistics/market-radar/internal/source/headhunter"
	"github.com/elp-logistics/market-radar/internal/source/rss"
	"github.com/elp-logistics/market-radar/internal/source/yandex"
	"github.com/elp-logistics/market-radar/internal/storage"
	"github.com/elp-logistics/market-radar/internal/telegram"
)

const feedFetchTimeout = 20 * time.Second

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bot: Telegram polling plus the daily scheduled scan",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// run is the long-lived bot process.
func run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the market-radar", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config.Telegram == nil || config.Telegram.AdminChatID == 0 {
		logger.Fatal("telegram.admin-chat-id is required")
	}

	// One process per database. A second instance exits quietly instead
	// of double-polling Telegram.
	lock := flock.New(config.LockPath)
	locked, err := lock.TryLock()
	if err != nil {
		logger.Fatal("acquiring the instance lock", zap.Error(err), zap.String("path", config.LockPath))
	}
	if !locked {
		logger.Info("another instance holds the lock, exiting", zap.String("path", config.LockPath))
		return
	}
	defer lock.Unlock()

	token, err := resolveBotToken(config)
	if err != nil {
		logger.Fatal(
			"loading telegram bot token",
			zap.Error(err),
			zap.String("hint", "set RADAR_BOT_TOKEN_FILE environment variable or the 'telegram.token-file' key in the configuration file"),
		)
	}

	store, err := storage.Open(ctx, config.DBPath)
	if err != nil {
		logger.Fatal("opening the database", zap.Error(err), zap.String("path", config.DBPath))
	}
	defer store.Close()

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Fatal("connecting to telegram", zap.Error(err))
	}
	logger.Info("telegram bot authorized", zap.String("username", api.Self.UserName))

	bot := telegram.NewBot(
		telegram.NewAPISender(api),
		store, nil,
		config.Telegram.AdminChatID,
		radar.DefaultHotThreshold,
		logger,
	)

	scanner := buildRadar(config, store, bot, logger)
	bot.Radar = scanner

	location, err := time.LoadLocation(config.Timezone)
	if err != nil {
		logger.Fatal("loading timezone", zap.Error(err), zap.String("timezone", config.Timezone))
	}

	scheduler := cron.New(cron.WithLocation(location))
	spec := fmt.Sprintf("%d %d * * *", config.Daily.Minute, config.Daily.Hour)
	_, err = scheduler.AddFunc(spec, func() {
		report := scanner.Run(ctx)
		logger.Info("scheduled scan finished",
			zap.Int("collected", report.Collected),
			zap.Int("new_leads", report.NewLeads),
			zap.Int("sent", report.Sent),
		)
	})
	if err != nil {
		logger.Fatal("scheduling the daily scan", zap.Error(err), zap.String("spec", spec))
	}
	scheduler.Start()
	defer scheduler.Stop()
	logger.Info("daily scan scheduled",
		zap.String("spec", spec),
		zap.String("timezone", config.Timezone),
	)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			logger.Info("exiting", zap.String("reason", "signal received"))
			return
		case update, ok := <-updates:
			if !ok {
				logger.Info("exiting", zap.String("reason", "updates channel closed"))
				return
			}
			bot.HandleUpdate(ctx, update)
		}
	}
}

// buildRadar wires the scan pipeline from the config.
func buildRadar(config *Config, store *storage.Store, notifier radar.Notifier, logger *zap.Logger) *radar.Radar {
	hh := headhunter.New(logger)
	if config.UserAgent != "" {
		hh.UserAgent = config.UserAgent
	}

	cfg := radar.Config{
		MaxItemsPerRun:   config.Limits.MaxItemsPerRun,
		MaxSendPerRun:    config.Limits.MaxSendPerRun,
		FeedTimeout:      feedFetchTimeout,
		JobBoardEnabled:  config.JobBoard.Enabled,
		JobBoardInterval: time.Duration(config.JobBoard.IntervalHours) * time.Hour,
		JobBoardPageCap:  config.JobBoard.PageCap,
	}

	searchQueries := make([]string, 0, len(rss.SignalQueriesRU)+len(rss.SignalQueriesEN))
	searchQueries = append(searchQueries, rss.SignalQueriesRU...)
	searchQueries = append(searchQueries, rss.SignalQueriesEN...)

	deps := radar.Deps{
		Scorer:        scoring.Default(),
		Store:         store,
		Notifier:      notifier,
		Feeds:         rss.New(config.UserAgent, feedFetchTimeout),
		FeedURLs:      rss.AllFeedURLs(),
		Providers:     buildSearchProviders(config, logger),
		SearchQueries: searchQueries,
		JobBoard:      hh,
		JobQueries:    headhunter.Queries,
		Logger:        logger,
	}

	return radar.New(cfg, deps)
}

func buildSearchProviders(config *Config, logger *zap.Logger) []radar.SearchProvider {
	if config.Search == nil {
		return nil
	}

	var providers []radar.SearchProvider

	if xmlCfg := config.Search.YandexXML; xmlCfg != nil {
		key, err := loadOptionalSecret("yandex xml key", xmlCfg.KeyFile)
		if err != nil {
			logger.Warn("yandex xml provider disabled", zap.Error(err))
		}
		providers = append(providers, yandex.NewXML(xmlCfg.Enabled, xmlCfg.User, key))
	}

	if serpCfg := config.Search.SerpAPI; serpCfg != nil {
		key, err := loadOptionalSecret("serpapi key", serpCfg.KeyFile)
		if err != nil {
			logger.Warn("serpapi provider disabled", zap.Error(err))
		}
		providers = append(providers, yandex.NewSerp(serpCfg.Enabled, key))
	}

	return providers
}

// loadOptionalSecret tolerates an unset file: the provider just stays
// disabled.
func loadOptionalSecret(name, file string) (string, error) {
	if strings.TrimSpace(file) == "" {
		return "", nil
	}
	return secrets.Load(secrets.Source{Name: name, File: file})
}

func resolveBotToken(config *Config) (string, error) {
	tokenFile := ""
	if config.Telegram != nil {
		tokenFile = strings.TrimSpace(config.Telegram.TokenFile)
	}
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("telegram.token-file"))
	}

	return secrets.Load(secrets.Source{
		Name: "telegram bot token",
		File: tokenFile,
	})
}
