package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "market-radar"
)

type Config struct {
	Telegram  *TelegramConfig `mapstructure:"telegram"`
	Timezone  string          `mapstructure:"timezone"`
	Daily     *DailyConfig    `mapstructure:"daily"`
	Limits    *LimitsConfig   `mapstructure:"limits"`
	JobBoard  *JobBoardConfig `mapstructure:"job-board"`
	Search    *SearchConfig   `mapstructure:"search"`
	UserAgent string          `mapstructure:"user-agent"`
	DBPath    string          `mapstructure:"db-path"`
	LockPath  string          `mapstructure:"lock-path"`
}

type TelegramConfig struct {
	TokenFile   string `mapstructure:"token-file"`
	AdminChatID int64  `mapstructure:"admin-chat-id"`
}

type DailyConfig struct {
	Hour   int `mapstructure:"hour"`
	Minute int `mapstructure:"minute"`
}

type LimitsConfig struct {
	MaxItemsPerRun int `mapstructure:"max-items-per-run"`
	MaxSendPerRun  int `mapstructure:"max-send-per-run"`
}

type JobBoardConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	IntervalHours int  `mapstructure:"interval-hours"`
	PageCap       int  `mapstructure:"page-cap"`
}

type SearchConfig struct {
	YandexXML *YandexXMLConfig `mapstructure:"yandex-xml"`
	SerpAPI   *SerpAPIConfig   `mapstructure:"serpapi"`
}

type YandexXMLConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	User    string `mapstructure:"user"`
	KeyFile string `mapstructure:"key-file"`
}

type SerpAPIConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	KeyFile string `mapstructure:"key-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "market-radar scans news feeds, web search and hh.ru for warehouse demand signals and pushes hot leads to Telegram",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("telegram.token-file", "RADAR_BOT_TOKEN_FILE"); err != nil {
		log.Fatalf("binding RADAR_BOT_TOKEN_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("search.yandex-xml.key-file", "RADAR_YANDEX_KEY_FILE"); err != nil {
		log.Fatalf("binding RADAR_YANDEX_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("search.serpapi.key-file", "RADAR_SERPAPI_KEY_FILE"); err != nil {
		log.Fatalf("binding RADAR_SERPAPI_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is market-radar.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing default config is fine: every knob has a built-in value
	// and secrets can arrive via environment variables.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Timezone == "" {
		config.Timezone = "Asia/Almaty"
	}
	if config.Daily == nil {
		config.Daily = &DailyConfig{Hour: 9, Minute: 0}
	}
	if config.Limits == nil {
		config.Limits = &LimitsConfig{}
	}
	if config.JobBoard == nil {
		config.JobBoard = &JobBoardConfig{Enabled: true}
	}
	if config.DBPath == "" {
		config.DBPath = "radar.db"
	}
	if config.LockPath == "" {
		config.LockPath = "market-radar.lock"
	}

	return config, nil
}
