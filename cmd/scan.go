package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/elp-logistics/market-radar/internal/logger"
	"github.com/elp-logistics/market-radar/internal/storage"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one scan from the CLI and print the report, without Telegram",
	Run: func(_ *cobra.Command, _ []string) {
		scan()
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func scan() {
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

	store, err := storage.Open(ctx, config.DBPath)
	if err != nil {
		logger.Fatal("opening the database", zap.Error(err), zap.String("path", config.DBPath))
	}
	defer store.Close()

	report := buildRadar(config, store, nil, logger).Run(ctx)

	fmt.Println(report.Summary())
	for _, link := range report.SampleLinks {
		fmt.Printf("  %s\n", link)
	}
	for _, diag := range report.Errors {
		fmt.Printf("  warn: %s\n", diag)
	}
	if report.JobsSkipped != "" {
		fmt.Printf("  job board skipped: %s\n", report.JobsSkipped)
	}
}
