package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/elp-logistics/market-radar/internal/logger"
	"github.com/elp-logistics/market-radar/internal/storage"
)

var listingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Manage the property listing inventory",
}

var listingsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load listings from a YAML file into the database",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		importListings(args[0])
	},
}

func init() {
	rootCmd.AddCommand(listingsCmd)
	listingsCmd.AddCommand(listingsImportCmd)
}

type listingsFile struct {
	Listings []storage.Listing `yaml:"listings"`
}

func importListings(path string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("reading the listings file", zap.Error(err), zap.String("path", path))
	}

	var file listingsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		logger.Fatal("parsing the listings file", zap.Error(err), zap.String("path", path))
	}
	if len(file.Listings) == 0 {
		logger.Fatal("no listings found under the 'listings' key", zap.String("path", path))
	}

	store, err := storage.Open(ctx, config.DBPath)
	if err != nil {
		logger.Fatal("opening the database", zap.Error(err), zap.String("path", config.DBPath))
	}
	defer store.Close()

	imported := 0
	for _, l := range file.Listings {
		if err := store.InsertListing(ctx, l); err != nil {
			logger.Warn("skipping listing", zap.Error(err), zap.String("url", l.URL))
			continue
		}
		imported++
	}

	logger.Info("listings imported", zap.Int("count", imported), zap.Int("total", len(file.Listings)))
}
