package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tazhibayda/inventory-service/internal/config"
	"github.com/tazhibayda/inventory-service/internal/log"
	"github.com/tazhibayda/inventory-service/internal/repo"
)

var (
	mongoURI string
	mongoDB  string
)

var rootCmd = &cobra.Command{
	Use:   "inventoryctl",
	Short: "Maintenance commands for inventory-service",
	Long: `Maintenance commands for inventory-service.

Configuration is read the same way as the server (config.yaml and env).

Examples:
  inventoryctl migrate
  inventoryctl create-admin --email root@example.com --name Root --password secret1`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "override MONGO_URI")
	rootCmd.PersistentFlags().StringVar(&mongoDB, "mongo-db", "", "override MONGO_DB")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// open loads config and connects to Mongo with the flag overrides applied.
func open(ctx context.Context) (config.Config, *repo.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if mongoURI != "" {
		cfg.MongoURI = mongoURI
	}
	if mongoDB != "" {
		cfg.MongoDB = mongoDB
	}
	if _, err := log.Init(false); err != nil {
		return config.Config{}, nil, err
	}
	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("mongo connect: %w", err)
	}
	return cfg, store, nil
}

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
