package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the Mongo indexes (unique names and emails, sort keys)",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx, cancel := withTimeout()
	defer cancel()

	_, store, err := open(ctx)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "indexes are up to date")
	return nil
}
