package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tazhibayda/inventory-service/internal/assets"
	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/queue"
	"github.com/tazhibayda/inventory-service/internal/session"
)

var adminFlags struct {
	email    string
	name     string
	password string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a verified admin account",
	Long: `Create a verified admin account without going through activation.

Examples:
  inventoryctl create-admin --email root@example.com --name Root --password secret1`,
	RunE: runCreateAdmin,
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminFlags.email, "email", "", "admin email")
	f.StringVar(&adminFlags.name, "name", "Admin", "display name")
	f.StringVar(&adminFlags.password, "password", "", "password, at least 6 characters")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	if len(adminFlags.password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	ctx, cancel := withTimeout()
	defer cancel()

	cfg, store, err := open(ctx)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	// account creation never touches the session cache
	m := session.NewManager(cfg, store.Users(), nil, queue.NewNoop(), assets.Noop{})
	u, err := m.CreateAccount(ctx, session.AccountInput{
		Name:     adminFlags.name,
		Email:    adminFlags.email,
		Password: adminFlags.password,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %s\n", u.Email, u.ID.Hex())
	return nil
}
