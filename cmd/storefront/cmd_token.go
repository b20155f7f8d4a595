package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/database"
)

var (
	tokenUser  uint
	tokenEmail string
	tokenRole  string
	tokenTTL   time.Duration
)

// storefront token: mint a bearer token for local testing.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed bearer token for a user id or a stored user's email",
	Example: `  storefront token --user 1 --role admin
  storefront token --email admin@storefront.test
  curl -H "Authorization: Bearer $(storefront token --user 2)" localhost:8080/api/cart`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		userID, role := tokenUser, tokenRole
		if tokenEmail != "" {
			err := withDB(func(db *database.Database) error {
				u, err := repositories.NewUserRepository().FindByEmail(db.Conn(context.Background()), tokenEmail)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("no user with email %s", tokenEmail)
				}
				if err != nil {
					return err
				}
				userID = u.ID
				if role == "" {
					role = u.Role
				}
				return nil
			})
			if err != nil {
				return err
			}
		}

		if userID == 0 {
			return fmt.Errorf("--user or --email is required")
		}
		if role == "" {
			role = auth.RoleCustomer
		}
		if role != auth.RoleCustomer && role != auth.RoleAdmin {
			return fmt.Errorf("--role must be %q or %q", auth.RoleCustomer, auth.RoleAdmin)
		}

		token, err := auth.GenerateToken(userID, role, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().UintVar(&tokenUser, "user", 0, "user id to put in the token")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "look the user up by email; its stored role applies unless --role is set")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "", "customer or admin (default customer, or the stored role with --email)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}
