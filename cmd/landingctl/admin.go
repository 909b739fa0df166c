package main

import (
	"fmt"

	"github.com/landingpages/internal/db"
	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminPassword string
	adminReset    bool
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account, or reset its password with --reset",
	RunE:  runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "admin username")
	createAdminCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "admin password")
	createAdminCmd.Flags().BoolVar(&adminReset, "reset", false, "overwrite the password of an existing user")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := db.UpsertUser(a.db, adminUsername, adminPassword, adminReset)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(cmd.OutOrStdout(), "user %s already exists, use --reset to change the password\n", adminUsername)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved user %s\n", adminUsername)
	return nil
}
