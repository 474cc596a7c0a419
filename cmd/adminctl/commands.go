package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"genius-backend/internal/admins"
	"genius-backend/internal/shared/auth"
	"genius-backend/internal/shared/config"
)

type cliEnv struct {
	cfg  config.Config
	open func(ctx context.Context) (*sql.DB, error)
	// repo opens the admin store; the returned func releases it.
	repo func(ctx context.Context) (admins.Repo, func(), error)
}

func newRootCmd(env *cliEnv) *cobra.Command {
	root := &cobra.Command{
		Use:          "adminctl",
		Short:        "Manage admin accounts and the database schema",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.AddCommand(createAdminCmd(env), resetPasswordCmd(env), migrateCmd(env))
	return root
}

func (e *cliEnv) service(ctx context.Context) (*admins.Service, func(), error) {
	repo, release, err := e.repo(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("open admin store: %w", err)
	}
	signer, err := auth.NewSigner(e.cfg.JWTSecret, e.cfg.SessionTTL, e.cfg.Env)
	if err != nil {
		release()
		return nil, nil, err
	}
	return admins.NewService(repo, signer, admins.NewMemoryRevocations()), release, nil
}

func createAdminCmd(env *cliEnv) *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account if the email is not registered yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := env.service(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			admin, created, err := svc.EnsureAdmin(cmd.Context(), email, password, name)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "admin %s already exists (%s)\n", admin.Email, admin.ID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Email, admin.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func resetPasswordCmd(env *cliEnv) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Replace the password of an existing admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := env.service(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if err := svc.ResetPassword(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", strings.ToLower(strings.TrimSpace(email)))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func migrateCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			sqlDB, err := env.open(cmd.Context())
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
