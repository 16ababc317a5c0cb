package main

import (
	"fmt"
	"strings"

	"github.com/oukeidos/xactions/internal/auth"
	"github.com/spf13/cobra"
)

func newEnvCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage session cookies in OS Keychain",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvStatus(cmd)
		},
	}

	cmd.SetUsageTemplate(envUsageTemplate)
	cmd.AddCommand(
		newEnvSetupCmd(),
		newEnvDeleteCmd(global),
		newEnvStatusCmd(),
	)
	return cmd
}

func newEnvSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Save auth_token and ct0 cookies to keychain (prompt only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvSetup(cmd)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newEnvDeleteCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete session cookies from keychain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvDelete(cmd, global)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newEnvStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show session status (default if no action given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvStatus(cmd)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func runEnvSetup(cmd *cobra.Command) error {
	token, err := promptForSecret("auth_token cookie: ")
	if err != nil {
		return fmt.Errorf("error reading auth_token: %w", err)
	}
	ct0, err := promptForSecret("ct0 cookie: ")
	if err != nil {
		return fmt.Errorf("error reading ct0: %w", err)
	}
	creds := auth.Credentials{AuthToken: strings.TrimSpace(token), CT0: strings.TrimSpace(ct0)}
	if !creds.Complete() {
		return fmt.Errorf("both auth_token and ct0 are required for setup")
	}
	if err := saveCredentials(creds); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Saved session cookies to keychain.")
	return nil
}

func runEnvDelete(cmd *cobra.Command, global *globalOptions) error {
	ok, err := newConfirmer().ConfirmAction("delete", "the stored session", global.yes)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := deleteCredentials(); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Deleted session cookies from keychain.")
	return nil
}

func runEnvStatus(cmd *cobra.Command) error {
	if getStatus() {
		fmt.Fprintln(cmd.OutOrStdout(), "Session: Found (source=Keychain)")
		return nil
	}
	if _, ok := loadEnvCredential(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Session: Found (source=Environment Variable; disabled by default, use --allow-env)\n")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Session: Not Found (keychain empty, %s/%s not set)\n", auth.AuthTokenEnvVar, auth.CT0EnvVar)
	return nil
}
