package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"notes/internal/client"
	"notes/internal/ui"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentials(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")

		id, err := apiClient.SignUp(cmd.Context(), email, password, name)
		if err != nil {
			return fmt.Errorf("register: %w", err)
		}
		fmt.Fprint(stdout, ui.Identity(id))
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentials(cmd)
		if err != nil {
			return err
		}

		id, err := apiClient.SignIn(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		fmt.Fprint(stdout, ui.Identity(id))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiClient.SignOut(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireUser(); err != nil {
			return err
		}

		id, err := apiClient.Me(cmd.Context())
		if errors.Is(err, client.ErrUnauthorized) {
			return fmt.Errorf("session expired: run `notes login` again")
		}
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, ui.Identity(id))
		return nil
	},
}

// credentials reads --email and --password, prompting for what is missing.
func credentials(cmd *cobra.Command) (email, password string, err error) {
	email, _ = cmd.Flags().GetString("email")
	password, _ = cmd.Flags().GetString("password")

	if strings.TrimSpace(email) == "" {
		if email, err = prompt("Email: "); err != nil {
			return "", "", err
		}
	}
	if password == "" {
		if password, err = prompt("Password: "); err != nil {
			return "", "", err
		}
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return "", "", errors.New("email and password are required")
	}
	return email, password, nil
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringP("email", "e", "", "account email")
		c.Flags().StringP("password", "p", "", "account password (prompted when empty)")
	}
	registerCmd.Flags().StringP("name", "n", "", "display name")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}
