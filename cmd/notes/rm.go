package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid note id %q", args[0])
		}
		force, _ := cmd.Flags().GetBool("force")

		if err := requireUser(); err != nil {
			return err
		}
		user, _ := apiClient.CurrentUser()

		if !force {
			n, err := apiClient.Get(cmd.Context(), user.ID, id)
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}
			answer, err := prompt(fmt.Sprintf("Delete note %q? [y/N] ", n.Title))
			if err != nil {
				return err
			}
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(stdout, "Cancelled.")
				return nil
			}
		}

		s := newStore(0, nil)
		defer s.Close()
		return s.Delete(cmd.Context(), id)
	},
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}
