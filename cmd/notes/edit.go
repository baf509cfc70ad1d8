package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"notes/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a note's title or content",
	Long:  `Rewrite a note. Flags that are not given keep their current value.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid note id %q", args[0])
		}
		if err := requireUser(); err != nil {
			return err
		}
		user, _ := apiClient.CurrentUser()

		current, err := apiClient.Get(cmd.Context(), user.ID, id)
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		title, content := current.Title, current.Content
		if cmd.Flags().Changed("title") {
			title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("content") {
			content, _ = cmd.Flags().GetString("content")
		}

		s := newStore(0, nil)
		defer s.Close()

		n, err := s.Update(cmd.Context(), id, title, content)
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, ui.NoteDetail(n))
		return nil
	},
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "new title")
	editCmd.Flags().StringP("content", "c", "", "new body")
	rootCmd.AddCommand(editCmd)
}
