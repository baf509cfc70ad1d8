package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notes/internal/ui"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a note",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")

		if err := requireUser(); err != nil {
			return err
		}

		s := newStore(0, nil)
		defer s.Close()

		n, err := s.Create(cmd.Context(), title, content)
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, ui.NoteDetail(n))
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("title", "t", "", "note title")
	addCmd.Flags().StringP("content", "c", "", "note body")
	_ = addCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(addCmd)
}
