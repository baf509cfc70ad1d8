package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"notes/internal/note"
	"notes/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Long:  `List one page of your notes, most recently updated first, optionally filtered by text in the title or content.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("page-size")

		if err := requireUser(); err != nil {
			return err
		}

		s := newStore(size, nil)
		defer s.Close()

		ctx := cmd.Context()
		if search = strings.TrimSpace(search); search != "" {
			if err := s.Commit(ctx, search); err != nil {
				return err
			}
		} else if err := s.Load(ctx); err != nil {
			return err
		}
		if page > 1 {
			if err := s.GoToPage(ctx, page); err != nil {
				return err
			}
		}

		fmt.Fprint(stdout, ui.NotePage(s.Snapshot()))
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "filter by title or content")
	listCmd.Flags().IntP("page", "P", 1, "page number")
	listCmd.Flags().IntP("page-size", "n", note.DefaultPageSize, "notes per page (max 100)")
	rootCmd.AddCommand(listCmd)
}
