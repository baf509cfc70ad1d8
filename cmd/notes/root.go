package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"notes/internal/client"
	"notes/internal/logging"
	"notes/internal/view"
)

var (
	apiClient *client.Client
	stdin     *bufio.Reader = bufio.NewReader(os.Stdin)
	stdout    io.Writer     = os.Stdout
)

var rootCmd = &cobra.Command{
	Use:           "notes",
	Short:         "Personal notes from the command line",
	Long:          `Sign in to a notesd server, then list, search, add, edit and remove your notes.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")
		sessionPath, _ := cmd.Flags().GetString("session")
		verbose, _ := cmd.Flags().GetBool("verbose")

		level := "warn"
		if verbose {
			level = "debug"
		}
		logging.New(os.Stderr, level, "text")

		if sessionPath == "" {
			p, err := client.DefaultSessionPath()
			if err != nil {
				return err
			}
			sessionPath = p
		}

		c, err := client.New(server, client.WithSessionFile(sessionPath))
		if err != nil {
			return err
		}
		apiClient = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("server", os.Getenv("NOTES_SERVER"), "notesd base URL (env NOTES_SERVER)")
	rootCmd.PersistentFlags().String("session", "", "session file (env NOTES_SESSION)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging to stderr")
}

// newStore builds the list state over the API client.
func newStore(pageSize int, onChange func(view.Snapshot)) *view.Store {
	return view.NewStore(apiClient, apiClient, view.Options{
		PageSize: pageSize,
		Notifier: view.TerminalNotifier{W: os.Stderr},
		OnChange: onChange,
	})
}

// requireUser fails early with a hint when nobody is signed in.
func requireUser() error {
	if _, ok := apiClient.CurrentUser(); !ok {
		return fmt.Errorf("not signed in to %s: run `notes login` first", apiClient.Server())
	}
	return nil
}

// prompt reads one line from stdin. EOF after some input still counts as a
// line.
func prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := stdin.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
