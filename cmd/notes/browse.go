package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notes/internal/note"
	"notes/internal/ui"
	"notes/internal/view"
)

type browseAction int

const (
	actSearch browseAction = iota
	actNext
	actPrev
	actGoto
	actReload
	actQuit
	actHelp
)

type browseInput struct {
	action browseAction
	text   string
	page   int
}

// parseBrowseLine maps a line typed in browse mode to an action. Anything not
// starting with ':' is search text, including the empty line.
func parseBrowseLine(line string) (browseInput, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") {
		return browseInput{action: actSearch, text: line}, nil
	}

	fields := strings.Fields(trimmed[1:])
	if len(fields) == 0 {
		return browseInput{}, errors.New("empty command, try :h")
	}

	switch fields[0] {
	case "n", "next":
		return browseInput{action: actNext}, nil
	case "p", "prev":
		return browseInput{action: actPrev}, nil
	case "r", "reload":
		return browseInput{action: actReload}, nil
	case "q", "quit":
		return browseInput{action: actQuit}, nil
	case "h", "help":
		return browseInput{action: actHelp}, nil
	case "g", "goto":
		if len(fields) != 2 {
			return browseInput{}, errors.New("usage: :g <page>")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return browseInput{}, fmt.Errorf("not a page number: %q", fields[1])
		}
		return browseInput{action: actGoto, page: n}, nil
	}
	return browseInput{}, fmt.Errorf("unknown command %q, try :h", fields[0])
}

const browseHelp = `Type to search; the list refreshes once you pause.
  :n  next page      :p  previous page
  :g N  go to page   :r  reload
  :q  quit
`

// renderer prints a snapshot once per distinct settled state.
type renderer struct {
	w    io.Writer
	mu   sync.Mutex
	last string
}

func (r *renderer) render(s view.Snapshot) {
	if s.Loading || !s.Loaded {
		return
	}
	key := pageKey(s)

	r.mu.Lock()
	defer r.mu.Unlock()
	if key == r.last {
		return
	}
	r.last = key
	fmt.Fprint(r.w, "\n"+ui.NotePage(s))
}

func (r *renderer) force(s view.Snapshot) {
	r.mu.Lock()
	r.last = ""
	r.mu.Unlock()
	r.render(s)
}

func pageKey(s view.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%q|%d|%d|%d", s.CommittedSearch, s.Page, s.TotalPages, s.TotalCount)
	for _, n := range s.Notes {
		sb.WriteString("|")
		sb.WriteString(n.ID.String())
		sb.WriteString(n.UpdatedAt.String())
	}
	return sb.String()
}

// readLines feeds stdin lines to a channel so the loop can also watch ctx.
func readLines() (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		for {
			line, err := stdin.ReadString('\n')
			if line != "" {
				lines <- line
			}
			if err != nil {
				errc <- err
				return
			}
		}
	}()
	return lines, errc
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Search and page through notes interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt("page-size")

		if err := requireUser(); err != nil {
			return err
		}

		r := &renderer{w: stdout}
		s := newStore(size, r.render)
		defer s.Close()

		ctx := cmd.Context()
		fmt.Fprint(stdout, browseHelp)
		if err := s.Load(ctx); err != nil && !errors.Is(err, view.ErrUnauthenticated) {
			return err
		}

		lines, readErr := readLines()
		for {
			var line string
			select {
			case <-ctx.Done():
				return nil
			case err := <-readErr:
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			case line = <-lines:
			}

			in, perr := parseBrowseLine(strings.TrimRight(line, "\r\n"))
			if perr != nil {
				fmt.Fprintln(stdout, color.YellowString(perr.Error()))
				continue
			}

			// load failures are already shown by the notifier
			switch in.action {
			case actQuit:
				return nil
			case actHelp:
				fmt.Fprint(stdout, browseHelp)
			case actSearch:
				s.SetSearch(in.text)
			case actNext:
				_ = s.NextPage(ctx)
			case actPrev:
				_ = s.PrevPage(ctx)
			case actGoto:
				_ = s.GoToPage(ctx, in.page)
			case actReload:
				if err := s.Load(ctx); err == nil {
					r.force(s.Snapshot())
				}
			}
		}
	},
}

func init() {
	browseCmd.Flags().IntP("page-size", "n", note.DefaultPageSize, "notes per page (max 100)")
	rootCmd.AddCommand(browseCmd)
}

