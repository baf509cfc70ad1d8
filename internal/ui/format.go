// Package ui formats notes for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"notes/internal/auth"
	"notes/internal/note"
	"notes/internal/view"
)

const timeLayout = "2006-01-02 15:04"

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

// previewLen is how much content a list item shows.
const previewLen = 72

func NoteListItem(n note.Note) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "  %s\n", bold(n.Title))
	if p := preview(n.Content); p != "" {
		fmt.Fprintf(&sb, "    %s\n", p)
	}
	fmt.Fprintf(&sb, "    %s %s  %s %s\n",
		faint("ID:"), faint(n.ID.String()),
		faint("Updated:"), faint(n.UpdatedAt.Local().Format(timeLayout)))
	return sb.String()
}

func preview(content string) string {
	line := strings.TrimSpace(content)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i]) + " ..."
	}
	r := []rune(line)
	if len(r) > previewLen {
		return string(r[:previewLen-3]) + "..."
	}
	return line
}

func NoteDetail(n note.Note) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", bold(n.Title))
	fmt.Fprintf(&sb, "%s %s\n", faint("ID:"), faint(n.ID.String()))
	fmt.Fprintf(&sb, "%s %s\n", faint("Created:"), faint(n.CreatedAt.Local().Format(timeLayout)))
	fmt.Fprintf(&sb, "%s %s\n", faint("Updated:"), faint(n.UpdatedAt.Local().Format(timeLayout)))
	if n.Content != "" {
		fmt.Fprintf(&sb, "\n%s\n", n.Content)
	}
	return sb.String()
}

// PageHeader summarizes the query a snapshot shows.
func PageHeader(s view.Snapshot) string {
	search := faint("all notes")
	if s.CommittedSearch != "" {
		search = cyan(fmt.Sprintf("%q", s.CommittedSearch))
	}
	return fmt.Sprintf("%s  %s %d/%d  %s\n",
		search, faint("page"), s.Page, s.TotalPages, faint(countLabel(s.TotalCount)))
}

func countLabel(n int64) string {
	if n == 1 {
		return "1 note"
	}
	return fmt.Sprintf("%d notes", n)
}

// NotePage renders a snapshot's header and list.
func NotePage(s view.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(PageHeader(s))
	if len(s.Notes) == 0 {
		if s.CommittedSearch != "" {
			sb.WriteString("  No notes match your search.\n")
		} else {
			sb.WriteString("  No notes yet.\n")
		}
		return sb.String()
	}
	for _, n := range s.Notes {
		sb.WriteString(NoteListItem(n))
	}
	return sb.String()
}

func Identity(id auth.Identity) string {
	name := id.Name
	if name == "" {
		name = id.Email
	}
	return fmt.Sprintf("%s %s\n%s %s\n", green("Signed in as"), bold(name), faint("ID:"), faint(id.ID.String()))
}
