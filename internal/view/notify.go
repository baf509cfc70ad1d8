package view

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
)

type Level int

const (
	Success Level = iota
	Failure
)

func (l Level) String() string {
	if l == Failure {
		return "error"
	}
	return "success"
}

// Notice is a transient message for the user.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

// Notifier displays notices. Implementations must not block.
type Notifier interface {
	Notify(Notice)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// TerminalNotifier prints notices to w, colored by level.
type TerminalNotifier struct {
	W io.Writer
}

var (
	okColor  = color.New(color.FgGreen, color.Bold).SprintFunc()
	errColor = color.New(color.FgRed, color.Bold).SprintFunc()
)

func (t TerminalNotifier) Notify(n Notice) {
	title := okColor(n.Title)
	if n.Level == Failure {
		title = errColor(n.Title)
	}
	fmt.Fprintf(t.W, "%s: %s\n", title, n.Message)
}

// LogNotifier writes notices to a structured logger.
type LogNotifier struct {
	Log *slog.Logger
}

func (l LogNotifier) Notify(n Notice) {
	level := slog.LevelInfo
	if n.Level == Failure {
		level = slog.LevelWarn
	}
	l.Log.Log(context.Background(), level, n.Message, slog.String("title", n.Title), slog.String("level", n.Level.String()))
}
