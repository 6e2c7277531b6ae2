// Package cli is the command-line entry point: the interactive transcript
// fetch plus the languages, history and serve subcommands. It is the only
// package that prints to the user.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/anatolykoptev/go_transcript/internal/history"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

// App carries the collaborators shared by every command.
type App struct {
	YouTube transcript.Service
	History history.Store // nil = history.Nop

	In  io.Reader // nil = os.Stdin
	Out io.Writer // nil = os.Stdout

	OutputDir        string
	DefaultLanguages []string // answer used instead of prompting, when set

	Version string
	MCPPort string
}

func (a *App) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

func (a *App) in() io.Reader {
	if a.In != nil {
		return a.In
	}
	return os.Stdin
}

func (a *App) store() history.Store {
	if a.History != nil {
		return a.History
	}
	return history.Nop{}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out(), args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out(), format, args...)
}
