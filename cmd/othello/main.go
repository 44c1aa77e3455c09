// Package main runs a two-player hot-seat Othello game in the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"

	"github.com/jaminalder/codex-othello/internal/cli"
	"github.com/jaminalder/codex-othello/internal/domain"
)

func main() {
	var (
		noColor = flag.Bool("no-color", false, "disable colored output")
		history = flag.String("history", ".othello_history", "readline history file (empty disables)")
	)
	flag.Parse()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "othello > ",
		HistoryFile:     *history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	session := cli.NewSession(domain.New(), cli.NewRenderer(rl.Stdout(), !*noColor))
	session.Start()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return
			}
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "read: %v\n", err)
			return
		}
		if session.Handle(line) {
			return
		}
	}
}
