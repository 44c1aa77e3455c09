// Package cli is the terminal front end: it parses typed commands and draws the board.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jaminalder/codex-othello/internal/domain"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdMove
	CmdPass
	CmdNew
	CmdMoves
	CmdBoard
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Row  int
	Col  int
	Raw  string
}

var ErrUnknownCommand = errors.New("unknown command")

// Parse reads one input line. Moves are "row col" (zero-based, space or comma
// separated) or algebraic "d3" where the letter is the column and the digit the row (1-8).
func Parse(line string) (Command, error) {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return Command{Type: CmdNone}, nil
	}
	fields := strings.Fields(strings.ReplaceAll(strings.ToLower(raw), ",", " "))

	switch fields[0] {
	case "new", "reset":
		return Command{Type: CmdNew, Raw: raw}, nil
	case "pass":
		return Command{Type: CmdPass, Raw: raw}, nil
	case "moves", "hint":
		return Command{Type: CmdMoves, Raw: raw}, nil
	case "board", "show":
		return Command{Type: CmdBoard, Raw: raw}, nil
	case "help", "?":
		return Command{Type: CmdHelp, Raw: raw}, nil
	case "quit", "exit", "q":
		return Command{Type: CmdQuit, Raw: raw}, nil
	}

	if len(fields) == 2 {
		r, err1 := strconv.Atoi(fields[0])
		c, err2 := strconv.Atoi(fields[1])
		if err1 == nil && err2 == nil {
			return Command{Type: CmdMove, Row: r, Col: c, Raw: raw}, nil
		}
	}
	if len(fields) == 1 && len(fields[0]) == 2 {
		f := fields[0]
		if f[0] >= 'a' && f[0] <= 'z' && f[1] >= '0' && f[1] <= '9' {
			return Command{Type: CmdMove, Row: int(f[1]-'1'), Col: int(f[0] - 'a'), Raw: raw}, nil
		}
	}
	return Command{Raw: raw}, fmt.Errorf("%w: %q", ErrUnknownCommand, raw)
}

// Algebraic formats a coordinate as "d3".
func Algebraic(c domain.Coord) string {
	return fmt.Sprintf("%c%d", 'a'+c.Col, c.Row+1)
}

const helpText = `Commands:
  <row> <col>   place a disc, zero-based (e.g. "2 3")
  <a-h><1-8>    place a disc, column letter and row number (e.g. "d3")
  moves         list legal moves for the side to move
  pass          give up the turn when no legal move exists
  board         redraw the board
  new           start a new game
  quit          leave`
