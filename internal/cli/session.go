package cli

import (
	"errors"
	"strings"

	"github.com/jaminalder/codex-othello/internal/domain"
)

// Session runs one hot-seat game in a terminal. It is the engine's only owner.
type Session struct {
	engine *domain.Engine
	view   *Renderer
}

func NewSession(engine *domain.Engine, view *Renderer) *Session {
	return &Session{engine: engine, view: view}
}

// Start draws the opening position.
func (s *Session) Start() {
	s.view.Println("Othello. Type 'help' for commands.")
	s.draw()
}

// Handle executes one input line and reports whether the session should end.
func (s *Session) Handle(line string) (quit bool) {
	cmd, err := Parse(line)
	if err != nil {
		s.view.Error("Unknown command, type 'help'")
		return false
	}
	switch cmd.Type {
	case CmdNone:
	case CmdQuit:
		return true
	case CmdHelp:
		s.view.Println(helpText)
	case CmdBoard:
		s.draw()
	case CmdNew:
		s.engine.NewGame()
		s.draw()
	case CmdMoves:
		moves := s.engine.LegalMoves(s.engine.CurrentPlayer())
		if len(moves) == 0 {
			s.view.Println("No legal moves")
			break
		}
		names := make([]string, len(moves))
		for i, m := range moves {
			names[i] = Algebraic(m)
		}
		s.view.Println("Legal moves:", strings.Join(names, " "))
	case CmdPass:
		if _, err := s.engine.Pass(); err != nil {
			s.view.Error(refusal(err))
			break
		}
		s.draw()
	case CmdMove:
		out, err := s.engine.Play(cmd.Row, cmd.Col)
		if err != nil {
			s.view.Error(refusal(err))
			break
		}
		s.view.Println(out.Player.String(), "plays", Algebraic(out.Move)+",", "flips", len(out.Flipped))
		s.draw()
	}
	return false
}

func (s *Session) draw() {
	snap := s.engine.Snapshot()
	var legal []domain.Coord
	if snap.State == domain.InProgress {
		legal = s.engine.LegalMoves(snap.Turn)
	}
	s.view.Board(snap, legal)
}

func refusal(err error) string {
	switch {
	case errors.Is(err, domain.ErrOutOfBounds):
		return "Out of bounds"
	case errors.Is(err, domain.ErrIllegalMove):
		return "Illegal move"
	case errors.Is(err, domain.ErrGameOver):
		return "Game is over, type 'new' to play again"
	case errors.Is(err, domain.ErrMustMove):
		return "You have a legal move, pass is not allowed"
	default:
		return err.Error()
	}
}
