package domain

import (
	"errors"
	"fmt"
)

// Errors returned by domain operations.
var (
	ErrOutOfBounds   = errors.New("out of bounds")
	ErrIllegalMove   = errors.New("illegal move")
	ErrGameOver      = errors.New("game already over")
	ErrMustMove      = errors.New("a legal move is available")
	ErrInvalidPlayer = errors.New("invalid player")
)

// State is the phase of a game.
type State uint8

const (
	InProgress State = iota
	GameOver
)

func (s State) String() string {
	if s == GameOver {
		return "game over"
	}
	return "in progress"
}

// Result is the outcome of a finished game.
type Result uint8

const (
	NoResult Result = iota
	BlackWins
	WhiteWins
	Draw
)

func (r Result) String() string {
	switch r {
	case BlackWins:
		return "Winner: Black"
	case WhiteWins:
		return "Winner: White"
	case Draw:
		return "Draw"
	default:
		return ""
	}
}

// directions lists the eight compass steps as (row, col) deltas.
var directions = [8][2]int{
	{-1, 0}, {1, 0}, {0, 1}, {0, -1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// MoveOutcome describes a successfully applied move.
type MoveOutcome struct {
	Move    Coord
	Player  Player
	Flipped []Coord
	Black   int
	White   int
}

// Score returns p's disc count after the move.
func (o MoveOutcome) Score(p Player) int {
	switch p {
	case Black:
		return o.Black
	case White:
		return o.White
	default:
		return 0
	}
}

// Snapshot is a read-only copy of the engine state for renderers.
type Snapshot struct {
	Board   Board
	Turn    Player
	Black   int
	White   int
	State   State
	Result  Result
	CanMove bool
}

// Engine holds one game of Othello and enforces its rules.
// It performs no locking; callers sharing it across goroutines must serialize access.
type Engine struct {
	board Board
	turn  Player
	black int
	white int
}

// New returns an engine on the starting position with Black to move.
func New() *Engine {
	e := &Engine{}
	e.Reset()
	return e
}

// NewFromBoard returns an engine on an arbitrary position.
func NewFromBoard(b Board, toMove Player) (*Engine, error) {
	if !toMove.Valid() {
		return nil, ErrInvalidPlayer
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	e := &Engine{board: b, turn: toMove}
	e.recount()
	return e, nil
}

// Reset restores the starting position with Black to move.
func (e *Engine) Reset() {
	e.board = NewBoard()
	e.turn = Black
	e.recount()
}

// NewGame is an alias for Reset.
func (e *Engine) NewGame() { e.Reset() }

// IsLegalMove reports whether p may place a disc at (r, c).
func (e *Engine) IsLegalMove(r, c int, p Player) bool {
	return IsLegalMove(&e.board, r, c, p)
}

// ApplyMove places p's disc at (r, c) and flips every bracketed run.
// The turn is not advanced. A rejected move leaves the engine unchanged.
func (e *Engine) ApplyMove(r, c int, p Player) (MoveOutcome, error) {
	if e.IsGameOver() {
		return MoveOutcome{}, ErrGameOver
	}
	if !InBounds(r, c) {
		return MoveOutcome{}, ErrOutOfBounds
	}
	if !e.IsLegalMove(r, c, p) {
		return MoveOutcome{}, fmt.Errorf("%w: %v for %v", ErrIllegalMove, Coord{r, c}, p)
	}

	var flipped []Coord
	for _, d := range directions {
		n := bracketed(&e.board, r, c, p, d[0], d[1])
		for i := 1; i <= n; i++ {
			fr, fc := r+i*d[0], c+i*d[1]
			e.board[fr][fc] = p.Disc()
			flipped = append(flipped, Coord{fr, fc})
		}
	}
	if len(flipped) == 0 {
		panic("domain: legal move flipped nothing")
	}
	e.board[r][c] = p.Disc()
	e.recount()

	return MoveOutcome{
		Move:    Coord{r, c},
		Player:  p,
		Flipped: flipped,
		Black:   e.black,
		White:   e.white,
	}, nil
}

// AdvanceTurn hands the move to the other player and returns it.
func (e *Engine) AdvanceTurn() Player {
	e.turn = e.turn.Opponent()
	return e.turn
}

// Play applies a move for the player to move and advances the turn.
func (e *Engine) Play(r, c int) (MoveOutcome, error) {
	out, err := e.ApplyMove(r, c, e.turn)
	if err != nil {
		return out, err
	}
	e.AdvanceTurn()
	return out, nil
}

// Pass advances the turn when the player to move has no legal move.
func (e *Engine) Pass() (Player, error) {
	if e.IsGameOver() {
		return e.turn, ErrGameOver
	}
	if e.HasLegalMove(e.turn) {
		return e.turn, ErrMustMove
	}
	return e.AdvanceTurn(), nil
}

// Cell returns the cell at (r, c).
func (e *Engine) Cell(r, c int) (Cell, error) {
	if !InBounds(r, c) {
		return Empty, ErrOutOfBounds
	}
	return e.board[r][c], nil
}

// Score returns p's current disc count.
func (e *Engine) Score(p Player) int {
	switch p {
	case Black:
		return e.black
	case White:
		return e.white
	default:
		return 0
	}
}

// CurrentPlayer returns the side to move.
func (e *Engine) CurrentPlayer() Player { return e.turn }

// Board returns a copy of the board.
func (e *Engine) Board() Board { return e.board }

// IsGameOver reports whether the board is full.
func (e *Engine) IsGameOver() bool { return IsGameOver(&e.board) }

// State returns InProgress or GameOver.
func (e *Engine) State() State {
	if e.IsGameOver() {
		return GameOver
	}
	return InProgress
}

// Winner returns the result of a finished game, or NoResult while in progress.
func (e *Engine) Winner() Result {
	if !e.IsGameOver() {
		return NoResult
	}
	return Winner(&e.board)
}

// LegalMoves lists p's legal moves in row-major order.
func (e *Engine) LegalMoves(p Player) []Coord {
	var out []Coord
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if e.IsLegalMove(r, c, p) {
				out = append(out, Coord{r, c})
			}
		}
	}
	return out
}

// HasLegalMove reports whether p has at least one legal move.
func (e *Engine) HasLegalMove(p Player) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if e.IsLegalMove(r, c, p) {
				return true
			}
		}
	}
	return false
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Board:   e.board,
		Turn:    e.turn,
		Black:   e.black,
		White:   e.white,
		State:   e.State(),
		Result:  e.Winner(),
		CanMove: !e.IsGameOver() && e.HasLegalMove(e.turn),
	}
}

func (e *Engine) recount() {
	e.black = e.board.Count(Black)
	e.white = e.board.Count(White)
}

// IsLegalMove reports whether p may place a disc at (r, c) on b.
func IsLegalMove(b *Board, r, c int, p Player) bool {
	if !p.Valid() || !InBounds(r, c) || b[r][c] != Empty {
		return false
	}
	for _, d := range directions {
		if bracketed(b, r, c, p, d[0], d[1]) > 0 {
			return true
		}
	}
	return false
}

// IsGameOver reports whether every cell of b is occupied.
func IsGameOver(b *Board) bool { return b.Full() }

// Winner compares disc counts on b.
func Winner(b *Board) Result {
	black, white := b.Count(Black), b.Count(White)
	switch {
	case black > white:
		return BlackWins
	case white > black:
		return WhiteWins
	default:
		return Draw
	}
}

// bracketed returns the length of the opponent run starting next to (r, c) in
// direction (dr, dc) that is closed by a disc of p, or 0 if the run is open.
func bracketed(b *Board, r, c int, p Player, dr, dc int) int {
	own, opp := p.Disc(), p.Opponent().Disc()
	n := 0
	for r, c = r+dr, c+dc; InBounds(r, c); r, c = r+dr, c+dc {
		switch b[r][c] {
		case opp:
			n++
		case own:
			return n
		default:
			return 0
		}
	}
	return 0
}
