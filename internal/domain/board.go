package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the number of rows and columns on the board.
const Size = 8

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	BlackDisc
	WhiteDisc
)

// Player is one of the two sides.
type Player uint8

const (
	Black Player = iota + 1
	White
)

// Valid reports whether p is Black or White.
func (p Player) Valid() bool { return p == Black || p == White }

// Opponent returns the other side.
func (p Player) Opponent() Player {
	if p == Black {
		return White
	}
	return Black
}

// Disc returns the cell value holding a disc of p.
func (p Player) Disc() Cell {
	switch p {
	case Black:
		return BlackDisc
	case White:
		return WhiteDisc
	default:
		return Empty
	}
}

func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "None"
	}
}

// Owner returns the player whose disc occupies the cell.
func (c Cell) Owner() (Player, bool) {
	switch c {
	case BlackDisc:
		return Black, true
	case WhiteDisc:
		return White, true
	default:
		return 0, false
	}
}

func (c Cell) symbol() byte {
	switch c {
	case BlackDisc:
		return 'B'
	case WhiteDisc:
		return 'W'
	default:
		return '.'
	}
}

// Coord addresses a cell by zero-based row and column.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Board is a fixed 8x8 grid stored row-major.
type Board [Size][Size]Cell

// ErrInvalidBoard is returned when a board holds an unknown cell value or cannot be parsed.
var ErrInvalidBoard = errors.New("invalid board")

// NewBoard returns the standard starting position.
func NewBoard() Board {
	var b Board
	b[3][3] = WhiteDisc
	b[3][4] = BlackDisc
	b[4][3] = BlackDisc
	b[4][4] = WhiteDisc
	return b
}

// InBounds reports whether (r, c) lies on the board.
func InBounds(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

// Count returns the number of discs owned by p.
func (b *Board) Count(p Player) int {
	disc := p.Disc()
	if disc == Empty {
		return 0
	}
	n := 0
	for r := range b {
		for c := range b[r] {
			if b[r][c] == disc {
				n++
			}
		}
	}
	return n
}

// Full reports whether no empty cell remains.
func (b *Board) Full() bool {
	for r := range b {
		for c := range b[r] {
			if b[r][c] == Empty {
				return false
			}
		}
	}
	return true
}

func (b *Board) validate() error {
	for r := range b {
		for c := range b[r] {
			if b[r][c] > WhiteDisc {
				return fmt.Errorf("%w: cell %v holds %d", ErrInvalidBoard, Coord{r, c}, b[r][c])
			}
		}
	}
	return nil
}

// String renders the board as eight lines of '.', 'B' and 'W'.
func (b Board) String() string {
	var sb strings.Builder
	for r := range b {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range b[r] {
			sb.WriteByte(b[r][c].symbol())
		}
	}
	return sb.String()
}

// ParseBoard reads the format produced by Board.String. Blank lines and spaces are ignored.
func ParseBoard(s string) (Board, error) {
	var b Board
	r := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line == "" {
			continue
		}
		if r == Size {
			return Board{}, fmt.Errorf("%w: more than %d rows", ErrInvalidBoard, Size)
		}
		if len(line) != Size {
			return Board{}, fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoard, r, len(line))
		}
		for c := 0; c < Size; c++ {
			switch line[c] {
			case '.':
				b[r][c] = Empty
			case 'B', 'b':
				b[r][c] = BlackDisc
			case 'W', 'w':
				b[r][c] = WhiteDisc
			default:
				return Board{}, fmt.Errorf("%w: unexpected %q at %v", ErrInvalidBoard, line[c], Coord{r, c})
			}
		}
		r++
	}
	if r != Size {
		return Board{}, fmt.Errorf("%w: got %d rows", ErrInvalidBoard, r)
	}
	return b, nil
}
