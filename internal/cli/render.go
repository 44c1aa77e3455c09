package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jaminalder/codex-othello/internal/domain"
)

// Renderer draws snapshots to a terminal.
type Renderer struct {
	out    io.Writer
	black  *color.Color
	white  *color.Color
	empty  *color.Color
	legal  *color.Color
	status *color.Color
	errc   *color.Color
}

// NewRenderer returns a renderer writing to out. With colors off it emits plain text.
func NewRenderer(out io.Writer, colors bool) *Renderer {
	r := &Renderer{
		out:    out,
		black:  color.New(color.FgBlack, color.BgGreen, color.Bold),
		white:  color.New(color.FgHiWhite, color.BgGreen, color.Bold),
		empty:  color.New(color.FgGreen, color.BgGreen),
		legal:  color.New(color.FgHiYellow, color.BgGreen),
		status: color.New(color.FgCyan),
		errc:   color.New(color.FgRed),
	}
	for _, c := range []*color.Color{r.black, r.white, r.empty, r.legal, r.status, r.errc} {
		if colors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Board draws the grid with coordinates, marking legal moves with '*'.
func (r *Renderer) Board(snap domain.Snapshot, legal []domain.Coord) {
	marks := make(map[domain.Coord]bool, len(legal))
	for _, m := range legal {
		marks[m] = true
	}
	var sb strings.Builder
	sb.WriteString("    a b c d e f g h\n")
	for row := 0; row < domain.Size; row++ {
		fmt.Fprintf(&sb, " %d %d", row, row+1)
		for col := 0; col < domain.Size; col++ {
			sb.WriteByte(' ')
			switch snap.Board[row][col] {
			case domain.BlackDisc:
				sb.WriteString(r.black.Sprint("B"))
			case domain.WhiteDisc:
				sb.WriteString(r.white.Sprint("W"))
			default:
				if marks[domain.Coord{Row: row, Col: col}] {
					sb.WriteString(r.legal.Sprint("*"))
				} else {
					sb.WriteString(r.empty.Sprint("."))
				}
			}
		}
		sb.WriteByte('\n')
	}
	_, _ = io.WriteString(r.out, sb.String())
	r.Status(snap)
}

// Status prints the scores and whose turn it is, or the final result.
func (r *Renderer) Status(snap domain.Snapshot) {
	_, _ = r.status.Fprintf(r.out, "Black: %d  White: %d\n", snap.Black, snap.White)
	if snap.State == domain.GameOver {
		score := snap.Black
		if snap.Result == domain.WhiteWins {
			score = snap.White
		}
		_, _ = r.status.Fprintf(r.out, "Game Over! %s (%d)\n", snap.Result, score)
		return
	}
	if snap.CanMove {
		_, _ = r.status.Fprintf(r.out, "%s Player's turn\n", snap.Turn)
	} else {
		_, _ = r.status.Fprintf(r.out, "%s Player's turn (no legal move, type 'pass')\n", snap.Turn)
	}
}

// Error prints a refusal.
func (r *Renderer) Error(msg string) {
	_, _ = r.errc.Fprintln(r.out, msg)
}

// Println prints plain text.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}
