package domain

import (
	"errors"
	"math/rand"
	"testing"
)

// helper to apply a sequence of moves for whoever is to move
func playMoves(t *testing.T, e *Engine, moves [][2]int) {
	t.Helper()
	for i, m := range moves {
		if _, err := e.Play(m[0], m[1]); err != nil {
			t.Fatalf("move %d (%v) failed: %v", i, m, err)
		}
	}
}

func mustParse(t *testing.T, s string) Board {
	t.Helper()
	b, err := ParseBoard(s)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	return b
}

func checkScores(t *testing.T, e *Engine) {
	t.Helper()
	b := e.Board()
	if e.Score(Black) != b.Count(Black) || e.Score(White) != b.Count(White) {
		t.Fatalf("cached scores %d/%d differ from recount %d/%d",
			e.Score(Black), e.Score(White), b.Count(Black), b.Count(White))
	}
}

func TestNewGameInitialState(t *testing.T) {
	e := New()
	if e.CurrentPlayer() != Black {
		t.Fatalf("expected Black to move, got %v", e.CurrentPlayer())
	}
	want := map[Coord]Cell{
		{3, 3}: WhiteDisc, {3, 4}: BlackDisc,
		{4, 3}: BlackDisc, {4, 4}: WhiteDisc,
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			got, err := e.Cell(r, c)
			if err != nil {
				t.Fatalf("Cell(%d,%d): %v", r, c, err)
			}
			if got != want[Coord{r, c}] {
				t.Fatalf("cell (%d,%d) = %v, want %v", r, c, got, want[Coord{r, c}])
			}
		}
	}
	if e.Score(Black) != 2 || e.Score(White) != 2 {
		t.Fatalf("expected 2/2, got %d/%d", e.Score(Black), e.Score(White))
	}
	if e.IsGameOver() || e.State() != InProgress || e.Winner() != NoResult {
		t.Fatalf("new game should be in progress")
	}
}

func TestLegalMovesFromStart(t *testing.T) {
	e := New()
	got := e.LegalMoves(Black)
	want := []Coord{{2, 3}, {3, 2}, {4, 5}, {5, 4}}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if !e.HasLegalMove(White) {
		t.Fatalf("White should have moves on the starting board")
	}
}

func TestBlackOpeningFlipsOneDisc(t *testing.T) {
	e := New()
	if !e.IsLegalMove(2, 3, Black) {
		t.Fatalf("(2,3) should be legal for Black")
	}
	out, err := e.ApplyMove(2, 3, Black)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if len(out.Flipped) != 1 || out.Flipped[0] != (Coord{3, 3}) {
		t.Fatalf("expected (3,3) flipped, got %v", out.Flipped)
	}
	if c, _ := e.Cell(3, 3); c != BlackDisc {
		t.Fatalf("(3,3) should be Black, got %v", c)
	}
	if out.Black != 4 || out.White != 1 || e.Score(Black) != 4 || e.Score(White) != 1 {
		t.Fatalf("expected 4/1, got outcome %d/%d engine %d/%d", out.Black, out.White, e.Score(Black), e.Score(White))
	}
	// ApplyMove does not advance the turn.
	if e.CurrentPlayer() != Black {
		t.Fatalf("turn should still be Black, got %v", e.CurrentPlayer())
	}
	if e.AdvanceTurn() != White || e.CurrentPlayer() != White {
		t.Fatalf("AdvanceTurn should hand the move to White")
	}
}

func TestIllegalCornerLeavesStateUnchanged(t *testing.T) {
	e := New()
	before := e.Snapshot()
	if e.IsLegalMove(0, 0, White) {
		t.Fatalf("(0,0) should be illegal")
	}
	if _, err := e.ApplyMove(0, 0, White); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	if e.Snapshot() != before {
		t.Fatalf("rejected move mutated state")
	}
	if e.Score(Black) != 2 || e.Score(White) != 2 {
		t.Fatalf("scores changed: %d/%d", e.Score(Black), e.Score(White))
	}
}

func TestSameMoveTwiceIsIllegal(t *testing.T) {
	e := New()
	if _, err := e.ApplyMove(2, 3, Black); err != nil {
		t.Fatalf("first move failed: %v", err)
	}
	before := e.Board()
	if _, err := e.ApplyMove(2, 3, Black); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove on occupied cell, got %v", err)
	}
	if e.Board() != before {
		t.Fatalf("board changed on rejected move")
	}
}

func TestOutOfBounds(t *testing.T) {
	e := New()
	cases := [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}}
	for _, m := range cases {
		if e.IsLegalMove(m[0], m[1], Black) {
			t.Fatalf("IsLegalMove(%v) should be false", m)
		}
		if _, err := e.ApplyMove(m[0], m[1], Black); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("expected ErrOutOfBounds for %v, got %v", m, err)
		}
		if _, err := e.Cell(m[0], m[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("expected ErrOutOfBounds from Cell for %v, got %v", m, err)
		}
	}
}

func TestWrongPlayerIsIllegal(t *testing.T) {
	e := New()
	// (2,3) brackets for Black only.
	if e.IsLegalMove(2, 3, White) {
		t.Fatalf("(2,3) should be illegal for White")
	}
	if e.IsLegalMove(2, 3, Player(0)) {
		t.Fatalf("unknown player should never have legal moves")
	}
	if _, err := e.ApplyMove(2, 3, Player(7)); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
}

func TestRunMustBeClosedByOwnDisc(t *testing.T) {
	b := mustParse(t, `
		........
		........
		........
		...WWW..
		........
		........
		........
		........`)
	e, err := NewFromBoard(b, Black)
	if err != nil {
		t.Fatalf("NewFromBoard: %v", err)
	}
	// No black disc anywhere: nothing can be bracketed.
	if e.HasLegalMove(Black) {
		t.Fatalf("Black should have no legal move, got %v", e.LegalMoves(Black))
	}
	if e.IsLegalMove(3, 2, Black) {
		t.Fatalf("open run must not be legal")
	}
}

func TestMultiDirectionFlip(t *testing.T) {
	b := mustParse(t, `
		B..B..B.
		.W.W.W..
		..WWW...
		BWW.WWB.
		..WWW...
		.W.W.W..
		B..B..B.
		........`)
	e, err := NewFromBoard(b, Black)
	if err != nil {
		t.Fatalf("NewFromBoard: %v", err)
	}
	out, err := e.ApplyMove(3, 3, Black)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if len(out.Flipped) != 16 {
		t.Fatalf("expected 16 flips, got %d: %v", len(out.Flipped), out.Flipped)
	}
	if e.Score(White) != 0 {
		t.Fatalf("all white discs should flip, %d remain", e.Score(White))
	}
	checkScores(t, e)
}

func TestFlipStopsAtFirstOwnDisc(t *testing.T) {
	b := mustParse(t, `
		........
		........
		........
		.WBWB...
		........
		........
		........
		........`)
	e, _ := NewFromBoard(b, Black)
	out, err := e.ApplyMove(3, 0, Black)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if len(out.Flipped) != 1 || out.Flipped[0] != (Coord{3, 1}) {
		t.Fatalf("expected only (3,1) flipped, got %v", out.Flipped)
	}
	if c, _ := e.Cell(3, 3); c != WhiteDisc {
		t.Fatalf("(3,3) lies beyond the closing disc and must stay White")
	}
}

func TestResetIsCanonicalAndIdempotent(t *testing.T) {
	e := New()
	canonical := e.Snapshot()
	playMoves(t, e, [][2]int{{2, 3}, {2, 2}, {2, 1}})
	e.Reset()
	if e.Snapshot() != canonical {
		t.Fatalf("reset did not restore canonical state")
	}
	e.NewGame()
	e.Reset()
	if e.Snapshot() != canonical || e.Board() != NewBoard() {
		t.Fatalf("repeated reset differs from canonical state")
	}
}

func TestGameOverOnlyWhenFull(t *testing.T) {
	full := mustParse(t, `
		BBBBBBBB
		BBBBBBBB
		BBBBBBBB
		BBBBBBBB
		WWWWWWWW
		WWWWWWWW
		WWWWWWWW
		WWWWWWWB`)
	if !IsGameOver(&full) {
		t.Fatalf("full board should be over")
	}
	if Winner(&full) != BlackWins {
		t.Fatalf("expected Black win, got %v", Winner(&full))
	}
	nearly := full
	nearly[7][7] = Empty
	if IsGameOver(&nearly) {
		t.Fatalf("board with an empty cell must not be over")
	}
	// No legal move for either side does not end the game.
	lonely := mustParse(t, `
		B.......
		........
		........
		........
		........
		........
		........
		........`)
	e, _ := NewFromBoard(lonely, White)
	if e.HasLegalMove(White) || e.HasLegalMove(Black) {
		t.Fatalf("expected a stalled position")
	}
	if e.IsGameOver() {
		t.Fatalf("stalled but non-full board must not be over")
	}
}

func TestWinnerDraw(t *testing.T) {
	b := mustParse(t, `
		BBBBBBBB
		BBBBBBBB
		BBBBBBBB
		BBBBBBBB
		WWWWWWWW
		WWWWWWWW
		WWWWWWWW
		WWWWWWWW`)
	if Winner(&b) != Draw {
		t.Fatalf("expected draw, got %v", Winner(&b))
	}
	for r := range b {
		for c := range b[r] {
			b[r][c] = WhiteDisc
		}
	}
	if Winner(&b) != WhiteWins {
		t.Fatalf("expected White win")
	}
}

func TestLastMoveEndsGameAndBlocksFurtherMoves(t *testing.T) {
	b := mustParse(t, `
		BBBBBBBB
		BBBBBBBB
		BBBBBBBB
		BBBBBBBB
		WWWWWWWW
		WWWWWWWW
		WWWWWWWW
		WWWWWWB.`)
	e, _ := NewFromBoard(b, White)
	if e.IsGameOver() {
		t.Fatalf("should not be over yet")
	}
	out, err := e.Play(7, 7)
	if err != nil {
		t.Fatalf("final move failed: %v", err)
	}
	if len(out.Flipped) != 1 {
		t.Fatalf("expected one flip, got %v", out.Flipped)
	}
	if !e.IsGameOver() || e.State() != GameOver {
		t.Fatalf("expected game over after filling the board")
	}
	if e.Winner() != Draw {
		t.Fatalf("expected draw at 32/32, got %v (%d/%d)", e.Winner(), e.Score(Black), e.Score(White))
	}
	if _, err := e.ApplyMove(0, 0, Black); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if _, err := e.Pass(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver on pass, got %v", err)
	}
	e.Reset()
	if e.IsGameOver() || e.CurrentPlayer() != Black {
		t.Fatalf("reset should clear the game over state")
	}
}

func TestPass(t *testing.T) {
	e := New()
	if _, err := e.Pass(); !errors.Is(err, ErrMustMove) {
		t.Fatalf("expected ErrMustMove, got %v", err)
	}
	lonely := mustParse(t, `
		B.......
		........
		........
		........
		........
		........
		........
		......W.`)
	e, _ = NewFromBoard(lonely, Black)
	next, err := e.Pass()
	if err != nil || next != White {
		t.Fatalf("expected pass to White, got %v err=%v", next, err)
	}
}

func TestNewFromBoardRejectsBadInput(t *testing.T) {
	if _, err := NewFromBoard(NewBoard(), Player(3)); !errors.Is(err, ErrInvalidPlayer) {
		t.Fatalf("expected ErrInvalidPlayer, got %v", err)
	}
	b := NewBoard()
	b[0][0] = Cell(9)
	if _, err := NewFromBoard(b, Black); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("expected ErrInvalidBoard, got %v", err)
	}
}

// Random playouts check the rules that must hold after every move.
func TestRandomPlayoutInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for game := 0; game < 200; game++ {
		e := New()
		for steps := 0; steps < 200 && !e.IsGameOver(); steps++ {
			p := e.CurrentPlayer()
			moves := e.LegalMoves(p)
			if len(moves) == 0 {
				if !e.HasLegalMove(p.Opponent()) {
					break
				}
				if _, err := e.Pass(); err != nil {
					t.Fatalf("pass: %v", err)
				}
				continue
			}
			m := moves[rng.Intn(len(moves))]
			own, total := e.Score(p), e.Score(Black)+e.Score(White)
			out, err := e.Play(m.Row, m.Col)
			if err != nil {
				t.Fatalf("legal move %v rejected: %v", m, err)
			}
			if len(out.Flipped) == 0 {
				t.Fatalf("legal move %v flipped nothing", m)
			}
			if got := e.Score(p); got != own+1+len(out.Flipped) {
				t.Fatalf("mover score %d, want %d", got, own+1+len(out.Flipped))
			}
			if got := e.Score(Black) + e.Score(White); got != total+1 {
				t.Fatalf("total discs %d, want %d", got, total+1)
			}
			if out.Score(Black) != e.Score(Black) || out.Score(White) != e.Score(White) {
				t.Fatalf("outcome scores disagree with engine")
			}
			checkScores(t, e)
		}
		if e.IsGameOver() && e.Winner() == NoResult {
			t.Fatalf("finished game must have a result")
		}
	}
}
