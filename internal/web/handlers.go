package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jaminalder/codex-othello/internal/app"
	"github.com/jaminalder/codex-othello/internal/domain"
)

var validate = validator.New()

// moveForm is the bound form of a play request.
type moveForm struct {
	Row int `validate:"min=0,max=7"`
	Col int `validate:"min=0,max=7"`
}

func parseMoveForm(r *http.Request) (moveForm, error) {
	if err := r.ParseForm(); err != nil {
		return moveForm{}, err
	}
	var f moveForm
	var err error
	if f.Row, err = strconv.Atoi(strings.TrimSpace(r.Form.Get("r"))); err != nil {
		return moveForm{}, fmt.Errorf("row: %w", err)
	}
	if f.Col, err = strconv.Atoi(strings.TrimSpace(r.Form.Get("c"))); err != nil {
		return moveForm{}, fmt.Errorf("col: %w", err)
	}
	if err := validate.Struct(f); err != nil {
		return moveForm{}, fmt.Errorf("%w: %v", domain.ErrOutOfBounds, err)
	}
	return f, nil
}

type handlers struct {
	svc       *app.Service
	tpl       *templates
	heartbeat time.Duration
}

func (h *handlers) renderBoard(gs app.GameState, errMsg string) []byte {
	return renderTemplate(h.tpl.board, "", newBoardView(gs, errMsg))
}

func (h *handlers) writeBoard(w http.ResponseWriter, gs app.GameState, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(gs, errMsg))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.index, "base", nil))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.CreateGame()
	if err != nil {
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.game, "base", newBoardView(*gs, "")))
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	f, err := parseMoveForm(r)
	var gs *app.GameState
	if err == nil {
		gs, err = h.svc.Play(id, f.Row, f.Col)
	}
	h.respond(w, r, id, gs, err)
}

func (h *handlers) pass(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gs, err := h.svc.Pass(id)
	h.respond(w, r, id, gs, err)
}

func (h *handlers) newGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gs, err := h.svc.NewGame(id)
	h.respond(w, r, id, gs, err)
}

// respond renders the board fragment, with a refusal message when err is set.
func (h *handlers) respond(w http.ResponseWriter, r *http.Request, id string, gs *app.GameState, err error) {
	if errors.Is(err, app.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if gs == nil {
		if g, ok := h.svc.Get(id); ok {
			gs = g
		}
	}
	if gs == nil {
		http.NotFound(w, r)
		return
	}
	var errMsg string
	if err != nil {
		errMsg = errorMessage(err)
	}
	h.writeBoard(w, *gs, errMsg)
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrOutOfBounds):
		return "Out of bounds"
	case errors.Is(err, domain.ErrIllegalMove):
		return "Illegal move"
	case errors.Is(err, domain.ErrGameOver):
		return "Game is over"
	case errors.Is(err, domain.ErrMustMove):
		return "You have a legal move"
	default:
		return "Invalid move"
	}
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "board", b)
			flusher.Flush()
		}
	}
}

// writeEvent frames a multi-line payload as one SSE event.
func writeEvent(w io.Writer, event string, data []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range strings.Split(string(data), "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}
