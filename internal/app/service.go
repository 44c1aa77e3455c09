package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jaminalder/codex-othello/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound = errors.New("game not found")
)

// GameState is a snapshot of one game as seen by renderers.
type GameState struct {
	ID      string
	Label   string
	Game    domain.Snapshot
	Legal   []domain.Coord
	Last    *domain.MoveOutcome
	Created time.Time
	Updated time.Time
}

// game is the service-owned record; the engine never leaves the lock.
type game struct {
	id      string
	label   string
	engine  *domain.Engine
	last    *domain.MoveOutcome
	created time.Time
	updated time.Time
}

func (g *game) state() GameState {
	snap := g.engine.Snapshot()
	gs := GameState{
		ID:      g.id,
		Label:   g.label,
		Game:    snap,
		Created: g.created,
		Updated: g.updated,
	}
	if snap.State == domain.InProgress {
		gs.Legal = g.engine.LegalMoves(snap.Turn)
	}
	if g.last != nil {
		last := *g.last
		last.Flipped = append([]domain.Coord(nil), g.last.Flipped...)
		gs.Last = &last
	}
	return gs
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service owns all running games and serializes access to their engines.
type Service struct {
	mu     sync.Mutex
	games  map[string]*game
	subs   map[string]map[*subscriber]struct{}
	render func(GameState) []byte
	now    func() time.Time
}

// NewService creates a service with a default renderer (encodes nothing useful).
func NewService() *Service { return NewServiceWithRenderer(nil) }

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(GameState) []byte) *Service {
	if renderer == nil {
		renderer = func(gs GameState) []byte { return nil }
	}
	return &Service{
		games:  make(map[string]*game),
		subs:   make(map[string]map[*subscriber]struct{}),
		render: renderer,
		now:    time.Now,
	}
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(gs GameState) []byte { return nil }
		return
	}
	s.render = renderer
}

// CreateGame creates and registers a new game on the starting position.
func (s *Service) CreateGame() (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	g := &game{
		id:      newGameID(),
		label:   newLabel(),
		engine:  domain.New(),
		created: now,
		updated: now,
	}
	s.games[g.id] = g
	gs := g.state()
	return &gs, nil
}

// Get returns a snapshot of the game if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, false
	}
	gs := g.state()
	return &gs, true
}

// Play applies a move for the side to move, advances the turn and broadcasts.
// A refused move returns the domain error and leaves the game untouched.
func (s *Service) Play(id string, r, c int) (*GameState, error) {
	return s.update(id, func(g *game) error {
		out, err := g.engine.Play(r, c)
		if err != nil {
			return err
		}
		g.last = &out
		return nil
	})
}

// Pass hands the turn over when the side to move has no legal move.
func (s *Service) Pass(id string) (*GameState, error) {
	return s.update(id, func(g *game) error {
		if _, err := g.engine.Pass(); err != nil {
			return err
		}
		g.last = nil
		return nil
	})
}

// NewGame resets the game to the starting position.
func (s *Service) NewGame(id string) (*GameState, error) {
	return s.update(id, func(g *game) error {
		g.engine.NewGame()
		g.last = nil
		return nil
	})
}

// Remove forgets a game and closes its subscribers.
func (s *Service) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.games[id]
	for sub := range s.subs[id] {
		sub.close()
	}
	delete(s.games, id)
	delete(s.subs, id)
	return ok
}

// update runs fn under the lock and, on success, fans the new state out.
// Sends never block; a subscriber whose buffer is full is dropped.
func (s *Service) update(id string, fn func(g *game) error) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(g); err != nil {
		cp := g.state()
		return &cp, err
	}
	g.updated = s.now()

	cp := g.state()
	payload := s.render(cp)
	for sub := range s.subs[id] {
		select {
		case sub.ch <- payload:
		default:
			sub.close()
			delete(s.subs[id], sub)
		}
	}
	return &cp, nil
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
// The channel is closed when ctx ends, on unsubscribe, or when the subscriber falls behind.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, func() {}, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}

// Subscribers returns the number of live subscribers for a game.
func (s *Service) Subscribers(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs[id])
}
