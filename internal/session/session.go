// Package session keeps independent games for an embedding server. Each
// session owns its own board; access to it is serialised by the session.
package session

import (
	"context"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/game"
	"github.com/lgbarn/chessgame-go/internal/oracle"
)

// Session is one game behind a mutex.
type Session struct {
	ID string

	mu   sync.Mutex
	game *game.Game
}

// WithGame runs fn while holding the session, so fn may read legality and
// apply moves without another caller interleaving.
func (s *Session) WithGame(fn func(*game.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.game)
}

// ApplyMoveText plays a coordinate move.
func (s *Session) ApplyMoveText(text string) error {
	return s.WithGame(func(g *game.Game) error {
		return g.ApplyMoveText(text)
	})
}

// PlayOracle asks o for the computer's move. The session stays held for
// the whole request, so no human move can slip in while it thinks.
func (s *Session) PlayOracle(ctx context.Context, o oracle.MoveOracle) (chess.Move, error) {
	var move chess.Move
	err := s.WithGame(func(g *game.Game) error {
		var err error
		move, err = g.PlayOracle(ctx, o)
		return err
	})
	return move, err
}

// FEN returns the current position.
func (s *Session) FEN() string {
	var fen string
	_ = s.WithGame(func(g *game.Game) error {
		fen = g.FEN()
		return nil
	})
	return fen
}

// Registry maps session ids to sessions.
type Registry struct {
	cfg *config.Config

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry. A nil cfg selects the defaults.
func NewRegistry(cfg *config.Config) *Registry {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Registry{cfg: cfg, sessions: make(map[string]*Session)}
}

// Create sets up a new game for id from fen ("" for the initial position).
func (r *Registry) Create(id, fen string) (*Session, error) {
	g := game.New(r.cfg)
	if err := g.Setup(fen); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; ok {
		return nil, errors.Wrap(errors.ErrSessionExists, id)
	}
	s := &Session{ID: id, game: g}
	r.sessions[id] = s
	r.cfg.Logf(2, "session %s created\n", id)
	return s, nil
}

// Get returns the session for id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.Wrap(errors.ErrUnknownSession, id)
	}
	return s, nil
}

// Remove drops the session for id. It reports whether one existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := maps.Keys(r.sessions)
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Len returns the number of sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
