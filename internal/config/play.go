package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/errors"
)

// Opponent selects who plays the side the user does not.
type Opponent int

const (
	Human    Opponent = iota // Both sides at the same terminal
	Computer                 // The other side asks a move oracle
)

// String returns the command line name of the opponent.
func (o Opponent) String() string {
	if o == Computer {
		return "computer"
	}
	return "man"
}

// ParseOpponent accepts "man" or "computer" in any case.
func ParseOpponent(s string) (Opponent, error) {
	switch strings.ToLower(s) {
	case "man":
		return Human, nil
	case "computer":
		return Computer, nil
	}
	return Human, fmt.Errorf("foe %q: enter 'man' or 'computer': %w", s, errors.ErrInvalidConfig)
}

// PlayConfig holds settings for a normal game.
type PlayConfig struct {
	// Opponent is a second human or the computer
	Opponent Opponent

	// PlayerColour is the side the user plays against the computer
	PlayerColour chess.Colour

	// FiftyMoveThreshold is the halfmove clock value that draws (0 = 100)
	FiftyMoveThreshold uint

	// ThinkTime is the pause before the computer moves
	ThinkTime time.Duration

	// ReplyDelay is the pause before a scripted puzzle reply
	ReplyDelay time.Duration
}

// NewPlayConfig creates a PlayConfig with default values.
func NewPlayConfig() *PlayConfig {
	return &PlayConfig{
		Opponent:           Human,
		PlayerColour:       chess.White,
		FiftyMoveThreshold: 100,
		ThinkTime:          2 * time.Second,
		ReplyDelay:         time.Second,
	}
}

// Validate checks that the play configuration is valid.
func (p *PlayConfig) Validate() error {
	if p.ThinkTime < 0 || p.ReplyDelay < 0 {
		return fmt.Errorf("negative delay (think %v, reply %v): %w",
			p.ThinkTime, p.ReplyDelay, errors.ErrInvalidConfig)
	}
	return nil
}
