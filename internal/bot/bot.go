package bot

import (
	"fmt"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/card"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/engine"
)

// Difficulty selects the strategy tier for an AI seat.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Elite
)

var difficultyNames = map[Difficulty]string{
	Easy:   "easy",
	Medium: "medium",
	Hard:   "hard",
	Elite:  "elite",
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return "unknown"
}

// DifficultyFromString parses a difficulty name, defaulting to medium for
// unknown input.
func DifficultyFromString(s string) Difficulty {
	for d, name := range difficultyNames {
		if name == s {
			return d
		}
	}
	return Medium
}

// MoveProvider supplies contract and card choices for one seat. Both
// methods are pure functions of the supplied position-scoped view; a
// provider never sees another seat's concealed hand. Implementations must
// return only legal choices — the room validates regardless and substitutes
// a safe default on misbehavior.
type MoveProvider interface {
	SelectContract(view *engine.TableView, pos engine.Position) (engine.Contract, error)
	SelectCard(view *engine.TableView, pos engine.Position) (card.Card, error)
}

// New builds the strategy for a difficulty tier.
func New(d Difficulty) (MoveProvider, error) {
	switch d {
	case Easy:
		return &randomStrategy{}, nil
	case Medium:
		return &lowballStrategy{}, nil
	case Hard:
		return &duckingStrategy{}, nil
	case Elite:
		return &duckingStrategy{leadAware: true}, nil
	default:
		return nil, fmt.Errorf("unknown bot difficulty: %d", d)
	}
}
