package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scoredEngine builds an engine paused mid-round with the given contract,
// ready for calculateRoundScores.
func scoredEngine(t *testing.T, c Contract) *Engine {
	t.Helper()
	e := New(testSeeds(), North)
	require.NoError(t, e.Deal())
	e.contract = c
	e.hasContract = true
	return e
}

func TestScoring_KingOfHearts(t *testing.T) {
	t.Parallel()

	e := scoredEngine(t, ContractKingOfHearts)
	e.players[East].CapturedKingOfHearts = true
	e.calculateRoundScores()

	assert.Equal(t, -75, e.PlayerAt(East).RoundScore)
	assert.Equal(t, -75, e.PlayerAt(East).TotalScore)
	for _, pos := range []Position{North, South, West} {
		assert.Zero(t, e.PlayerAt(pos).RoundScore)
	}
}

func TestScoring_KingOfHeartsDoubled(t *testing.T) {
	t.Parallel()

	e := scoredEngine(t, ContractKingOfHearts)
	e.kingDoubled = true
	e.players[West].CapturedKingOfHearts = true
	e.calculateRoundScores()

	assert.Equal(t, -150, e.PlayerAt(West).RoundScore)
}

func TestScoring_Queens(t *testing.T) {
	t.Parallel()

	e := scoredEngine(t, ContractQueens)
	e.players[North].CapturedQueens = 3
	e.players[South].CapturedQueens = 1
	e.calculateRoundScores()

	assert.Equal(t, -75, e.PlayerAt(North).RoundScore)
	assert.Equal(t, -25, e.PlayerAt(South).RoundScore)
	assert.Zero(t, e.PlayerAt(East).RoundScore)
}

func TestScoring_Diamonds(t *testing.T) {
	t.Parallel()

	e := scoredEngine(t, ContractDiamonds)
	e.players[East].CapturedDiamonds = 7
	e.players[West].CapturedDiamonds = 6
	e.calculateRoundScores()

	assert.Equal(t, -70, e.PlayerAt(East).RoundScore)
	assert.Equal(t, -60, e.PlayerAt(West).RoundScore)
}

func TestScoring_Collections(t *testing.T) {
	t.Parallel()

	e := scoredEngine(t, ContractCollections)
	e.players[North].TricksWon = 5
	e.players[East].TricksWon = 8
	e.calculateRoundScores()

	assert.Equal(t, -75, e.PlayerAt(North).RoundScore)
	assert.Equal(t, -120, e.PlayerAt(East).RoundScore)
}

func TestScoring_AccumulatesAcrossRounds(t *testing.T) {
	t.Parallel()

	e := scoredEngine(t, ContractQueens)
	e.players[North].TotalScore = -40
	e.players[North].CapturedQueens = 2
	e.calculateRoundScores()

	assert.Equal(t, -50, e.PlayerAt(North).RoundScore)
	assert.Equal(t, -90, e.PlayerAt(North).TotalScore)
}

func TestStandings_TieBreakBySeatingOrder(t *testing.T) {
	t.Parallel()

	e := New(testSeeds(), North)
	require.NoError(t, e.Deal())
	e.players[North].TotalScore = -50
	e.players[East].TotalScore = 120
	e.players[South].TotalScore = 120
	e.players[West].TotalScore = -50

	standings := e.Standings()
	require.Len(t, standings, NumPositions)

	assert.Equal(t, []Position{East, South, North, West},
		[]Position{standings[0].Pos, standings[1].Pos, standings[2].Pos, standings[3].Pos},
		"equal scores rank in seating order from north")
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 4, standings[3].Rank)
}
