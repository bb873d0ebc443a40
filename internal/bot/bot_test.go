package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/card"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/engine"
)

func mustCard(t *testing.T, id string) card.Card {
	t.Helper()
	c, err := card.FromID(id)
	require.NoError(t, err)
	return c
}

func cards(t *testing.T, ids ...string) []card.Card {
	t.Helper()
	out := make([]card.Card, 0, len(ids))
	for _, id := range ids {
		out = append(out, mustCard(t, id))
	}
	return out
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, d := range []Difficulty{Easy, Medium, Hard, Elite} {
		p, err := New(d)
		require.NoError(t, err, "difficulty %s", d)
		assert.NotNil(t, p)
	}

	_, err := New(Difficulty(42))
	assert.Error(t, err)
}

func TestDifficultyFromString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Easy, DifficultyFromString("easy"))
	assert.Equal(t, Elite, DifficultyFromString("elite"))
	assert.Equal(t, Medium, DifficultyFromString("garbage"), "unknown input falls back to medium")
}

func TestStrategies_ReturnLegalChoices(t *testing.T) {
	t.Parallel()

	view := &engine.TableView{
		Self:        engine.East,
		Phase:       engine.PhasePlaying,
		Hand:        cards(t, "H7", "HQ", "S3"),
		Legal:       cards(t, "H7", "HQ"),
		Unused:      []engine.Contract{engine.ContractQueens, engine.ContractTrex},
		Contract:    engine.ContractQueens,
		HasContract: true,
		TrickLead:   engine.North,
		TrickPlays:  map[engine.Position]card.Card{engine.North: mustCard(t, "H9")},
	}

	for _, d := range []Difficulty{Easy, Medium, Hard, Elite} {
		d := d
		t.Run(d.String(), func(t *testing.T) {
			t.Parallel()
			p, err := New(d)
			require.NoError(t, err)

			c, err := p.SelectCard(view, engine.East)
			require.NoError(t, err)
			assert.Contains(t, view.Legal, c)

			contract, err := p.SelectContract(view, engine.East)
			require.NoError(t, err)
			assert.Contains(t, view.Unused, contract)
		})
	}
}

func TestStrategies_NoLegalCard(t *testing.T) {
	t.Parallel()

	view := &engine.TableView{Phase: engine.PhasePlaying}
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		p, err := New(d)
		require.NoError(t, err)
		_, err = p.SelectCard(view, engine.North)
		assert.Error(t, err, "difficulty %s must refuse an empty legal set", d)
	}
}

func TestLowball_PrefersTrexAndShedsLow(t *testing.T) {
	t.Parallel()

	p, err := New(Medium)
	require.NoError(t, err)

	view := &engine.TableView{
		Legal:  cards(t, "HQ", "H4", "H9"),
		Unused: []engine.Contract{engine.ContractKingOfHearts, engine.ContractTrex},
	}

	c, err := p.SelectCard(view, engine.North)
	require.NoError(t, err)
	assert.Equal(t, mustCard(t, "H4"), c)

	contract, err := p.SelectContract(view, engine.North)
	require.NoError(t, err)
	assert.Equal(t, engine.ContractTrex, contract)
}

func TestDucking_PlaysUnderTheWinner(t *testing.T) {
	t.Parallel()

	p, err := New(Hard)
	require.NoError(t, err)

	view := &engine.TableView{
		Contract:    engine.ContractCollections,
		HasContract: true,
		TrickLead:   engine.North,
		TrickPlays: map[engine.Position]card.Card{
			engine.North: mustCard(t, "HT"),
			engine.East:  mustCard(t, "H2"),
		},
		Hand:  cards(t, "H9", "H5", "HA"),
		Legal: cards(t, "H9", "H5", "HA"),
	}

	c, err := p.SelectCard(view, engine.South)
	require.NoError(t, err)
	assert.Equal(t, mustCard(t, "H9"), c, "highest card still under the winner")
}

func TestDucking_DumpsDangerWhenVoid(t *testing.T) {
	t.Parallel()

	p, err := New(Hard)
	require.NoError(t, err)

	view := &engine.TableView{
		Contract:    engine.ContractQueens,
		HasContract: true,
		TrickLead:   engine.North,
		TrickPlays: map[engine.Position]card.Card{
			engine.North: mustCard(t, "HT"),
		},
		Hand:  cards(t, "SQ", "S3", "C8"),
		Legal: cards(t, "SQ", "S3", "C8"),
	}

	c, err := p.SelectCard(view, engine.East)
	require.NoError(t, err)
	assert.Equal(t, mustCard(t, "SQ"), c, "a void seat dumps the queen under the queens contract")
}

func TestDucking_ContractComfort(t *testing.T) {
	t.Parallel()

	p, err := New(Hard)
	require.NoError(t, err)

	// Holding the king of hearts makes that contract the worst choice.
	view := &engine.TableView{
		Hand:   cards(t, "HK", "H3", "D2"),
		Unused: []engine.Contract{engine.ContractKingOfHearts, engine.ContractDiamonds},
	}
	contract, err := p.SelectContract(view, engine.North)
	require.NoError(t, err)
	assert.Equal(t, engine.ContractDiamonds, contract)
}

func TestDucking_TrexPrefersNeighborHeldCard(t *testing.T) {
	t.Parallel()

	p, err := New(Hard)
	require.NoError(t, err)

	view := &engine.TableView{
		Contract:    engine.ContractTrex,
		HasContract: true,
		Hand:        cards(t, "HT", "H9", "SJ"),
		Legal:       cards(t, "SJ", "HT"),
	}

	c, err := p.SelectCard(view, engine.West)
	require.NoError(t, err)
	assert.Equal(t, mustCard(t, "HT"), c, "playing the ten keeps our nine unblocked")
}
