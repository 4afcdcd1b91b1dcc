package evaluator

import (
	"testing"

	"github.com/riskmcts/core/search"
	"github.com/stretchr/testify/require"
)

// mockBoard is a hand-rolled BoardView for evaluator unit tests. The
// fixtures below use two or three territories and one continent, with no
// cards unless a test sets cardCounts.
type mockBoard struct {
	owners      map[int]int
	troops      map[int]int
	neighbors   map[int][]int
	continents  []int
	bonus       map[int]int
	members     map[int][]int
	cardCounts  map[int]int
	tradeInNext int
}

func (b mockBoard) TerritoryIDs() []int {
	ids := make([]int, 0, len(b.owners))
	for id := range b.owners {
		ids = append(ids, id)
	}
	return ids
}
func (b mockBoard) Owner(t int) int       { return b.owners[t] }
func (b mockBoard) Troops(t int) int      { return b.troops[t] }
func (b mockBoard) Neighbors(t int) []int { return b.neighbors[t] }
func (b mockBoard) ContinentIDs() []int   { return b.continents }
func (b mockBoard) ContinentBonus(c int) int       { return b.bonus[c] }
func (b mockBoard) ContinentMembers(c int) []int   { return b.members[c] }
func (b mockBoard) TotalTerritories() int          { return len(b.owners) }
func (b mockBoard) TotalTroops() int {
	total := 0
	for _, n := range b.troops {
		total += n
	}
	return total
}
func (b mockBoard) CardCount(player int) int { return b.cardCounts[player] }
func (b mockBoard) TradeInBonus() int        { return b.tradeInNext }

// mockRiskState wraps a mockBoard to satisfy search.RiskState; the
// evaluator never calls any method besides Board().
type mockRiskState struct {
	board mockBoard
}

func (s mockRiskState) PossibleActions() []search.Action { return nil }
func (s mockRiskState) Apply(search.Action) search.State  { return s }
func (s mockRiskState) ApplyAuto() search.State           { return s }
func (s mockRiskState) DetermineNextAction() search.Action { return nil }
func (s mockRiskState) CurrentPlayer() int                { return 0 }
func (s mockRiskState) PreviousAction() search.Action      { return nil }
func (s mockRiskState) IsGameOver() bool                   { return false }
func (s mockRiskState) IsValidAction(search.Action) bool    { return true }
func (s mockRiskState) UtilityVector() []float64            { return nil }
func (s mockRiskState) HeuristicVector() []float64           { return nil }
func (s mockRiskState) Hash() uint64                         { return 0 }
func (s mockRiskState) Board() search.BoardView              { return s.board }

func dominantBoard() mockBoard {
	return mockBoard{
		owners:     map[int]int{1: 0, 2: 0, 3: 1},
		troops:     map[int]int{1: 10, 2: 10, 3: 2},
		neighbors:  map[int][]int{1: {3}, 2: {}, 3: {1}},
		continents: []int{100},
		bonus:      map[int]int{100: 5},
		members:    map[int][]int{100: {1, 2}},
		cardCounts: map[int]int{0: 0, 1: 0},
	}
}

func balancedBoard() mockBoard {
	return mockBoard{
		owners:     map[int]int{1: 0, 2: 1},
		troops:     map[int]int{1: 5, 2: 5},
		neighbors:  map[int][]int{1: {2}, 2: {1}},
		continents: []int{100},
		bonus:      map[int]int{100: 5},
		members:    map[int][]int{100: {1, 2}},
		cardCounts: map[int]int{0: 0, 1: 0},
	}
}

func behindBoard() mockBoard {
	return mockBoard{
		owners:     map[int]int{1: 0, 2: 1, 3: 1},
		troops:     map[int]int{1: 2, 2: 10, 3: 10},
		neighbors:  map[int][]int{1: {2}, 2: {1}, 3: {}},
		continents: []int{100},
		bonus:      map[int]int{100: 5},
		members:    map[int][]int{100: {1, 2, 3}},
		cardCounts: map[int]int{0: 0, 1: 0},
	}
}

func TestNewPanicsOnPreconditionViolation(t *testing.T) {
	t.Run("nil state", func(t *testing.T) {
		require.Panics(t, func() { New(nil, 0) })
	})
	t.Run("negative player id", func(t *testing.T) {
		require.Panics(t, func() { New(mockRiskState{board: balancedBoard()}, -1) })
	})
}

func TestScoreBounds(t *testing.T) {
	for name, board := range map[string]mockBoard{
		"dominant": dominantBoard(),
		"balanced": balancedBoard(),
		"behind":   behindBoard(),
	} {
		t.Run(name, func(t *testing.T) {
			e := New(mockRiskState{board: board}, 0)
			score := e.Score()
			require.GreaterOrEqual(t, score, 0.0, "score must stay in [0,1]")
			require.LessOrEqual(t, score, 1.0, "score must stay in [0,1]")
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	board := balancedBoard()
	a := New(mockRiskState{board: board}, 0).Score()
	b := New(mockRiskState{board: board}, 0).Score()
	require.Equal(t, a, b, "scoring the same state twice must be deterministic")
}

func TestPositionDetection(t *testing.T) {
	t.Run("dominant player is a significant advantage", func(t *testing.T) {
		e := New(mockRiskState{board: dominantBoard()}, 0)
		require.Equal(t, SignificantAdvantage, e.Position())
	})
	t.Run("even troops and territory is balanced", func(t *testing.T) {
		e := New(mockRiskState{board: balancedBoard()}, 0)
		require.Equal(t, Balanced, e.Position())
	})
	t.Run("outnumbered player is behind in troops", func(t *testing.T) {
		e := New(mockRiskState{board: behindBoard()}, 0)
		require.Equal(t, BehindInTroops, e.Position())
	})
}

func TestContinentScoreRequiresFullOwnership(t *testing.T) {
	board := balancedBoard() // continent 100 split between the two players
	e := New(mockRiskState{board: board}, 0)
	require.Equal(t, 0.0, e.ContinentScore(), "partially owned continent contributes nothing")

	full := dominantBoard() // player 0 owns both members of continent 100
	e2 := New(mockRiskState{board: full}, 0)
	require.Equal(t, 1.0, e2.ContinentScore(), "fully owned continent contributes its whole bonus share")
}

func TestAttackPotentialIgnoresIsolatedTerritories(t *testing.T) {
	board := dominantBoard() // territory 2 has no neighbors at all
	e := New(mockRiskState{board: board}, 0)
	_ = e.Score()
	require.NotContains(t, e.attackByTerritory, 2, "a territory with no enemy border contributes no attack potential")
}

func TestCardScoreDisabledByDefault(t *testing.T) {
	board := dominantBoard()
	board.cardCounts[0] = 5
	board.tradeInNext = 8
	e := New(mockRiskState{board: board}, 0)
	_ = e.Score()
	require.Equal(t, 0.0, e.cardScore, "card score stays zero until WithCardScore is supplied")
}

func TestCardScoreWeightedWhenEnabled(t *testing.T) {
	board := dominantBoard()
	board.cardCounts[0] = 3
	board.tradeInNext = 8
	e := New(mockRiskState{board: board}, 0, WithCardScore(0.1))
	_ = e.Score()
	require.Equal(t, 1.0, e.cardScore, "three or more tradeable cards max out the card score")
}

func TestAlternatePresetChangesScore(t *testing.T) {
	board := balancedBoard()
	canonical := New(mockRiskState{board: board}, 0).Score()
	alternate := New(mockRiskState{board: board}, 0, WithPresets(AlternateBalanced30)).Score()
	require.NotEqual(t, canonical, alternate, "swapping weight presets should change the combined score")
}

func TestRawAttackPotentialThresholds(t *testing.T) {
	// S3: territory with 10 troops against enemy neighbors of 4, 6, and 12
	// troops (balanced mode).
	t.Run("balanced: ratio 2.5 maxes out", func(t *testing.T) {
		require.Equal(t, 1.0, raw(10, 4, Balanced))
	})
	t.Run("balanced: ratio 1.67 with enough troops still strong", func(t *testing.T) {
		require.Equal(t, 0.8, raw(10, 6, Balanced))
	})
	t.Run("balanced: ratio 1.67 with too few troops settles for moderate", func(t *testing.T) {
		require.Equal(t, 0.3, raw(3, 1.8, Balanced))
	})
	t.Run("balanced: outnumbered is low", func(t *testing.T) {
		require.Equal(t, 0.1, raw(10, 12, Balanced))
	})
	t.Run("significant advantage: ratio 1.5 maxes out regardless of troop count", func(t *testing.T) {
		require.Equal(t, 1.0, raw(3, 2, SignificantAdvantage))
	})
	t.Run("significant advantage: moderate ratio with enough troops stays aggressive", func(t *testing.T) {
		require.Equal(t, 0.9, raw(4, 3, SignificantAdvantage))
	})
	t.Run("significant advantage: moderate ratio with too few troops settles for moderate", func(t *testing.T) {
		require.Equal(t, 0.5, raw(3, 2.5, SignificantAdvantage))
	})
	t.Run("significant advantage: weak ratio stays cautious", func(t *testing.T) {
		require.Equal(t, 0.3, raw(2, 3, SignificantAdvantage))
	})
}
