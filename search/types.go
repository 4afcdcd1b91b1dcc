// Package search implements the time-bounded Monte Carlo Tree Search core:
// the tree/statistics model, the four MCTS phases under a deadline, UCT
// selection, and the pre-search terminal shortcut. It only depends on the
// capability interfaces below — it never imports the concrete Risk board.
package search

// Action is a single legal move. Concrete implementations must be
// comparable (no slices/maps): expansion keys its set of already-tried
// actions by Action, and the shortcut compares a child's action with ==.
// Selection at a chance node matches the resulting child by state hash;
// PreviousAction is not consulted anywhere in this package.
type Action any

// State is the capability the search core requires from the external rules
// engine. CurrentPlayer returns a negative sentinel for chance/automatic
// resolution nodes (e.g. dice rolls).
type State interface {
	PossibleActions() []Action
	Apply(Action) State
	ApplyAuto() State
	DetermineNextAction() Action
	CurrentPlayer() int
	PreviousAction() Action
	IsGameOver() bool
	IsValidAction(Action) bool
	UtilityVector() []float64
	HeuristicVector() []float64
	Hash() uint64
}

// ChanceSentinel is the CurrentPlayer() value that marks a chance node.
const ChanceSentinel = -1

// RiskState is satisfied by states that additionally expose a Risk board
// view, enabling the heuristic rollout policy and the state evaluator.
// States that don't implement it fall back to uniform-random rollouts.
type RiskState interface {
	State
	Board() BoardView
}

// BoardView is the read-only Risk board surface the evaluator and rollout
// policy need: territories, continents, neighborhoods, troop counts, and
// card/trade-in bonuses.
type BoardView interface {
	TerritoryIDs() []int
	Owner(territoryID int) int
	Troops(territoryID int) int
	Neighbors(territoryID int) []int
	ContinentIDs() []int
	ContinentBonus(continentID int) int
	ContinentMembers(continentID int) []int
	TotalTerritories() int
	TotalTroops() int
	CardCount(player int) int
	TradeInBonus() int
}

// EnemyNeighbors returns the neighbors of territoryID not owned by owner.
func EnemyNeighbors(b BoardView, territoryID, owner int) []int {
	all := b.Neighbors(territoryID)
	enemies := make([]int, 0, len(all))
	for _, n := range all {
		if b.Owner(n) != owner {
			enemies = append(enemies, n)
		}
	}
	return enemies
}
