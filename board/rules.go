package board

import (
	"sort"

	"golang.org/x/exp/rand"
)

// Rules is the attack-resolution contract, generalized from the teacher's
// game/rules.go interface so alternate dice/combat variants can be swapped
// in without touching GameState.
type Rules interface {
	MaxAttackDice(attackerTroops int) int
	MaxDefendDice(defenderTroops int) int
	Resolve(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int)
}

// StandardRules implements the classic 3-attacker/2-defender dice rules
// (teacher's game/standard.go), with the off-by-one bug in
// IsAttackSuccessful fixed by dropping that method entirely: GameState now
// decides combat outcome itself from the troop counts after each round.
type StandardRules struct{}

func NewStandardRules() StandardRules { return StandardRules{} }

func (StandardRules) MaxAttackDice(attackerTroops int) int {
	return min(attackerTroops, 3)
}

func (StandardRules) MaxDefendDice(defenderTroops int) int {
	return min(defenderTroops, 2)
}

// Resolve compares sorted-descending dice pairwise: the higher die wins
// each pairing, defender wins ties.
func (StandardRules) Resolve(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int) {
	a := append([]int{}, attackerRolls...)
	d := append([]int{}, defenderRolls...)
	sort.Sort(sort.Reverse(sort.IntSlice(a)))
	sort.Sort(sort.Reverse(sort.IntSlice(d)))
	rounds := min(len(a), len(d))
	for i := 0; i < rounds; i++ {
		if a[i] > d[i] {
			defenderLosses++
		} else {
			attackerLosses++
		}
	}
	return
}

func rollDice(rng *rand.Rand, n int) []int {
	rolls := make([]int, n)
	for i := range rolls {
		rolls[i] = int(rng.Intn(6)) + 1
	}
	return rolls
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
