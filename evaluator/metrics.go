package evaluator

import "github.com/riskmcts/core/search"

// continentScore is the fraction of continent bonus value the player
// controls outright: sum of ContinentBonus(c) for every continent c whose
// members are all owned by player, divided by the sum of all continents'
// bonuses (spec §4.1's continentScore sub-metric).
func continentScore(board search.BoardView, player int) float64 {
	var owned, total int
	for _, c := range board.ContinentIDs() {
		bonus := board.ContinentBonus(c)
		total += bonus
		if continentFullyOwned(board, c, player) {
			owned += bonus
		}
	}
	return safeDiv(float64(owned), float64(total))
}

func continentFullyOwned(board search.BoardView, continentID, player int) bool {
	for _, t := range board.ContinentMembers(continentID) {
		if board.Owner(t) != player {
			return false
		}
	}
	return true
}

// attackPotential folds raw(t,n) over every territory the player owns that
// qualifies to attack (more than one troop, at least one enemy neighbor):
// each qualifying territory contributes the average of raw(t,n) over every
// one of its enemy neighbors n, and attackPotential is the average of those
// per-territory contributions. threatLevel is a byproduct: enemy troops
// summed over every (owned territory, enemy neighbor) pair, so an enemy
// territory bordering several of the player's territories counts once per
// border.
func attackPotential(board search.BoardView, player int, pos Position) (map[int]float64, float64, int) {
	contributions := make(map[int]float64)
	var sum float64
	var threat int

	for _, t := range board.TerritoryIDs() {
		if board.Owner(t) != player {
			continue
		}
		neighbors := search.EnemyNeighbors(board, t, player)
		if len(neighbors) == 0 {
			continue
		}
		for _, n := range neighbors {
			threat += board.Troops(n)
		}
		if board.Troops(t) <= 1 {
			continue
		}
		var territorySum float64
		for _, n := range neighbors {
			territorySum += raw(float64(board.Troops(t)), float64(board.Troops(n)), pos)
		}
		contributions[t] = territorySum / float64(len(neighbors))
		sum += contributions[t]
	}

	if len(contributions) == 0 {
		return contributions, 0, threat
	}
	return contributions, sum / float64(len(contributions)), threat
}

// raw implements the attack-potential function: t is the owner's troop
// count, n is one adjacent enemy troop count. Balanced/behind-in-troops
// uses the conservative table; significant-advantage uses the aggressive
// one.
func raw(t, n float64, pos Position) float64 {
	ratio := t / maxFloat(n, Epsilon)
	if pos == SignificantAdvantage {
		switch {
		case ratio >= 1.5:
			return 1.0
		case ratio >= 1.0 && t >= 4:
			return 0.9
		case ratio >= 1.0:
			return 0.5
		default:
			return 0.3
		}
	}
	switch {
	case ratio >= 2.0:
		return 1.0
	case ratio >= 1.0 && t >= 5:
		return 0.8
	case ratio >= 1.0:
		return 0.3
	default:
		return 0.1
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// cardScore is the off-by-default card-trade-in sub-metric (SPEC_FULL.md
// §D.3, recovered from the Java source's card-hand evaluation): 1 when the
// player holds at least three cards and the next trade-in grants a positive
// bonus, 0 otherwise. The bonus size and the hand's actual set composition
// do not change the value.
func cardScore(board search.BoardView, player int) float64 {
	bonus := board.TradeInBonus()
	if bonus <= 0 {
		return 0
	}
	count := board.CardCount(player)
	if count < 3 {
		return 0
	}
	return 1.0
}
