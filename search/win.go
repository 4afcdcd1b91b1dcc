package search

import "golang.org/x/exp/rand"

// scoreFromVector projects a utility/heuristic vector to a scalar in [0,1]
// for player: 1.0 if player is the strict unique maximizer, 1/k if tied for
// the maximum with k-1 others, 0 otherwise.
func scoreFromVector(vector []float64, player int) float64 {
	if player < 0 || player >= len(vector) {
		return 0
	}
	max := vector[0]
	for _, v := range vector[1:] {
		if v > max {
			max = v
		}
	}
	if vector[player] != max {
		return 0
	}
	tied := 0
	for _, v := range vector {
		if v == max {
			tied++
		}
	}
	return 1.0 / float64(tied)
}

// hasWon determines the win/loss credit for a rollout's terminal (or
// depth/deadline-cut) state, from player's perspective (spec §4.5). Ties
// are credited as a win with probability 1/2 so they aren't systematically
// discarded from the statistics — see spec S6.
func hasWon(state State, player int, rng *rand.Rand) bool {
	score := scoreFromVector(state.UtilityVector(), player)
	if !state.IsGameOver() && score > 0 {
		score = scoreFromVector(state.HeuristicVector(), player)
	}
	if score == 1.0 {
		return true
	}
	if score > 0 {
		return rng.Float64() < 0.5
	}
	return false
}
