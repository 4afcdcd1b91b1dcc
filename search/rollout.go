package search

import (
	"math"

	"golang.org/x/exp/rand"
)

// Heuristic scores a Risk state from player's perspective in [0,1],
// normally backed by the evaluator package. search never imports evaluator
// directly — evaluator already depends on search's BoardView/RiskState
// interfaces, so the dependency has to flow the other way; callers (the
// agent package) inject their own evaluator-backed Heuristic instead.
type Heuristic func(state RiskState, player int) float64

// DefaultRolloutDepthCutoff caps how many plies a playout runs before
// falling back to the heuristic vector (spec §4.5), mirroring the
// teacher's MaxCutoff (searcher/mcts.go's WithCutoff).
const DefaultRolloutDepthCutoff = 50

// rolloutEpsilon is the chance the rollout policy ignores the heuristic
// and samples uniformly, so playouts don't collapse onto whatever blind
// spot the heuristic has.
const rolloutEpsilon = 0.1

// rolloutSetUpProportion gates the heuristic ranking loop in choose: once
// ShouldStopProportion(rolloutSetUpProportion) trips — i.e. half the
// budget is gone, since proportion 2 means elapsed >= budget/2 — choose
// skips evaluating every successor and falls back to a uniform pick
// instead, trading rollout quality for staying inside budget.
const rolloutSetUpProportion = 2.0

// rolloutPolicy picks actions during a playout: heuristic-guided one-shot
// UCT over successor states for RiskState (spec §4.5's "rollout policy"),
// uniform-random otherwise. Each mover acts in their own self-interest, so
// choose evaluates successors from state's own CurrentPlayer, not a fixed
// external perspective.
type rolloutPolicy struct {
	heuristic Heuristic
	rng       *rand.Rand
}

func (p rolloutPolicy) choose(state State, deadline *Deadline) Action {
	actions := state.PossibleActions()
	if len(actions) == 0 {
		return nil
	}
	if p.heuristic == nil || p.rng.Float64() < rolloutEpsilon {
		return actions[p.rng.Intn(len(actions))]
	}
	riskState, ok := state.(RiskState)
	if !ok {
		return actions[p.rng.Intn(len(actions))]
	}
	if deadline.ShouldStopProportion(rolloutSetUpProportion) {
		return actions[p.rng.Intn(len(actions))]
	}
	mover := riskState.CurrentPlayer()

	n := float64(len(actions))
	best := actions[0]
	bestValue := math.Inf(-1)
	for _, a := range actions {
		if deadline.ShouldStop() {
			break
		}
		successor := riskState.Apply(a)
		successorRisk, ok := successor.(RiskState)
		if !ok {
			continue
		}
		score := p.heuristic(successorRisk, mover)
		// Each successor is treated as a single prior visit (n=1) of a
		// one-shot UCT ranking: the exploration term is identical across
		// every candidate, so this reduces to ranking by heuristic score;
		// on equal values the earliest action in PossibleActions order wins.
		value := uctValue(score, 1, n, DefaultExploration)
		if value > bestValue {
			best = a
			bestValue = value
		}
	}
	return best
}

// playout plays state forward under policy until the game ends, a
// depth-cutoff is hit, no action remains, or deadline fires, returning the
// resulting (possibly non-terminal) state. deadline is checked at the top
// of each ply and inside the chance-resolution loop, so a long or
// oscillating combat sequence can't carry a single playout past budget.
func playout(state State, policy rolloutPolicy, depthCutoff int, deadline *Deadline) State {
	depth := 0
	for !state.IsGameOver() && depth < depthCutoff {
		if deadline.ShouldStop() {
			return state
		}
		for state.CurrentPlayer() == ChanceSentinel {
			if deadline.ShouldStop() {
				return state
			}
			state = state.ApplyAuto()
		}
		if state.IsGameOver() {
			break
		}
		action := policy.choose(state, deadline)
		if action == nil {
			break
		}
		state = state.Apply(action)
		depth++
	}
	for state.CurrentPlayer() == ChanceSentinel {
		if deadline.ShouldStop() {
			return state
		}
		state = state.ApplyAuto()
	}
	return state
}

// rollout runs playout and reports whether player is credited a win at
// its end (win.go's hasWon).
func rollout(state State, player int, policy rolloutPolicy, depthCutoff int, rng *rand.Rand, deadline *Deadline) bool {
	terminal := playout(state, policy, depthCutoff, deadline)
	return hasWon(terminal, player, rng)
}
