package search

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestPlayoutReachesTerminalState(t *testing.T) {
	policy := rolloutPolicy{rng: testRNG()}
	terminal := playout(newCountState(5, 10), policy, 1000, nil)
	require.True(t, terminal.IsGameOver())
}

func TestPlayoutRespectsDepthCutoff(t *testing.T) {
	// A symmetric random walk over a wide range rarely finishes in one ply;
	// with a depth cutoff of 1 the playout must return early and may well
	// be non-terminal.
	policy := rolloutPolicy{rng: testRNG()}
	terminal := playout(newCountState(500, 1000), policy, 1, nil)
	require.False(t, terminal.IsGameOver(), "a depth-1 cutoff from the middle of a wide board should not reach a terminal state")
}

func TestRolloutHeuristicGuidesTowardWinningSide(t *testing.T) {
	state := mockRiskState{newCountState(1, 2)}
	wins := 0
	for seed := uint64(0); seed < 50; seed++ {
		policy := rolloutPolicy{heuristic: favorHigherValue, rng: rand.New(rand.NewSource(seed))}
		if rollout(state, 0, policy, 10, rand.New(rand.NewSource(seed+1)), nil) {
			wins++
		}
	}
	require.Greater(t, wins, 40, "the heuristic should drive player 0 to win the overwhelming majority of these single-ply playouts")
}

func TestRolloutFallsBackToUniformWithoutHeuristic(t *testing.T) {
	policy := rolloutPolicy{rng: testRNG()}
	action := policy.choose(newCountState(5, 10), nil)
	require.NotNil(t, action)
}

func TestRolloutNoActionsReturnsNil(t *testing.T) {
	policy := rolloutPolicy{rng: testRNG()}
	terminal := newCountState(0, 10) // already game over
	require.Nil(t, policy.choose(terminal, nil))
}

func TestChooseFallsBackToUniformUnderTimePressure(t *testing.T) {
	// Past the set-up proportion threshold, choose must skip the expensive
	// per-action heuristic ranking and still return a legal action.
	policy := rolloutPolicy{heuristic: favorHigherValue, rng: testRNG()}
	deadline := NewDeadline(0, 0) // already expired
	state := mockRiskState{newCountState(1, 2)}

	action := policy.choose(state, deadline)
	require.NotNil(t, action)
}
