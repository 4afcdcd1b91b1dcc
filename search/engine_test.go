package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunReturnsLegalAction(t *testing.T) {
	state := newCountState(5, 10)
	e := NewEngine(state, WithRNG(testRNG()))
	deadline := NewDeadline(30*time.Millisecond, 0)

	action := e.Run(deadline, 0)
	require.True(t, state.IsValidAction(action), "the chosen action must be legal in the root state")
}

func TestRunGrowsTheTree(t *testing.T) {
	state := newCountState(5, 10)
	e := NewEngine(state, WithRNG(testRNG()), WithMinSimulations(20))
	deadline := NewDeadline(time.Millisecond, 0)

	e.Run(deadline, 0)
	require.Greater(t, e.Store().Size(), 1, "running simulations should expand the tree beyond the bare root")
	require.GreaterOrEqual(t, e.Simulations(), 20, "WithMinSimulations should force at least that many simulations")
}

func TestRunHonorsMinSimulationsPastDeadline(t *testing.T) {
	state := newCountState(5, 10)
	e := NewEngine(state, WithRNG(testRNG()), WithMinSimulations(5))
	// An already-elapsed deadline would normally stop immediately.
	deadline := NewDeadline(0, 0)

	e.Run(deadline, 0)
	require.GreaterOrEqual(t, e.Simulations(), 5)
}

func TestRunFallsBackToGreedyWhenNoChildrenExpanded(t *testing.T) {
	// minSimulations 0 and an already-past deadline mean the simulation loop
	// body never runs once, so Run must fall back to mostPromising over the
	// root's own actions instead of indexing into an empty child list. This
	// state has no heuristic and isn't a forced win, so the pre-search
	// shortcut also declines, leaving the fallback as the only path taken.
	state := newCountState(5, 10)
	e := NewEngine(state, WithRNG(testRNG()))
	deadline := NewDeadline(0, 0)

	action := e.Run(deadline, 0)
	require.NotNil(t, action)
	require.Equal(t, 0, e.Store().Size()-1, "no children should have been expanded into the tree")
}

func TestRunUsesShortcutWithoutSimulating(t *testing.T) {
	state := mockRiskState{newCountState(1, 2)}
	e := NewEngine(state, WithHeuristic(favorHigherValue), WithRNG(testRNG()))
	deadline := NewDeadline(time.Second, 0)

	action := e.Run(deadline, 0)
	require.Equal(t, countAction(1), action)
	require.Equal(t, 0, e.Simulations(), "a forced win should be returned without running any simulations")
}

func TestSelectAndExpandAddsOneChildPerCall(t *testing.T) {
	state := newCountState(5, 10)
	e := NewEngine(state, WithRNG(testRNG()))

	_, _ = e.selectAndExpand(nil)
	require.Equal(t, 1, len(e.Store().Children(e.Store().Root())), "the first selectAndExpand call should add exactly one child")

	_, _ = e.selectAndExpand(nil)
	require.Equal(t, 2, len(e.Store().Children(e.Store().Root())), "both legal root actions should be tried before any descent")
}

func TestBackpropagateCreditsChooserNotMover(t *testing.T) {
	state := newCountState(5, 10)
	e := NewEngine(state, WithRNG(testRNG()))

	leaf, leafState := e.selectAndExpand(nil)
	terminal := newCountState(10, 10) // player 0 has won
	e.backpropagate(leaf, terminal, nil)

	leafNode := e.Store().Node(leaf)
	require.Equal(t, uint64(1), leafNode.Plays())
	// The leaf's parent (root) moved as player 0, the player who chose the
	// action leading to leaf, so a win for player 0 credits the leaf.
	require.Equal(t, 0, state.CurrentPlayer())
	_ = leafState
	require.Equal(t, uint64(1), leafNode.Wins(), "the mover who chose the leaf's action should be credited its win")
}

func TestSelectAndExpandReturnsEarlyOnExpiredDeadline(t *testing.T) {
	state := newCountState(5, 10)
	e := NewEngine(state, WithRNG(testRNG()))
	deadline := NewDeadline(0, 0) // already expired

	leaf, _ := e.selectAndExpand(deadline)
	require.Equal(t, e.Store().Root(), leaf, "an expired deadline should abort before any child is expanded")
	require.Empty(t, e.Store().Children(e.Store().Root()))
}

func TestBackpropagateStopsCreditingOnExpiredDeadline(t *testing.T) {
	state := newCountState(5, 10)
	e := NewEngine(state, WithRNG(testRNG()))

	leaf, _ := e.selectAndExpand(nil)
	terminal := newCountState(10, 10)
	e.backpropagate(leaf, terminal, NewDeadline(0, 0))

	require.Equal(t, uint64(0), e.Store().Node(leaf).Plays(), "an already-expired deadline should stop the walk before crediting any node")
}

func TestPlayoutRespectsExpiredDeadline(t *testing.T) {
	policy := rolloutPolicy{rng: testRNG()}
	state := newCountState(50000, 100000)
	deadline := NewDeadline(0, 0) // already expired

	terminal := playout(state, policy, 1000000, deadline)
	require.False(t, terminal.IsGameOver(), "an expired deadline should abort the playout long before reaching a terminal state")
	require.Equal(t, state.value, terminal.(*countState).value, "no plies should have run once the deadline had already passed")
}

func TestReorootReusesTreeAcrossMoves(t *testing.T) {
	state := newCountState(5, 10)
	e := NewEngine(state, WithRNG(testRNG()), WithMinSimulations(10))
	deadline := NewDeadline(time.Millisecond, 0)
	e.Run(deadline, 0)

	sizeBefore := e.Store().Size()
	require.Greater(t, sizeBefore, 1)

	children := e.Store().Children(e.Store().Root())
	require.NotEmpty(t, children)
	child := e.Store().Node(children[0])
	ok := e.Store().Reroot(child.State())
	require.True(t, ok)
	require.Equal(t, child.State().Hash(), e.Store().Node(e.Store().Root()).State().Hash())
}
