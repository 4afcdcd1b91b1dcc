// Package agent wires the search core and the state evaluator into a
// single decision-making facade, playing the role of the teacher's
// player.Player and searcher/agent.Agent combined: one object a game loop
// can hand a state and get a move back from, without knowing anything
// about UCT, rollouts, or evaluator weight tables.
package agent

import (
	"time"

	"github.com/riskmcts/core/config"
	"github.com/riskmcts/core/evaluator"
	"github.com/riskmcts/core/search"
)

// Option configures an Agent at construction, following the searcher
// package's functional-option pattern.
type Option func(*Agent)

// WithExploration overrides the UCT exploration constant.
func WithExploration(c float64) Option {
	return func(a *Agent) { a.exploration = c }
}

// WithRolloutCutoff overrides the rollout depth cutoff.
func WithRolloutCutoff(depth int) Option {
	return func(a *Agent) { a.rolloutCutoff = depth }
}

// WithMinSimulations forces at least n simulations regardless of the
// deadline, useful for very short turn budgets or deterministic tests.
func WithMinSimulations(n int) Option {
	return func(a *Agent) { a.minSimulations = n }
}

// WithPresets swaps the evaluator's weight table.
func WithPresets(p evaluator.PresetSet) Option {
	return func(a *Agent) { a.presets = p }
}

// WithTurnBudget overrides config.TURN_BUDGET for this agent's searches.
func WithTurnBudget(d time.Duration) Option {
	return func(a *Agent) { a.turnBudget = d }
}

// Agent owns one player's search tree across a game. SetUp starts fresh;
// SelectAction runs a bounded search and returns the chosen move; Observe
// folds an externally-applied move (an opponent's turn, or the chance
// resolution of the agent's own attack) into the retained tree so the next
// SelectAction doesn't have to rebuild its statistics from scratch.
type Agent struct {
	player        int
	exploration   float64
	rolloutCutoff int
	minSimulations int
	turnBudget    time.Duration
	presets       evaluator.PresetSet

	engine *search.Engine
}

// New creates an Agent for player, deferring tree construction until the
// first SetUp call.
func New(player int, opts ...Option) *Agent {
	a := &Agent{
		player:        player,
		exploration:   config.EXPLORATION,
		rolloutCutoff: config.ROLLOUT_CUTOFF,
		minSimulations: config.MIN_SIMULATIONS,
		turnBudget:    config.TURN_BUDGET,
		presets:       evaluator.Canonical,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// heuristic builds the search.Heuristic closure backed by this agent's
// evaluator presets. A fresh Evaluator is constructed per call since each
// invocation scores a different successor state and an Evaluator's cache is
// only valid for the state it was built with.
func (a *Agent) heuristic(state search.RiskState, player int) float64 {
	return evaluator.New(state, player, evaluator.WithPresets(a.presets)).Score()
}

// SetUp (re)starts the agent's search tree at root. Call this once at the
// start of a game, or any time Observe's tree-reuse attempt misses.
func (a *Agent) SetUp(root search.State) {
	a.engine = search.NewEngine(root,
		search.WithExploration(a.exploration),
		search.WithHeuristic(a.heuristic),
		search.WithRolloutDepthCutoff(a.rolloutCutoff),
		search.WithMinSimulations(a.minSimulations),
	)
}

// Observe folds an externally-observed state transition (an opponent's
// move, or a chance resolution) into the retained tree via structural
// hashing, avoiding a full SetUp when the transition was already explored.
// It is always safe to call before SelectAction even if SetUp was just
// called: a Reroot miss on a brand-new tree is a no-op with no effect to
// undo.
func (a *Agent) Observe(state search.State) {
	if a.engine == nil {
		a.SetUp(state)
		return
	}
	if !a.engine.Store().Reroot(state) {
		a.SetUp(state)
	}
}

// SelectAction runs a time-bounded search from the agent's current root and
// returns the move it picks for this agent's player. Panics if SetUp/Observe
// was never called.
func (a *Agent) SelectAction() search.Action {
	if a.engine == nil {
		panic("agent: SelectAction called before SetUp")
	}
	deadline := search.NewDeadline(a.turnBudget, config.SAFETY_BUFFER)
	return a.engine.Run(deadline, a.player)
}

// Simulations reports how many playouts the most recent SelectAction ran,
// useful for diagnostics and the match package's per-move metrics.
func (a *Agent) Simulations() int {
	if a.engine == nil {
		return 0
	}
	return a.engine.Simulations()
}

// TreeSize reports the current arena size, another diagnostic passthrough.
func (a *Agent) TreeSize() int {
	if a.engine == nil {
		return 0
	}
	return a.engine.Store().Size()
}

// TearDown releases the agent's search tree. There is nothing else to
// release (no goroutines, no open files), so this just drops the
// reference; it exists as an explicit lifecycle bookend for callers that
// manage many agents across many games.
func (a *Agent) TearDown() {
	a.engine = nil
}

// PonderStart and PonderStop are lifecycle no-ops: this engine only
// searches synchronously inside SelectAction (spec's single-threaded
// Non-goal), so there is no background thinking to start or stop. They
// exist so callers written against a ponder-capable agent interface don't
// need a special case for this implementation.
func (a *Agent) PonderStart() {}
func (a *Agent) PonderStop()  {}

// Destroy tears down the agent and releases any remaining state. Distinct
// from TearDown for callers that distinguish "done with this turn" from
// "done with this agent forever"; here they do the same thing.
func (a *Agent) Destroy() {
	a.TearDown()
}
