package search

import (
	"time"

	"golang.org/x/exp/rand"
)

// Option configures an Engine at construction, following the teacher's
// functional-option pattern (searcher/mcts.go's WithDuration/WithEpisodes).
type Option func(*Engine)

// WithExploration overrides the UCT exploration constant c.
func WithExploration(c float64) Option {
	return func(e *Engine) { e.exploration = c }
}

// WithHeuristic installs the rollout policy's heuristic guide and the
// pre-search shortcut's candidate ordering.
func WithHeuristic(h Heuristic) Option {
	return func(e *Engine) { e.heuristic = h }
}

// WithRolloutDepthCutoff overrides DefaultRolloutDepthCutoff.
func WithRolloutDepthCutoff(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.depthCutoff = depth
		}
	}
}

// WithMinSimulations forces the engine to keep searching past the deadline
// until at least n simulations have run (SPEC_FULL.md §D.1's simulation
// quality gate, recovered from the Java source's minimum-rollout-count
// guard) — useful for tests and for very tight per-move budgets where a
// single simulation would otherwise be statistically meaningless.
func WithMinSimulations(n int) Option {
	return func(e *Engine) { e.minSimulations = n }
}

// WithRNG overrides the engine's random source (tests want determinism).
func WithRNG(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// Engine runs time-bounded MCTS over a single arena-backed tree (search§3).
type Engine struct {
	store *Store

	exploration    float64
	heuristic      Heuristic
	depthCutoff    int
	minSimulations int
	rng            *rand.Rand

	simulations int
}

// NewEngine builds an Engine rooted at root.
func NewEngine(root State, opts ...Option) *Engine {
	e := &Engine{
		store:       NewStore(root),
		exploration: DefaultExploration,
		depthCutoff: DefaultRolloutDepthCutoff,
		rng:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store exposes the underlying arena, mainly so callers can Reroot it
// across moves.
func (e *Engine) Store() *Store { return e.store }

// Simulations returns how many playouts the most recent Run performed.
func (e *Engine) Simulations() int { return e.simulations }

// Run searches until deadline fires (subject to WithMinSimulations) and
// returns the chosen action for player, or nil if the root has no legal
// moves. It tries the pre-search terminal shortcut first (spec §4.4):
// if a forced winning line exists, every simulation is skipped.
func (e *Engine) Run(deadline *Deadline, player int) Action {
	e.simulations = 0

	if action, ok := e.shortcut(player); ok {
		return action
	}
	root := e.store.Node(e.store.Root()).State()

	for e.simulations < e.minSimulations || !deadline.ShouldStop() {
		e.simulate(deadline)
		e.simulations++
	}

	children := e.store.Children(e.store.Root())
	if len(children) == 0 {
		actions := root.PossibleActions()
		if len(actions) == 0 {
			return nil
		}
		return e.mostPromising(root, player, actions)
	}
	best := bestByMoveComparator(e.store, e.store.Root())
	return e.store.Node(best).Action()
}

// simulate runs one selection/expansion/playout/backpropagation cycle.
// Which player is searching only matters for the final move choice
// (Run's bestByMoveComparator call); backpropagate credits every mover
// along the path independently of that. deadline is threaded into every
// phase so a single slow iteration (a deep tree descent, a long rollout,
// or a long backprop walk) cannot run past budget uninterrupted.
func (e *Engine) simulate(deadline *Deadline) {
	leaf, state := e.selectAndExpand(deadline)
	policy := rolloutPolicy{heuristic: e.heuristic, rng: e.rng}
	terminal := playout(state, policy, e.depthCutoff, deadline)
	e.backpropagate(leaf, terminal, deadline)
}

// selectAndExpand descends the tree: at a decision node with unexpanded
// actions, adds and returns the first unexpanded child; at a fully
// expanded decision node, follows bestByUCT; at a chance node, always
// expands/reuses via ApplyAuto since there is no action to select among.
// deadline is checked at the top of the descent loop and again during
// action enumeration, so a pathologically deep or wide tree can't carry
// a single iteration past budget.
func (e *Engine) selectAndExpand(deadline *Deadline) (index, State) {
	current := e.store.Root()
	state := e.store.Node(current).State()

	for {
		if deadline.ShouldStop() {
			return current, state
		}
		if state.IsGameOver() {
			return current, state
		}
		if state.CurrentPlayer() == ChanceSentinel {
			expected := state.DetermineNextAction()
			if expected == nil {
				panic("search: chance node has no determined next action")
			}
			next := state.ApplyAuto()
			current = e.findOrAddChanceChild(current, next)
			state = next
			continue
		}

		actions := state.PossibleActions()
		if len(actions) == 0 {
			return current, state
		}
		children := e.store.Children(current)
		if len(children) < len(actions) {
			tried := make(map[Action]bool, len(children))
			for _, c := range children {
				tried[e.store.Node(c).Action()] = true
			}
			for _, a := range actions {
				if deadline.ShouldStop() {
					return current, state
				}
				if !tried[a] {
					next := state.Apply(a)
					child := e.store.AddChild(current, a, next)
					return child, next
				}
			}
		}

		current = bestByUCT(e.store, current, e.exploration)
		state = e.store.Node(current).State()
	}
}

func (e *Engine) findOrAddChanceChild(parent index, next State) index {
	hash := next.Hash()
	for _, c := range e.store.Children(parent) {
		if e.store.Node(c).State().Hash() == hash {
			return c
		}
	}
	return e.store.AddChild(parent, nil, next)
}

// backpropagate credits each node on the path from leaf to root to the
// player who chose the action leading to it (its parent's mover at the
// time), per the backpropagation phase's rule. Chance-node transitions
// credit nobody (nobody chose them) but still count as a play, so their
// statistics remain meaningful to ancestors' UCT selection. deadline is
// checked before crediting each node, so an expired deadline stops the
// walk early rather than forcing it to reach the root; plays is always
// incremented before wins on any node that is credited at all, so
// wins <= plays holds even when the walk is cut short.
func (e *Engine) backpropagate(leaf index, terminal State, deadline *Deadline) {
	credited := make(map[int]bool)
	winFor := func(p int) bool {
		if w, ok := credited[p]; ok {
			return w
		}
		w := hasWon(terminal, p, e.rng)
		credited[p] = w
		return w
	}

	current := leaf
	for current != noIndex {
		if deadline.ShouldStop() {
			return
		}
		node := e.store.Node(current)
		node.plays++
		parent := e.store.Parent(current)
		if parent != noIndex {
			mover := e.store.Node(parent).State().CurrentPlayer()
			if mover != ChanceSentinel && winFor(mover) {
				node.wins++
			}
		}
		current = parent
	}
}
