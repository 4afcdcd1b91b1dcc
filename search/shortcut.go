package search

// maxShortcutDepth bounds the pre-search descent so a cyclic or
// very-long-before-terminal game can't spin forever looking for a forced
// win that isn't actually there.
const maxShortcutDepth = 60

// shortcut implements the pre-search terminal shortcut: before running any
// simulations, it walks the existing tree (whatever was retained across the
// last re-rooting) instead of a fresh greedy descent, so statistics
// accumulated on prior turns actually get reused. At each decision node
// with more than one legal action and at least one child already in the
// tree, the choice is the move comparator's argmax — descending (best
// first) when it is the engine's own player to act, ascending (worst
// first) when it is an opponent, modeling an adversarial choice rather
// than one that cooperates with the searching player. A node with no tree
// evidence yet (a fresh engine, or a line that has run past whatever was
// retained) falls back to heuristic-ranked successor scoring, same as the
// very first turn when nothing has been explored at all. A single-option
// node needs no comparator or heuristic: DetermineNextAction names the
// only move there is. If the line reaches a state where player has
// already won, the first action of the line is returned — no simulation
// needed. A chance node anywhere along the way, or a line that doesn't end
// in a win, means no shortcut applies: the second result is then false and
// the first is the first action the walk took (nil if it took none).
func (e *Engine) shortcut(player int) (Action, bool) {
	current := e.store.Root()
	state := e.store.Node(current).State()
	var first Action

	for depth := 0; depth < maxShortcutDepth; depth++ {
		if state.CurrentPlayer() == ChanceSentinel {
			return first, false
		}
		if state.IsGameOver() {
			break
		}

		actions := state.PossibleActions()
		if len(actions) == 0 {
			return first, false
		}

		var action Action
		var children []index
		if current != noIndex {
			children = e.store.Children(current)
		}
		switch {
		case len(actions) == 1:
			action = state.DetermineNextAction()
		case len(children) > 0:
			if state.CurrentPlayer() == player {
				action = e.store.Node(bestByMoveComparator(e.store, current)).Action()
			} else {
				action = e.store.Node(worstByMoveComparator(e.store, current)).Action()
			}
		default:
			action = e.mostPromising(state, player, actions)
		}

		if first == nil {
			first = action
		}
		next := state.Apply(action)
		if current != noIndex {
			current = e.matchChild(current, action, next)
		}
		state = next
		if state.CurrentPlayer() == ChanceSentinel {
			return first, false
		}
	}

	if state.IsGameOver() && scoreFromVector(state.UtilityVector(), player) == 1.0 {
		return first, true
	}
	return first, false
}

// matchChild returns the child of parent reached by action landing on
// next, or noIndex if no such child is already in the tree.
func (e *Engine) matchChild(parent index, action Action, next State) index {
	for _, c := range e.store.Children(parent) {
		node := e.store.Node(c)
		if node.Action() == action && node.State().Hash() == next.Hash() {
			return c
		}
	}
	return noIndex
}

// mostPromising ranks actions by successor heuristic score when state is a
// RiskState and a Heuristic is configured ("descending evaluator score"
// ordering), falling back to the move comparator's stable hash order for
// everything else. Used by Run's greedy one-ply fallback when the root is
// still a leaf at the deadline (no tree evidence to choose from at all).
func (e *Engine) mostPromising(state State, player int, actions []Action) Action {
	riskState, ok := state.(RiskState)
	if !ok || e.heuristic == nil {
		return actions[lowestHashIndex(state, actions)]
	}

	best := actions[0]
	bestScore := -1.0
	for _, a := range actions {
		successor := riskState.Apply(a)
		successorRisk, ok := successor.(RiskState)
		if !ok {
			continue
		}
		score := e.heuristic(successorRisk, player)
		if score > bestScore {
			bestScore = score
			best = a
		}
	}
	return best
}

func lowestHashIndex(state State, actions []Action) int {
	best := 0
	var bestHash uint64
	for i, a := range actions {
		successor := state.Apply(a)
		h := successor.Hash()
		if i == 0 || h < bestHash {
			bestHash = h
			best = i
		}
	}
	return best
}
