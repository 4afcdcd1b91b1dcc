package search

import "github.com/chewxy/math32"

// DefaultExploration is the UCT exploration constant c, the teacher's
// C_SQUARED (searcher/mod.go) expressed as sqrt(2) rather than its square,
// matching spec §4.3's "UCT = w/n + c*sqrt(ln N / n), c = sqrt(2) default".
const DefaultExploration = 1.4142135623730951

// uctValue computes the UCT selection value for a child with w wins and n
// plays, whose parent has N plays (N = n at the root, per spec). The
// search runs until a wall-clock deadline fires thousands of times a
// second, so the sqrt/log pair — the hottest expression in the whole
// engine — uses the pack's float32 fast-math library (chewxy/math32,
// grounded on sw965-crow) rather than math.Sqrt/math.Log; nothing
// downstream needs more than float32 precision for an ordering decision.
func uctValue(w, n, parentN float64, c float64) float64 {
	if n == 0 {
		n = 1
	}
	exploitation := w / n
	exploration := float64(c) * float64(math32.Sqrt(math32.Log(float32(parentN))/float32(n)))
	return exploitation + exploration
}

// selectionLess orders two sibling nodes for in-tree selection: the
// maximizer of UCT wins, with a stable-hash tie-break so that selection is
// deterministic given identical statistics (spec §4.3).
func selectionLess(store *Store, parentPlays float64, c float64) func(a, b index) bool {
	return func(a, b index) bool {
		na, nb := store.Node(a), store.Node(b)
		va := uctValue(float64(na.wins), float64(na.plays), parentPlays, c)
		vb := uctValue(float64(nb.wins), float64(nb.plays), parentPlays, c)
		if va != vb {
			return va > vb // descending by UCT: "less" means "comes first"
		}
		return na.state.Hash() < nb.state.Hash()
	}
}

// bestByUCT returns the child of parent maximizing UCT, breaking ties by
// the smaller state hash for determinism.
func bestByUCT(store *Store, parent index, c float64) index {
	children := store.Children(parent)
	parentPlays := float64(store.Node(parent).plays)
	if parentPlays == 0 {
		parentPlays = float64(store.Node(children[0]).plays)
		if parentPlays == 0 {
			parentPlays = 1
		}
	}
	less := selectionLess(store, parentPlays, c)
	best := children[0]
	for _, child := range children[1:] {
		if less(child, best) {
			best = child
		}
	}
	return best
}

// moveLess implements the final move-choice rule (spec §4.6): primary key
// plays (the MCTS-canonical "robust child" criterion), then wins to break
// ties among equally explored moves, then state hash for a fully
// deterministic choice.
func moveLess(store *Store) func(a, b index) bool {
	return func(a, b index) bool {
		na, nb := store.Node(a), store.Node(b)
		if na.plays != nb.plays {
			return na.plays > nb.plays
		}
		if na.wins != nb.wins {
			return na.wins > nb.wins
		}
		return na.state.Hash() < nb.state.Hash()
	}
}

// bestByMoveComparator returns the argmax child of parent under the move
// comparator.
func bestByMoveComparator(store *Store, parent index) index {
	children := store.Children(parent)
	best := children[0]
	less := moveLess(store)
	for _, child := range children[1:] {
		// child "wins" the comparison (comes before best) if !less(best, child)
		// and less(child, best); use moveLess directly since it is a strict
		// total order under the invariants above.
		if less(child, best) {
			best = child
		}
	}
	return best
}

// worstByMoveComparator returns the argmin child of parent under the move
// comparator: fewest plays, then fewest wins, then larger state hash (the
// exact reverse of moveLess's order). The
// pre-search shortcut uses this at an opponent's decision node, where the
// comparator's descending order (plays credited to whoever chose that
// child) is walked ascending instead to model an adversarial opponent.
func worstByMoveComparator(store *Store, parent index) index {
	children := store.Children(parent)
	worst := children[0]
	less := moveLess(store)
	for _, child := range children[1:] {
		if less(worst, child) {
			worst = child
		}
	}
	return worst
}
