package evaluator

// Position is the coarse category a state falls into for the purpose of
// picking an evaluator weight preset (spec §4.1).
type Position int

const (
	Balanced Position = iota
	SignificantAdvantage
	BehindInTroops
)

func (p Position) String() string {
	switch p {
	case SignificantAdvantage:
		return "significant-advantage"
	case BehindInTroops:
		return "behind-in-troops"
	default:
		return "balanced"
	}
}

// Weights are the per-metric coefficients of the evaluator's weighted
// convex combination. Card is an expansion sub-metric (§D.3 of
// SPEC_FULL.md) absent from spec.md's table; it is zero in every canonical
// preset so it never perturbs the scores spec.md's worked examples expect.
type Weights struct {
	Territory float64
	Troop     float64
	Continent float64
	Attack    float64
	Card      float64
}

// Sum returns the sum of all weights, the normalizer for the convex
// combination (spec §4.1: score = Σ wᵢ·metricᵢ / Σ wᵢ).
func (w Weights) Sum() float64 {
	return w.Territory + w.Troop + w.Continent + w.Attack + w.Card
}

// PresetSet is a table of the three position-adaptive weight triples,
// keyed by Position — "a small enum -> constant-array table, not scattered
// literals" per the spec's Design Notes.
type PresetSet [3]Weights

// Canonical is the weight scheme spec §4.1/§9 fixes as canonical: the
// 0.2/0.3/0.1/0.4 balanced split, resolving the spec's own Open Question
// among the source's several balanced-weight iterations.
var Canonical = PresetSet{
	Balanced:             {Territory: 0.20, Troop: 0.30, Continent: 0.10, Attack: 0.40},
	SignificantAdvantage: {Territory: 0.05, Troop: 0.10, Continent: 0.05, Attack: 0.80},
	BehindInTroops:       {Territory: 0.30, Troop: 0.40, Continent: 0.20, Attack: 0.10},
}

// AlternateBalanced30 is one of the other source iterations spec §9 notes
// (0.3/0.3/0.2/0.2 balanced split), exposed as a configurable preset per
// Design Notes ("implementations may expose the others as configurable
// presets") without disturbing Canonical's default behavior.
var AlternateBalanced30 = PresetSet{
	Balanced:             {Territory: 0.30, Troop: 0.30, Continent: 0.20, Attack: 0.20},
	SignificantAdvantage: Canonical[SignificantAdvantage],
	BehindInTroops:       Canonical[BehindInTroops],
}

// PresetEarlyMidLate recovers the Java source's game-progress-staged
// weighting (highroller.agents.MCTSAgent.selectEarlyGameAction /
// selectMidGameAction / selectLateGameAction), offered as an alternate
// preset set (SPEC_FULL.md §D.2) — indexed the same way as Canonical so
// callers can swap it in via WithPresets, but not used by default since the
// position-adaptive table already supersedes it for most of its value.
var PresetEarlyMidLate = PresetSet{
	Balanced:             {Territory: 0.30, Troop: 0.30, Continent: 0.10, Attack: 0.30},
	SignificantAdvantage: {Territory: 0.30, Troop: 0.20, Continent: 0.10, Attack: 0.40},
	BehindInTroops:       {Territory: 0.40, Troop: 0.20, Continent: 0.30, Attack: 0.10},
}

func (p PresetSet) forPosition(pos Position) Weights {
	return p[pos]
}
