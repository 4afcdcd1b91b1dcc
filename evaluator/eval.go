// Package evaluator implements the adaptive Risk position evaluator (spec
// §4.1): a pure function over a Risk state and player id returning a score
// in [0,1], with every sub-metric memoized for the lifetime of one
// Evaluator instance. Grounded on the teacher's game/eval.go
// (territory/troop/bonus scoring), generalized to the spec's
// position-adaptive weighted combination using the attack-potential and
// continent-score logic recovered from _examples/original_source's
// highroller.agents.RiskMetricsCalculator / MCTSAgent.
package evaluator

import (
	"math"

	"github.com/riskmcts/core/search"
	"gonum.org/v1/gonum/floats"
)

// Epsilon guards the position-ratio denominators against division by zero
// (spec §4.1: "denominator must never be zero; when it is, treat the ratio
// as if the player dominates").
const Epsilon = 1e-9

// significantAdvantageThreshold / behindInTroopsThreshold are the position
// detection thresholds fixed by spec §4.1.
const (
	significantAdvantageThreshold = 1.5
	behindInTroopsThreshold       = 0.8
)

// Option configures an Evaluator at construction time.
type Option func(*Evaluator)

// WithPresets swaps the canonical weight table for an alternate one (e.g.
// evaluator.AlternateBalanced30 or evaluator.PresetEarlyMidLate).
func WithPresets(p PresetSet) Option {
	return func(e *Evaluator) { e.presets = p }
}

// WithCardScore enables the card-trade-in sub-metric (SPEC_FULL.md §D.3)
// with the given weight, added on top of whichever preset is selected.
func WithCardScore(weight float64) Option {
	return func(e *Evaluator) { e.cardWeight = weight }
}

// Evaluator scores one (state, player) pair. It is short-lived by design
// (spec §5): construct one per evaluation, let it go.
type Evaluator struct {
	state      search.RiskState
	player     int
	presets    PresetSet
	cardWeight float64

	cache
}

// cache holds every value EvaluatorCache (spec §3) memoizes, computed once
// on first use and never invalidated for this instance's lifetime.
type cache struct {
	computed bool

	myTerritories    []int
	otherTerritories []int
	totalTroops      int
	myTroops         int
	otherTroops      int

	territoryRatio float64
	troopRatio     float64
	position       Position

	territoryScore float64
	troopScore     float64
	continentScore float64

	attackByTerritory map[int]float64
	attackPotential   float64

	threatLevel int
	cardScore   float64

	score    float64
	hasScore bool
}

// New constructs an Evaluator for state and player. A nil state or a
// negative player id is a precondition violation (spec §7): fatal to the
// caller, so it panics rather than returning an error.
func New(state search.RiskState, player int, opts ...Option) *Evaluator {
	if state == nil {
		panic("evaluator: nil state")
	}
	if player < 0 {
		panic("evaluator: negative player id")
	}
	e := &Evaluator{
		state:   state,
		player:  player,
		presets: Canonical,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score returns the evaluator's score in [0,1] for the configured
// (state, player), computing and caching all sub-metrics on first call.
func (e *Evaluator) Score() float64 {
	e.ensureComputed()
	return e.score
}

// Position returns the detected position category.
func (e *Evaluator) Position() Position {
	e.ensureComputed()
	return e.position
}

// TerritoryScore, TroopScore, ContinentScore, AttackPotential expose the
// individual sub-metrics (all in [0,1]) for callers that want them without
// the weighted combination, e.g. tests. The search package's rollout and
// shortcut ordering use the weighted Score, not these.
func (e *Evaluator) TerritoryScore() float64 { e.ensureComputed(); return e.territoryScore }
func (e *Evaluator) TroopScore() float64     { e.ensureComputed(); return e.troopScore }
func (e *Evaluator) ContinentScore() float64 { e.ensureComputed(); return e.continentScore }
func (e *Evaluator) AttackPotential() float64 { e.ensureComputed(); return e.attackPotential }

// ThreatLevel is an expansion sub-metric (SPEC_FULL.md §D.4): enemy troops
// summed over every border between one of the player's territories and an
// enemy neighbor, a byproduct of the
// attack-potential neighbor walk exposed for diagnostics.
func (e *Evaluator) ThreatLevel() int { e.ensureComputed(); return e.threatLevel }

func (e *Evaluator) ensureComputed() {
	if e.computed {
		return
	}
	e.computed = true
	board := e.state.Board()
	e.partitionTerritoriesAndTroops(board)
	e.territoryScore = safeDiv(float64(len(e.myTerritories)), float64(board.TotalTerritories()))
	e.troopScore = safeDiv(float64(e.myTroops), float64(e.totalTroops))
	e.territoryRatio = float64(len(e.myTerritories)) / math.Max(float64(len(e.otherTerritories)), Epsilon)
	e.troopRatio = float64(e.myTroops) / math.Max(float64(e.otherTroops), Epsilon)
	e.position = detectPosition(e.territoryRatio, e.troopRatio)
	e.continentScore = continentScore(board, e.player)
	e.attackByTerritory, e.attackPotential, e.threatLevel = attackPotential(board, e.player, e.position)
	if e.cardWeight > 0 {
		e.cardScore = cardScore(board, e.player)
	}
	e.score = e.combine()
}

func (e *Evaluator) partitionTerritoriesAndTroops(board search.BoardView) {
	e.totalTroops = board.TotalTroops()
	for _, t := range board.TerritoryIDs() {
		if board.Owner(t) == e.player {
			e.myTerritories = append(e.myTerritories, t)
			e.myTroops += board.Troops(t)
		} else {
			e.otherTerritories = append(e.otherTerritories, t)
			e.otherTroops += board.Troops(t)
		}
	}
}

func (e *Evaluator) combine() float64 {
	w := e.presets.forPosition(e.position)
	w.Card = e.cardWeight

	metrics := []float64{e.territoryScore, e.troopScore, e.continentScore, e.attackPotential, e.cardScore}
	weights := []float64{w.Territory, w.Troop, w.Continent, w.Attack, w.Card}

	weightSum := floats.Sum(weights)
	if weightSum == 0 {
		return 0
	}
	weighted := make([]float64, len(metrics))
	for i := range metrics {
		weighted[i] = metrics[i] * weights[i]
	}
	return floats.Sum(weighted) / weightSum
}

func detectPosition(territoryRatio, troopRatio float64) Position {
	significantAdvantage := territoryRatio > significantAdvantageThreshold && troopRatio > significantAdvantageThreshold
	if significantAdvantage {
		return SignificantAdvantage
	}
	if troopRatio < behindInTroopsThreshold {
		return BehindInTroops
	}
	return Balanced
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
