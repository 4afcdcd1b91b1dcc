package search

import "golang.org/x/exp/rand"

// countState is a minimal two-player race game used to exercise the search
// core without depending on the board package: the state is a single
// counter in [0,limit]. Player 0 wins by driving it to limit, player 1 wins
// by driving it to 0. Turns alternate strictly.
type countAction int

type countState struct {
	value, limit int
	mover        int // 0 or 1
	moves        int
	prev         Action
}

func newCountState(value, limit int) *countState {
	return &countState{value: value, limit: limit, mover: 0}
}

func (s *countState) clone() *countState {
	c := *s
	return &c
}

func (s *countState) PossibleActions() []Action {
	if s.IsGameOver() {
		return nil
	}
	var actions []Action
	if s.value > 0 {
		actions = append(actions, countAction(-1))
	}
	if s.value < s.limit {
		actions = append(actions, countAction(1))
	}
	return actions
}

func (s *countState) Apply(a Action) State {
	next := s.clone()
	next.value += int(a.(countAction))
	next.mover = 1 - s.mover
	next.moves++
	next.prev = a
	return next
}

func (s *countState) ApplyAuto() State { return s }

func (s *countState) DetermineNextAction() Action {
	actions := s.PossibleActions()
	if len(actions) == 0 {
		return nil
	}
	return actions[0]
}

func (s *countState) CurrentPlayer() int { return s.mover }
func (s *countState) PreviousAction() Action { return s.prev }
func (s *countState) IsGameOver() bool       { return s.value <= 0 || s.value >= s.limit }

func (s *countState) IsValidAction(a Action) bool {
	for _, candidate := range s.PossibleActions() {
		if candidate == a {
			return true
		}
	}
	return false
}

func (s *countState) UtilityVector() []float64 {
	v := make([]float64, 2)
	switch {
	case s.value <= 0:
		v[1] = 1
	case s.value >= s.limit:
		v[0] = 1
	}
	return v
}

func (s *countState) HeuristicVector() []float64 {
	frac := float64(s.value) / float64(s.limit)
	return []float64{frac, 1 - frac}
}

func (s *countState) Hash() uint64 {
	return uint64(s.value)*1000 + uint64(s.moves)*10 + uint64(s.mover)
}

// mockRiskState wraps countState's mechanics but also satisfies RiskState,
// letting rollout/shortcut tests exercise the heuristic-guided code paths.
// Board() is never called by those paths in these tests.
type mockRiskState struct {
	*countState
}

func (s mockRiskState) Apply(a Action) State {
	return mockRiskState{s.countState.Apply(a).(*countState)}
}
func (s mockRiskState) Board() BoardView { return nil }

// favorHigherValue is a Heuristic that scores states by how close value is
// to limit — used to verify the rollout/shortcut policies actually prefer
// higher-scoring successors when a heuristic is configured.
func favorHigherValue(state RiskState, player int) float64 {
	s := state.(mockRiskState)
	if player == 0 {
		return float64(s.value) / float64(s.limit)
	}
	return 1 - float64(s.value)/float64(s.limit)
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
