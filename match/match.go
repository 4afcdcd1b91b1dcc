package match

import (
	"time"

	"github.com/riskmcts/core/agent"
	"github.com/riskmcts/core/board"
	"github.com/riskmcts/core/config"
	"github.com/riskmcts/core/search"
	"github.com/rs/zerolog/log"
)

// Match runs one complete game between a fixed roster of Agents, one per
// player, the way the teacher's engine.Engine drives a LocalEngine game
// loop — except here every seat is filled by this module's own Agent
// rather than an HTTP-remote adversary.
type Match struct {
	id       int
	agents   []*agent.Agent
	maxTurns int
}

// Option configures a Match at construction.
type Option func(*Match)

// WithMaxTurns overrides config.MAX_TURNS, mainly useful for tests that
// want a tight upper bound on wall-clock runtime.
func WithMaxTurns(n int) Option {
	return func(m *Match) {
		if n > 0 {
			m.maxTurns = n
		}
	}
}

// New creates a Match for the given agents, one per player in seat order.
func New(id int, agents []*agent.Agent, opts ...Option) *Match {
	m := &Match{id: id, agents: agents, maxTurns: config.MAX_TURNS}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run plays the game to completion (a winner, or maxTurns reached) and
// returns the game-level record plus one move record per agent decision.
// Chance-node resolutions (dice combat) are stepped automatically and are
// not counted as turns; every agent Observes each resulting state so its
// retained tree stays correct even for seats that didn't act this step.
func (m *Match) Run(initial *board.GameState) (GameRecord, []MoveRecord) {
	state := search.State(initial)
	record := GameRecord{
		ID:             m.id,
		StartingPlayer: initial.CurrentPlayer(),
		Winner:         -1,
		StartTime:      time.Now(),
	}
	var moves []MoveRecord

	log.Info().Int("match", m.id).Int("starting_player", record.StartingPlayer).Msg("starting match")

	turn := 0
	for !state.IsGameOver() && turn < m.maxTurns {
		state = m.settleChanceNodes(state)
		if state.IsGameOver() {
			break
		}

		player := state.CurrentPlayer()
		actor := m.agents[player]
		actor.Observe(state)

		started := time.Now()
		action := actor.SelectAction()
		elapsed := time.Since(started)

		moves = append(moves, MoveRecord{
			Game:        m.id,
			Turn:        turn,
			Player:      player,
			Duration:    elapsed,
			Simulations: actor.Simulations(),
			TreeSize:    actor.TreeSize(),
		})

		state = state.Apply(action)
		for _, other := range m.agents {
			other.Observe(state)
		}
		turn++
	}

	state = m.settleChanceNodes(state)
	record.EndTime = time.Now()
	record.Turns = turn
	record.Winner = m.winner(state)

	log.Info().Int("match", m.id).Int("winner", record.Winner).Int("turns", turn).Msg("match complete")

	return record, moves
}

func (m *Match) settleChanceNodes(state search.State) search.State {
	for state.CurrentPlayer() == search.ChanceSentinel && !state.IsGameOver() {
		state = state.ApplyAuto()
		for _, other := range m.agents {
			other.Observe(state)
		}
	}
	return state
}

func (m *Match) winner(state search.State) int {
	utility := state.UtilityVector()
	for player, u := range utility {
		if u == 1.0 {
			return player
		}
	}
	return -1
}
