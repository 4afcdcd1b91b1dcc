package match

import (
	"testing"
	"time"

	"github.com/riskmcts/core/agent"
	"github.com/riskmcts/core/board"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestMatchRunsToCompletionOrTurnCap(t *testing.T) {
	m := board.NewStandardMap()
	rng := rand.New(rand.NewSource(3))
	initial := board.NewGameState(m, 2, 3, 6, rng)

	agents := []*agent.Agent{
		agent.New(0, agent.WithTurnBudget(5*time.Millisecond), agent.WithMinSimulations(1)),
		agent.New(1, agent.WithTurnBudget(5*time.Millisecond), agent.WithMinSimulations(1)),
	}
	match := New(1, agents, WithMaxTurns(40))

	record, moves := match.Run(initial)

	require.Equal(t, 1, record.ID)
	require.LessOrEqual(t, record.Turns, 40)
	require.NotEmpty(t, moves, "at least one agent decision should have been recorded")
	require.True(t, record.EndTime.After(record.StartTime) || record.EndTime.Equal(record.StartTime))
}

func TestMatchRecordsPerMoveDiagnostics(t *testing.T) {
	m := board.NewStandardMap()
	rng := rand.New(rand.NewSource(4))
	initial := board.NewGameState(m, 2, 3, 6, rng)

	agents := []*agent.Agent{
		agent.New(0, agent.WithTurnBudget(5*time.Millisecond)),
		agent.New(1, agent.WithTurnBudget(5*time.Millisecond)),
	}
	match := New(2, agents, WithMaxTurns(5))

	_, moves := match.Run(initial)
	for _, mv := range moves {
		require.GreaterOrEqual(t, mv.Simulations, 0)
		require.GreaterOrEqual(t, mv.TreeSize, 0)
	}
}
