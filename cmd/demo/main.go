// Command demo plays a handful of complete games between two agents and
// prints a color-coded summary, the minimal entry point analogous to the
// teacher's main.go speedup experiment runner.
package main

import (
	"fmt"
	"time"

	"github.com/riskmcts/core/agent"
	"github.com/riskmcts/core/board"
	"github.com/riskmcts/core/match"
	"github.com/muesli/termenv"
	"golang.org/x/exp/rand"
)

const (
	numGames   = 5
	turnBudget = 250 * time.Millisecond
)

func main() {
	profile := termenv.EnvColorProfile()
	wins := map[int]int{0: 0, 1: 0, -1: 0}

	for i := 0; i < numGames; i++ {
		record := playOneGame(i)
		wins[record.Winner]++
		fmt.Printf("game %d: %s turns=%d\n", record.ID, colorizeWinner(profile, record.Winner), record.Turns)
	}

	fmt.Printf("\nresults over %d games: player0=%d player1=%d undecided=%d\n",
		numGames, wins[0], wins[1], wins[-1])
}

func playOneGame(id int) match.GameRecord {
	m := board.NewStandardMap()
	rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	initial := board.NewGameState(m, 2, 3, 30, rng)

	agents := []*agent.Agent{
		agent.New(0, agent.WithTurnBudget(turnBudget)),
		agent.New(1, agent.WithTurnBudget(turnBudget)),
	}
	game := match.New(id, agents)
	record, _ := game.Run(initial)
	return record
}

func colorizeWinner(profile termenv.Profile, winner int) string {
	switch winner {
	case -1:
		return termenv.String("winner=none").Foreground(profile.Color("3")).String()
	default:
		label := fmt.Sprintf("winner=%d", winner)
		return termenv.String(label).Foreground(profile.Color("2")).Bold().String()
	}
}
