// Package config collects the tunable constants the searcher and agent
// layers are built around, following the teacher's meta package: small,
// named constants rather than a parsed config file, since this module has
// no deployment-time configuration surface of its own.
package config

import "time"

// TURN_BUDGET is the wall-clock budget an Agent gets per selected action,
// the moral equivalent of the teacher's meta.EPISODES but expressed as a
// duration since the searcher is deadline-driven rather than episode-driven.
const TURN_BUDGET = 5 * time.Second

// SAFETY_BUFFER mirrors search.DefaultSafetyBuffer; kept here too so
// callers configuring a custom Deadline don't have to reach into the
// search package for the default.
const SAFETY_BUFFER = 100 * time.Millisecond

// MIN_SIMULATIONS guards against a turn budget so small the deadline fires
// before even one simulation completes, matching meta.EPISODES's role of
// guaranteeing a minimum amount of search work.
const MIN_SIMULATIONS = 1

// ROLLOUT_CUTOFF is the default rollout depth, meta.WITH_CUTOFF's analogue.
const ROLLOUT_CUTOFF = 50

// EXPLORATION is the default UCT exploration constant, c = sqrt(2).
const EXPLORATION = 1.4142135623730951

// MAX_TURNS bounds a single match the way meta.MAX_TURNS bounds the
// teacher's engine loop, so a degenerate game (or a rules bug) can't spin
// forever.
const MAX_TURNS = 500

// STARTING_TROOPS and StartingPool seed a fresh game: initial per-territory
// garrison and each player's initial-placement pool, scaled for a 2-6 player
// classic board per the standard rulebook.
const STARTING_TROOPS = 1

// StartingPool returns the initial placement pool for a game with the given
// number of players, per the standard rulebook's sliding scale.
func StartingPool(numPlayers int) int {
	switch numPlayers {
	case 2:
		return 40
	case 3:
		return 35
	case 4:
		return 30
	case 5:
		return 25
	default:
		return 20
	}
}
