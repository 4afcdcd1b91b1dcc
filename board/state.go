package board

import (
	"github.com/cespare/xxhash/v2"
	"github.com/riskmcts/core/search"
	"golang.org/x/exp/rand"
)

// Phase is the current stage of a player's turn, matching the teacher's
// game/state.go Phase enum (InitialPlacement/Reinforcement/Attack/Maneuver).
type Phase int

const (
	InitialPlacementPhase Phase = iota
	ReinforcementPhase
	AttackPhase
	ManeuverPhase
)

// GameState is the concrete Risk rules engine. It satisfies
// search.RiskState: the search core and evaluator only ever see it through
// that interface.
type GameState struct {
	m     *Map
	rules Rules
	rng   *rand.Rand

	owners []int // territory -> player, -1 unowned
	troops []int // territory -> troop count

	numPlayers    int
	currentPlayer int
	phase         Phase

	initialPool   []int // remaining initial-placement troops per player
	troopsToPlace int

	deck  *Deck
	hands [][]Card

	exchanges         int
	conqueredThisTurn bool

	// pendingAttack holds the in-progress combat when the state is a
	// chance node (CurrentPlayer() == search.ChanceSentinel): dice are
	// resolved one round at a time via ApplyAuto.
	pendingAttack *combat

	previous Action
}

type combat struct {
	attacker int // player who declared the attack
	from, to int
}

// NewGameState seeds a fresh game on m for numPlayers players, assigning
// territories round-robin (teacher's AssignTerritoriesEqually) with
// startingTroops on each, and starting_pool additional troops per player to
// place during InitialPlacementPhase.
func NewGameState(m *Map, numPlayers, startingTroops, startingPool int, rng *rand.Rand) *GameState {
	gs := &GameState{
		m:             m,
		rules:         NewStandardRules(),
		rng:           rng,
		owners:        make([]int, len(m.Territories)),
		troops:        make([]int, len(m.Territories)),
		numPlayers:    numPlayers,
		currentPlayer: 0,
		phase:         InitialPlacementPhase,
		initialPool:   make([]int, numPlayers),
		deck:          NewDeck(len(m.Territories), rng),
		hands:         make([][]Card, numPlayers),
	}
	for i := range gs.initialPool {
		gs.initialPool[i] = startingPool
	}
	for id := range m.Territories {
		owner := id % numPlayers
		gs.owners[id] = owner
		gs.troops[id] = startingTroops
	}
	return gs
}

func (gs *GameState) clone() *GameState {
	c := *gs
	c.owners = append([]int{}, gs.owners...)
	c.troops = append([]int{}, gs.troops...)
	c.initialPool = append([]int{}, gs.initialPool...)
	c.hands = make([][]Card, len(gs.hands))
	for i, h := range gs.hands {
		c.hands[i] = append([]Card{}, h...)
	}
	c.deck = gs.deck.Clone()
	if gs.pendingAttack != nil {
		pa := *gs.pendingAttack
		c.pendingAttack = &pa
	}
	return &c
}

// Board exposes the read-only search.BoardView surface.
func (gs *GameState) Board() search.BoardView { return boardView{gs} }

func (gs *GameState) CurrentPlayer() int {
	if gs.pendingAttack != nil {
		return search.ChanceSentinel
	}
	return gs.currentPlayer
}

func (gs *GameState) PreviousAction() search.Action { return gs.previous }

func (gs *GameState) nextPlayer() int {
	return (gs.currentPlayer + 1) % gs.numPlayers
}

// PossibleActions enumerates legal moves for the current phase. Chance
// nodes (pendingAttack != nil) have none; callers must call ApplyAuto.
func (gs *GameState) PossibleActions() []search.Action {
	if gs.pendingAttack != nil {
		return nil
	}
	var actions []Action
	switch gs.phase {
	case InitialPlacementPhase:
		actions = gs.initialPlacementMoves()
	case ReinforcementPhase:
		actions = gs.reinforcementMoves()
	case AttackPhase:
		actions = gs.attackMoves()
	case ManeuverPhase:
		actions = gs.maneuverMoves()
	}
	out := make([]search.Action, len(actions))
	for i, a := range actions {
		out[i] = a
	}
	return out
}

func (gs *GameState) initialPlacementMoves() []Action {
	if gs.initialPool[gs.currentPlayer] <= 0 {
		return nil
	}
	var moves []Action
	for t, owner := range gs.owners {
		if owner == gs.currentPlayer {
			moves = append(moves, Action{Type: Reinforce, To: t, Troops: 1})
		}
	}
	return moves
}

func (gs *GameState) reinforcementMoves() []Action {
	remaining := gs.troopsToPlace
	if remaining <= 0 {
		return nil
	}
	var moves []Action
	amounts := uniqueInts(1, remaining/2, remaining)
	for _, t := range gs.borderTerritories(gs.currentPlayer) {
		for _, n := range amounts {
			if n > 0 && n <= remaining {
				moves = append(moves, Action{Type: Reinforce, To: t, Troops: n})
			}
		}
	}
	if len(moves) == 0 {
		// no border territories (isolated continent sweep); place everything on the first owned territory
		for t, owner := range gs.owners {
			if owner == gs.currentPlayer {
				moves = append(moves, Action{Type: Reinforce, To: t, Troops: remaining})
				break
			}
		}
	}
	return moves
}

func (gs *GameState) attackMoves() []Action {
	var moves []Action
	for t, owner := range gs.owners {
		if owner != gs.currentPlayer || gs.troops[t] <= 1 {
			continue
		}
		for _, n := range gs.m.Neighbors(t) {
			if gs.owners[n] != gs.currentPlayer {
				moves = append(moves, Action{Type: Attack, From: t, To: n})
			}
		}
	}
	moves = append(moves, Action{Type: Pass})
	return moves
}

func (gs *GameState) maneuverMoves() []Action {
	var moves []Action
	for from, owner := range gs.owners {
		if owner != gs.currentPlayer || gs.troops[from] <= 1 {
			continue
		}
		maxMove := gs.troops[from] - 1
		amounts := uniqueInts(1, maxMove/2, maxMove)
		for to, toOwner := range gs.owners {
			if toOwner != gs.currentPlayer || to == from {
				continue
			}
			if !gs.connected(from, to) {
				continue
			}
			for _, n := range amounts {
				if n > 0 {
					moves = append(moves, Action{Type: Maneuver, From: from, To: to, Troops: n})
				}
			}
		}
	}
	moves = append(moves, Action{Type: Pass})
	return moves
}

func (gs *GameState) borderTerritories(player int) []int {
	var ids []int
	for t, owner := range gs.owners {
		if owner != player {
			continue
		}
		for _, n := range gs.m.Neighbors(t) {
			if gs.owners[n] != player {
				ids = append(ids, t)
				break
			}
		}
	}
	return ids
}

func (gs *GameState) connected(from, to int) bool {
	if from == to {
		return true
	}
	player := gs.owners[from]
	visited := make(map[int]bool)
	queue := []int{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		for _, n := range gs.m.Neighbors(cur) {
			if gs.owners[n] != player {
				continue
			}
			if n == to {
				return true
			}
			if !visited[n] {
				queue = append(queue, n)
			}
		}
	}
	return false
}

func uniqueInts(values ...int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// IsValidAction reports whether action is currently legal.
func (gs *GameState) IsValidAction(action search.Action) bool {
	a, ok := action.(Action)
	if !ok {
		return false
	}
	for _, candidate := range gs.PossibleActions() {
		if candidate.(Action) == a {
			return true
		}
	}
	return false
}

// DetermineNextAction returns a cheap deterministic default move, used by
// callers that want a single plausible continuation without enumerating
// and scoring every option (e.g. the terminal shortcut's descent through
// single-option forced moves). On a chance node (pendingAttack != nil) it
// names the pending combat being resolved rather than delegating to
// PossibleActions, which has no decision-node moves to offer there.
func (gs *GameState) DetermineNextAction() search.Action {
	if gs.pendingAttack != nil {
		return Action{Type: AutoResolve, From: gs.pendingAttack.from, To: gs.pendingAttack.to}
	}
	actions := gs.PossibleActions()
	if len(actions) == 0 {
		return nil
	}
	return actions[0]
}

// Apply executes action, returning the resulting state. Attacks transition
// into a chance node rather than resolving immediately; callers must drive
// ApplyAuto until CurrentPlayer leaves the chance sentinel.
func (gs *GameState) Apply(action search.Action) search.State {
	a := action.(Action)
	next := gs.clone()
	next.previous = a

	switch gs.phase {
	case InitialPlacementPhase:
		next.applyInitialPlacement(a)
	case ReinforcementPhase:
		next.applyReinforcement(a)
	case AttackPhase:
		next.applyAttackPhaseAction(a)
	case ManeuverPhase:
		next.applyManeuver(a)
	}
	return next
}

func (gs *GameState) applyInitialPlacement(a Action) {
	gs.troops[a.To] += a.Troops
	gs.initialPool[gs.currentPlayer] -= a.Troops
	if gs.initialPool[gs.currentPlayer] <= 0 {
		allDone := true
		for _, remaining := range gs.initialPool {
			if remaining > 0 {
				allDone = false
				break
			}
		}
		if allDone {
			gs.phase = ReinforcementPhase
			gs.calculateTroopsToPlace()
			return
		}
	}
	gs.currentPlayer = gs.advancePastDonePlayers(gs.nextPlayer())
}

func (gs *GameState) advancePastDonePlayers(start int) int {
	p := start
	for i := 0; i < gs.numPlayers; i++ {
		if gs.initialPool[p] > 0 {
			return p
		}
		p = (p + 1) % gs.numPlayers
	}
	return start
}

func (gs *GameState) applyReinforcement(a Action) {
	gs.troops[a.To] += a.Troops
	gs.troopsToPlace -= a.Troops
	if gs.troopsToPlace <= 0 {
		gs.phase = AttackPhase
	}
}

func (gs *GameState) applyAttackPhaseAction(a Action) {
	if a.Type == Pass {
		gs.phase = ManeuverPhase
		return
	}
	gs.pendingAttack = &combat{attacker: gs.currentPlayer, from: a.From, to: a.To}
}

func (gs *GameState) applyManeuver(a Action) {
	if a.Type != Pass {
		gs.troops[a.From] -= a.Troops
		gs.troops[a.To] += a.Troops
	}
	gs.endTurn()
}

func (gs *GameState) endTurn() {
	if gs.conqueredThisTurn {
		if card, ok := gs.deck.Draw(); ok {
			gs.hands[gs.currentPlayer] = append(gs.hands[gs.currentPlayer], card)
		}
		gs.conqueredThisTurn = false
	}
	gs.phase = ReinforcementPhase
	gs.currentPlayer = gs.nextPlayer()
	gs.handleCardTrading()
	gs.calculateTroopsToPlace()
}

func (gs *GameState) handleCardTrading() {
	hand := gs.hands[gs.currentPlayer]
	for len(hand) >= 3 {
		set := findSet(hand)
		if set == nil {
			break
		}
		hand = gs.tradeInSet(hand, set)
	}
	gs.hands[gs.currentPlayer] = hand
}

func (gs *GameState) tradeInSet(hand []Card, indices []int) []Card {
	var traded []Card
	ordered := append([]int{}, indices...)
	for i := len(ordered) - 1; i >= 0; i-- {
		for j := 0; j < i; j++ {
			if ordered[j] < ordered[j+1] {
				ordered[j], ordered[j+1] = ordered[j+1], ordered[j]
			}
		}
	}
	for _, idx := range ordered {
		traded = append(traded, hand[idx])
		hand = append(hand[:idx], hand[idx+1:]...)
	}
	gs.deck.Discard(traded...)
	gs.exchanges++
	gs.troopsToPlace += tradeInArmies(gs.exchanges)

	granted := 0
	for _, c := range traded {
		if granted >= 2 {
			break
		}
		if c.TerritoryID >= 0 && gs.owners[c.TerritoryID] == gs.currentPlayer {
			gs.troops[c.TerritoryID] += 2
			granted += 2
		}
	}
	return hand
}

func (gs *GameState) calculateTroopsToPlace() {
	owned := 0
	for _, owner := range gs.owners {
		if owner == gs.currentPlayer {
			owned++
		}
	}
	troops := owned / 3
	if troops < 3 {
		troops = 3
	}
	for _, c := range gs.m.Continents {
		if continentFullyOwnedBy(gs.m, c.ID, gs.owners, gs.currentPlayer) {
			troops += c.Bonus
		}
	}
	gs.troopsToPlace = troops
}

func continentFullyOwnedBy(m *Map, continentID int, owners []int, player int) bool {
	for _, t := range m.ContinentMembers(continentID) {
		if owners[t] != player {
			return false
		}
	}
	return true
}

// ApplyAuto resolves one round of pending combat dice, a chance outcome
// driven by the shared rng rather than a player choice (spec's
// CurrentPlayer() < 0 automatic-resolution nodes).
func (gs *GameState) ApplyAuto() search.State {
	next := gs.clone()
	if a, ok := gs.DetermineNextAction().(Action); ok {
		next.previous = a
	}
	next.resolveCombatRound()
	return next
}

func (gs *GameState) resolveCombatRound() {
	pa := gs.pendingAttack
	attackerTroops := gs.troops[pa.from] - 1
	defenderTroops := gs.troops[pa.to]

	attackerDice := gs.rules.MaxAttackDice(attackerTroops)
	defenderDice := gs.rules.MaxDefendDice(defenderTroops)
	attackerRolls := rollDice(gs.rng, attackerDice)
	defenderRolls := rollDice(gs.rng, defenderDice)
	attackerLosses, defenderLosses := gs.rules.Resolve(attackerRolls, defenderRolls)

	attackerTroops -= attackerLosses
	defenderTroops -= defenderLosses
	gs.troops[pa.from] = attackerTroops + 1

	switch {
	case defenderTroops <= 0:
		moved := gs.troops[pa.from] - 1
		gs.troops[pa.from] -= moved
		gs.troops[pa.to] = moved
		gs.owners[pa.to] = pa.attacker
		gs.conqueredThisTurn = true
		gs.pendingAttack = nil
	case attackerTroops <= 0:
		gs.troops[pa.to] = defenderTroops
		gs.pendingAttack = nil
	default:
		gs.troops[pa.to] = defenderTroops
		// combat continues: remain a chance node for the next round
	}
}

// IsGameOver reports whether a single player controls every owned
// territory.
func (gs *GameState) IsGameOver() bool {
	return gs.soleSurvivor() >= 0
}

func (gs *GameState) soleSurvivor() int {
	survivor := -1
	for _, owner := range gs.owners {
		if owner < 0 {
			continue
		}
		if survivor == -1 {
			survivor = owner
		} else if survivor != owner {
			return -1
		}
	}
	return survivor
}

// UtilityVector returns 1.0 for the sole survivor and 0 for everyone else,
// or an all-zero vector if the game has not ended.
func (gs *GameState) UtilityVector() []float64 {
	vec := make([]float64, gs.numPlayers)
	if winner := gs.soleSurvivor(); winner >= 0 {
		vec[winner] = 1.0
	}
	return vec
}

// HeuristicVector is a cheap non-terminal proxy for UtilityVector: each
// player's share of total controlled territory, used by win.go's fallback
// when a rollout is cut short by the deadline or a depth cutoff.
func (gs *GameState) HeuristicVector() []float64 {
	vec := make([]float64, gs.numPlayers)
	total := 0
	for _, owner := range gs.owners {
		if owner >= 0 {
			vec[owner]++
			total++
		}
	}
	if total == 0 {
		return vec
	}
	for i := range vec {
		vec[i] /= float64(total)
	}
	return vec
}

// Hash returns a structural hash of the state, replacing the teacher's
// hash/fnv with cespare/xxhash/v2 (grounded on the wider pack's use of
// xxhash for fast non-cryptographic hashing).
func (gs *GameState) Hash() uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeInt := func(v int) {
		putInt64(buf[:], int64(v))
		h.Write(buf[:])
	}
	writeInt(gs.currentPlayer)
	writeInt(int(gs.phase))
	writeInt(gs.troopsToPlace)
	for _, t := range gs.troops {
		writeInt(t)
	}
	for _, o := range gs.owners {
		writeInt(o)
	}
	if gs.pendingAttack != nil {
		writeInt(1)
		writeInt(gs.pendingAttack.from)
		writeInt(gs.pendingAttack.to)
	} else {
		writeInt(0)
	}
	writeInt(gs.exchanges)
	for _, hand := range gs.hands {
		writeInt(len(hand))
		for _, c := range hand {
			writeInt(int(c.Type))
			writeInt(c.TerritoryID)
		}
	}
	return h.Sum64()
}

func putInt64(buf []byte, v int64) {
	u := uint64(v)
	for i := 0; i < 8; i++ {
		buf[i] = byte(u >> (8 * i))
	}
}
