package board

import "golang.org/x/exp/rand"

// CardType mirrors the teacher's game/card.go enum.
type CardType int

const (
	Infantry CardType = iota
	Cavalry
	Artillery
	Wild
)

// Card is one trade-in card, optionally tied to a territory for the
// territory bonus (spec §D.3/territory bonus recovered from the teacher's
// TradeInSet).
type Card struct {
	Type        CardType
	TerritoryID int // -1 for wild cards
}

// Deck is the draw/discard pile pair, seeded like the teacher's InitCards:
// one card per territory, cycling infantry/cavalry/artillery (14 of each on
// the 42-territory board), plus two wilds, 44 cards in all.
type Deck struct {
	drawPile []Card
	discard  []Card
	rng      *rand.Rand
}

func NewDeck(numTerritories int, rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	types := []CardType{Infantry, Cavalry, Artillery}
	for i := 0; i < numTerritories; i++ {
		d.drawPile = append(d.drawPile, Card{Type: types[i%3], TerritoryID: i})
	}
	d.drawPile = append(d.drawPile, Card{Type: Wild, TerritoryID: -1})
	d.drawPile = append(d.drawPile, Card{Type: Wild, TerritoryID: -1})
	d.shuffle()
	return d
}

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.drawPile), func(i, j int) {
		d.drawPile[i], d.drawPile[j] = d.drawPile[j], d.drawPile[i]
	})
}

// Draw returns the top card, reshuffling the discard pile back in if the
// draw pile has run dry. The second result is false only when both piles
// are empty.
func (d *Deck) Draw() (Card, bool) {
	if len(d.drawPile) == 0 {
		if len(d.discard) == 0 {
			return Card{}, false
		}
		d.drawPile = append(d.drawPile, d.discard...)
		d.discard = nil
		d.shuffle()
	}
	card := d.drawPile[0]
	d.drawPile = d.drawPile[1:]
	return card, true
}

func (d *Deck) Discard(cards ...Card) {
	d.discard = append(d.discard, cards...)
}

// Clone deep-copies the deck for GameState.Apply's copy-on-write semantics.
func (d *Deck) Clone() *Deck {
	clone := &Deck{rng: d.rng}
	clone.drawPile = append(clone.drawPile, d.drawPile...)
	clone.discard = append(clone.discard, d.discard...)
	return clone
}

// findSet mirrors the teacher's GameState.FindSet: three of a kind, one of
// each, or any two non-wild cards plus a wild (two of a kind preferred).
// Returns the chosen hand indices, or
// nil if no set exists.
func findSet(hand []Card) []int {
	byType := map[CardType][]int{}
	for i, c := range hand {
		byType[c.Type] = append(byType[c.Type], i)
	}
	for t, indices := range byType {
		if t != Wild && len(indices) >= 3 {
			return append([]int{}, indices[:3]...)
		}
	}
	inf, cav, art := byType[Infantry], byType[Cavalry], byType[Artillery]
	if len(inf) > 0 && len(cav) > 0 && len(art) > 0 {
		return []int{inf[0], cav[0], art[0]}
	}
	wilds := byType[Wild]
	if len(wilds) > 0 {
		for _, t := range []CardType{Infantry, Cavalry, Artillery} {
			if len(byType[t]) >= 2 {
				return []int{byType[t][0], byType[t][1], wilds[0]}
			}
		}
		var nonWild []int
		for i, c := range hand {
			if c.Type != Wild {
				nonWild = append(nonWild, i)
			}
		}
		if len(nonWild) >= 2 {
			return []int{nonWild[0], nonWild[1], wilds[0]}
		}
	}
	return nil
}

// tradeInArmies follows the teacher's ArmiesForThisExchange ladder:
// 4,6,8,10,12,15, then +5 per further exchange.
func tradeInArmies(exchangeNumber int) int {
	switch exchangeNumber {
	case 1:
		return 4
	case 2:
		return 6
	case 3:
		return 8
	case 4:
		return 10
	case 5:
		return 12
	case 6:
		return 15
	default:
		return 15 + 5*(exchangeNumber-6)
	}
}
