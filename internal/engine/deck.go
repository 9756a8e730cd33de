package engine

import (
	"fmt"

	"github.com/ericogr/dungeon-party/internal/game"
)

// drawUpTo refills the hand to the rules hand size. An empty deck takes the
// shuffled discard pile.
func (tc *turnContext) drawUpTo(pi int) {
	p := &tc.s.Players[pi]
	size := tc.e.content.Rules.HandSize
	drawn := 0
	for len(p.Hand) < size {
		if len(p.Deck) == 0 {
			if len(p.Discard) == 0 {
				break
			}
			p.Deck, p.Discard = p.Discard, nil
			tc.s.RNG.Shuffle(len(p.Deck), func(i, j int) { p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i] })
			tc.addSub(fmt.Sprintf("%s shuffles the discard pile into the deck", p.Name), game.LogInfo)
		}
		p.Hand = append(p.Hand, p.Deck[0])
		p.Deck = p.Deck[1:]
		drawn++
	}
	if drawn > 0 {
		tc.addSub(fmt.Sprintf("%s draws %d card(s)", p.Name, drawn), game.LogInfo)
	}
}

// discard moves the card at hand index i to the discard pile.
func discard(p *game.Player, i int) game.Card {
	card := p.Hand[i]
	p.Hand = append(p.Hand[:i:i], p.Hand[i+1:]...)
	p.Discard = append(p.Discard, card)
	return card
}
