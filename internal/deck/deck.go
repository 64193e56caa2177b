// Package deck builds and shuffles the 52-card deck the Hand Driver deals
// from, following the original game_logic.c init_deck/shuffle_deck pair but
// using Go's math/rand instead of libc's rand/srand.
package deck

import (
	"math/rand"

	"github.com/KASHIOTTO/NETWORKS-POKER-TABLE/internal/cards"
)

// Size is the number of cards in a standard deck.
const Size = 52

// Deck is an ordered sequence of 52 distinct cards with a cursor pointing
// at the next card to deal. Cards before the cursor are consumed.
type Deck struct {
	cards    [Size]cards.Card
	nextCard int
}

// New builds a fresh, ordered (unshuffled) 52-card deck.
func New() *Deck {
	d := &Deck{}
	d.reset()
	return d
}

func (d *Deck) reset() {
	i := 0
	for r := cards.Two; r <= cards.Ace; r++ {
		for s := cards.Clubs; s <= cards.Spades; s++ {
			d.cards[i] = cards.New(r, s)
			i++
		}
	}
	d.nextCard = 0
}

// Shuffle restores full deck order, then performs a Fisher-Yates shuffle
// seeded by rng, and resets the cursor to zero. This mirrors
// reset_game_state's call to shuffle_deck before every hand.
func (d *Deck) Shuffle(rng *rand.Rand) {
	d.reset()
	for i := Size - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	d.nextCard = 0
}

// Next deals the next card and advances the cursor. It panics if the deck
// is exhausted; a single hand never deals more than 2*6+5 = 17 cards, well
// under 52, so exhaustion indicates a driver bug, not a runtime condition
// to recover from.
func (d *Deck) Next() cards.Card {
	if d.nextCard >= Size {
		panic("deck: Next called with no cards remaining")
	}
	c := d.cards[d.nextCard]
	d.nextCard++
	return c
}

// Remaining returns how many cards are left to deal.
func (d *Deck) Remaining() int {
	return Size - d.nextCard
}

// NextCard returns the current cursor position, for invariant checks.
func (d *Deck) NextCard() int {
	return d.nextCard
}
