package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// Size is the number of distinct cards in a standard deck
const Size = 52

// Deck is an ordered 52-card deck consumed from the top by deals.
// Cards are never replaced until Reset is called.
type Deck struct {
	cards [Size]Card
	next  int
	rng   *rand.Rand
}

// New creates a full, shuffled deck using rng for shuffling
func New(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// Reset refills the deck to all 52 cards and shuffles it
func (d *Deck) Reset() {
	i := 0
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	d.next = 0
	d.shuffle()
}

// shuffle is a uniform Fisher-Yates shuffle of the undealt cards
func (d *Deck) shuffle() {
	for i := len(d.cards) - 1; i > d.next; i-- {
		var j int
		if d.rng != nil {
			j = d.next + d.rng.IntN(i-d.next+1)
		} else {
			j = d.next + rand.IntN(i-d.next+1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes n cards from the top of the deck. Dealing more cards than
// remain is a programming error and panics.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || d.next+n > len(d.cards) {
		panic(fmt.Sprintf("deck: cannot deal %d cards, %d remaining", n, d.Remaining()))
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// DealHand deals two hole cards
func (d *Deck) DealHand() []Card {
	return d.Deal(2)
}

// DealFlop deals the three flop cards
func (d *Deck) DealFlop() []Card {
	return d.Deal(3)
}

// DealTurn deals the turn card
func (d *Deck) DealTurn() Card {
	return d.Deal(1)[0]
}

// DealRiver deals the river card
func (d *Deck) DealRiver() Card {
	return d.Deal(1)[0]
}

// Remaining returns the number of undealt cards
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
