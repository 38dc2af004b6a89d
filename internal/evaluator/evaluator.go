// Package evaluator classifies two to seven cards into one of the nine poker
// hand categories and produces a tie-break sequence for comparing hands of
// the same category.
package evaluator

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
)

var (
	// ErrCardCount is returned when fewer than 2 or more than 7 cards are evaluated.
	ErrCardCount = errors.New("evaluator: hand must contain 2 to 7 cards")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("evaluator: duplicate card")
	// ErrInvalidCard is returned for ranks or suits outside the 52-card universe.
	ErrInvalidCard = errors.New("evaluator: invalid card")
)

// Result is the outcome of evaluating a set of cards. TieBreak holds ranks
// in descending significance and is only meaningful between results of the
// same Category.
type Result struct {
	Category Category
	TieBreak []deck.Rank
}

// String renders the result, e.g. "Full House [5 9]"
func (r Result) String() string {
	parts := make([]string, len(r.TieBreak))
	for i, rank := range r.TieBreak {
		parts[i] = rank.String()
	}
	return fmt.Sprintf("%s [%s]", r.Category, strings.Join(parts, " "))
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 for an exact tie.
// Categories are compared first, then tie-break ranks element by element.
func Compare(a, b Result) int {
	switch {
	case a.Category > b.Category:
		return 1
	case a.Category < b.Category:
		return -1
	}
	return slices.Compare(a.TieBreak, b.TieBreak)
}

// Beats reports whether r is strictly stronger than other
func (r Result) Beats(other Result) bool {
	return Compare(r, other) > 0
}

// Evaluate scores a player's hole cards combined with the community cards
func Evaluate(hole, community []deck.Card) (Result, error) {
	cards := make([]deck.Card, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)
	return EvaluateCards(cards)
}

// EvaluateCards scores 2 to 7 distinct cards. The result does not depend on
// the order of cards.
func EvaluateCards(cards []deck.Card) (Result, error) {
	if len(cards) < 2 || len(cards) > 7 {
		return Result{}, fmt.Errorf("%w: got %d", ErrCardCount, len(cards))
	}

	seen := make(map[deck.Card]bool, len(cards))
	for _, c := range cards {
		if !c.Rank.Valid() || c.Suit < deck.Hearts || c.Suit > deck.Spades {
			return Result{}, fmt.Errorf("%w: %v", ErrInvalidCard, c)
		}
		if seen[c] {
			return Result{}, fmt.Errorf("%w: %v", ErrDuplicateCard, c)
		}
		seen[c] = true
	}

	return evaluate(newHandCounts(cards)), nil
}

// handCounts is the rank/suit histogram the classifier works from
type handCounts struct {
	ranks  []deck.Rank // every card's rank, descending
	byRank [deck.Ace + 1]int
	bySuit map[deck.Suit][]deck.Rank
}

func newHandCounts(cards []deck.Card) handCounts {
	h := handCounts{
		ranks:  make([]deck.Rank, 0, len(cards)),
		bySuit: make(map[deck.Suit][]deck.Rank, 4),
	}
	for _, c := range cards {
		h.ranks = append(h.ranks, c.Rank)
		h.byRank[c.Rank]++
		h.bySuit[c.Suit] = append(h.bySuit[c.Suit], c.Rank)
	}
	sortDesc(h.ranks)
	for suit := range h.bySuit {
		sortDesc(h.bySuit[suit])
	}
	return h
}

// evaluate checks categories strongest first; the first match wins
func evaluate(h handCounts) Result {
	flushRanks := h.flushRanks()

	if flushRanks != nil {
		if top, ok := straightTop(flushRanks); ok {
			return Result{Category: StraightFlush, TieBreak: []deck.Rank{top}}
		}
	}

	if quad, ok := h.highestWithCount(4, 0); ok {
		tie := []deck.Rank{quad}
		if kickers := h.kickers(1, quad); len(kickers) > 0 {
			tie = append(tie, kickers...)
		}
		return Result{Category: FourOfAKind, TieBreak: tie}
	}

	if triple, ok := h.highestWithCount(3, 0); ok {
		if pair, ok := h.highestWithCount(2, triple); ok {
			return Result{Category: FullHouse, TieBreak: []deck.Rank{triple, pair}}
		}
	}

	if flushRanks != nil {
		return Result{Category: Flush, TieBreak: slices.Clone(flushRanks[:5])}
	}

	if top, ok := straightTop(h.ranks); ok {
		return Result{Category: Straight, TieBreak: []deck.Rank{top}}
	}

	if triple, ok := h.exactly(3); ok {
		return Result{Category: ThreeOfAKind, TieBreak: append([]deck.Rank{triple}, h.kickers(2, triple)...)}
	}

	pairs := h.ranksWithExactCount(2)
	if len(pairs) >= 2 {
		tie := []deck.Rank{pairs[0], pairs[1]}
		tie = append(tie, h.kickers(1, pairs[0], pairs[1])...)
		return Result{Category: TwoPair, TieBreak: tie}
	}
	if len(pairs) == 1 {
		return Result{Category: OnePair, TieBreak: append([]deck.Rank{pairs[0]}, h.kickers(3, pairs[0])...)}
	}

	return Result{Category: HighCard, TieBreak: slices.Clone(h.ranks)}
}

// flushRanks returns the descending ranks of a suit holding five or more cards
func (h handCounts) flushRanks() []deck.Rank {
	for _, suit := range deck.Suits {
		if ranks := h.bySuit[suit]; len(ranks) >= 5 {
			return ranks
		}
	}
	return nil
}

// highestWithCount returns the highest rank, other than except, held at least n times
func (h handCounts) highestWithCount(n int, except deck.Rank) (deck.Rank, bool) {
	for r := deck.Ace; r >= deck.Two; r-- {
		if r != except && h.byRank[r] >= n {
			return r, true
		}
	}
	return 0, false
}

// exactly returns the highest rank held exactly n times
func (h handCounts) exactly(n int) (deck.Rank, bool) {
	ranks := h.ranksWithExactCount(n)
	if len(ranks) == 0 {
		return 0, false
	}
	return ranks[0], true
}

func (h handCounts) ranksWithExactCount(n int) []deck.Rank {
	var out []deck.Rank
	for r := deck.Ace; r >= deck.Two; r-- {
		if h.byRank[r] == n {
			out = append(out, r)
		}
	}
	return out
}

// kickers returns up to n card ranks, highest first, skipping excluded ranks
func (h handCounts) kickers(n int, exclude ...deck.Rank) []deck.Rank {
	out := make([]deck.Rank, 0, n)
	for _, r := range h.ranks {
		if len(out) == n {
			break
		}
		if slices.Contains(exclude, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// straightTop finds the top card of the highest run of five consecutive
// ranks. The wheel (A-2-3-4-5) plays the Ace low and tops out at 5.
func straightTop(ranks []deck.Rank) (deck.Rank, bool) {
	unique := slices.Clone(ranks)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	for i := len(unique) - 5; i >= 0; i-- {
		if unique[i+4]-unique[i] == 4 {
			return unique[i+4], true
		}
	}

	wheel := []deck.Rank{deck.Two, deck.Three, deck.Four, deck.Five, deck.Ace}
	for _, r := range wheel {
		if _, found := slices.BinarySearch(unique, r); !found {
			return 0, false
		}
	}
	return deck.Five, true
}

func sortDesc(ranks []deck.Rank) {
	slices.SortFunc(ranks, func(a, b deck.Rank) int { return int(b) - int(a) })
}
