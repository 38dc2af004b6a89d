package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
	"github.com/ProhibitedTV/AIPoker/internal/randutil"
)

func ranks(rs ...int) []deck.Rank {
	out := make([]deck.Rank, len(rs))
	for i, r := range rs {
		out[i] = deck.Rank(r)
	}
	return out
}

func mustEval(t *testing.T, hole, community string) Result {
	t.Helper()
	res, err := Evaluate(deck.MustParseCards(hole), deck.MustParseCards(community))
	require.NoError(t, err)
	return res
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		hole      string
		community string
		category  Category
		tieBreak  []deck.Rank
	}{
		{"royal straight flush", "AhKh", "QhJhTh2c3s", StraightFlush, ranks(14)},
		{"quad twos", "2c2s", "2h2d9c5s7h", FourOfAKind, ranks(2, 9)},
		{"full house fives over nines", "5h5c", "5s9c9h2d3s", FullHouse, ranks(5, 9)},
		{"two trips demotes the lower", "9h9c", "9s5c5h5d2s", FullHouse, ranks(9, 5)},
		{"full house picks highest pair", "KhKc", "Ks3c3h7d7s", FullHouse, ranks(13, 7)},
		{"wheel straight flush", "Ad2d", "3d4d5d9cKs", StraightFlush, ranks(5)},
		{"flush uses top five of suit", "Ah2h", "9h7h5h3hKc", Flush, ranks(14, 9, 7, 5, 3)},
		{"flush beats straight", "6h7h", "8h9cThJh2h", Flush, ranks(11, 10, 8, 7, 6)},
		{"highest straight run", "9c4d", "5h6s7d8cTh", Straight, ranks(10)},
		{"wheel", "Ac2d", "3h4s5cKdQh", Straight, ranks(5)},
		{"six high over wheel cards", "Ac2d", "3h4s5c6dQh", Straight, ranks(6)},
		{"trips with two kickers", "7h7c", "7sAdKc2h4s", ThreeOfAKind, ranks(7, 14, 13)},
		{"two pair kicker", "QhQc", "JsJd9c2h3s", TwoPair, ranks(12, 11, 9)},
		{"three pairs uses third pair as kicker", "QhQc", "JsJd9c9h3s", TwoPair, ranks(12, 11, 9)},
		{"one pair three kickers", "8h8c", "AsKd3c2h5s", OnePair, ranks(8, 14, 13, 5)},
		{"high card keeps every rank", "AhJc", "9s7d5c3h2s", HighCard, ranks(14, 11, 9, 7, 5, 3, 2)},
		{"pre-flop pair", "KhKd", "", OnePair, ranks(13)},
		{"pre-flop high card", "KhQd", "", HighCard, ranks(13, 12)},
		{"four card quads without kicker", "5h5d", "5c5s", FourOfAKind, ranks(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustEval(t, tt.hole, tt.community)
			assert.Equal(t, tt.category, res.Category, "got %s", res)
			assert.Equal(t, tt.tieBreak, res.TieBreak)
		})
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	_, err := EvaluateCards(deck.MustParseCards("As"))
	assert.ErrorIs(t, err, ErrCardCount)

	_, err = EvaluateCards(deck.MustParseCards("As2s3s4s5s6s7s8s"))
	assert.ErrorIs(t, err, ErrCardCount)

	_, err = Evaluate(deck.MustParseCards("AsKd"), deck.MustParseCards("As2c3h"))
	assert.ErrorIs(t, err, ErrDuplicateCard)

	_, err = EvaluateCards([]deck.Card{{Rank: 1, Suit: deck.Spades}, {Rank: deck.Two, Suit: deck.Hearts}})
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestEvaluateIsOrderIndependent(t *testing.T) {
	rng := randutil.New(11)
	for i := 0; i < 500; i++ {
		cards := deck.New(rng).Deal(2 + rng.IntN(6))
		want, err := EvaluateCards(cards)
		require.NoError(t, err)

		for j := 0; j < 5; j++ {
			shuffled := append([]deck.Card(nil), cards...)
			rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
			got, err := EvaluateCards(shuffled)
			require.NoError(t, err)
			require.Equal(t, want, got, "cards %v vs %v", cards, shuffled)
		}
	}
}

func TestCompare(t *testing.T) {
	straight := mustEval(t, "2c3d", "4h5s6cJdQh")
	pairOfAces := mustEval(t, "AcAd", "KhQsJc8d7h")
	assert.Equal(t, 1, Compare(straight, pairOfAces), "category outranks kickers")
	assert.True(t, straight.Beats(pairOfAces))

	wheel := mustEval(t, "Ac2d", "3h4s5cKdQh")
	sixHigh := mustEval(t, "6c2d", "3h4s5cKdQh")
	assert.Equal(t, -1, Compare(wheel, sixHigh))

	a := mustEval(t, "AhKc", "2s5d9cJhTs")
	b := mustEval(t, "AdKs", "2s5d9cJhTs")
	assert.Zero(t, Compare(a, b))
	assert.False(t, a.Beats(b))

	kickerWin := mustEval(t, "8h8c", "AsKd3c2h5s")
	kickerLose := mustEval(t, "8d8s", "AsQd3c2h5s")
	assert.Equal(t, 1, Compare(kickerWin, kickerLose))
}

func TestCategoryOrdering(t *testing.T) {
	order := []Category{HighCard, OnePair, TwoPair, ThreeOfAKind, Straight, Flush, FullHouse, FourOfAKind, StraightFlush}
	for i, c := range order {
		assert.Equal(t, Category(i+1), c)
	}
	assert.Equal(t, "Straight Flush", StraightFlush.String())
	assert.Equal(t, "Four of a Kind", FourOfAKind.String())
	assert.NotEqual(t, StraightFlush.String(), FourOfAKind.String())
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "Full House [5 9]", mustEval(t, "5h5c", "5s9c9h2d3s").String())
}
