package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
	"github.com/ProhibitedTV/AIPoker/internal/game"
)

// fakeClient replays canned replies and errors in order
type fakeClient struct {
	replies []string
	errs    []error
	prompts []string
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	i := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", nil
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		reply string
		want  game.ActionKind
	}{
		{"fold", game.Fold},
		{"Raise", game.Raise},
		{"  BET ", game.Bet},
		{"I would check here.", game.Check},
		{"I think I'll raise, maybe fold later", game.Raise},
		{"betting is fun", game.Check},
		{"refold", game.Check},
		{"", game.Check},
		{"all-in!", game.Check},
		{"**fold**", game.Fold},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.reply))
		})
	}
}

func TestParseAction(t *testing.T) {
	kind, ok := ParseAction("RAISE")
	assert.True(t, ok)
	assert.Equal(t, game.Raise, kind)

	_, ok = ParseAction("call")
	assert.False(t, ok)
}

func TestPrompt(t *testing.T) {
	hole := deck.MustParseCards("Th9d")
	board := deck.MustParseCards("2c5sAh")

	assert.Equal(t,
		"Player's hand: 10 of hearts, 9 of diamonds. Community cards: 2 of clubs, 5 of spades, Ace of hearts. "+
			"Respond with only one action: fold, check, bet, or raise. No explanation.",
		Prompt(hole, board))
}

func TestAdvisorDecide(t *testing.T) {
	hole := deck.MustParseCards("AsAh")

	t.Run("first reply wins", func(t *testing.T) {
		client := &fakeClient{replies: []string{"raise"}}
		action, err := New(client).Decide(context.Background(), hole, nil)
		require.NoError(t, err)
		assert.Equal(t, game.Raise, action)
		assert.Len(t, client.prompts, 1)
	})

	t.Run("unrecognised reply checks", func(t *testing.T) {
		client := &fakeClient{replies: []string{"hmm, tough spot"}}
		action, err := New(client).Decide(context.Background(), hole, nil)
		require.NoError(t, err)
		assert.Equal(t, game.Check, action)
	})

	t.Run("retries transport failure", func(t *testing.T) {
		client := &fakeClient{
			errs:    []error{errors.New("connection reset")},
			replies: []string{"", "bet"},
		}
		action, err := New(client).Decide(context.Background(), hole, nil)
		require.NoError(t, err)
		assert.Equal(t, game.Bet, action)
		assert.Len(t, client.prompts, 2)
	})

	t.Run("gives up after attempts", func(t *testing.T) {
		boom := errors.New("connection refused")
		client := &fakeClient{errs: []error{boom, boom, boom}}
		action, err := New(client, WithAttempts(3)).Decide(context.Background(), hole, nil)
		require.ErrorIs(t, err, ErrNoReply)
		require.ErrorIs(t, err, boom)
		assert.Equal(t, game.Fold, action)
		assert.Len(t, client.prompts, 3)
	})

	t.Run("stops retrying when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		client := &fakeClient{errs: []error{context.Canceled, context.Canceled}}
		_, err := New(client).Decide(ctx, hole, nil)
		require.Error(t, err)
		assert.Len(t, client.prompts, 1)
	})
}

func TestAdvisorIsDecider(t *testing.T) {
	var _ game.Decider = New(&fakeClient{})
	var _ game.Decider = NewChartAdvisor()
	var _ game.Decider = NewRandomAdvisor(nil)
}

// cardClient records the cards it is handed alongside the prompt
type cardClient struct {
	fakeClient
	holes [][]deck.Card
}

func (c *cardClient) CompleteCards(ctx context.Context, prompt string, hole, community []deck.Card) (string, error) {
	c.holes = append(c.holes, hole)
	return c.Complete(ctx, prompt)
}

func TestAdvisorSendsCardsToCardClients(t *testing.T) {
	client := &cardClient{fakeClient: fakeClient{
		errs:    []error{errors.New("connection reset")},
		replies: []string{"", "raise"},
	}}
	a := New(client, WithAttempts(2))

	hole := deck.MustParseCards("AsAd")
	action, err := a.Decide(context.Background(), hole, nil)
	require.NoError(t, err)
	assert.Equal(t, game.Raise, action)

	require.Len(t, client.holes, 2, "retries carry the cards too")
	assert.Equal(t, hole, client.holes[1])
}

func TestAdvisorOverDecisionServer(t *testing.T) {
	ts := startDecisionServer(t, NewChartAdvisor())

	client, err := NewWSClient(ts.URL+"/ws", nil)
	require.NoError(t, err)
	defer client.Close()

	a := New(client)
	action, err := a.Decide(context.Background(), deck.MustParseCards("AsAd"), nil)
	require.NoError(t, err)
	assert.Equal(t, game.Raise, action)
}
