package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
	"github.com/ProhibitedTV/AIPoker/internal/evaluator"
)

// RoundState is a point-in-time copy of the table. Before the first round
// Number is zero. Pot keeps the round's total after showdown even though
// the chips have moved to the winner.
type RoundState struct {
	RoundID        uuid.UUID
	Number         int
	Street         Street
	DealerIndex    int
	Pot            int
	CommunityCards []deck.Card
	Players        []Player

	// Result is set once the round reaches showdown.
	Result *RoundResult
}

// ActivePlayers counts players still in the round
func (s RoundState) ActivePlayers() int {
	n := 0
	for _, p := range s.Players {
		if p.Active {
			n++
		}
	}
	return n
}

// Engine runs rounds one street at a time. It is not safe for concurrent
// use; a single driver calls Advance or Step.
type Engine struct {
	rng     *rand.Rand
	deck    *deck.Deck
	decider Decider
	clock   quartz.Clock
	logger  *log.Logger
	events  EventLog
	cfg     engineConfig

	players         []*Player
	chipTotal       int
	dealerIndex     int
	roundStartChips []int

	roundID   uuid.UUID
	number    int
	street    Street
	pot       int
	community []deck.Card
	result    *RoundResult
	results   []RoundResult
}

// NewEngine creates an engine for the named players. The RNG drives both
// shuffling and bet sizing so a seeded RNG with a deterministic decider
// reproduces a whole session.
func NewEngine(rng *rand.Rand, playerNames []string, decider Decider, opts ...EngineOption) *Engine {
	if rng == nil {
		panic("rng is required for engine creation")
	}
	if decider == nil {
		panic("decider is required for engine creation")
	}
	if len(playerNames) < 2 {
		panic("at least 2 players required")
	}

	cfg := engineConfig{startChips: 1000}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.applyDefaults()

	if cfg.chipCounts != nil && len(cfg.chipCounts) != len(playerNames) {
		panic("chip counts must match number of players")
	}

	e := &Engine{
		rng:     rng,
		deck:    deck.New(rng),
		decider: decider,
		clock:   cfg.clock,
		logger:  cfg.logger.WithPrefix("engine"),
		events:  cfg.events,
		cfg:     cfg,
		street:  Showdown,
	}

	e.players = make([]*Player, len(playerNames))
	for i, name := range playerNames {
		chips := cfg.startChips
		if cfg.chipCounts != nil {
			chips = cfg.chipCounts[i]
		}
		if chips < 0 {
			panic("starting chips must not be negative")
		}
		e.players[i] = NewPlayer(i, name, chips)
		e.chipTotal += chips
	}

	return e
}

// NextStreet returns the street the next Advance will run
func (e *Engine) NextStreet() Street {
	if e.number == 0 || e.street == Showdown {
		return PreFlop
	}
	return e.street + 1
}

// Advance runs the next street, starting a new round after showdown.
func (e *Engine) Advance(ctx context.Context) (RoundState, error) {
	return e.Step(ctx, e.NextStreet())
}

// Step runs street, which must be the next street in sequence. Requests
// that would skip or repeat a street fail with ErrStreetOrder and leave
// the engine unchanged.
func (e *Engine) Step(ctx context.Context, street Street) (RoundState, error) {
	if next := e.NextStreet(); street != next {
		return e.Snapshot(), fmt.Errorf("%w: requested %s, next is %s", ErrStreetOrder, street, next)
	}

	switch street {
	case PreFlop:
		e.startRound()
		e.emit("--- %s Betting Round ---", street)
		e.runBettingPass(ctx, street)
	case Flop:
		e.dealCommunity(e.deck.DealFlop()...)
		e.emit("Flop: %s", deck.Join(e.community))
		e.emit("--- %s Betting Round ---", street)
		e.runBettingPass(ctx, street)
	case Turn:
		e.dealCommunity(e.deck.DealTurn())
		e.emit("Turn: %s", e.community[3].Long())
		e.emit("--- %s Betting Round ---", street)
		e.runBettingPass(ctx, street)
	case River:
		e.dealCommunity(e.deck.DealRiver())
		e.emit("River: %s", e.community[4].Long())
		e.emit("--- %s Betting Round ---", street)
		e.runBettingPass(ctx, street)
	case Showdown:
		if err := e.showdown(); err != nil {
			return e.Snapshot(), err
		}
	}
	e.street = street

	if err := e.checkChips(); err != nil {
		return e.Snapshot(), err
	}
	return e.Snapshot(), nil
}

// startRound resets every player, rotates the dealer, reshuffles and deals
// two hole cards to each seat.
func (e *Engine) startRound() {
	e.roundStartChips = e.roundStartChips[:0]
	for _, p := range e.players {
		p.ResetForNextRound()
		e.roundStartChips = append(e.roundStartChips, p.Chips)
	}
	e.dealerIndex = (e.dealerIndex + 1) % len(e.players)
	e.deck.Reset()
	e.number++
	e.roundID = newRoundID()
	e.pot = 0
	e.community = nil
	e.result = nil

	e.logger.Info("Starting round", "round", e.number, "id", e.roundID, "dealer", e.players[e.dealerIndex].Name)
	e.emit("=== Round %d ===", e.number)
	e.emit("Dealer: %s", e.players[e.dealerIndex].Name)

	for _, p := range e.players {
		p.HoleCards = e.deck.DealHand()
		e.emit("%s is dealt %s.", p.Name, deck.Join(p.HoleCards))
	}
}

func newRoundID() uuid.UUID {
	if id, err := uuid.NewV7(); err == nil {
		return id
	}
	return uuid.New()
}

func (e *Engine) dealCommunity(cards ...deck.Card) {
	e.community = append(e.community, cards...)
}

// runBettingPass gives every active player, in table order, exactly one
// action.
func (e *Engine) runBettingPass(ctx context.Context, street Street) {
	if e.activeCount() <= 1 {
		e.logger.Debug("Skipping betting, one player or fewer remaining", "street", street)
		e.emit("Betting skipped: no contest remaining.")
		return
	}

	var prefetched []ActionKind
	if e.cfg.parallel {
		prefetched = e.prefetchDecisions(ctx, e.community)
	}

	streetBet := 0
	for i, p := range e.players {
		if !p.Active || e.activeCount() <= 1 {
			if prefetched != nil && p.Active {
				e.logger.Debug("Discarding prefetched decision, no contest remaining", "player", p.Name)
			}
			continue
		}

		var kind ActionKind
		if prefetched != nil {
			kind = prefetched[i]
		} else {
			kind = e.requestDecision(ctx, p, e.community)
		}

		action := sizeAction(e.rng, kind, p.Chips, streetBet)
		e.apply(p, action)
		if action.Amount > streetBet {
			streetBet = action.Amount
		}
	}
}

// apply executes an already sized action for p
func (e *Engine) apply(p *Player, a Action) {
	switch a.Kind {
	case Fold:
		p.Active = false
	case Bet, Raise:
		p.commit(a.Amount)
		e.pot += a.Amount
	}
	e.logger.Debug("Action applied", "player", p.Name, "action", a.Kind, "amount", a.Amount, "pot", e.pot)
	e.emit("%s", describeAction(p, a, e.pot))
}

// showdown determines the winner and awards the pot. With one player left
// no hands are evaluated; with none the pot is returned to its
// contributors.
func (e *Engine) showdown() error {
	if len(e.community) != Showdown.boardSize() {
		return fmt.Errorf("%w: have %d", ErrIncompleteBoard, len(e.community))
	}

	e.emit("--- Showdown ---")
	result := RoundResult{
		RoundID: e.roundID,
		Number:  e.number,
		Board:   slices.Clone(e.community),
		Pot:     e.pot,
		Winner:  -1,
	}

	switch e.activeCount() {
	case 0:
		e.emit("No active players. The round ends with no winner.")
		for _, p := range e.players {
			p.Chips += p.Committed
		}
	case 1:
		for i, p := range e.players {
			if p.Active {
				result.Winner = i
				result.WinnerName = p.Name
			}
		}
		e.emit("%s wins the pot of %d chips uncontested.", result.WinnerName, e.pot)
	default:
		var best evaluator.Result
		for i, p := range e.players {
			if !p.Active {
				continue
			}
			res, err := evaluator.Evaluate(p.HoleCards, e.community)
			if err != nil {
				return fmt.Errorf("evaluating %s: %w", p.Name, err)
			}
			result.Showings = append(result.Showings, Showing{
				Seat:   i,
				Name:   p.Name,
				Hole:   slices.Clone(p.HoleCards),
				Result: res,
			})
			e.emit("%s shows %s: %s.", p.Name, deck.Join(p.HoleCards), res.Category)
			if result.Winner < 0 || res.Beats(best) {
				best = res
				result.Winner = i
				result.WinnerName = p.Name
			}
		}
		result.Contested = true
		e.emit("Winner: %s with %s, cards %s. Wins the pot of %d chips.",
			result.WinnerName, best.Category, deck.Join(e.players[result.Winner].HoleCards), e.pot)
	}

	if result.HasWinner() {
		e.players[result.Winner].Chips += e.pot
	}
	result.Net = make([]int, len(e.players))
	for i, p := range e.players {
		result.Net[i] = p.Chips - e.roundStartChips[i]
	}

	e.logger.Info("Round complete", "round", e.number, "winner", result.WinnerName, "pot", result.Pot)
	e.result = &result
	e.results = append(e.results, result)
	return nil
}

// checkChips verifies that stacks plus any undistributed pot still add up
// to the chips the table started with.
func (e *Engine) checkChips() error {
	total := 0
	if e.result == nil {
		total = e.pot
	}
	for _, p := range e.players {
		if p.Chips < 0 {
			return fmt.Errorf("%w: %s has %d chips", ErrChipConservation, p.Name, p.Chips)
		}
		total += p.Chips
	}
	if total != e.chipTotal {
		e.logger.Error("Chip total drifted", "want", e.chipTotal, "got", total)
		return fmt.Errorf("%w: table holds %d chips, started with %d", ErrChipConservation, total, e.chipTotal)
	}
	return nil
}

func (e *Engine) activeCount() int {
	n := 0
	for _, p := range e.players {
		if p.Active {
			n++
		}
	}
	return n
}

// Snapshot returns a copy of the current table state
func (e *Engine) Snapshot() RoundState {
	s := RoundState{
		RoundID:        e.roundID,
		Number:         e.number,
		Street:         e.street,
		DealerIndex:    e.dealerIndex,
		Pot:            e.pot,
		CommunityCards: slices.Clone(e.community),
		Players:        make([]Player, len(e.players)),
	}
	for i, p := range e.players {
		s.Players[i] = p.clone()
	}
	if e.result != nil {
		r := e.result.clone()
		s.Result = &r
	}
	return s
}

// Results returns every finished round in order
func (e *Engine) Results() []RoundResult {
	out := make([]RoundResult, len(e.results))
	for i, r := range e.results {
		out[i] = r.clone()
	}
	return out
}

// Standings returns per-player chips and win rates so far
func (e *Engine) Standings() []Standing {
	return standings(e.players, e.results)
}
