// Package game implements a Texas Hold'em round simulator for automated
// players.
//
// The main type is Engine, a single-actor state machine that moves one
// street at a time (pre-flop, flop, turn, river, showdown) each time a driver
// calls Advance. Every street deals cards from the deck, runs one betting
// pass over the active players in table order and records what happened to
// an EventLog.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	e := game.NewEngine(rng, []string{"Alice", "Bob", "Carol", "Dave"}, decider,
//	    game.WithStartingChips(1000),
//	    game.WithEventLog(transcript))
//	for {
//	    state, err := e.Advance(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    if state.Street == game.Showdown {
//	        break
//	    }
//	}
//
// # Decisions
//
// Players do not size their own bets. A Decider only chooses between fold,
// check, bet and raise from the hole and community cards; the engine picks
// the amount locally. Decisions are bounded by a timeout on an injectable
// quartz clock and every failure resolves to Fold, so a slow or broken
// decider can never stall a street.
//
// # Simplifications
//
// Betting is a single pass per street: a later raise does not reopen action
// to players who already acted. An exact tie at showdown awards the whole
// pot to the first tied player in table order.
package game
