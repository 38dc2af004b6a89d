package game

import "errors"

var (
	// ErrStreetOrder is returned when a street is requested out of sequence.
	ErrStreetOrder = errors.New("street advanced out of order")
	// ErrIncompleteBoard is returned when showdown is attempted without five community cards.
	ErrIncompleteBoard = errors.New("showdown requires five community cards")
	// ErrChipConservation is returned when table chips no longer add up.
	ErrChipConservation = errors.New("chip conservation violated")
)
