package game

import "errors"

var (
	// ErrInsufficientChips is returned when a bet, split or double exceeds
	// the player's remaining chips. Recoverable: the action is rejected and
	// input re-solicited.
	ErrInsufficientChips = errors.New("insufficient chips")

	// ErrIllegalSplit is returned when splitting a hand that is not a pair.
	ErrIllegalSplit = errors.New("hand cannot be split")

	// ErrIllegalDouble is returned when doubling a hand that is not eligible.
	ErrIllegalDouble = errors.New("hand cannot be doubled")
)
