package engine

import "errors"

// Contract violations. Callers are expected to prevent these; the engine
// reports them instead of guessing.
var (
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrCardNotInHand   = errors.New("card is not in hand")
	ErrTargetRequired  = errors.New("card requires a target")
	ErrIllegalTarget   = errors.New("target is not legal")
	ErrNoLegalTarget   = errors.New("card has no legal target")
	ErrGameOver        = errors.New("game is over")
	ErrWrongPhase      = errors.New("action not allowed in the current phase")
	ErrNotYourTurn     = errors.New("not this player's turn")
	ErrResourceNotFull = errors.New("special resource is not full")
	ErrUnsupportedMode = errors.New("operation not supported in this mode")
	ErrNoNextEncounter = errors.New("no encounter left")
	ErrUnknownClass    = errors.New("unknown class")
	ErrNoPlayers       = errors.New("game needs at least one player")

	// Simultaneous mode
	ErrSelectionLocked     = errors.New("selection is locked while ready")
	ErrSelectionIncomplete = errors.New("selection is incomplete")
)
