package game

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidState means a precondition on the snapshot was violated:
	// malformed fields, or advancing the day while an event is pending.
	ErrInvalidState = errors.New("invalid game state")
	// ErrEventPending rejects chore and day-advance actions while a random
	// event awaits resolution.
	ErrEventPending = errors.New("an event is awaiting your decision")
	// ErrInvalidChoice rejects an out-of-range event option index.
	ErrInvalidChoice = errors.New("invalid event choice")

	ErrInsufficientFunds  = errors.New("not enough money")
	ErrInsufficientEnergy = errors.New("not enough energy")
	ErrInsufficientFeed   = errors.New("not enough feed")
	ErrMissingEquipment   = errors.New("missing required equipment")
	ErrAlreadyDone        = errors.New("already done today")
	ErrNothingToDo        = errors.New("nothing to act on")
	ErrFieldOccupied      = errors.New("fields are already planted")
	ErrNotReady           = errors.New("not ready yet")
	ErrFlockFull          = errors.New("flock is at maximum capacity")
	ErrUnknownTarget      = errors.New("unknown target")
	ErrPlayerNotFound     = errors.New("player not found")
)

func clampGauge(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func validateFarmName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("farm name must not be empty")
	}
	if len(name) > 64 {
		return errors.New("farm name too long")
	}
	return nil
}

// Validate checks the structural invariants a snapshot must satisfy before
// the tick engine will accept it.
func (s GameState) Validate() error {
	if s.Day < 1 {
		return ErrInvalidState
	}
	if s.MaxEnergy <= 0 {
		return ErrInvalidState
	}
	if s.CropGrowth < 0 || s.CropGrowth > 100 {
		return ErrInvalidState
	}
	if s.CropGrowth > 0 && s.ActiveCrop == "" {
		return ErrInvalidState
	}
	if s.Feed < 0 || s.Chickens < 0 || s.DairyCows < 0 || s.BeefCows < 0 || s.Goats < 0 || s.Pigs < 0 {
		return ErrInvalidState
	}
	for _, f := range s.Flocks {
		if f.Count < 0 || f.Count > f.MaxCount {
			return ErrInvalidState
		}
	}
	return nil
}
