package stride

import (
	"errors"

	"github.com/akmonengine/stride/stability"
)

var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrLayoutMismatch = errors.New("layout does not match limbs")
	ErrNoRayCaster    = errors.New("no ray caster")
	// ErrInvalidPair is returned when a pair scheme references missing limbs
	ErrInvalidPair = stability.ErrInvalidPair
)
