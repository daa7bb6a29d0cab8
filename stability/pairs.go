package stability

import (
	"errors"
	"fmt"
)

var ErrInvalidPair = errors.New("invalid limb pair")

// Pair references two limbs by index. On the pitch axis A is the front limb
// and B the back one; on the roll axis A is the left limb and B the right one.
type Pair struct {
	A, B int
}

// PairScheme lists the limb pairs used to infer each axis
type PairScheme struct {
	Pitch []Pair
	Roll  []Pair
}

// OffsetPairs pairs limbs by index arithmetic: pitch pairs each limb with the
// one two places after it, roll pairs adjacent limbs (0,1), (2,3)...
// This only matches the body axes when limbs are ordered left/right per
// station, front to back.
func OffsetPairs(limbCount int) PairScheme {
	var scheme PairScheme

	for i := 0; i+2 < limbCount; i++ {
		scheme.Pitch = append(scheme.Pitch, Pair{A: i, B: i + 2})
	}
	for i := 0; i+1 < limbCount; i += 2 {
		scheme.Roll = append(scheme.Roll, Pair{A: i, B: i + 1})
	}

	return scheme
}

// Validate checks every pair references two distinct limbs in [0, limbCount)
func (s PairScheme) Validate(limbCount int) error {
	if err := validatePairs("pitch", s.Pitch, limbCount); err != nil {
		return err
	}

	return validatePairs("roll", s.Roll, limbCount)
}

func validatePairs(axis string, pairs []Pair, limbCount int) error {
	for i, pair := range pairs {
		if pair.A < 0 || pair.A >= limbCount || pair.B < 0 || pair.B >= limbCount {
			return fmt.Errorf("%w: %s pair #%d (%d, %d) out of range for %d limbs", ErrInvalidPair, axis, i, pair.A, pair.B, limbCount)
		}
		if pair.A == pair.B {
			return fmt.Errorf("%w: %s pair #%d pairs limb %d with itself", ErrInvalidPair, axis, i, pair.A)
		}
	}

	return nil
}
