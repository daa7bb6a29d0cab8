package gait

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akmonengine/stride/stability"
)

type offsetRecorder struct {
	calls []float64
}

func (o *offsetRecorder) SetForwardOffset(distance float64) {
	o.calls = append(o.calls, distance)
}

func TestDefaultLayout(t *testing.T) {
	layout := DefaultLayout(6)

	names := make([]string, len(layout))
	for i, m := range layout {
		names[i] = m.Name(layout.Stations())
	}

	assert.Equal(t, []string{"FL", "FR", "M1L", "M1R", "BL", "BR"}, names)
	assert.Equal(t, 3, layout.Stations())
	assert.NoError(t, layout.Validate())
}

func TestLayoutValidate(t *testing.T) {
	shared := Layout{{Side: SideLeft, Station: 0}, {Side: SideLeft, Station: 0}}
	assert.ErrorIs(t, shared.Validate(), ErrInvalidLayout)

	negative := Layout{{Side: SideRight, Station: -1}}
	assert.ErrorIs(t, negative.Validate(), ErrInvalidLayout)

	unknown := Layout{{Side: Side(7), Station: 0}}
	assert.ErrorIs(t, unknown.Validate(), ErrInvalidLayout)
}

func TestLayoutPairs_MatchesOffsetPairsForDefaultOrder(t *testing.T) {
	for _, n := range []int{2, 4, 6, 8} {
		fromLayout := DefaultLayout(n).Pairs()
		fromOffsets := stability.OffsetPairs(n)

		assert.ElementsMatch(t, fromOffsets.Pitch, fromLayout.Pitch, "pitch pairs for %d limbs", n)
		assert.ElementsMatch(t, fromOffsets.Roll, fromLayout.Roll, "roll pairs for %d limbs", n)
	}
}

func TestLayoutPairs_ExplicitOrder(t *testing.T) {
	// Limbs enumerated left column first: FL, BL, FR, BR
	layout := Layout{
		{Side: SideLeft, Station: 0},
		{Side: SideLeft, Station: 1},
		{Side: SideRight, Station: 0},
		{Side: SideRight, Station: 1},
	}

	pairs := layout.Pairs()
	assert.Equal(t, []stability.Pair{{A: 0, B: 1}, {A: 2, B: 3}}, pairs.Pitch)
	assert.Equal(t, []stability.Pair{{A: 0, B: 2}, {A: 1, B: 3}}, pairs.Roll)
	require.NoError(t, pairs.Validate(len(layout)))
}

func TestLayoutPairs_UnevenSides(t *testing.T) {
	// Three limbs: a front pair and a single tail limb on the left
	layout := Layout{
		{Side: SideLeft, Station: 0},
		{Side: SideRight, Station: 0},
		{Side: SideLeft, Station: 1},
	}

	pairs := layout.Pairs()
	assert.Equal(t, []stability.Pair{{A: 0, B: 2}}, pairs.Pitch)
	assert.Equal(t, []stability.Pair{{A: 0, B: 1}}, pairs.Roll)
}

func TestAssignPhases(t *testing.T) {
	quad := DefaultLayout(4)

	assert.Equal(t, []PhaseGroup{GroupA, GroupB, GroupA, GroupB}, AssignPhases(quad, PhaseParity))
	// Trot: FL and BR together
	assert.Equal(t, []PhaseGroup{GroupA, GroupB, GroupB, GroupA}, AssignPhases(quad, PhaseDiagonal))

	// Tripod: FL, M1R, BL together
	hex := AssignPhases(DefaultLayout(6), PhaseDiagonal)
	assert.Equal(t, []int{0, 3, 4}, Members(hex, GroupA))
	assert.Equal(t, []int{1, 2, 5}, Members(hex, GroupB))
}

func TestStartZigzag(t *testing.T) {
	limbs := []*offsetRecorder{{}, {}, {}, {}, {}}
	groups := AssignPhases(DefaultLayout(len(limbs)), PhaseParity)

	offset := StartZigzag(limbs, groups, DefaultZigzagOffset)

	assert.Equal(t, 2, offset)
	for i, limb := range limbs {
		if i%2 == 1 {
			assert.Equal(t, []float64{DefaultZigzagOffset}, limb.calls, "limb %d", i)
		} else {
			assert.Empty(t, limb.calls, "limb %d", i)
		}
	}
}

func TestParsePhaseScheme(t *testing.T) {
	tests := []struct {
		input    string
		expected PhaseScheme
		wantErr  bool
	}{
		{"", PhaseParity, false},
		{"parity", PhaseParity, false},
		{"Diagonal", PhaseDiagonal, false},
		{"tripod", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePhaseScheme(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, got)
	}
}
