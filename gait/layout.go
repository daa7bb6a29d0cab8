package gait

import (
	"errors"
	"fmt"
	"sort"

	"github.com/akmonengine/stride/stability"
)

var ErrInvalidLayout = errors.New("invalid limb layout")

type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "L"
	}
	return "R"
}

// Mount places a limb on the body: its side, and its station counted from the
// front (0 is the front-most pair).
type Mount struct {
	Side    Side
	Station int
}

// Name returns the conventional short name of the mount, e.g. "FL", "BR" or "M1L"
func (m Mount) Name(stations int) string {
	switch {
	case m.Station == 0:
		return "F" + m.Side.String()
	case m.Station == stations-1:
		return "B" + m.Side.String()
	default:
		return fmt.Sprintf("M%d%s", m.Station, m.Side)
	}
}

// Layout describes where each limb is mounted, in the same order as the limbs
// handed to the controller.
type Layout []Mount

// DefaultLayout alternates left and right limbs station by station, front to
// back: FL, FR, then the next station's left and right, and so on.
func DefaultLayout(limbCount int) Layout {
	layout := make(Layout, limbCount)
	for i := range layout {
		layout[i] = Mount{Side: Side(i % 2), Station: i / 2}
	}

	return layout
}

// Stations returns the number of stations used by the layout
func (l Layout) Stations() int {
	stations := 0
	for _, m := range l {
		stations = max(stations, m.Station+1)
	}

	return stations
}

// Validate rejects negative stations and two limbs sharing a mount
func (l Layout) Validate() error {
	seen := make(map[Mount]int, len(l))
	for i, m := range l {
		if m.Station < 0 {
			return fmt.Errorf("%w: limb %d has negative station %d", ErrInvalidLayout, i, m.Station)
		}
		if m.Side != SideLeft && m.Side != SideRight {
			return fmt.Errorf("%w: limb %d has unknown side %d", ErrInvalidLayout, i, m.Side)
		}
		if j, ok := seen[m]; ok {
			return fmt.Errorf("%w: limbs %d and %d share mount %s", ErrInvalidLayout, j, i, m.Name(l.Stations()))
		}
		seen[m] = i
	}

	return nil
}

// Pairs derives the stability pairs from the mounts: pitch pairs join
// consecutive limbs of the same side (front limb first), roll pairs join the
// left and right limbs of a station (left limb first).
func (l Layout) Pairs() stability.PairScheme {
	var scheme stability.PairScheme

	for _, side := range [2]Side{SideLeft, SideRight} {
		column := l.column(side)
		for i := 0; i+1 < len(column); i++ {
			scheme.Pitch = append(scheme.Pitch, stability.Pair{A: column[i], B: column[i+1]})
		}
	}

	left := make(map[int]int)
	for i, m := range l {
		if m.Side == SideLeft {
			left[m.Station] = i
		}
	}
	for _, right := range l.column(SideRight) {
		if a, ok := left[l[right].Station]; ok {
			scheme.Roll = append(scheme.Roll, stability.Pair{A: a, B: right})
		}
	}

	return scheme
}

// column returns the indices of the limbs on one side, front to back
func (l Layout) column(side Side) []int {
	var indices []int
	for i, m := range l {
		if m.Side == side {
			indices = append(indices, i)
		}
	}

	sort.SliceStable(indices, func(a, b int) bool {
		return l[indices[a]].Station < l[indices[b]].Station
	})

	return indices
}
