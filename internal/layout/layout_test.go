package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antigravity/transitql/internal/transit"
)

func TestComputeNonOverlapOfNeighbors(t *testing.T) {
	m := transit.NewModel()
	m.AddStop("A", 0.000, 10.0, nil)
	m.AddStop("B", 0.001, 10.0, nil)
	m.AddStop("C", 0.002, 10.0, nil)
	m.AddStop("D", 0.003, 10.0, nil)
	require.NoError(t, m.AddBus("1", []string{"A", "B", "C", "D"}, false))

	lay := Compute(m, Settings{Width: 200, Height: 200, Padding: 20})

	pairs := [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}}
	for _, p := range pairs {
		a, b := lay[p[0]], lay[p[1]]
		require.NotEqual(t, a.X, b.X, "%s vs %s x", p[0], p[1])
		require.NotEqual(t, a.Y, b.Y, "%s vs %s y", p[0], p[1])
	}
}

func TestComputeFirstInSortOrderHasRankZero(t *testing.T) {
	m := transit.NewModel()
	m.AddStop("A", 0, 0, nil)
	m.AddStop("B", 0, 1, nil)
	require.NoError(t, m.AddBus("1", []string{"A", "B"}, true))

	lay := Compute(m, Settings{Width: 100, Height: 100, Padding: 10})
	// A has the smallest longitude, so its x must be at the padding edge.
	require.Equal(t, 10.0, lay["A"].X)
}
