package remainder_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/remainder"
)

func entities(weights ...float64) []core.Entity {
	out := make([]core.Entity, len(weights))
	for i, w := range weights {
		out[i] = core.Entity{Name: string(rune('A' + i)), Weight: w}
	}

	return out
}

// TestAllocate_TieGoesToEarlierEntity pins the stable tie-break:
// [100,100], K=3 → quotas [1.5,1.5] → the first entity wins.
func TestAllocate_TieGoesToEarlierEntity(t *testing.T) {
	a, err := remainder.Allocate(entities(100, 100), 3)
	require.NoError(t, err)
	assert.Equal(t, core.SeatVector{2, 1}, a.Seats)
	assert.InDelta(t, 200.0/3, a.StandardDivisor, 1e-12)
	assert.InDeltaSlice(t, []float64{1.5, 1.5}, a.Quotas, 1e-12)
	assert.Equal(t, 1, a.Leftover)
}

// TestAllocate_TieOrderFollowsInput reverses the input and checks the winner moves.
func TestAllocate_TieOrderFollowsInput(t *testing.T) {
	es := []core.Entity{{Name: "X", Weight: 10}, {Name: "Y", Weight: 30}, {Name: "Z", Weight: 10}}
	a, err := remainder.Allocate(es, 4)
	require.NoError(t, err)
	// quotas [0.8, 2.4, 0.8]: floors [0,2,0], two leftovers to X and Z.
	assert.Equal(t, core.SeatVector{1, 2, 1}, a.Seats)

	a, err = remainder.Allocate(es, 3)
	require.NoError(t, err)
	// quotas [0.6, 1.8, 0.6]: floors [0,1,0], leftovers to Y (0.8) then X (0.6, earlier than Z).
	assert.Equal(t, core.SeatVector{1, 2, 0}, a.Seats)
}

// TestAllocate_Textbook uses a classic classroom example.
func TestAllocate_Textbook(t *testing.T) {
	// Populations 5117, 4400, 162, 161, 160 with 100 seats:
	// quotas 51.17, 44.00, 1.62, 1.61, 1.60 → floors 51,44,1,1,1 (98) → +1 to the two largest remainders.
	a, err := remainder.Allocate(entities(5117, 4400, 162, 161, 160), 100)
	require.NoError(t, err)
	if diff := cmp.Diff(core.SeatVector{51, 44, 2, 2, 1}, a.Seats); diff != "" {
		t.Fatalf("seats mismatch (-want +got):\n%s", diff)
	}
}

// TestAllocate_QuotaBounds checks ⌊q⌋ ≤ s ≤ ⌊q⌋+1 and Σ == K on a spread of inputs.
func TestAllocate_QuotaBounds(t *testing.T) {
	inputs := [][]float64{
		{1, 2, 3, 4, 5, 6, 7},
		{1e6, 3, 3, 3},
		{0, 0, 5, 0},
		{0.1, 0.2, 0.3},
		{17, 17, 17, 17, 17, 17},
	}
	for _, ws := range inputs {
		for k := 1; k <= 25; k++ {
			a, err := remainder.Allocate(entities(ws...), k)
			require.NoError(t, err)
			assert.Equal(t, k, a.Seats.Sum())
			for i, s := range a.Seats {
				f := int(math.Floor(a.Quotas[i]))
				assert.GreaterOrEqual(t, s, f, "weights=%v k=%d i=%d", ws, k, i)
				assert.LessOrEqual(t, s, f+1, "weights=%v k=%d i=%d", ws, k, i)
			}
		}
	}
}

// TestAllocate_ZeroWeightGetsNothing ensures zero entities are skipped unless tied.
func TestAllocate_ZeroWeightGetsNothing(t *testing.T) {
	a, err := remainder.Allocate(entities(0, 7, 0), 5)
	require.NoError(t, err)
	assert.Equal(t, core.SeatVector{0, 5, 0}, a.Seats)
}

// TestAllocate_Invalid forwards validation sentinels.
func TestAllocate_Invalid(t *testing.T) {
	_, err := remainder.Allocate(nil, 3)
	assert.ErrorIs(t, err, core.ErrNoEntities)

	_, err = remainder.Allocate(entities(1, -2), 3)
	assert.ErrorIs(t, err, core.ErrNegativeWeight)

	_, err = remainder.Allocate(entities(1), 0)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

// TestHamilton_Method exercises the core.Method adapter through core.Apply.
func TestHamilton_Method(t *testing.T) {
	req, err := core.NewRequest(5, core.Entity{Name: "only", Weight: 42})
	require.NoError(t, err)

	seats, err := core.Apply(req, remainder.Hamilton{})
	require.NoError(t, err)
	assert.Equal(t, core.SeatVector{5}, seats)
	assert.Equal(t, "hamilton", remainder.Hamilton{}.Name())

	_, err = remainder.Hamilton{}.Allocate(nil, 1)
	assert.ErrorIs(t, err, core.ErrNoEntities)
}

// TestAllocate_ScalingInvariance multiplies weights by a constant.
func TestAllocate_ScalingInvariance(t *testing.T) {
	base := []float64{13, 29, 41, 7, 10}
	want, err := remainder.Allocate(entities(base...), 11)
	require.NoError(t, err)

	for _, c := range []float64{2, 1000, 0.5} {
		scaled := make([]float64, len(base))
		for i, w := range base {
			scaled[i] = w * c
		}
		got, err := remainder.Allocate(entities(scaled...), 11)
		require.NoError(t, err)
		assert.Equal(t, want.Seats, got.Seats, "scale %g", c)
	}
}
