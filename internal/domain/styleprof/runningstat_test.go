package styleprof

import (
	"math"
	"math/rand"
	"testing"

	"github.com/corey/stylo/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// RunningStat — Welford online mean/variance
// Properties: mean matches direct sum, M2/(n-1) matches direct sample
// variance, folding order only perturbs results within rounding error.
// =============================================================================

// foldAll folds values one at a time, the way the orchestrator does.
func foldAll(values []float64) ports.RunningStat {
	rs := InitStat(values[0])
	for i := 1; i < len(values); i++ {
		rs = UpdateStat(rs, values[i], i+1)
	}
	return rs
}

// directMeanVariance computes mean and sample variance from the full list.
func directMeanVariance(values []float64) (mean, variance float64) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return mean, ss / float64(len(values)-1)
}

func TestInitStat(t *testing.T) {
	rs := InitStat(12.5)
	assert.Equal(t, 12.5, rs.Mean)
	assert.Equal(t, 0.0, rs.M2)
}

func TestUpdateStat_SmallHandComputedSequence(t *testing.T) {
	// Values 2, 4, 6: mean 4, sample variance ((2-4)²+(0)²+(2)²)/2 = 4.
	rs := foldAll([]float64{2, 4, 6})
	assert.InDelta(t, 4.0, rs.Mean, 1e-12)
	assert.InDelta(t, 4.0, rs.M2/2, 1e-12)
}

func TestUpdateStat_MeanMatchesDirectSum10k(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	values := make([]float64, 10000)
	for i := range values {
		// Large offset stresses cancellation: naive sum-of-squares would
		// lose most of its precision here, Welford must not.
		values[i] = 1e6 + rng.Float64()*10
	}

	rs := foldAll(values)
	wantMean, wantVar := directMeanVariance(values)

	assert.InEpsilon(t, wantMean, rs.Mean, 1e-9)
	assert.InEpsilon(t, wantVar, rs.M2/float64(len(values)-1), 1e-6)
}

func TestUpdateStat_VarianceMatchesDirect(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{2, 3, 10, 500, 10000} {
		values := make([]float64, n)
		for i := range values {
			values[i] = rng.NormFloat64()*3 + 50
		}
		rs := foldAll(values)
		wantMean, wantVar := directMeanVariance(values)
		assert.InEpsilon(t, wantMean, rs.Mean, 1e-9, "mean n=%d", n)
		assert.InEpsilon(t, wantVar, rs.M2/float64(n-1), 1e-9, "variance n=%d", n)
	}
}

func TestUpdateStat_OrderInsensitiveWithinTolerance(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	values := make([]float64, 5000)
	for i := range values {
		values[i] = rng.Float64() * 100
	}

	forward := foldAll(values)

	reversed := make([]float64, len(values))
	for i, v := range values {
		reversed[len(values)-1-i] = v
	}
	backward := foldAll(reversed)

	require.InEpsilon(t, forward.Mean, backward.Mean, 1e-9)
	require.InEpsilon(t, forward.M2, backward.M2, 1e-9)
}

func TestUpdateStat_NonFinitePropagates(t *testing.T) {
	// Sanitizing is the caller's job; the accumulator just does arithmetic.
	rs := UpdateStat(InitStat(1), math.NaN(), 2)
	assert.True(t, math.IsNaN(rs.Mean))
}
