package styleprof

import "github.com/corey/stylo/internal/ports"

// InitStat seeds a RunningStat from the first-ever observed value.
func InitStat(value float64) ports.RunningStat {
	return ports.RunningStat{Mean: value, M2: 0}
}

// UpdateStat folds one new value into a RunningStat using Welford's
// algorithm. newCount is the total observation count after incrementing.
//
// Welford is required here, not a style choice: the naive sum/sum-of-squares
// formulation loses precision catastrophically as counts grow (cancellation
// between two large nearly-equal terms). Welford keeps both mean and M2
// accurate to floating-point rounding after thousands of updates without
// revisiting history.
func UpdateStat(prior ports.RunningStat, value float64, newCount int) ports.RunningStat {
	delta := value - prior.Mean
	mean := prior.Mean + delta/float64(newCount)
	return ports.RunningStat{
		Mean: mean,
		M2:   prior.M2 + delta*(value-mean),
	}
}
