package styleprof

import "fmt"

// Pruning policy names. Exactly one is active per deployment.
const (
	// PolicyTopK keeps the K highest-count labels after every observation.
	PolicyTopK = "top-k"

	// PolicyCoverage keeps labels in count-descending order while the running
	// cumulative-count ratio stays strictly below the threshold. The label
	// that would push the ratio to or past the threshold is excluded, not
	// included; see prune for the worked example.
	PolicyCoverage = "coverage"
)

// Defaults for the pruning configuration.
const (
	DefaultTopK              = 10
	DefaultCoverageThreshold = 0.95
)

// Config selects the categorical pruning policy and its parameter.
// Fixed at construction time and injected into the service; never global.
type Config struct {
	Policy            string  // PolicyTopK or PolicyCoverage
	TopK              int     // used when Policy == PolicyTopK
	CoverageThreshold float64 // used when Policy == PolicyCoverage
}

// DefaultConfig returns the deployment default: top-k pruning with K=10.
func DefaultConfig() Config {
	return Config{
		Policy:            PolicyTopK,
		TopK:              DefaultTopK,
		CoverageThreshold: DefaultCoverageThreshold,
	}
}

// Validate checks the policy name and parameter ranges.
func (c Config) Validate() error {
	switch c.Policy {
	case PolicyTopK:
		if c.TopK < 1 {
			return fmt.Errorf("top-k policy requires K >= 1, got %d", c.TopK)
		}
	case PolicyCoverage:
		if c.CoverageThreshold <= 0 || c.CoverageThreshold > 1 {
			return fmt.Errorf("coverage policy requires threshold in (0, 1], got %g", c.CoverageThreshold)
		}
	default:
		return fmt.Errorf("unknown pruning policy %q", c.Policy)
	}
	return nil
}
