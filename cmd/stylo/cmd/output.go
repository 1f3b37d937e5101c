package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corey/stylo/internal/domain/styleprof"
	"github.com/corey/stylo/internal/ports"
)

// ANSI colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// formatProfile renders a profile for the terminal: sample count, habit
// probabilities, retained greeting/sign-off labels, and per-metric mean ± σ.
func formatProfile(accountID string, p *ports.StyleProfile) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s⚡ %s%s │ %d samples\n", colorBold, accountID, colorReset, p.SampleCount))
	sb.WriteString(fmt.Sprintf("  greeting:  %s  (p=%.2f)\n", formatCounter(p.Greeting), p.PGreeting()))
	sb.WriteString(fmt.Sprintf("  sign-off:  %s  (p=%.2f)\n", formatCounter(p.SignOff), p.PSignOff()))
	sb.WriteString("  metrics:\n")

	for _, name := range styleprof.MetricNames() {
		rs, ok := p.Metrics[name]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s%-22s%s %9.3f ± %.3f\n",
			colorCyan, name, colorReset, rs.Mean, p.StdDev(name)))
	}
	return sb.String()
}

// formatCounter lists retained labels by count descending, ties broken by
// label, e.g. `hi×12 hello×3`.
func formatCounter(c ports.CategoryCounter) string {
	if len(c.Counts) == 0 {
		return colorGray + "none" + colorReset
	}
	type pair struct {
		label string
		count int
	}
	pairs := make([]pair, 0, len(c.Counts))
	for label, count := range c.Counts {
		pairs = append(pairs, pair{label, count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].label < pairs[j].label
	})

	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("%s%s%s×%d", colorBold, p.label, colorReset, p.count)
	}
	return strings.Join(parts, " ")
}
