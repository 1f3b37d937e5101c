// stylo maintains per-account email writing-style profiles: online
// mean/variance per metric, bounded greeting and sign-off habits, updated
// one email at a time with no history retained.
package main

import (
	"os"

	"github.com/corey/stylo/cmd/stylo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
