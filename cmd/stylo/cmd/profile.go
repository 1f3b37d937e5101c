package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileAccount string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show an account's style profile",
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&profileAccount, "account", "", "Account ID (required)")
	profileCmd.MarkFlagRequired("account")
}

func runProfile(cmd *cobra.Command, args []string) error {
	rec, closeStore, err := openRecorder()
	if err != nil {
		return err
	}
	defer closeStore()

	p, err := rec.GetProfile(cmd.Context(), profileAccount)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Printf("%s✗ no profile%s for %s — no samples recorded yet\n", colorYellow, colorReset, profileAccount)
		return nil
	}

	fmt.Print(formatProfile(profileAccount, p))
	return nil
}
