package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts with a stored profile",
	RunE:  runAccounts,
}

func runAccounts(cmd *cobra.Command, args []string) error {
	rec, closeStore, err := openRecorder()
	if err != nil {
		return err
	}
	defer closeStore()

	ids, err := rec.Accounts(cmd.Context())
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("no profiles recorded")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}
