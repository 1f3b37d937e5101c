package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	wipeAccount string
	wipeForce   bool
)

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete an account's style profile",
	Long:  "Deletes the persisted profile for one account. The next recorded sample starts a fresh profile.",
	RunE:  runWipe,
}

func init() {
	wipeCmd.Flags().StringVar(&wipeAccount, "account", "", "Account ID (required)")
	wipeCmd.Flags().BoolVar(&wipeForce, "force", false, "Skip confirmation prompt")
	wipeCmd.MarkFlagRequired("account")
}

func runWipe(cmd *cobra.Command, args []string) error {
	if !wipeForce {
		fmt.Printf("⚠ This will delete the style profile for %s. Continue? [y/N] ", wipeAccount)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("cancelled")
			return nil
		}
	}

	rec, closeStore, err := openRecorder()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := rec.DeleteAccount(cmd.Context(), wipeAccount); err != nil {
		return err
	}
	fmt.Printf("%s✓ profile deleted%s │ %s\n", colorGreen, colorReset, wipeAccount)
	return nil
}
