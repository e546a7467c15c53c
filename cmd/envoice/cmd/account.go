package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show account plan and remaining quota",
	RunE:  runAccount,
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

func runAccount(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	account, err := client.GetAccount(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Plan:\t%s\n", account.Plan)
	fmt.Fprintf(w, "Remaining:\t%d\n", account.Remaining)
	if account.OverageCount != nil {
		fmt.Fprintf(w, "Overage used:\t%d\n", *account.OverageCount)
	}
	if account.OverageAllowed != nil {
		fmt.Fprintf(w, "Overage allowed:\t%d\n", *account.OverageAllowed)
	}
	w.Flush()

	if account.Warning != "" {
		fmt.Fprintf(os.Stderr, "warning: %s\n", account.Warning)
	}

	return nil
}
