package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cris-labs/cris/internal/filter"
)

var (
	listStatuses []string
	listJSON     bool
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Browse the customer roster",
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers, optionally filtered by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}

		statuses, err := parseStatuses(listStatuses)
		if err != nil {
			return err
		}
		records := filter.ByStatus(e.Store.All(), statuses)

		if listJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(records), "encode customers")
		}

		for _, c := range records {
			prob := "-"
			if c.Scored() {
				prob = fmt.Sprintf("%.2f", *c.PredictionProbability)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.2f€\t%s\n",
				c.ID, c.Status, c.Gender, c.MonthlyCharge, prob)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d customers\n", len(records))
		return nil
	},
}

var customersFindCmd = &cobra.Command{
	Use:   "find <customer-id>",
	Short: "Look up a customer by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}

		c, err := filter.FindByID(e.Store.All(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(c), "encode customer")
	},
}

func init() {
	customersListCmd.Flags().StringSliceVar(&listStatuses, "status", nil, "statuses to include (default Stayed,Joined)")
	customersListCmd.Flags().BoolVar(&listJSON, "json", false, "emit JSON instead of a table")
	customersCmd.AddCommand(customersListCmd)
	customersCmd.AddCommand(customersFindCmd)
	rootCmd.AddCommand(customersCmd)
}
