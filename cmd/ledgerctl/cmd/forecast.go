package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newForecastCmd(a *app) *cobra.Command {
	var (
		userID uint
		months int
	)
	c := &cobra.Command{
		Use:   "forecast",
		Short: "Print a user's projected balance month by month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if months == 0 {
				months = a.cfg.ForecastMonths
			}
			user, projection, err := a.ledger.Forecast(cmd.Context(), userID, months)
			if err != nil {
				return fmt.Errorf("user %d: %w", userID, err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "MONTH\tINCOME\tEXPENSES\tNET\tBALANCE (%s)\t\n", user.Currency)
			fmt.Fprintf(w, "now\t\t\t\t%s\t\n", user.Balance.StringFixed(2))
			for _, m := range projection {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", m.Month,
					m.RecurringIncome.StringFixed(2), m.RecurringExpenses.StringFixed(2),
					m.NetChange.StringFixed(2), m.ProjectedBalance.StringFixed(2))
			}
			return w.Flush()
		},
	}
	c.Flags().UintVar(&userID, "user-id", 0, "ledger user id")
	c.Flags().IntVar(&months, "months", 0, "months ahead (default FORECAST_MONTHS)")
	_ = c.MarkFlagRequired("user-id")
	return c
}
