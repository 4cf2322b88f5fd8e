package cmd

import (
	"fmt"

	"finance_tracker/internal/ledger"
	"finance_tracker/internal/utils"

	"github.com/spf13/cobra"
)

func newSeedUserCmd(a *app) *cobra.Command {
	var (
		in        ledger.NewUser
		withToken bool
	)
	c := &cobra.Command{
		Use:   "seed-user",
		Short: "Create a ledger user with an initial balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Currency == "" {
				in.Currency = a.cfg.DefaultCurrency
			}
			user, err := a.ledger.CreateUser(cmd.Context(), in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "user %d created: %s %s\n", user.ID, user.Balance.StringFixed(2), user.Currency)
			if withToken {
				token, err := utils.GenerateJWT(user.ID, a.cfg.JWTSecret, a.cfg.JWTTTL)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, token)
			}
			return nil
		},
	}
	c.Flags().StringVar(&in.Name, "name", "", "display name")
	c.Flags().StringVar(&in.Email, "email", "", "unique email (required)")
	c.Flags().StringVar(&in.Currency, "currency", "", "ISO 4217 code (default DEFAULT_CURRENCY)")
	c.Flags().StringVar(&in.InitialBalance, "balance", "0", "initial balance")
	c.Flags().BoolVar(&withToken, "token", false, "also print an access token")
	_ = c.MarkFlagRequired("email")
	return c
}
