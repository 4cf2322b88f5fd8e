package cmd

import (
	"fmt"

	"finance_tracker/internal/utils"

	"github.com/spf13/cobra"
)

func newTokenCmd(a *app) *cobra.Command {
	var userID uint
	c := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for an existing user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.ledger.GetUser(cmd.Context(), userID); err != nil {
				return fmt.Errorf("user %d: %w", userID, err)
			}
			token, err := utils.GenerateJWT(userID, a.cfg.JWTSecret, a.cfg.JWTTTL)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	c.Flags().UintVar(&userID, "user-id", 0, "ledger user id")
	_ = c.MarkFlagRequired("user-id")
	return c
}
