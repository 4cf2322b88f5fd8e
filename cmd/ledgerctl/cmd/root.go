// Package cmd provides the ledgerctl commands.
package cmd

import (
	"fmt"

	"finance_tracker/internal/config"
	"finance_tracker/internal/db"
	"finance_tracker/internal/ledger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app is what every subcommand needs once the root has loaded config
type app struct {
	cfg    *config.Config
	ledger *ledger.Service
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	var (
		debug   bool
		migrate bool
	)
	a := &app{}

	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operate a finance ledger store",
		Long: `ledgerctl seeds users, issues development tokens and prints balance
forecasts straight against the ledger store configured in the environment (.env).

Example:
  ledgerctl seed-user --email ada@example.com --balance 1000
  ledgerctl token --user-id 1
  ledgerctl forecast --user-id 1 --months 6`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logrus.SetLevel(logrus.WarnLevel)
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
			logrus.SetOutput(cmd.ErrOrStderr())

			a.cfg = config.LoadConfig()
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			gdb, err := db.Open(a.cfg.DBDriver, a.cfg.DSN())
			if err != nil {
				return err
			}
			if migrate {
				if err := db.Migrate(gdb, a.cfg.DBDriver); err != nil {
					return err
				}
			}
			a.ledger = ledger.NewService(gdb, ledger.WithForecastOptions(ledger.ForecastOptions{
				Damping:       a.cfg.ForecastDamping,
				HistoryMonths: a.cfg.HistoryMonths,
			}))
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&migrate, "migrate", false, "run schema migration before the command")

	root.AddCommand(newSeedUserCmd(a), newTokenCmd(a), newForecastCmd(a))
	return root
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}
