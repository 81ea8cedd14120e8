package cli

import (
	"fmt"
	"time"

	"github.com/alsham360/prima-api/infrastructure/database/postgres"
	"github.com/alsham360/prima-api/infrastructure/migration"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Carrega oportunidades de demonstração, uma em cada etapa",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(conn postgres.Conn) error {
			result, err := migration.Seed(cmd.Context(), conn, migration.DemoOpportunities(time.Now()))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Oportunidades inseridas: %d, já existentes: %d\n", result.Inserted, result.Skipped)
			return nil
		})
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)
}
