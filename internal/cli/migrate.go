package cli

import (
	"fmt"

	"github.com/alsham360/prima-api/infrastructure/migration"
	"github.com/spf13/cobra"
)

var runMigrations = migration.RunMigrations

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Gerencia as migrações do banco",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica as migrações pendentes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runMigrations(appConfig.Database.DSN); err != nil {
			return err
		}

		version, _, err := getMigrationVersion(appConfig.Database.DSN)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Migrações aplicadas, versão atual: %d\n", version)
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Mostra a versão atual do schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		version, dirty, err := getMigrationVersion(appConfig.Database.DSN)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "versão: %d (embutida: %d)", version, migration.LatestVersion)
		if dirty {
			fmt.Fprint(cmd.OutOrStdout(), " [suja]")
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
	RootCmd.AddCommand(migrateCmd)
}
