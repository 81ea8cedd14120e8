package cli

import (
	"fmt"

	"github.com/alsham360/prima-api/infrastructure/database/postgres"
	"github.com/alsham360/prima-api/infrastructure/integrator/automation"
	"github.com/alsham360/prima-api/infrastructure/integrator/automation/automationclient"
	"github.com/alsham360/prima-api/infrastructure/repository"
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/alsham360/prima-api/internal/scheduler"
	"github.com/spf13/cobra"
)

var outboxCmd = &cobra.Command{
	Use:   "outbox",
	Short: "Inspeciona e despacha o outbox de eventos de automação",
}

var outboxDispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Executa uma rodada de entregas agora",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(conn postgres.Conn) error {
			service := scheduler.NewOutboxDispatchService(
				repository.NewOutboxRepository(conn),
				automation.New(automationclient.NewClient(appConfig)),
				appConfig,
			)

			summary, err := service.DispatchPending(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Selecionadas: %d, entregues: %d, reagendadas: %d, mortas: %d, sem endpoint: %d\n",
				summary.Picked, summary.Delivered, summary.Retried, summary.Dead, summary.Skipped)
			return nil
		})
	},
}

var outboxStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Conta as entradas do outbox por status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(conn postgres.Conn) error {
			counts, err := repository.NewOutboxRepository(conn).CountByStatus(cmd.Context())
			if err != nil {
				return err
			}

			for _, status := range []domain.OutboxStatus{
				domain.OutboxStatusPending,
				domain.OutboxStatusDelivered,
				domain.OutboxStatusDead,
			} {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d\n", status, counts[status])
			}
			return nil
		})
	},
}

func init() {
	outboxCmd.AddCommand(outboxDispatchCmd)
	outboxCmd.AddCommand(outboxStatusCmd)
	RootCmd.AddCommand(outboxCmd)
}
