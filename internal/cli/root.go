// Package cli implementa o alshamctl, ferramenta de operação do serviço de pipeline
package cli

import (
	"context"
	"fmt"

	"github.com/alsham360/prima-api/infrastructure/database/postgres"
	"github.com/alsham360/prima-api/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var Version = "dev"

// appConfig é carregada no PersistentPreRunE do comando raiz
var appConfig *config.Config

var (
	loadConfig      = config.NewConfig
	connectDatabase = func(ctx context.Context, cfg config.Database) (postgres.Conn, error) {
		conn, err := postgres.NewConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
)

var RootCmd = &cobra.Command{
	Use:   "alshamctl",
	Short: "Operação do pipeline de vendas ALSHAM 360° PRIMA",
	Long: `alshamctl reúne as tarefas de operação do serviço de pipeline:
verificação de conectividade, migrações, carga de dados de demonstração,
exportação das oportunidades e despacho manual do outbox de automação.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("erro ao carregar configuração: %w", err)
		}
		appConfig = cfg

		level := cfg.App.LogLevel
		if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
			level = flagLevel
		}
		if parsed, err := logrus.ParseLevel(level); err == nil {
			logrus.SetLevel(parsed)
		}

		return nil
	},
}

// Execute é chamado pelo main
func Execute(version string) error {
	Version = version
	RootCmd.Version = version

	return RootCmd.ExecuteContext(context.Background())
}

func init() {
	RootCmd.PersistentFlags().String("log-level", "", "Nível de log (sobrescreve LOG_LEVEL)")
	RootCmd.Version = Version
}

// withDatabase abre a conexão, executa fn e fecha a conexão
func withDatabase(ctx context.Context, fn func(conn postgres.Conn) error) error {
	conn, err := connectDatabase(ctx, appConfig.Database)
	if err != nil {
		return fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão")
		}
	}()

	return fn(conn)
}
